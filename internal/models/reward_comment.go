package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemCommentAuthor is the sentinel author id for comments generated by the
// status transition engine.
const SystemCommentAuthor = "SYSTEM"

// RewardComment is an append-only remark on a reward request, written either
// by a user/admin or by the transition engine. Comments are immutable once
// created and are removed only when the parent request is deleted.
type RewardComment struct {
	ID              string    `gorm:"type:varchar(36);primary_key" json:"id"`
	RewardRequestID uint      `gorm:"not null;index" json:"rewardRequestId"`
	UserID          string    `gorm:"type:varchar(64);not null" json:"userId"`
	Comment         string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// BeforeCreate assigns a UUID id, matching the text primary key used on the
// wire.
func (c *RewardComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// System reports whether the comment was generated by the transition engine.
func (c *RewardComment) System() bool {
	return c.UserID == SystemCommentAuthor
}
