package models

import (
	"time"

	"gorm.io/gorm"
)

// RewardRequest is a user's claim for a refund on an Amazon purchase, tracked
// through the verification/review/payment workflow. At most one non-deleted
// request may exist per (user, product) pair; the reward service enforces
// this before insert.
type RewardRequest struct {
	ID        uint                `gorm:"primary_key" json:"id"`
	UserID    string              `gorm:"type:varchar(64);not null;index:idx_reward_requests_user_product" json:"userId"`
	User      User                `gorm:"foreignKey:UserID" json:"-"`
	ProductID uint                `gorm:"not null;index:idx_reward_requests_user_product" json:"productId"`
	Product   Product             `gorm:"foreignKey:ProductID" json:"-"`
	Status    RewardRequestStatus `gorm:"type:varchar(40);not null;default:'Pending Verification'" json:"status"`

	// OrderScreenshot is set at creation. The remaining attachments arrive as
	// the request advances through the workflow.
	OrderScreenshot  string  `gorm:"type:text;not null" json:"orderScreenshot"`
	ReviewScreenshot *string `gorm:"type:text" json:"reviewScreenshot,omitempty"`
	ReviewLink       *string `gorm:"type:text" json:"reviewLink,omitempty"`
	ProofOfPayment   *string `gorm:"type:text" json:"proofOfPayment,omitempty"`

	// Comments is the legacy free-text field kept for wire compatibility; the
	// comment ledger supersedes it.
	Comments    *string `gorm:"type:text" json:"comments,omitempty"`
	PayoutEmail string  `gorm:"type:varchar(255)" json:"payoutEmail,omitempty"`

	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AttachmentURLs returns every non-empty attachment URL on the request.
func (r *RewardRequest) AttachmentURLs() []string {
	urls := make([]string, 0, 3)
	if r.OrderScreenshot != "" {
		urls = append(urls, r.OrderScreenshot)
	}
	if r.ReviewScreenshot != nil && *r.ReviewScreenshot != "" {
		urls = append(urls, *r.ReviewScreenshot)
	}
	if r.ProofOfPayment != nil && *r.ProofOfPayment != "" {
		urls = append(urls, *r.ProofOfPayment)
	}
	return urls
}
