package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a storefront user. The ID is the subject assigned by the
// external identity provider, so it is a text key rather than a UUID we mint.
type User struct {
	ID          string         `gorm:"type:varchar(64);primary_key" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Email       string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PayoutEmail *string        `gorm:"type:varchar(255)" json:"payout_email,omitempty"`
	IsAdmin     bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
