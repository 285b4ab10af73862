package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is an Amazon catalog item surfaced on the storefront. Price, image
// and rank data are refreshed from the Product Advertising API when an ASIN
// is present; the reward workflow only ever reads this table.
type Product struct {
	ID              uint           `gorm:"primary_key" json:"id"`
	Title           string         `gorm:"type:varchar(512);not null" json:"title"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	Slug            string         `gorm:"type:varchar(255);index" json:"slug"`
	ASIN            *string        `gorm:"type:varchar(20);index" json:"asin,omitempty"`
	Price           float64        `gorm:"type:decimal(12,2);not null" json:"price"`
	ImageURL        string         `gorm:"type:text;not null" json:"image_url"`
	AffiliateURL    string         `gorm:"type:text;not null" json:"affiliate_url"`
	CustomerReviews float64        `gorm:"type:decimal(3,1);default:0" json:"customerReviews"`
	BestSellersRank int            `gorm:"default:0" json:"bestSellersRank"`
	RewardEligible  bool           `gorm:"default:true" json:"reward_eligible"`
	CreatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
