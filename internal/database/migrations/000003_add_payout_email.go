package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// AddPayoutEmail adds the PayPal payout email to users and reward requests.
// Requests created after this migration require a payout email; older rows
// keep an empty value.
func AddPayoutEmail() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_add_payout_email",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				ALTER TABLE users ADD COLUMN IF NOT EXISTS payout_email VARCHAR(255);
			`).Error; err != nil {
				return err
			}
			return tx.Exec(`
				ALTER TABLE reward_requests ADD COLUMN IF NOT EXISTS payout_email VARCHAR(255) DEFAULT '';
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec(`ALTER TABLE reward_requests DROP COLUMN IF EXISTS payout_email;`).Error; err != nil {
				return err
			}
			return tx.Exec(`ALTER TABLE users DROP COLUMN IF EXISTS payout_email;`).Error
		},
	}
}
