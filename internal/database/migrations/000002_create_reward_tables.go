package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateRewardTables creates the reward_requests and reward_comments tables
func CreateRewardTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_reward_tables",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS reward_requests (
					id BIGSERIAL PRIMARY KEY,
					user_id VARCHAR(64) NOT NULL REFERENCES users(id),
					product_id BIGINT NOT NULL REFERENCES products(id),
					status VARCHAR(40) NOT NULL DEFAULT 'Pending Verification',
					order_screenshot TEXT NOT NULL,
					review_screenshot TEXT,
					review_link TEXT,
					proof_of_payment TEXT,
					comments TEXT,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX IF NOT EXISTS idx_reward_requests_user_product
					ON reward_requests(user_id, product_id);
				CREATE UNIQUE INDEX IF NOT EXISTS uniq_reward_requests_user_product_live
					ON reward_requests(user_id, product_id) WHERE deleted_at IS NULL;
				CREATE INDEX IF NOT EXISTS idx_reward_requests_status ON reward_requests(status);
				CREATE INDEX IF NOT EXISTS idx_reward_requests_deleted_at ON reward_requests(deleted_at);
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS reward_comments (
					id VARCHAR(36) PRIMARY KEY,
					reward_request_id BIGINT NOT NULL REFERENCES reward_requests(id),
					user_id VARCHAR(64) NOT NULL,
					comment TEXT NOT NULL,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
				);

				CREATE INDEX IF NOT EXISTS idx_reward_comments_request
					ON reward_comments(reward_request_id);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec(`DROP TABLE IF EXISTS reward_comments;`).Error; err != nil {
				return err
			}
			return tx.Exec(`DROP TABLE IF EXISTS reward_requests;`).Error
		},
	}
}
