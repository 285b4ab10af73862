package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// CreateUsersAndProducts creates the users and products tables
func CreateUsersAndProducts() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_users_and_products",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS users (
					id VARCHAR(64) PRIMARY KEY,
					name VARCHAR(255) NOT NULL,
					email VARCHAR(255) NOT NULL UNIQUE,
					is_admin BOOLEAN DEFAULT FALSE,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at);
			`).Error; err != nil {
				return err
			}

			return tx.Exec(`
				CREATE TABLE IF NOT EXISTS products (
					id BIGSERIAL PRIMARY KEY,
					title VARCHAR(512) NOT NULL,
					description TEXT,
					slug VARCHAR(255),
					asin VARCHAR(20),
					price DECIMAL(12,2) NOT NULL,
					image_url TEXT NOT NULL,
					affiliate_url TEXT NOT NULL,
					customer_reviews DECIMAL(3,1) DEFAULT 0,
					best_sellers_rank INTEGER DEFAULT 0,
					reward_eligible BOOLEAN DEFAULT TRUE,
					created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
					deleted_at TIMESTAMP WITH TIME ZONE
				);

				CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug);
				CREATE INDEX IF NOT EXISTS idx_products_asin ON products(asin);
				CREATE INDEX IF NOT EXISTS idx_products_deleted_at ON products(deleted_at);
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			if err := tx.Exec(`DROP TABLE IF EXISTS products;`).Error; err != nil {
				return err
			}
			return tx.Exec(`DROP TABLE IF EXISTS users;`).Error
		},
	}
}
