package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'discount_type') THEN
			CREATE TYPE discount_type AS ENUM ('none', 'percentage', 'fixed');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS product_prices (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		product_type VARCHAR(50) NOT NULL,
		price_per_area NUMERIC(10,2) NOT NULL CHECK (price_per_area >= 0),
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_product_prices_type ON product_prices (product_type);`,
	`CREATE TABLE IF NOT EXISTS quotations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		quotation_number VARCHAR(50) NOT NULL,
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(320),
		customer_phone VARCHAR(50),
		customer_address TEXT,
		product_type VARCHAR(50) NOT NULL,
		width NUMERIC(10,2) NOT NULL,
		height NUMERIC(10,2) NOT NULL,
		quantity INT NOT NULL,
		area NUMERIC(10,2) NOT NULL,
		price_per_area NUMERIC(10,2) NOT NULL,
		net_price NUMERIC(10,2) NOT NULL,
		vat_percentage NUMERIC(5,2) NOT NULL,
		vat_amount NUMERIC(10,2) NOT NULL,
		gross_price NUMERIC(10,2) NOT NULL,
		discount_type discount_type NOT NULL DEFAULT 'none',
		discount_value NUMERIC(10,2) NOT NULL DEFAULT 0,
		discount_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		additional_costs JSONB NOT NULL DEFAULT '[]',
		additional_costs_total NUMERIC(10,2) NOT NULL DEFAULT 0,
		final_total NUMERIC(10,2) NOT NULL,
		notes TEXT,
		created_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quotations_number ON quotations (quotation_number);`,
	`CREATE INDEX IF NOT EXISTS idx_quotations_created_at ON quotations (created_at);`,
	`INSERT INTO product_prices (product_type, price_per_area, description) VALUES
		('plastic', 45.00, 'PVC rolling shutter'),
		('aluminum', 65.00, 'Aluminum rolling shutter'),
		('wood', 80.00, 'Wooden rolling shutter')
	ON CONFLICT (product_type) DO NOTHING;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
