package database

import (
	"context"
	"fmt"

	"inventory-management/internal/config"

	"go.uber.org/zap"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
		supplier_id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_name VARCHAR(100) NOT NULL,
		contact_person VARCHAR(100),
		phone VARCHAR(20),
		email VARCHAR(100),
		address TEXT,
		rating DECIMAL(2,1),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CHECK (rating IS NULL OR (rating >= 1.0 AND rating <= 5.0))
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_name VARCHAR(100) NOT NULL,
		product_code VARCHAR(50),
		category VARCHAR(50) NOT NULL,
		description TEXT,
		unit_price DECIMAL(10,2) NOT NULL,
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		reorder_level INTEGER NOT NULL DEFAULT 10,
		supplier_id INTEGER NOT NULL REFERENCES suppliers(supplier_id),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CHECK (unit_price >= 0),
		CHECK (stock_quantity >= 0),
		CHECK (reorder_level >= 0)
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS suppliers (
		supplier_id BIGSERIAL PRIMARY KEY,
		company_name VARCHAR(100) NOT NULL,
		contact_person VARCHAR(100),
		phone VARCHAR(20),
		email VARCHAR(100),
		address TEXT,
		rating DECIMAL(2,1),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CHECK (rating IS NULL OR (rating >= 1.0 AND rating <= 5.0))
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id BIGSERIAL PRIMARY KEY,
		product_name VARCHAR(100) NOT NULL,
		product_code VARCHAR(50),
		category VARCHAR(50) NOT NULL,
		description TEXT,
		unit_price DECIMAL(10,2) NOT NULL,
		stock_quantity INTEGER NOT NULL DEFAULT 0,
		reorder_level INTEGER NOT NULL DEFAULT 10,
		supplier_id BIGINT NOT NULL REFERENCES suppliers(supplier_id),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CHECK (unit_price >= 0),
		CHECK (stock_quantity >= 0),
		CHECK (reorder_level >= 0)
	)`,
}

// Indexes are identical for both dialects. Email uniqueness only binds active
// suppliers so a soft-deleted supplier's address can be reused.
var indexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_suppliers_active_email ON suppliers(email) WHERE is_active = TRUE`,
	`CREATE INDEX IF NOT EXISTS idx_suppliers_company_name ON suppliers(company_name)`,
	`CREATE INDEX IF NOT EXISTS idx_products_code ON products(product_code)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_supplier_id ON products(supplier_id)`,
}

// initSchema creates the database schema
func (d *DB) initSchema(ctx context.Context) error {
	statements := sqliteSchema
	if d.driver == config.DriverPostgres {
		statements = postgresSchema
	}
	statements = append(append([]string{}, statements...), indexes...)

	for _, stmt := range statements {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	d.logger.Debug("Database schema ready", zap.Int("statements", len(statements)))
	return nil
}
