package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS users (
	  id CHAR(36) NOT NULL,
	  full_name VARCHAR(255) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  password_hash VARCHAR(255) NOT NULL,
	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (id),
	  CONSTRAINT ux_users_email UNIQUE (email)
	);

	CREATE TABLE IF NOT EXISTS products (
	  id CHAR(36) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  buying_price DOUBLE PRECISION NOT NULL,
	  selling_price DOUBLE PRECISION NOT NULL,
	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (id)
	);

	CREATE TABLE IF NOT EXISTS sales (
	  id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  quantity INT NOT NULL,
	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (id)
	);
	CREATE INDEX IF NOT EXISTS ix_sales_product_id ON sales (product_id);

	CREATE TABLE IF NOT EXISTS payments (
	  id CHAR(36) NOT NULL,
	  sale_id CHAR(36) NOT NULL,
	  merchant_request_id VARCHAR(100) NOT NULL,
	  checkout_request_id VARCHAR(100) NOT NULL,
	  amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	  transaction_code VARCHAR(100) NOT NULL,
	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (id),
	  CONSTRAINT ux_payments_correlation UNIQUE (merchant_request_id, checkout_request_id)
	);
	CREATE INDEX IF NOT EXISTS ix_payments_sale_id ON payments (sale_id);

	CREATE TABLE IF NOT EXISTS callback_events (
	  id CHAR(36) NOT NULL,
	  merchant_request_id VARCHAR(100) NOT NULL DEFAULT '',
	  checkout_request_id VARCHAR(100) NOT NULL DEFAULT '',
	  result_code INT NOT NULL,
	  outcome VARCHAR(16) NOT NULL,
	  payload_json JSON NOT NULL,
	  received_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	  PRIMARY KEY (id)
	);
	CREATE INDEX IF NOT EXISTS ix_callback_events_correlation
	  ON callback_events (merchant_request_id, checkout_request_id);
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ users table created successfully")
	log.Println("✓ products table created successfully")
	log.Println("✓ sales table created successfully")
	log.Println("✓ payments table created successfully")
	log.Println("✓ callback_events table created successfully")
}
