package main

import (
	"log"
	"os"

	"edu-commerce-be/internal/model"
	"edu-commerce-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,

		// Enums (idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'discount_type') THEN CREATE TYPE discount_type AS ENUM ('percentage', 'fixed'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_status') THEN CREATE TYPE payment_status AS ENUM ('pending', 'completed', 'failed', 'refunded'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'refund_status') THEN CREATE TYPE refund_status AS ENUM ('pending', 'approved', 'rejected', 'processed'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'item_type') THEN CREATE TYPE item_type AS ENUM ('course', 'workshop', 'campaign'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Course{},
		&model.Workshop{},
		&model.Campaign{},
		&model.CouponCode{},
		&model.CouponCodeUsage{},
		&model.Invoice{},
		&model.RefundRequest{},
		&model.Enrollment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Post-Migration: partial unique indexes AutoMigrate cannot express.
	log.Println("Step 3: Creating partial unique indexes...")

	indexSQL := []string{
		// At most one pending invoice per user/item pair.
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_invoices_pending_user_item
		   ON invoices (user_id, item_type, item_id)
		   WHERE payment_status = 'pending';`,

		// At most one live (pending or approved) refund request per invoice.
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_refund_requests_live_invoice
		   ON refund_requests (invoice_id)
		   WHERE status IN ('pending', 'approved');`,

		// used_count can never exceed the limit nor go negative.
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_coupon_codes_used_count') THEN
		     ALTER TABLE coupon_codes ADD CONSTRAINT chk_coupon_codes_used_count
		       CHECK (used_count >= 0 AND (usage_limit IS NULL OR used_count <= usage_limit));
		   END IF;
		 END $$;`,
	}

	for _, sql := range indexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatal("Error: Failed to create index:", err)
		}
	}

	log.Println("✅ Migration completed successfully")
}
