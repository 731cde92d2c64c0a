package main

import (
	"log"
	"os"
	"time"

	"edu-commerce-be/internal/model"
	"edu-commerce-be/pkg/database"

	"github.com/joho/godotenv"
)

func intp(v int) *int       { return &v }
func i64p(v int64) *int64   { return &v }
func strp(v string) *string { return &v }

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding catalog...")

	courses := []model.Course{
		{Title: "Intro to Distributed Systems", Price: 150000},
		{Title: "Database Internals", Price: 250000},
		{Title: "Getting Started Guide", Price: 0, IsFree: true},
	}
	for _, c := range courses {
		var existing model.Course
		if err := db.Where("title = ?", c.Title).First(&existing).Error; err == nil {
			log.Printf("Course '%s' already exists, skipping...", c.Title)
			continue
		}
		if err := db.Create(&c).Error; err != nil {
			log.Printf("Error creating course '%s': %v", c.Title, err)
		} else {
			log.Printf("Created course: %s", c.Title)
		}
	}

	workshops := []model.Workshop{
		{Title: "Profiling Go Services", Price: 200000},
		{Title: "Postgres Performance Clinic", Price: 300000},
	}
	for _, w := range workshops {
		var existing model.Workshop
		if err := db.Where("title = ?", w.Title).First(&existing).Error; err == nil {
			log.Printf("Workshop '%s' already exists, skipping...", w.Title)
			continue
		}
		if err := db.Create(&w).Error; err != nil {
			log.Printf("Error creating workshop '%s': %v", w.Title, err)
		} else {
			log.Printf("Created workshop: %s", w.Title)
		}
	}

	log.Println("Seeding coupon codes...")

	now := time.Now()
	yearEnd := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, time.Local)
	coupons := []model.CouponCode{
		{
			Code:              "LAUNCH15",
			DiscountType:      "percentage",
			DiscountValue:     15,
			MinPurchaseAmount: i64p(100000),
			MaxDiscountAmount: i64p(50000),
			UsageLimit:        intp(500),
			UserUsageLimit:    1,
			ValidFrom:         now,
			ValidUntil:        &yearEnd,
			IsActive:          true,
		},
		{
			Code:           "WELCOME10K",
			DiscountType:   "fixed",
			DiscountValue:  10000,
			UserUsageLimit: 1,
			ValidFrom:      now,
			IsActive:       true,
		},
		{
			Code:           "WORKSHOP20",
			DiscountType:   "percentage",
			DiscountValue:  20,
			ScopeItemType:  strp("workshop"),
			UsageLimit:     intp(100),
			UserUsageLimit: 1,
			ValidFrom:      now,
			ValidUntil:     &yearEnd,
			IsActive:       true,
		},
	}
	for _, c := range coupons {
		var existing model.CouponCode
		if err := db.Where("code = ?", c.Code).First(&existing).Error; err == nil {
			log.Printf("Coupon '%s' already exists, skipping...", c.Code)
			continue
		}
		if err := db.Create(&c).Error; err != nil {
			log.Printf("Error creating coupon '%s': %v", c.Code, err)
		} else {
			log.Printf("Created coupon: %s", c.Code)
		}
	}

	log.Println("Seeding completed!")
}
