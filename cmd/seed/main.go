package main

import (
	"fmt"
	"os"

	"github.com/reweara/api/internal/config"
	"github.com/reweara/api/internal/hash"
	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds the catalog with a starter data set and creates the first admin
// account. Safe to run repeatedly: rows are matched on their unique keys.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	db, err := config.OpenDB(cfg)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}

	if err := seed(db); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed complete")
}

func seed(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Thrift Finds", Slug: "thrift-finds", Description: "Pre-loved pieces given a second life", IsActive: true},
		{Name: "Originals", Slug: "originals", Description: "New garments from sustainable fabric", IsActive: true},
		{Name: "Accessories", Slug: "accessories", IsActive: true},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&categories).Error; err != nil {
		return fmt.Errorf("categories: %w", err)
	}

	brands := []models.Brand{
		{Name: "ReWeara Originals", Slug: "reweara-originals", IsActive: true},
		{Name: "Curated Thrift", Slug: "curated-thrift", IsActive: true},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&brands).Error; err != nil {
		return fmt.Errorf("brands: %w", err)
	}

	var thrift, originals models.Category
	if err := db.Where("slug = ?", "thrift-finds").First(&thrift).Error; err != nil {
		return err
	}
	if err := db.Where("slug = ?", "originals").First(&originals).Error; err != nil {
		return err
	}
	var house models.Brand
	if err := db.Where("slug = ?", "reweara-originals").First(&house).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name: "Reclaimed Denim Jacket", Slug: "reclaimed-denim-jacket",
			Description: "Vintage denim, re-stitched and washed.",
			Price:       1299, OriginalPrice: 2499, Stock: 8,
			CategoryID: thrift.ID, BrandID: house.ID,
			IsThrift: true, IsFeatured: true, IsActive: true,
		},
		{
			Name: "Organic Cotton Tee", Slug: "organic-cotton-tee",
			Description: "GOTS certified cotton, natural dye.",
			Price:       499, Stock: 40,
			CategoryID: originals.ID, BrandID: house.ID,
			IsOriginal: true, IsFeatured: true, IsActive: true,
		},
		{
			Name: "Hemp Tote Bag", Slug: "hemp-tote-bag",
			Description: "Heavy duty hemp canvas.",
			Price:       349, Stock: 25,
			CategoryID: originals.ID, BrandID: house.ID,
			IsOriginal: true, IsActive: true,
		},
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&products).Error; err != nil {
		return fmt.Errorf("products: %w", err)
	}

	email := envOr("SEED_ADMIN_EMAIL", "admin@reweara.example")
	password := envOr("SEED_ADMIN_PASSWORD", "change-me-now")
	var count int64
	if err := db.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		pw, err := hash.HashPassword(password)
		if err != nil {
			return err
		}
		admin := models.AdminUser{Email: email, PasswordHash: pw, Name: "Administrator", Role: "admin"}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("admin user: %w", err)
		}
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
