package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/reweara/api/internal/config"
	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/models"
	"gorm.io/gorm"
)

// Dumps the catalog tables to a JSON file so the storefront content can be
// inspected or carried between environments.
func main() {
	out := flag.String("out", "snapshot.json", "output file")
	flag.Parse()

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

	snap, err := collect(db)
	if err != nil {
		logger.Error("collect snapshot", "error", err)
		os.Exit(1)
	}

	f, err := os.Create(*out)
	if err != nil {
		logger.Error("create output", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		logger.Error("write snapshot", "error", err)
		os.Exit(1)
	}
	logger.Info("snapshot written", "file", *out,
		"products", len(snap.Products), "categories", len(snap.Categories))
}

type snapshot struct {
	Categories []models.Category `json:"categories"`
	Brands     []models.Brand    `json:"brands"`
	Products   []models.Product  `json:"products"`
	Banners    []models.Banner   `json:"banners"`
	Popups     []models.Popup    `json:"popups"`
	Coupons    []models.Coupon   `json:"coupons"`
}

func collect(db *gorm.DB) (*snapshot, error) {
	var s snapshot
	if err := db.Order("id").Find(&s.Categories).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&s.Brands).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&s.Products).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&s.Banners).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&s.Popups).Error; err != nil {
		return nil, err
	}
	if err := db.Order("id").Find(&s.Coupons).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
