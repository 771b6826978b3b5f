package store

import (
	"context"

	"github.com/reweara/api/internal/models"
)

type DashboardStats struct {
	TotalProducts int64            `json:"total_products"`
	TotalOrders   int64            `json:"total_orders"`
	TotalUsers    int64            `json:"total_users"`
	Revenue       float64          `json:"revenue"`
	PendingOrders int64            `json:"pending_orders"`
	LowStock      []models.Product `json:"low_stock"`
	RecentOrders  []models.Order   `json:"recent_orders"`
}

const lowStockThreshold = 5

func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := s.DB.WithContext(ctx)
	var stats DashboardStats

	if err := db.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders).Error; err != nil {
		return nil, err
	}

	// Cancelled orders do not count toward revenue.
	row := db.Model(&models.Order{}).Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").Row()
	if err := row.Scan(&stats.Revenue); err != nil {
		return nil, err
	}

	if err := db.Where("is_active = ? AND stock <= ?", true, lowStockThreshold).
		Order("stock ASC").Limit(10).Find(&stats.LowStock).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Items").Order("id DESC").Limit(5).Find(&stats.RecentOrders).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
