package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/reweara/api/internal/models"
)

type WishlistLine struct {
	models.WishlistItem
	Product models.Product `json:"product"`
}

func (s *Store) GetWishlist(ctx context.Context, userID uint) ([]WishlistLine, error) {
	var items []models.WishlistItem
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]WishlistLine, 0, len(items))
	for _, it := range items {
		var p models.Product
		if err := s.DB.WithContext(ctx).First(&p, it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		lines = append(lines, WishlistLine{WishlistItem: it, Product: p})
	}
	return lines, nil
}

// AddToWishlist is idempotent: adding the same product twice keeps one row.
func (s *Store) AddToWishlist(ctx context.Context, userID, productID uint) (*models.WishlistItem, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, productID).Error; err != nil {
		return nil, translate(err)
	}
	if !p.IsActive {
		return nil, ErrProductInactive
	}

	item := models.WishlistItem{UserID: userID, ProductID: productID}
	tx := s.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).FirstOrCreate(&item)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &item, nil
}

func (s *Store) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
