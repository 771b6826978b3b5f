package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/reweara/api/internal/models"
)

// CartLine is a cart item joined with its product, the shape the client
// renders and the checkout reads.
type CartLine struct {
	models.CartItem
	Product models.Product `json:"product"`
}

func (s *Store) GetCart(ctx context.Context, userID uint) ([]CartLine, error) {
	var items []models.CartItem
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		var p models.Product
		if err := s.DB.WithContext(ctx).First(&p, it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		lines = append(lines, CartLine{CartItem: it, Product: p})
	}
	return lines, nil
}

// AddToCart merges quantity into an existing line for the same product.
func (s *Store) AddToCart(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, productID).Error; err != nil {
		return nil, translate(err)
	}
	if !p.IsActive {
		return nil, ErrProductInactive
	}

	var item models.CartItem
	err := s.DB.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err == nil {
		item.Quantity += quantity
		if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdateCartItem(ctx context.Context, userID, itemID, quantity uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, translate(err)
	}
	if quantity == 0 {
		if err := s.DB.WithContext(ctx).Delete(&item).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}
	item.Quantity = quantity
	if err := s.DB.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) RemoveCartItem(ctx context.Context, userID, itemID uint) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ClearCart(ctx context.Context, userID uint) error {
	return s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
