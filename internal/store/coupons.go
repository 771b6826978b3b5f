package store

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/reweara/api/internal/models"
)

func (s *Store) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (s *Store) GetCoupon(ctx context.Context, id uint) (*models.Coupon, error) {
	var c models.Coupon
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) CreateCoupon(ctx context.Context, c *models.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *Store) UpdateCoupon(ctx context.Context, c *models.Coupon) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return s.DB.WithContext(ctx).Save(c).Error
}

func (s *Store) DeleteCoupon(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Coupon{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ResolveCoupon validates a code against a subtotal and returns the coupon
// with the discount it grants. It never mutates usage counters; that happens
// inside the order transaction.
func (s *Store) ResolveCoupon(ctx context.Context, code string, subtotal float64) (*models.Coupon, float64, error) {
	coupon, err := resolveCoupon(s.DB.WithContext(ctx), code, subtotal)
	if err != nil {
		return nil, 0, err
	}
	return coupon, couponDiscount(coupon, subtotal), nil
}

func resolveCoupon(tx *gorm.DB, code string, subtotal float64) (*models.Coupon, error) {
	var c models.Coupon
	if err := tx.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&c).Error; err != nil {
		return nil, ErrCouponInvalid
	}
	if !c.IsActive {
		return nil, ErrCouponInvalid
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(time.Now()) {
		return nil, ErrCouponInvalid
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return nil, ErrCouponInvalid
	}
	if subtotal < c.MinOrder {
		return nil, ErrCouponInvalid
	}
	return &c, nil
}

// couponDiscount never exceeds the subtotal; an order total cannot go
// negative.
func couponDiscount(c *models.Coupon, subtotal float64) float64 {
	var d float64
	switch c.Type {
	case models.CouponTypePercent:
		d = subtotal * c.Value / 100
	case models.CouponTypeFixed:
		d = c.Value
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
