package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/util"
)

// OrderInput carries everything the client may legitimately choose at
// checkout. Prices are deliberately absent: the transaction reprices every
// line from the products table.
type OrderInput struct {
	ShippingAddress string
	PaymentMethod   string
	CouponCode      string
}

// Pricing holds the rates applied to a repriced subtotal.
type Pricing struct {
	TaxRate           float64
	ShippingFee       float64
	FreeShippingAbove float64
}

// CreateOrder places an order from the user's cart inside one transaction:
// lock product rows, verify stock and availability, reprice from current
// product prices, apply the coupon, insert order and items, decrement stock
// and clear the cart. Any failed line rolls back the whole order.
func (s *Store) CreateOrder(ctx context.Context, userID uint, in OrderInput, pr Pricing) (*models.Order, error) {
	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var subtotal float64
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			var p models.Product
			if err := lockForUpdate(tx).First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", it.ProductID, ErrNotFound)
				}
				return err
			}
			if !p.IsActive {
				return fmt.Errorf("%s: %w", p.Name, ErrProductInactive)
			}
			if p.Stock < it.Quantity {
				return fmt.Errorf("%s: %w", p.Name, ErrInsufficientStock)
			}

			subtotal += p.Price * float64(it.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Price:       p.Price,
				Quantity:    it.Quantity,
			})
		}
		subtotal = round2(subtotal)

		var discount float64
		var coupon *models.Coupon
		if in.CouponCode != "" {
			var err error
			coupon, err = resolveCoupon(tx, in.CouponCode, subtotal)
			if err != nil {
				return err
			}
			discount = round2(couponDiscount(coupon, subtotal))
		}

		tax := round2(subtotal * pr.TaxRate)
		shipping := pr.ShippingFee
		if subtotal >= pr.FreeShippingAbove {
			shipping = 0
		}
		total := round2(subtotal + tax + shipping - discount)

		order = models.Order{
			OrderNumber:     newOrderNumber(),
			UserID:          userID,
			Status:          models.OrderStatusPending,
			Subtotal:        subtotal,
			Tax:             tax,
			Shipping:        shipping,
			Discount:        discount,
			Total:           total,
			CouponCode:      in.CouponCode,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
			PaymentStatus:   "unpaid",
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
			if err := tx.Create(&orderItems[i]).Error; err != nil {
				return err
			}
		}
		order.Items = orderItems

		// Stock moves only here, after every line has passed validation.
		for _, oi := range orderItems {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", oi.ProductID, oi.Quantity).
				Update("stock", gorm.Expr("stock - ?", oi.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", oi.ProductID, ErrInsufficientStock)
			}
		}

		if coupon != nil {
			// Re-check the limit in the update itself: another transaction
			// may have consumed the last use since resolveCoupon ran.
			res := tx.Model(&models.Coupon{}).
				Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", coupon.ID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrCouponInvalid
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

// GetUserOrder fetches an order only if it belongs to the user.
func (s *Store) GetUserOrder(ctx context.Context, userID, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *Store) ListUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) ListOrders(ctx context.Context, page, size int) ([]models.Order, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Order{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := util.Paginate(page, size)
	var orders []models.Order
	if err := q.Preload("Items").Order("id DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	var o models.Order
	if err := s.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	o.Status = status
	if err := s.DB.WithContext(ctx).Save(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) MarkOrderPaid(ctx context.Context, id uint, paymentRef string) error {
	return s.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]any{"payment_status": "paid", "payment_ref": paymentRef}).Error
}

func newOrderNumber() string {
	return "RW-" + strings.ToUpper(uuid.NewString()[:8]) + "-" + fmt.Sprint(time.Now().Year())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
