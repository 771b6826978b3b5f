package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reweara/api/internal/models"
)

var testPricing = Pricing{TaxRate: 0.05, ShippingFee: 49, FreeShippingAbove: 999}

func TestCreateOrderTotals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	jacket := seedProduct(t, s, models.Product{Name: "jacket", Price: 300, Stock: 5, IsActive: true})
	tee := seedProduct(t, s, models.Product{Name: "tee", Price: 100, Stock: 10, IsActive: true})
	addCartItem(t, s, 1, jacket.ID, 1)
	addCartItem(t, s, 1, tee.ID, 2)

	order, err := s.CreateOrder(ctx, 1, OrderInput{ShippingAddress: "12 Green Lane", PaymentMethod: "cod"}, testPricing)
	require.NoError(t, err)

	// subtotal 500, tax 25, shipping 49 (below free threshold)
	require.Equal(t, 500.0, order.Subtotal)
	require.Equal(t, 25.0, order.Tax)
	require.Equal(t, 49.0, order.Shipping)
	require.Equal(t, 0.0, order.Discount)
	require.Equal(t, 574.0, order.Total)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, "unpaid", order.PaymentStatus)
	require.NotEmpty(t, order.OrderNumber)
	require.Len(t, order.Items, 2)

	// stock moved and the cart is gone
	var p models.Product
	require.NoError(t, s.DB.First(&p, jacket.ID).Error)
	require.EqualValues(t, 4, p.Stock)
	var cartCount int64
	s.DB.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount)
	require.EqualValues(t, 0, cartCount)
}

func TestCreateOrderFreeShippingAboveThreshold(t *testing.T) {
	s := newTestStore(t)
	p := seedProduct(t, s, models.Product{Name: "coat", Price: 1200, Stock: 2, IsActive: true})
	addCartItem(t, s, 1, p.ID, 1)

	order, err := s.CreateOrder(context.Background(), 1, OrderInput{PaymentMethod: "cod"}, testPricing)
	require.NoError(t, err)
	require.Equal(t, 0.0, order.Shipping)
	require.Equal(t, 1260.0, order.Total) // 1200 + 5% tax
}

func TestCreateOrderRollsBackWhenAnyLineFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inStock := seedProduct(t, s, models.Product{Name: "in-stock", Price: 100, Stock: 1, IsActive: true})
	soldOut := seedProduct(t, s, models.Product{Name: "sold-out", Price: 50, Stock: 0, IsActive: true})
	addCartItem(t, s, 1, inStock.ID, 1)
	addCartItem(t, s, 1, soldOut.ID, 1)

	_, err := s.CreateOrder(ctx, 1, OrderInput{PaymentMethod: "cod"}, testPricing)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// nothing changed: no order, stock intact, cart intact
	var orders, cartItems int64
	s.DB.Model(&models.Order{}).Count(&orders)
	s.DB.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartItems)
	require.EqualValues(t, 0, orders)
	require.EqualValues(t, 2, cartItems)

	var p models.Product
	require.NoError(t, s.DB.First(&p, inStock.ID).Error)
	require.EqualValues(t, 1, p.Stock)
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	s := newTestStore(t)
	p := seedProduct(t, s, models.Product{Name: "retired", Price: 80, Stock: 4, IsActive: true})
	addCartItem(t, s, 1, p.ID, 1)

	require.NoError(t, s.DB.Model(&models.Product{}).Where("id = ?", p.ID).Update("is_active", false).Error)

	_, err := s.CreateOrder(context.Background(), 1, OrderInput{PaymentMethod: "cod"}, testPricing)
	require.ErrorIs(t, err, ErrProductInactive)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateOrder(context.Background(), 1, OrderInput{PaymentMethod: "cod"}, testPricing)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderAppliesCouponAndCountsUsage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, models.Product{Name: "dress", Price: 400, Stock: 3, IsActive: true})
	addCartItem(t, s, 1, p.ID, 1)
	require.NoError(t, s.DB.Create(&models.Coupon{
		Code: "SAVE10", Type: models.CouponTypePercent, Value: 10, UsageLimit: 1, IsActive: true,
	}).Error)

	order, err := s.CreateOrder(ctx, 1, OrderInput{PaymentMethod: "cod", CouponCode: "save10"}, testPricing)
	require.NoError(t, err)
	require.Equal(t, 40.0, order.Discount)
	require.Equal(t, 429.0, order.Total) // 400 + 20 tax + 49 shipping - 40

	var c models.Coupon
	require.NoError(t, s.DB.Where("code = ?", "SAVE10").First(&c).Error)
	require.EqualValues(t, 1, c.UsedCount)

	// limit exhausted, second order must fail
	addCartItem(t, s, 2, p.ID, 1)
	_, err = s.CreateOrder(ctx, 2, OrderInput{PaymentMethod: "cod", CouponCode: "SAVE10"}, testPricing)
	require.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCreateOrderUnlimitedCouponIncrementsUsage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, models.Product{Name: "coat", Price: 200, Stock: 5, IsActive: true})
	require.NoError(t, s.DB.Create(&models.Coupon{
		Code: "FOREVER", Type: models.CouponTypeFixed, Value: 20, IsActive: true,
	}).Error)

	// usage_limit 0 means unbounded; the conditional increment must not
	// treat it as an exhausted limit.
	for userID := uint(1); userID <= 3; userID++ {
		addCartItem(t, s, userID, p.ID, 1)
		order, err := s.CreateOrder(ctx, userID, OrderInput{PaymentMethod: "cod", CouponCode: "FOREVER"}, testPricing)
		require.NoError(t, err)
		require.Equal(t, 20.0, order.Discount)
	}

	var c models.Coupon
	require.NoError(t, s.DB.Where("code = ?", "FOREVER").First(&c).Error)
	require.EqualValues(t, 3, c.UsedCount)
}

func TestCreateOrderExhaustedCouponRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, models.Product{Name: "boots", Price: 300, Stock: 4, IsActive: true})
	addCartItem(t, s, 1, p.ID, 1)
	require.NoError(t, s.DB.Create(&models.Coupon{
		Code: "SPENT", Type: models.CouponTypeFixed, Value: 30,
		UsageLimit: 2, UsedCount: 2, IsActive: true,
	}).Error)

	_, err := s.CreateOrder(ctx, 1, OrderInput{PaymentMethod: "cod", CouponCode: "SPENT"}, testPricing)
	require.ErrorIs(t, err, ErrCouponInvalid)

	// nothing moved: no order, stock intact, cart intact, count unchanged
	var orders int64
	require.NoError(t, s.DB.Model(&models.Order{}).Count(&orders).Error)
	require.Zero(t, orders)

	var got models.Product
	require.NoError(t, s.DB.First(&got, p.ID).Error)
	require.EqualValues(t, 4, got.Stock)

	var c models.Coupon
	require.NoError(t, s.DB.Where("code = ?", "SPENT").First(&c).Error)
	require.EqualValues(t, 2, c.UsedCount)
}

func TestOrderItemsSnapshotPriceAndName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, models.Product{Name: "scarf", Price: 150, Stock: 5, IsActive: true})
	addCartItem(t, s, 1, p.ID, 1)

	order, err := s.CreateOrder(ctx, 1, OrderInput{PaymentMethod: "cod"}, testPricing)
	require.NoError(t, err)

	// later catalog edits must not rewrite order history
	require.NoError(t, s.DB.Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]any{"price": 999, "name": "renamed"}).Error)

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, "scarf", got.Items[0].ProductName)
	require.Equal(t, 150.0, got.Items[0].Price)
}

func TestGetUserOrderEnforcesOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, models.Product{Name: "belt", Price: 60, Stock: 2, IsActive: true})
	addCartItem(t, s, 1, p.ID, 1)
	order, err := s.CreateOrder(ctx, 1, OrderInput{PaymentMethod: "cod"}, testPricing)
	require.NoError(t, err)

	_, err = s.GetUserOrder(ctx, 2, order.ID)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetUserOrder(ctx, 1, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.OrderNumber, got.OrderNumber)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, models.Product{Name: "hat", Price: 90, Stock: 2, IsActive: true})
	addCartItem(t, s, 1, p.ID, 1)
	order, err := s.CreateOrder(ctx, 1, OrderInput{PaymentMethod: "cod"}, testPricing)
	require.NoError(t, err)

	updated, err := s.UpdateOrderStatus(ctx, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusShipped, updated.Status)

	_, err = s.UpdateOrderStatus(ctx, 9999, models.OrderStatusShipped)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveCouponRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	require.NoError(t, s.DB.Create(&models.Coupon{Code: "EXPIRED", Type: models.CouponTypeFixed, Value: 50, ExpiresAt: &past, IsActive: true}).Error)
	require.NoError(t, s.DB.Create(&models.Coupon{Code: "BIGONLY", Type: models.CouponTypeFixed, Value: 50, MinOrder: 500, IsActive: true}).Error)
	require.NoError(t, s.DB.Create(&models.Coupon{Code: "PAUSED", Type: models.CouponTypeFixed, Value: 50, IsActive: false}).Error)
	require.NoError(t, s.DB.Create(&models.Coupon{Code: "FLAT500", Type: models.CouponTypeFixed, Value: 500, IsActive: true}).Error)

	_, _, err := s.ResolveCoupon(ctx, "EXPIRED", 1000)
	require.ErrorIs(t, err, ErrCouponInvalid)
	_, _, err = s.ResolveCoupon(ctx, "BIGONLY", 499)
	require.ErrorIs(t, err, ErrCouponInvalid)
	_, _, err = s.ResolveCoupon(ctx, "PAUSED", 1000)
	require.ErrorIs(t, err, ErrCouponInvalid)
	_, _, err = s.ResolveCoupon(ctx, "NOSUCH", 1000)
	require.ErrorIs(t, err, ErrCouponInvalid)

	_, discount, err := s.ResolveCoupon(ctx, "BIGONLY", 500)
	require.NoError(t, err)
	require.Equal(t, 50.0, discount)

	// a fixed discount never exceeds the subtotal
	_, discount, err = s.ResolveCoupon(ctx, "FLAT500", 300)
	require.NoError(t, err)
	require.Equal(t, 300.0, discount)
}
