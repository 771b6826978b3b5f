package invoice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reweara/api/internal/models"
)

func TestRenderProducesPDF(t *testing.T) {
	order := &models.Order{
		OrderNumber:     "RW-ABCD1234-2026",
		Status:          models.OrderStatusPending,
		Subtotal:        500,
		Tax:             25,
		Shipping:        49,
		Discount:        40,
		Total:           534,
		CouponCode:      "SAVE10",
		ShippingAddress: "12 Green Lane",
		PaymentMethod:   "cod",
		Items: []models.OrderItem{
			{ProductName: "Reclaimed Denim Jacket", Price: 300, Quantity: 1},
			{ProductName: "Organic Cotton Tee", Price: 100, Quantity: 2},
		},
	}
	user := &models.User{Email: "eco@reweara.example", FirstName: "Eco", LastName: "Shopper"}

	pdf, err := Render(order, user)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	require.Greater(t, len(pdf), 1000)
}

func TestRenderEmptyItems(t *testing.T) {
	order := &models.Order{OrderNumber: "RW-EMPTY000-2026", Total: 0}
	user := &models.User{Email: "eco@reweara.example"}

	pdf, err := Render(order, user)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
