package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/invoice"
	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/service/checkout"
	"github.com/reweara/api/internal/store"
)

type OrderHandler struct {
	Store    *store.Store
	Checkout *checkout.Service
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	PaymentMethod   string `json:"payment_method"   validate:"required,oneof=card cod razorpay"`
	CouponCode      string `json:"coupon_code"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.Checkout.PlaceOrder(c.Request().Context(), middleware.UserID(c), store.OrderInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.Store.ListUserOrders(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	order, err := h.Store.GetUserOrder(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, order)
}

// InvoicePDF streams the invoice for the caller's own order.
func (h *OrderHandler) InvoicePDF(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	order, err := h.Store.GetUserOrder(ctx, userID, id)
	if err != nil {
		return storeError(err)
	}
	user, err := h.Store.GetUser(ctx, userID)
	if err != nil {
		return storeError(err)
	}

	pdf, err := invoice.Render(order, user)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, order.OrderNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// ValidateCoupon previews a coupon against the current cart subtotal so the
// client can show the discount before checkout.
func (h *OrderHandler) ValidateCoupon(c echo.Context) error {
	var req struct {
		Code string `json:"code" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	lines, err := h.Store.GetCart(ctx, middleware.UserID(c))
	if err != nil {
		return storeError(err)
	}
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Product.Price * float64(line.Quantity)
	}

	coupon, discount, err := h.Store.ResolveCoupon(ctx, req.Code, subtotal)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"code":     coupon.Code,
		"type":     coupon.Type,
		"value":    coupon.Value,
		"discount": discount,
	})
}
