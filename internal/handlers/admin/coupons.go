package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/store"
)

type CouponHandler struct {
	Store *store.Store
	Auth  *adminauth.Service
}

type couponRequest struct {
	Code       string     `json:"code"        validate:"required"`
	Type       string     `json:"type"        validate:"required,oneof=percent fixed"`
	Value      float64    `json:"value"       validate:"required,gt=0"`
	MinOrder   float64    `json:"min_order"`
	UsageLimit uint       `json:"usage_limit"`
	ExpiresAt  *time.Time `json:"expires_at"`
	IsActive   *bool      `json:"is_active"`
}

func (h *CouponHandler) List(c echo.Context) error {
	coupons, err := h.Store.ListCoupons(c.Request().Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) Create(c echo.Context) error {
	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	coupon := models.Coupon{
		Code:       req.Code,
		Type:       req.Type,
		Value:      req.Value,
		MinOrder:   req.MinOrder,
		UsageLimit: req.UsageLimit,
		ExpiresAt:  req.ExpiresAt,
		IsActive:   true,
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if err := h.Store.CreateCoupon(c.Request().Context(), &coupon); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "create", "coupon", coupon.ID, coupon)
	return c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req couponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	coupon, err := h.Store.GetCoupon(c.Request().Context(), id)
	if err != nil {
		return storeError(err)
	}
	before := *coupon

	coupon.Code = req.Code
	coupon.Type = req.Type
	coupon.Value = req.Value
	coupon.MinOrder = req.MinOrder
	coupon.UsageLimit = req.UsageLimit
	coupon.ExpiresAt = req.ExpiresAt
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}
	if err := h.Store.UpdateCoupon(c.Request().Context(), coupon); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "update", "coupon", coupon.ID, map[string]any{"before": before, "after": coupon})
	return c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Store.DeleteCoupon(c.Request().Context(), id); err != nil {
		return storeError(err)
	}
	audit(c, h.Auth, "delete", "coupon", id, nil)
	return c.NoContent(http.StatusNoContent)
}
