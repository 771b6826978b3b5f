package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/store"
)

type CartHandler struct {
	Store *store.Store
}

func (h *CartHandler) Get(c echo.Context) error {
	lines, err := h.Store.GetCart(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, lines)
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  uint `json:"quantity"`
}

func (h *CartHandler) Add(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.Store.AddToCart(c.Request().Context(), middleware.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, item)
}

type updateCartRequest struct {
	Quantity uint `json:"quantity"`
}

func (h *CartHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req updateCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Store.UpdateCartItem(c.Request().Context(), middleware.UserID(c), id, req.Quantity)
	if err != nil {
		return storeError(err)
	}
	if item == nil {
		return c.JSON(http.StatusOK, echo.Map{"deleted": id})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) Remove(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Store.RemoveCartItem(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.Store.ClearCart(c.Request().Context(), middleware.UserID(c)); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
