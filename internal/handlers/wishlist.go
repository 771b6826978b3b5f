package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/store"
)

type WishlistHandler struct {
	Store *store.Store
}

func (h *WishlistHandler) Get(c echo.Context) error {
	lines, err := h.Store.GetWishlist(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, lines)
}

type wishlistRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

func (h *WishlistHandler) Add(c echo.Context) error {
	var req wishlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.Store.AddToWishlist(c.Request().Context(), middleware.UserID(c), req.ProductID)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *WishlistHandler) Remove(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Store.RemoveFromWishlist(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return storeError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
