package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/store"
)

// CatalogHandler serves the public taxonomy and marketing content: active
// categories, brands, banners and popups.
type CatalogHandler struct {
	Store *store.Store
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.Store.ListCategories(c.Request().Context(), false)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) ListBrands(c echo.Context) error {
	brands, err := h.Store.ListBrands(c.Request().Context(), false)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *CatalogHandler) ListBanners(c echo.Context) error {
	banners, err := h.Store.ListBanners(c.Request().Context(), false)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, banners)
}

func (h *CatalogHandler) ListPopups(c echo.Context) error {
	popups, err := h.Store.ListActivePopups(c.Request().Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, popups)
}
