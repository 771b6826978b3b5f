package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/store"
)

// CatalogHandler covers category and brand administration.
type CatalogHandler struct {
	Store *store.Store
	Auth  *adminauth.Service
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.Store.ListCategories(c.Request().Context(), true)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cat := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if err := h.Store.CreateCategory(c.Request().Context(), &cat); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "create", "category", cat.ID, cat)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cat, err := h.Store.GetCategory(c.Request().Context(), id)
	if err != nil {
		return storeError(err)
	}
	before := *cat

	cat.Name = req.Name
	cat.Slug = req.Slug
	cat.Description = req.Description
	cat.ImageURL = req.ImageURL
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if err := h.Store.UpdateCategory(c.Request().Context(), cat); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "update", "category", cat.ID, map[string]any{"before": before, "after": cat})
	return c.JSON(http.StatusOK, cat)
}

// DeleteCategory hard-deletes after the dependency check in the store.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Store.DeleteCategory(c.Request().Context(), id); err != nil {
		return storeError(err)
	}
	audit(c, h.Auth, "delete", "category", id, nil)
	return c.NoContent(http.StatusNoContent)
}

type brandRequest struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	LogoURL  string `json:"logo_url"`
	IsActive *bool  `json:"is_active"`
}

func (h *CatalogHandler) ListBrands(c echo.Context) error {
	brands, err := h.Store.ListBrands(c.Request().Context(), true)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *CatalogHandler) CreateBrand(c echo.Context) error {
	var req brandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b := models.Brand{Name: req.Name, Slug: req.Slug, LogoURL: req.LogoURL, IsActive: true}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := h.Store.CreateBrand(c.Request().Context(), &b); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "create", "brand", b.ID, b)
	return c.JSON(http.StatusCreated, b)
}

func (h *CatalogHandler) UpdateBrand(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req brandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b, err := h.Store.GetBrand(c.Request().Context(), id)
	if err != nil {
		return storeError(err)
	}
	before := *b

	b.Name = req.Name
	b.Slug = req.Slug
	b.LogoURL = req.LogoURL
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := h.Store.UpdateBrand(c.Request().Context(), b); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "update", "brand", b.ID, map[string]any{"before": before, "after": b})
	return c.JSON(http.StatusOK, b)
}

// DeleteBrand soft-deletes; products keep their brand reference.
func (h *CatalogHandler) DeleteBrand(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Store.DeactivateBrand(c.Request().Context(), id); err != nil {
		return storeError(err)
	}
	audit(c, h.Auth, "deactivate", "brand", id, nil)
	return c.NoContent(http.StatusNoContent)
}
