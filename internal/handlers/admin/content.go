package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/store"
)

// ContentHandler covers banners and popups, which both hard-delete.
type ContentHandler struct {
	Store *store.Store
	Auth  *adminauth.Service
}

type bannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url" validate:"required"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	IsActive *bool  `json:"is_active"`
}

func (h *ContentHandler) ListBanners(c echo.Context) error {
	banners, err := h.Store.ListBanners(c.Request().Context(), true)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, banners)
}

func (h *ContentHandler) CreateBanner(c echo.Context) error {
	var req bannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b := models.Banner{Title: req.Title, ImageURL: req.ImageURL, LinkURL: req.LinkURL, Position: req.Position, IsActive: true}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := h.Store.CreateBanner(c.Request().Context(), &b); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "create", "banner", b.ID, b)
	return c.JSON(http.StatusCreated, b)
}

func (h *ContentHandler) UpdateBanner(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req bannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	b, err := h.Store.GetBanner(c.Request().Context(), id)
	if err != nil {
		return storeError(err)
	}
	before := *b

	b.Title = req.Title
	b.ImageURL = req.ImageURL
	b.LinkURL = req.LinkURL
	b.Position = req.Position
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := h.Store.UpdateBanner(c.Request().Context(), b); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "update", "banner", b.ID, map[string]any{"before": before, "after": b})
	return c.JSON(http.StatusOK, b)
}

func (h *ContentHandler) DeleteBanner(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Store.DeleteBanner(c.Request().Context(), id); err != nil {
		return storeError(err)
	}
	audit(c, h.Auth, "delete", "banner", id, nil)
	return c.NoContent(http.StatusNoContent)
}

type popupRequest struct {
	Title    string     `json:"title"   validate:"required"`
	Content  string     `json:"content"`
	ImageURL string     `json:"image_url"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	IsActive *bool      `json:"is_active"`
}

func (h *ContentHandler) ListPopups(c echo.Context) error {
	popups, err := h.Store.ListPopups(c.Request().Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, popups)
}

func (h *ContentHandler) CreatePopup(c echo.Context) error {
	var req popupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p := models.Popup{Title: req.Title, Content: req.Content, ImageURL: req.ImageURL, StartsAt: req.StartsAt, EndsAt: req.EndsAt, IsActive: true}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.Store.CreatePopup(c.Request().Context(), &p); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "create", "popup", p.ID, p)
	return c.JSON(http.StatusCreated, p)
}

func (h *ContentHandler) UpdatePopup(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req popupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.Store.GetPopup(c.Request().Context(), id)
	if err != nil {
		return storeError(err)
	}
	before := *p

	p.Title = req.Title
	p.Content = req.Content
	p.ImageURL = req.ImageURL
	p.StartsAt = req.StartsAt
	p.EndsAt = req.EndsAt
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.Store.UpdatePopup(c.Request().Context(), p); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "update", "popup", p.ID, map[string]any{"before": before, "after": p})
	return c.JSON(http.StatusOK, p)
}

func (h *ContentHandler) DeletePopup(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Store.DeletePopup(c.Request().Context(), id); err != nil {
		return storeError(err)
	}
	audit(c, h.Auth, "delete", "popup", id, nil)
	return c.NoContent(http.StatusNoContent)
}
