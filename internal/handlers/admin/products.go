package admin

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tealeg/xlsx"

	"github.com/reweara/api/internal/events"
	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/search"
	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/store"
	"github.com/reweara/api/internal/util"
)

type ProductHandler struct {
	Store    *store.Store
	Search   *search.Service
	Auth     *adminauth.Service
	Producer *events.Producer
}

type productRequest struct {
	Name          string  `json:"name"        validate:"required"`
	Slug          string  `json:"slug"        validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"       validate:"required,gt=0"`
	OriginalPrice float64 `json:"original_price"`
	Stock         uint    `json:"stock"`
	ImageURL      string  `json:"image_url"`
	CategoryID    uint    `json:"category_id"`
	BrandID       uint    `json:"brand_id"`
	Condition     string  `json:"condition"`
	IsFeatured    bool    `json:"is_featured"`
	IsThrift      bool    `json:"is_thrift"`
	IsOriginal    bool    `json:"is_original"`
	IsActive      *bool   `json:"is_active"`
}

func (r *productRequest) apply(p *models.Product) {
	p.Name = r.Name
	p.Slug = r.Slug
	p.Description = r.Description
	p.Price = r.Price
	p.OriginalPrice = r.OriginalPrice
	p.Stock = r.Stock
	p.ImageURL = r.ImageURL
	p.CategoryID = r.CategoryID
	p.BrandID = r.BrandID
	p.Condition = r.Condition
	p.IsFeatured = r.IsFeatured
	p.IsThrift = r.IsThrift
	p.IsOriginal = r.IsOriginal
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", util.DefaultPageSize)

	items, total, err := h.Store.ListAllProducts(c.Request().Context(), page, size)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{"page": page, "size": size, "total": total},
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := h.Store.GetProduct(c.Request().Context(), id)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p := models.Product{IsActive: true}
	req.apply(&p)
	if err := h.Store.CreateProduct(ctx, &p); err != nil {
		return storeError(err)
	}

	h.afterWrite(c, &p, "product_created")
	audit(c, h.Auth, "create", "product", p.ID, p)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.Store.GetProduct(ctx, id)
	if err != nil {
		return storeError(err)
	}
	before := *p

	req.apply(p)
	if err := h.Store.UpdateProduct(ctx, p); err != nil {
		return storeError(err)
	}

	h.afterWrite(c, p, "product_updated")
	audit(c, h.Auth, "update", "product", p.ID, map[string]any{"before": before, "after": p})
	return c.JSON(http.StatusOK, p)
}

// Delete is a soft delete: the row stays for order history, public listings
// stop showing it.
func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Store.DeactivateProduct(ctx, id); err != nil {
		return storeError(err)
	}

	if err := h.Search.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
	}
	if err := h.Producer.Publish(ctx, events.TopicCatalog, fmt.Sprint(id), map[string]any{
		"type": "product_deactivated", "productID": id,
	}); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "error", err)
	}

	audit(c, h.Auth, "deactivate", "product", id, nil)
	return c.NoContent(http.StatusNoContent)
}

// ExportXLSX streams the full catalog as a spreadsheet.
func (h *ProductHandler) ExportXLSX(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.Store.AllProducts(ctx)
	if err != nil {
		return storeError(err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	headers := []string{"ID", "Name", "Slug", "Price", "OriginalPrice", "Stock", "CategoryID", "BrandID", "Featured", "Thrift", "Active", "CreatedAt"}
	headerRow := sheet.AddRow()
	for _, hd := range headers {
		headerRow.AddCell().SetValue(hd)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(int(p.ID))
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.OriginalPrice)
		row.AddCell().SetValue(int(p.Stock))
		row.AddCell().SetValue(int(p.CategoryID))
		row.AddCell().SetValue(int(p.BrandID))
		row.AddCell().SetValue(p.IsFeatured)
		row.AddCell().SetValue(p.IsThrift)
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)

	audit(c, h.Auth, "export", "product", 0, nil)
	return file.Write(c.Response())
}

// afterWrite runs the non-transactional side effects of a catalog write.
func (h *ProductHandler) afterWrite(c echo.Context, p *models.Product, eventType string) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	if err := h.Search.IndexProduct(ctx, p); err != nil {
		l.Warn("search_index_failed", "product_id", p.ID, "error", err)
	}
	if err := h.Producer.Publish(ctx, events.TopicCatalog, fmt.Sprint(p.ID), map[string]any{
		"type":      eventType,
		"productID": p.ID,
		"name":      p.Name,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}
}
