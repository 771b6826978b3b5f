package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/search"
	"github.com/reweara/api/internal/store"
	"github.com/reweara/api/internal/util"
)

type ProductHandler struct {
	Store  *store.Store
	Search *search.Service
}

func (h *ProductHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", util.DefaultPageSize)

	f := store.ProductFilter{
		CategoryID: queryUint(c, "category"),
		BrandID:    queryUint(c, "brand"),
		Featured:   c.QueryParam("featured") == "true",
		Thrift:     c.QueryParam("thrift") == "true",
		Query:      c.QueryParam("q"),
		Page:       page,
		Size:       size,
	}

	items, total, err := h.Store.ListProducts(c.Request().Context(), f)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": pageMeta(page, size, total),
	})
}

// Get resolves a numeric id or a slug. Slug lookups only see active
// products; id lookups also serve order history, so they do not filter.
func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	ref := c.Param("id")

	if id, err := strconv.Atoi(ref); err == nil && id > 0 {
		p, err := h.Store.GetProduct(ctx, uint(id))
		if err != nil {
			return storeError(err)
		}
		return c.JSON(http.StatusOK, p)
	}

	p, err := h.Store.GetProductBySlug(ctx, ref)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	from, size := util.Paginate(queryInt(c, "page", 1), queryInt(c, "size", util.DefaultPageSize))
	total, products, err := h.Search.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "products": products})
}
