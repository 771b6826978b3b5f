package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/store"
	"github.com/reweara/api/internal/util"
)

type DashboardHandler struct {
	Store *store.Store
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.Store.GetDashboardStats(c.Request().Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) AuditLogs(c echo.Context) error {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", util.DefaultPageSize)

	logs, total, err := h.Store.ListAuditLogs(c.Request().Context(), page, size)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": logs,
		"meta": map[string]any{"page": page, "size": size, "total": total},
	})
}

func (h *DashboardHandler) ContactMessages(c echo.Context) error {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", util.DefaultPageSize)

	msgs, total, err := h.Store.ListContactMessages(c.Request().Context(), page, size)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": msgs,
		"meta": map[string]any{"page": page, "size": size, "total": total},
	})
}
