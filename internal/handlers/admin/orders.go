package admin

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/invoice"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/store"
	"github.com/reweara/api/internal/util"
)

type OrderHandler struct {
	Store *store.Store
	Auth  *adminauth.Service
}

func (h *OrderHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", util.DefaultPageSize)

	orders, total, err := h.Store.ListOrders(c.Request().Context(), page, size)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{"page": page, "size": size, "total": total},
	})
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	order, err := h.Store.GetOrder(c.Request().Context(), id)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, order)
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	before, err := h.Store.GetOrder(c.Request().Context(), id)
	if err != nil {
		return storeError(err)
	}
	order, err := h.Store.UpdateOrderStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "status_change", "order", id, map[string]any{
		"from": before.Status,
		"to":   order.Status,
	})
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) InvoicePDF(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	order, err := h.Store.GetOrder(ctx, id)
	if err != nil {
		return storeError(err)
	}

	var user *models.User
	if u, err := h.Store.GetUser(ctx, order.UserID); err == nil {
		user = u
	}

	pdf, err := invoice.Render(order, user)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, order.OrderNumber))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
