// Package admin holds the /api/admin handlers. Every mutation here writes
// an audit-log row with the acting admin, the entity and a diff payload.
package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/store"
)

func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrHasDependents):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrProductInactive),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrCouponInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// audit records the action for the admin authenticated on this request.
func audit(c echo.Context, svc *adminauth.Service, action, entityType string, entityID uint, details any) {
	claims := middleware.AdminClaims(c)
	if claims == nil {
		return
	}
	svc.Audit(c.Request().Context(), claims, action, entityType, entityID, details,
		c.RealIP(), c.Request().UserAgent())
}
