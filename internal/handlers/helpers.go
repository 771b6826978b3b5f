package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/store"
)

// storeError maps storage-layer sentinels onto HTTP statuses. Anything
// unknown escapes as a 500 for the error middleware to log.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrProductInactive),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrEmptyCart),
		errors.Is(err, store.ErrCouponInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrHasDependents),
		errors.Is(err, store.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
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

func queryUint(c echo.Context, name string) uint {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return uint(n)
		}
	}
	return 0
}

func pageMeta(page, size int, total int64) map[string]any {
	if page < 1 {
		page = 1
	}
	return map[string]any{
		"page":        page,
		"size":        size,
		"total":       total,
		"total_pages": (total + int64(size) - 1) / int64(size),
	}
}
