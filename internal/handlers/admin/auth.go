package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/store"
)

type AuthHandler struct {
	Svc   *adminauth.Service
	Store *store.Store
}

type loginRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required"`
	TOTPCode string `json:"totp_code"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password, req.TOTPCode)
	switch {
	case errors.Is(err, adminauth.ErrAccountLocked):
		return echo.NewHTTPError(http.StatusLocked, "account locked, try again later")
	case errors.Is(err, adminauth.ErrTOTPRequired):
		// Not a failure: the client should re-submit with the code.
		return c.JSON(http.StatusOK, echo.Map{"totp_required": true})
	case errors.Is(err, adminauth.ErrTOTPInvalid):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid totp code")
	case errors.Is(err, adminauth.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	case err != nil:
		l.Error("admin_login_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"admin":      res.Admin,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	claims := middleware.AdminClaims(c)
	id, _ := strconv.Atoi(claims.Subject)
	admin, err := h.Store.GetAdmin(c.Request().Context(), uint(id))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, admin)
}

func (h *AuthHandler) SetupTOTP(c echo.Context) error {
	claims := middleware.AdminClaims(c)
	id, _ := strconv.Atoi(claims.Subject)

	setup, err := h.Svc.SetupTOTP(c.Request().Context(), uint(id))
	if err != nil {
		return storeError(err)
	}
	audit(c, h.Svc, "totp_setup", "admin_user", uint(id), nil)
	return c.JSON(http.StatusOK, setup)
}

type totpRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

func (h *AuthHandler) EnableTOTP(c echo.Context) error {
	claims := middleware.AdminClaims(c)
	id, _ := strconv.Atoi(claims.Subject)

	var req totpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.Svc.EnableTOTP(c.Request().Context(), uint(id), req.Code); err != nil {
		if errors.Is(err, adminauth.ErrTOTPInvalid) || errors.Is(err, adminauth.ErrTOTPNotProvisioned) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return storeError(err)
	}
	audit(c, h.Svc, "totp_enabled", "admin_user", uint(id), nil)
	return c.JSON(http.StatusOK, echo.Map{"totp_enabled": true})
}

func (h *AuthHandler) DisableTOTP(c echo.Context) error {
	claims := middleware.AdminClaims(c)
	id, _ := strconv.Atoi(claims.Subject)

	var req totpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.Svc.DisableTOTP(c.Request().Context(), uint(id), req.Code); err != nil {
		if errors.Is(err, adminauth.ErrTOTPInvalid) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return storeError(err)
	}
	audit(c, h.Svc, "totp_disabled", "admin_user", uint(id), nil)
	return c.JSON(http.StatusOK, echo.Map{"totp_enabled": false})
}
