package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/hash"
	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/middleware"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

// AuthHandler is the end-user (storefront) auth path: cookie sessions, no
// tokens. The admin console has its own JWT flow.
type AuthHandler struct {
	Store    *store.Store
	Sessions *middleware.Sessions
}

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "reason", "hash", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: pwHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := h.Store.CreateUser(ctx, &user); err != nil {
		return storeError(err)
	}

	if err := h.Sessions.SetUser(c, user.ID); err != nil {
		l.Error("register_failed", "reason", "session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.Store.GetUserByEmail(ctx, req.Email)
	if err != nil || !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "email", req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}

	if err := h.Sessions.SetUser(c, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Sessions.ClearUser(c); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.Store.GetUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, user)
}
