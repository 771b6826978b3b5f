package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/mailer"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

type ContactHandler struct {
	Store  *store.Store
	Mailer *mailer.Mailer
}

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

func (h *ContactHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Store.CreateContactMessage(ctx, &msg); err != nil {
		return storeError(err)
	}

	if err := h.Mailer.SendContactNotification(ctx, &msg); err != nil {
		logging.FromContext(ctx).Warn("contact_email_failed", "error", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "thanks, we'll get back to you"})
}
