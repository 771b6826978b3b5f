package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reweara/api/internal/service/adminauth"
	"github.com/reweara/api/internal/store"
)

// SettingsHandler reads and writes the integration credential rows. Secrets
// never leave the server: reads return `*_set` booleans, and an update with
// an empty secret field keeps the stored value.
type SettingsHandler struct {
	Store *store.Store
	Auth  *adminauth.Service
}

type paymentSettingsDTO struct {
	StripePublicKey      string `json:"stripe_public_key"`
	StripeSecretKeySet   bool   `json:"stripe_secret_key_set"`
	RazorpayKeyID        string `json:"razorpay_key_id"`
	RazorpayKeySecretSet bool   `json:"razorpay_key_secret_set"`
	CODEnabled           bool   `json:"cod_enabled"`
}

func (h *SettingsHandler) GetPayment(c echo.Context) error {
	ps, err := h.Store.GetPaymentSettings(c.Request().Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, paymentSettingsDTO{
		StripePublicKey:      ps.StripePublicKey,
		StripeSecretKeySet:   ps.StripeSecretKey != "",
		RazorpayKeyID:        ps.RazorpayKeyID,
		RazorpayKeySecretSet: ps.RazorpayKeySecret != "",
		CODEnabled:           ps.CODEnabled,
	})
}

type paymentSettingsUpdate struct {
	StripePublicKey   string `json:"stripe_public_key"`
	StripeSecretKey   string `json:"stripe_secret_key"`
	RazorpayKeyID     string `json:"razorpay_key_id"`
	RazorpayKeySecret string `json:"razorpay_key_secret"`
	CODEnabled        *bool  `json:"cod_enabled"`
}

func (h *SettingsHandler) UpdatePayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req paymentSettingsUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ps, err := h.Store.GetPaymentSettings(ctx)
	if err != nil {
		return storeError(err)
	}

	ps.StripePublicKey = req.StripePublicKey
	ps.RazorpayKeyID = req.RazorpayKeyID
	if req.StripeSecretKey != "" {
		ps.StripeSecretKey = req.StripeSecretKey
	}
	if req.RazorpayKeySecret != "" {
		ps.RazorpayKeySecret = req.RazorpayKeySecret
	}
	if req.CODEnabled != nil {
		ps.CODEnabled = *req.CODEnabled
	}
	if err := h.Store.UpdatePaymentSettings(ctx, ps); err != nil {
		return storeError(err)
	}

	// The audit payload records which fields changed, never the values.
	audit(c, h.Auth, "update", "payment_settings", ps.ID, map[string]any{
		"stripe_secret_key_changed":   req.StripeSecretKey != "",
		"razorpay_key_secret_changed": req.RazorpayKeySecret != "",
	})
	return h.GetPayment(c)
}

type integrationSettingsDTO struct {
	SendGridAPIKeySet bool   `json:"sendgrid_api_key_set"`
	FromEmail         string `json:"from_email"`
	GeminiAPIKeySet   bool   `json:"gemini_api_key_set"`
	OpenAIAPIKeySet   bool   `json:"openai_api_key_set"`
	TwilioSIDSet      bool   `json:"twilio_sid_set"`
	TwilioTokenSet    bool   `json:"twilio_token_set"`
}

func (h *SettingsHandler) GetIntegration(c echo.Context) error {
	is, err := h.Store.GetIntegrationSettings(c.Request().Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, integrationSettingsDTO{
		SendGridAPIKeySet: is.SendGridAPIKey != "",
		FromEmail:         is.FromEmail,
		GeminiAPIKeySet:   is.GeminiAPIKey != "",
		OpenAIAPIKeySet:   is.OpenAIAPIKey != "",
		TwilioSIDSet:      is.TwilioSID != "",
		TwilioTokenSet:    is.TwilioToken != "",
	})
}

type integrationSettingsUpdate struct {
	SendGridAPIKey string `json:"sendgrid_api_key"`
	FromEmail      string `json:"from_email"`
	GeminiAPIKey   string `json:"gemini_api_key"`
	OpenAIAPIKey   string `json:"openai_api_key"`
	TwilioSID      string `json:"twilio_sid"`
	TwilioToken    string `json:"twilio_token"`
}

func (h *SettingsHandler) UpdateIntegration(c echo.Context) error {
	ctx := c.Request().Context()

	var req integrationSettingsUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	is, err := h.Store.GetIntegrationSettings(ctx)
	if err != nil {
		return storeError(err)
	}

	is.FromEmail = req.FromEmail
	if req.SendGridAPIKey != "" {
		is.SendGridAPIKey = req.SendGridAPIKey
	}
	if req.GeminiAPIKey != "" {
		is.GeminiAPIKey = req.GeminiAPIKey
	}
	if req.OpenAIAPIKey != "" {
		is.OpenAIAPIKey = req.OpenAIAPIKey
	}
	if req.TwilioSID != "" {
		is.TwilioSID = req.TwilioSID
	}
	if req.TwilioToken != "" {
		is.TwilioToken = req.TwilioToken
	}
	if err := h.Store.UpdateIntegrationSettings(ctx, is); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "update", "integration_settings", is.ID, map[string]any{
		"sendgrid_changed": req.SendGridAPIKey != "",
		"gemini_changed":   req.GeminiAPIKey != "",
		"openai_changed":   req.OpenAIAPIKey != "",
		"twilio_changed":   req.TwilioSID != "" || req.TwilioToken != "",
	})
	return h.GetIntegration(c)
}

func (h *SettingsHandler) GetAnalytics(c echo.Context) error {
	as, err := h.Store.GetAnalyticsSettings(c.Request().Context())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, as)
}

type analyticsSettingsUpdate struct {
	GAMeasurementID string `json:"ga_measurement_id"`
	MetaPixelID     string `json:"meta_pixel_id"`
}

func (h *SettingsHandler) UpdateAnalytics(c echo.Context) error {
	ctx := c.Request().Context()

	var req analyticsSettingsUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	as, err := h.Store.GetAnalyticsSettings(ctx)
	if err != nil {
		return storeError(err)
	}
	as.GAMeasurementID = req.GAMeasurementID
	as.MetaPixelID = req.MetaPixelID
	if err := h.Store.UpdateAnalyticsSettings(ctx, as); err != nil {
		return storeError(err)
	}

	audit(c, h.Auth, "update", "analytics_settings", as.ID, as)
	return c.JSON(http.StatusOK, as)
}
