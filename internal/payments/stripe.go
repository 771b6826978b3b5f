// Package payments creates Stripe PaymentIntents for card checkouts. The
// secret key comes from the admin-configured settings row, falling back to
// the environment.
package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

var ErrNotConfigured = errors.New("payments: stripe is not configured")

type Service struct {
	Store    *store.Store
	EnvKey   string
	Currency string
}

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

func (s *Service) secretKey(ctx context.Context) string {
	if s.Store != nil {
		if ps, err := s.Store.GetPaymentSettings(ctx); err == nil && ps.StripeSecretKey != "" {
			return ps.StripeSecretKey
		}
	}
	return s.EnvKey
}

// minorUnits converts a two-decimal amount to integral minor units. Rounding
// matters: float64 holds 0.29 as 0.28999..., so truncation would lose a unit.
func minorUnits(total float64) int64 {
	return int64(math.Round(total * 100))
}

// CreateIntent registers the order total with Stripe and returns the client
// secret the frontend needs to confirm the payment.
func (s *Service) CreateIntent(ctx context.Context, order *models.Order) (*Intent, error) {
	key := s.secretKey(ctx)
	if key == "" {
		return nil, ErrNotConfigured
	}

	currency := s.Currency
	if currency == "" {
		currency = "inr"
	}

	sc := &client.API{}
	sc.Init(key, nil)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(order.Total)),
		Currency: stripe.String(currency),
		Metadata: map[string]string{
			"order_number": order.OrderNumber,
		},
	}
	params.Context = ctx

	pi, err := sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("payments: create intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
