// Package checkout orchestrates order placement: the storage transaction,
// the optional Stripe intent, the confirmation email and the domain event.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/reweara/api/internal/events"
	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/mailer"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/payments"
	"github.com/reweara/api/internal/store"
)

type Service struct {
	Store    *store.Store
	Payments *payments.Service
	Mailer   *mailer.Mailer
	Producer *events.Producer
	Pricing  store.Pricing
}

type Result struct {
	Order  *models.Order    `json:"order"`
	Intent *payments.Intent `json:"payment_intent,omitempty"`
}

// PlaceOrder runs the storage transaction and then the side effects. The
// transaction is the only part that can fail the checkout; email and event
// failures are logged and swallowed.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, in store.OrderInput) (*Result, error) {
	l := logging.FromContext(ctx).With("svc", "checkout", "user_id", userID)

	order, err := s.Store.CreateOrder(ctx, userID, in, s.Pricing)
	if err != nil {
		return nil, err
	}

	res := &Result{Order: order}

	if in.PaymentMethod == "card" && s.Payments != nil {
		intent, err := s.Payments.CreateIntent(ctx, order)
		switch {
		case errors.Is(err, payments.ErrNotConfigured):
			l.Info("stripe_not_configured", "order", order.OrderNumber)
		case err != nil:
			// The order stands; payment can be retried from the order page.
			l.Error("payment_intent_failed", "order", order.OrderNumber, "error", err)
		default:
			res.Intent = intent
		}
	}

	if user, err := s.Store.GetUser(ctx, userID); err != nil {
		l.Warn("confirmation_email_skipped", "order", order.OrderNumber, "error", err)
	} else if err := s.Mailer.SendOrderConfirmation(ctx, user, order); err != nil {
		l.Warn("confirmation_email_failed", "order", order.OrderNumber, "error", err)
	}

	if err := s.Producer.Publish(ctx, events.TopicOrders, fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"number":  order.OrderNumber,
		"userID":  userID,
		"total":   order.Total,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("order_placed", "order", order.OrderNumber, "total", order.Total)
	return res, nil
}
