// Package mailer sends transactional email through SendGrid. Without an API
// key (local development) messages are logged instead of sent.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

type Mailer struct {
	Store     *store.Store
	APIKey    string
	FromEmail string
	FromName  string
}

// key prefers the admin-configured DB value over the environment.
func (m *Mailer) key(ctx context.Context) (apiKey, from string) {
	apiKey, from = m.APIKey, m.FromEmail
	if m.Store != nil {
		if is, err := m.Store.GetIntegrationSettings(ctx); err == nil {
			if is.SendGridAPIKey != "" {
				apiKey = is.SendGridAPIKey
			}
			if is.FromEmail != "" {
				from = is.FromEmail
			}
		}
	}
	return apiKey, from
}

func (m *Mailer) Send(ctx context.Context, toEmail, toName, subject, plain, html string) error {
	apiKey, fromEmail := m.key(ctx)
	if apiKey == "" {
		logging.FromContext(ctx).Info("mail_console_fallback",
			"to", toEmail, "subject", subject, "body", plain)
		return nil
	}

	from := mail.NewEmail(m.FromName, fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(apiKey)
	resp, err := client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mailer: sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SendOrderConfirmation renders a plain-text order summary. Matching HTML is
// generated from the same lines.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, user *models.User, order *models.Order) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for your order %s!\n\n", order.OrderNumber)
	for _, it := range order.Items {
		fmt.Fprintf(&b, "  %s x%d — %.2f\n", it.ProductName, it.Quantity, it.Price*float64(it.Quantity))
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\nTax: %.2f\nShipping: %.2f\nDiscount: -%.2f\nTotal: %.2f\n",
		order.Subtotal, order.Tax, order.Shipping, order.Discount, order.Total)

	plain := b.String()
	html := "<pre>" + plain + "</pre>"
	subject := fmt.Sprintf("ReWeara order %s confirmed", order.OrderNumber)
	return m.Send(ctx, user.Email, user.FirstName, subject, plain, html)
}

func (m *Mailer) SendContactNotification(ctx context.Context, msg *models.ContactMessage) error {
	_, from := m.key(ctx)
	plain := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s", msg.Name, msg.Email, msg.Subject, msg.Message)
	return m.Send(ctx, from, "ReWeara", "New contact message", plain, "<pre>"+plain+"</pre>")
}
