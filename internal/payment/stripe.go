// Package payment provides implementations of the booking workflow's
// payment-confirmation collaborator. The workflow treats confirmation as
// opaque: it either succeeds or the booking aborts untouched.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go"
	"github.com/stripe/stripe-go/paymentintent"

	"github.com/cimillas/eventdesk/internal/domain"
)

// StripeConfirmer charges bookings through Stripe payment intents.
type StripeConfirmer struct {
	currency stripe.Currency
}

// NewStripeConfirmer configures the global Stripe client key and returns
// a confirmer charging in USD.
func NewStripeConfirmer(apiKey string) *StripeConfirmer {
	stripe.Key = apiKey
	return &StripeConfirmer{currency: stripe.CurrencyUSD}
}

func (c *StripeConfirmer) Confirm(ctx context.Context, amountCents int64) error {
	if amountCents <= 0 {
		return domain.ErrPaymentDeclined
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(c.currency)),
	}
	// One attempt per booking even if the network retries.
	params.SetIdempotencyKey(uuid.New().String())

	if _, err := paymentintent.New(params); err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeCardDeclined {
			return domain.ErrPaymentDeclined
		}
		return fmt.Errorf("stripe payment intent: %w", err)
	}
	return nil
}

// AutoApprove accepts every positive charge. Used for local development
// and tests where no payment provider is wired.
type AutoApprove struct{}

func (AutoApprove) Confirm(_ context.Context, amountCents int64) error {
	if amountCents <= 0 {
		return domain.ErrPaymentDeclined
	}
	return nil
}
