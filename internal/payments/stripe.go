// Package payments bridges the API to the external payment processor.
// Handlers depend on the IntentCreator interface so tests can substitute
// a fake processor.
package payments

import (
	"context"
	"math"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// Intent is the subset of a processor payment intent the API exposes.
// ClientSecret is handed to the browser to complete the charge.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
}

// IntentCreator reserves an in-progress charge with the processor for the
// given amount in minor currency units.
type IntentCreator interface {
	Create(ctx context.Context, amountMinor int64) (Intent, error)
}

// MinorUnits converts a price in major currency units to integer minor
// units (price × 100), rounding to the nearest cent.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// StripeIntents creates card-only payment intents through Stripe.
type StripeIntents struct{}

// NewStripeIntents configures the Stripe client with the account's secret
// key and returns an IntentCreator backed by it.
func NewStripeIntents(secretKey string) *StripeIntents {
	stripe.Key = secretKey
	return &StripeIntents{}
}

func (s *StripeIntents) Create(ctx context.Context, amountMinor int64) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := paymentintent.New(params)
	if err != nil {
		return Intent{}, err
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Amount: pi.Amount}, nil
}
