package payment

import "context"

// Intent is the subset of a payment-processor intent the checkout flow
// needs: enough to persist the reference and hand the client secret to
// the frontend.
type Intent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Currency     string
	Status       string
}

// Provider creates and inspects payment intents with an external
// processor. Checkout depends on this interface so tests can swap in a
// fake instead of hitting Stripe.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error)
	GetPaymentIntent(ctx context.Context, intentID string) (*Intent, error)
}
