package subscription

import "context"

// CheckoutSession is the provider-issued handle for an external payment flow.
type CheckoutSession struct {
	ID          string
	CheckoutURL string
}

// CheckoutProvider abstracts the payment provider used for checkout
// initiation. The Wave client implements it; tests use a stub.
type CheckoutProvider interface {
	IsConfigured() bool
	Name() string
	CreateSession(ctx context.Context, plan string, amountXOF int, reference string) (*CheckoutSession, error)
}

// CheckoutResult is returned to the caller initiating a checkout.
type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}
