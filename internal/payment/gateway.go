// Package payment integrates the Razorpay checkout flow. The gateway is an
// injected dependency so handlers can run without credentials in development
// and tests can substitute fakes.
package payment

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no gateway credentials are present.
var ErrNotConfigured = errors.New("payment gateway not configured")

// Order is a gateway-side order a client completes through checkout.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway creates orders and verifies checkout signatures.
type Gateway interface {
	// CreateOrder registers an order for the given amount in whole rupees.
	CreateOrder(ctx context.Context, amountRupees int64, receipt string) (*Order, error)
	// VerifySignature reports whether the signature proves the payment was
	// captured by the gateway for the given order.
	VerifySignature(orderID, paymentID, signature string) bool
}
