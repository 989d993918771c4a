// Package payments wraps the hosted payment gateway behind a narrow
// interface: create a checkout session, later ask whether it was paid.
// Everything else about the gateway is its own business.
package payments

import "context"

// CheckoutRequest carries the donor fields the gateway needs to build a
// hosted checkout session.
type CheckoutRequest struct {
	OrderID   string
	Name      string
	AmountUSD int
}

// CheckoutSession is the gateway's answer: where to send the donor.
type CheckoutSession struct {
	RedirectURL string
	Token       string
}

// Status is the settlement state of a checkout session.
type Status struct {
	Paid          bool
	TransactionID string
	// Raw is the gateway's own status string, for logging.
	Raw string
}

// Gateway is the payment collaborator contract. A nil Gateway means the
// deployment has no payment configuration and the demo fallback applies.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	CheckStatus(ctx context.Context, orderID string) (Status, error)
}
