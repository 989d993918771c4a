// Package handlers wires the donation API: donor listing, the wall
// render model, checkout creation/confirmation, the gateway webhook,
// and the live wall feed.
package handlers

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"donorwall/internal/models"
	"donorwall/internal/payments"
	"donorwall/internal/store"
	ws "donorwall/internal/websocket"
)

// Text limits enforced at the point of entry. The UI contract for
// messages is 140 characters; the server additionally truncates at 500
// before anything leaves the process.
const (
	NameMaxChars      = 120
	MessageMaxChars   = 140
	messageServerCap  = 500
	socialHandleLimit = 200
)

// CheckoutStore is the persistence surface the checkout flow needs. Nil
// means no database is configured and the demo fallback applies.
type CheckoutStore interface {
	store.DonorStore
	CreatePendingCheckout(ctx context.Context, p models.PendingCheckout) error
	GetCheckout(ctx context.Context, orderID string) (models.PendingCheckout, error)
	SettleCheckout(ctx context.Context, orderID, txID string) error
}

// DonationHandler serves every donation route. Store and Gateway may be
// nil; the handler degrades to the in-memory demo collection then.
type DonationHandler struct {
	Store   CheckoutStore
	Demo    *store.Memory
	Gateway payments.Gateway
	Hub     *ws.Hub
	Logger  *zap.Logger
	GoalUSD int
}

func NewDonationHandler(st CheckoutStore, gateway payments.Gateway, hub *ws.Hub, logger *zap.Logger, goalUSD int) *DonationHandler {
	return &DonationHandler{
		Store:   st,
		Demo:    store.NewMemory(),
		Gateway: gateway,
		Hub:     hub,
		Logger:  logger,
		GoalUSD: goalUSD,
	}
}

// loadDonors resolves the donor collection the wall renders. Demo echoes
// come first (they are the newest local events); a store failure
// degrades to whatever the demo collection holds rather than erroring
// the page.
func (h *DonationHandler) loadDonors(ctx context.Context) []models.Donor {
	demo, _ := h.Demo.ListDonors(ctx)
	if h.Store == nil {
		return demo
	}
	persisted, err := h.Store.ListDonors(ctx)
	if err != nil {
		h.Logger.Warn("donor listing degraded to local collection", zap.Error(err))
		return demo
	}
	return append(demo, persisted...)
}

// publish pushes a wall event to connected viewers without ever blocking
// the request path.
func (h *DonationHandler) publish(d models.Donor, totalUSD int) {
	if h.Hub == nil {
		return
	}
	select {
	case h.Hub.Broadcast <- ws.WallEvent{Type: ws.EventDonor, Donor: d, TotalUSD: totalUSD}:
	default:
	}
}

// truncate caps a string at max characters, not bytes, so multi-byte
// names survive intact.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
