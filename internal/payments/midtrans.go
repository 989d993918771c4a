package payments

import (
	"context"
	"errors"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Midtrans implements Gateway on the Midtrans Snap (hosted checkout) and
// Core (transaction status) APIs.
type Midtrans struct {
	snapClient snap.Client
	coreClient coreapi.Client
}

// NewMidtrans builds a sandbox-mode gateway. Returns nil when no server
// key is configured, which callers treat as "run in demo mode".
func NewMidtrans(serverKey string) *Midtrans {
	if serverKey == "" {
		return nil
	}
	var s snap.Client
	s.New(serverKey, midtrans.Sandbox)

	var c coreapi.Client
	c.New(serverKey, midtrans.Sandbox)

	return &Midtrans{snapClient: s, coreClient: c}
}

func (g *Midtrans) CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: int64(req.AmountUSD),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Name,
		},
	}

	resp, midErr := g.snapClient.CreateTransaction(snapReq)
	if resp == nil {
		if midErr != nil {
			return CheckoutSession{}, midErr
		}
		return CheckoutSession{}, errors.New("payments: empty snap response")
	}
	return CheckoutSession{RedirectURL: resp.RedirectURL, Token: resp.Token}, nil
}

func (g *Midtrans) CheckStatus(ctx context.Context, orderID string) (Status, error) {
	resp, midErr := g.coreClient.CheckTransaction(orderID)
	if resp == nil {
		if midErr != nil {
			return Status{}, midErr
		}
		return Status{}, errors.New("payments: empty status response")
	}
	return Status{
		Paid:          resp.TransactionStatus == "settlement" || resp.TransactionStatus == "capture",
		TransactionID: resp.TransactionID,
		Raw:           resp.TransactionStatus,
	}, nil
}
