package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"donorwall/internal/models"
	"donorwall/internal/payments"
	"donorwall/internal/store"
)

var errUnreachable = errors.New("collaborator unreachable")

type fakeStore struct {
	donors    []models.Donor
	checkouts map[string]models.PendingCheckout
	settled   map[string]string

	listErr   error
	insertErr error
	// socialColumnsMissing simulates a donors table without the optional
	// social columns provisioned.
	socialColumnsMissing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		checkouts: make(map[string]models.PendingCheckout),
		settled:   make(map[string]string),
	}
}

func (s *fakeStore) ListDonors(ctx context.Context) ([]models.Donor, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Donor(nil), s.donors...), nil
}

func (s *fakeStore) InsertDonor(ctx context.Context, d models.Donor) (models.Donor, error) {
	if s.insertErr != nil {
		return models.Donor{}, s.insertErr
	}
	if s.socialColumnsMissing {
		d.SocialX, d.SocialTiktok, d.SocialInstagram, d.SocialYoutube, d.SocialTwitch = "", "", "", "", ""
	}
	s.donors = append(s.donors, d)
	return d, nil
}

func (s *fakeStore) CreatePendingCheckout(ctx context.Context, p models.PendingCheckout) error {
	s.checkouts[p.OrderID] = p
	return nil
}

func (s *fakeStore) GetCheckout(ctx context.Context, orderID string) (models.PendingCheckout, error) {
	p, ok := s.checkouts[orderID]
	if !ok {
		return models.PendingCheckout{}, errors.New("checkout not found")
	}
	return p, nil
}

func (s *fakeStore) SettleCheckout(ctx context.Context, orderID, txID string) error {
	p := s.checkouts[orderID]
	p.Status = models.CheckoutSettled
	p.GatewayTxID = txID
	s.checkouts[orderID] = p
	s.settled[orderID] = txID
	return nil
}

type fakeGateway struct {
	createCalls int
	statusCalls int

	session   payments.CheckoutSession
	createErr error
	status    payments.Status
	statusErr error
}

func (g *fakeGateway) CreateCheckout(ctx context.Context, req payments.CheckoutRequest) (payments.CheckoutSession, error) {
	g.createCalls++
	if g.createErr != nil {
		return payments.CheckoutSession{}, g.createErr
	}
	return g.session, nil
}

func (g *fakeGateway) CheckStatus(ctx context.Context, orderID string) (payments.Status, error) {
	g.statusCalls++
	if g.statusErr != nil {
		return payments.Status{}, g.statusErr
	}
	return g.status, nil
}

func newTestHandler(st CheckoutStore, gateway payments.Gateway) *DonationHandler {
	return &DonationHandler{
		Store:   st,
		Demo:    store.NewMemory(),
		Gateway: gateway,
		Logger:  zap.NewNop(),
		GoalUSD: 1_000_000,
	}
}

func postJSON(target, body string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	testContext, _ := gin.CreateTestContext(recorder)
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	testContext.Request = request
	return recorder, testContext
}

func getRequest(target string) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	testContext, _ := gin.CreateTestContext(recorder)
	testContext.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return recorder, testContext
}
