package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestCreateCheckoutRejectsMissingName(t *testing.T) {
	gateway := &fakeGateway{}
	handler := newTestHandler(newFakeStore(), gateway)

	recorder, c := postJSON("/api/create-checkout-session", `{"name":"","amountUsd":25}`)
	handler.CreateCheckout(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request status, got %d", recorder.Code)
	}
	if recorder.Body.String() != `{"error":"invalid_request"}` {
		t.Fatalf("unexpected response body: %s", recorder.Body.String())
	}
	if gateway.createCalls != 0 {
		t.Error("validation rejection must not reach the gateway")
	}
}

func TestCreateCheckoutRejectsAmountUnderOneDollar(t *testing.T) {
	handler := newTestHandler(newFakeStore(), &fakeGateway{})

	recorder, c := postJSON("/api/create-checkout-session", `{"name":"ok","amountUsd":0}`)
	handler.CreateCheckout(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request status, got %d", recorder.Code)
	}
	if recorder.Body.String() != `{"error":"invalid_request"}` {
		t.Fatalf("unexpected response body: %s", recorder.Body.String())
	}
}

func TestCreateCheckoutRejectsOverlongMessage(t *testing.T) {
	handler := newTestHandler(newFakeStore(), &fakeGateway{})

	long := strings.Repeat("x", MessageMaxChars+1)
	recorder, c := postJSON("/api/create-checkout-session",
		`{"name":"ok","amountUsd":25,"message":"`+long+`"}`)
	handler.CreateCheckout(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request status, got %d", recorder.Code)
	}
}

// The end-to-end rejection scenario: a valid name and amount with a
// masked denylisted word in the message never starts the operation.
func TestCreateCheckoutRejectsMaskedOffensiveMessage(t *testing.T) {
	gateway := &fakeGateway{}
	st := newFakeStore()
	handler := newTestHandler(st, gateway)

	recorder, c := postJSON("/api/create-checkout-session",
		`{"name":"ok","amountUsd":25,"message":"you are a r3t4rd"}`)
	handler.CreateCheckout(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request status, got %d", recorder.Code)
	}
	if recorder.Body.String() != `{"error":"offensive_content"}` {
		t.Fatalf("unexpected response body: %s", recorder.Body.String())
	}
	if gateway.createCalls != 0 {
		t.Error("moderation rejection must not reach the gateway")
	}
	if len(st.checkouts) != 0 || len(st.donors) != 0 {
		t.Error("moderation rejection must not touch the store")
	}

	// The displayed donor list is unchanged.
	listRecorder, listC := getRequest("/api/donors")
	handler.ListDonors(listC)
	if listRecorder.Body.String() != "[]" {
		t.Errorf("donor list changed after rejection: %s", listRecorder.Body.String())
	}
}

func TestCreateCheckoutRejectsOffensiveName(t *testing.T) {
	handler := newTestHandler(newFakeStore(), &fakeGateway{})

	recorder, c := postJSON("/api/create-checkout-session", `{"name":"f4g","amountUsd":25}`)
	handler.CreateCheckout(c)

	if recorder.Body.String() != `{"error":"offensive_content"}` {
		t.Fatalf("unexpected response body: %s", recorder.Body.String())
	}
}

func TestCreateCheckoutReturnsRedirectURL(t *testing.T) {
	gateway := &fakeGateway{}
	gateway.session.RedirectURL = "https://gateway.example/pay/abc"
	st := newFakeStore()
	handler := newTestHandler(st, gateway)

	recorder, c := postJSON("/api/create-checkout-session",
		`{"name":"Ada","amountUsd":25,"message":"good luck","socialX":"@ada"}`)
	handler.CreateCheckout(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected ok status, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var resp struct {
		URL     string `json:"url"`
		OrderID string `json:"order_id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.URL != "https://gateway.example/pay/abc" {
		t.Errorf("url = %q", resp.URL)
	}
	if resp.OrderID == "" {
		t.Error("expected an order_id")
	}

	pending, ok := st.checkouts[resp.OrderID]
	if !ok {
		t.Fatal("expected a pending checkout row")
	}
	if pending.Name != "Ada" || pending.AmountUSD != 25 || pending.SocialX != "@ada" {
		t.Errorf("unexpected pending checkout: %+v", pending)
	}
}

func TestCreateCheckoutFallsBackToDemoWithoutGateway(t *testing.T) {
	handler := newTestHandler(nil, nil)

	recorder, c := postJSON("/api/create-checkout-session",
		`{"name":"Ada","amountUsd":40,"message":"hi"}`)
	handler.CreateCheckout(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected ok status, got %d", recorder.Code)
	}
	var resp struct {
		Demo  bool `json:"demo"`
		Donor struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			AmountUSD int    `json:"amountUsd"`
		} `json:"donor"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Demo {
		t.Error("expected the demo flag")
	}
	if resp.Donor.ID == "" || resp.Donor.Name != "Ada" || resp.Donor.AmountUSD != 40 {
		t.Errorf("unexpected echoed donor: %+v", resp.Donor)
	}

	// The demo record shows up in the collection the wall renders.
	listRecorder, listC := getRequest("/api/donors")
	handler.ListDonors(listC)
	if !strings.Contains(listRecorder.Body.String(), `"name":"Ada"`) {
		t.Errorf("demo record missing from donor list: %s", listRecorder.Body.String())
	}
}

func TestCreateCheckoutFallsBackToDemoOnGatewayFailure(t *testing.T) {
	gateway := &fakeGateway{createErr: errUnreachable}
	handler := newTestHandler(newFakeStore(), gateway)

	recorder, c := postJSON("/api/create-checkout-session", `{"name":"Ada","amountUsd":10}`)
	handler.CreateCheckout(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected demo fallback ok status, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"demo":true`) {
		t.Errorf("expected demo fallback body: %s", recorder.Body.String())
	}
}
