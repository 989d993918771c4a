package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"donorwall/internal/models"
	"donorwall/internal/wall"
)

func TestListDonorsDegradesToEmptyOnStoreFailure(t *testing.T) {
	st := newFakeStore()
	st.listErr = errUnreachable
	handler := newTestHandler(st, nil)

	recorder, c := getRequest("/api/donors")
	handler.ListDonors(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("store failure must not error the page, got %d", recorder.Code)
	}
	if recorder.Body.String() != "[]" {
		t.Fatalf("expected an empty collection, got %s", recorder.Body.String())
	}
}

func TestGetWallComputesRenderModel(t *testing.T) {
	st := newFakeStore()
	for _, d := range []models.Donor{
		{ID: "a", Name: "Ada", AmountUSD: 100, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Name: "Bob", AmountUSD: 50, Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
	} {
		st.donors = append(st.donors, d)
	}
	handler := newTestHandler(st, nil)

	recorder, c := getRequest("/api/wall?mode=preview&sort=amount")
	handler.GetWall(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected ok status, got %d", recorder.Code)
	}
	var m wall.RenderModel
	if err := json.Unmarshal(recorder.Body.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal render model: %v", err)
	}
	if m.TotalUSD != 150 || m.DonorCount != 2 {
		t.Errorf("aggregates wrong: total=%d count=%d", m.TotalUSD, m.DonorCount)
	}
	if len(m.Items) != 2 || m.Items[0].Name != "Ada" {
		t.Errorf("unexpected preview items: %+v", m.Items)
	}
	if m.RaisedLabel != "$150" || m.GoalLabel != "$1,000,000" {
		t.Errorf("labels wrong: raised=%q goal=%q", m.RaisedLabel, m.GoalLabel)
	}
	if m.PercentLabel != "<1%" {
		t.Errorf("PercentLabel = %q, want \"<1%%\"", m.PercentLabel)
	}
}

func TestGetWallDegradesToEmptyModelOnStoreFailure(t *testing.T) {
	st := newFakeStore()
	st.listErr = errUnreachable
	handler := newTestHandler(st, nil)

	recorder, c := getRequest("/api/wall?mode=full&sort=amount")
	handler.GetWall(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected ok status, got %d", recorder.Code)
	}
	var m wall.RenderModel
	if err := json.Unmarshal(recorder.Body.Bytes(), &m); err != nil {
		t.Fatalf("unmarshal render model: %v", err)
	}
	if !m.Empty || m.TotalUSD != 0 || m.DonorCount != 0 {
		t.Errorf("expected zeroed empty model, got %+v", m)
	}
}

func TestHealthCheck(t *testing.T) {
	handler := newTestHandler(nil, nil)
	recorder, c := getRequest("/api/health")
	handler.HealthCheck(c)
	if recorder.Body.String() != `{"ok":true}` {
		t.Fatalf("unexpected response body: %s", recorder.Body.String())
	}
}
