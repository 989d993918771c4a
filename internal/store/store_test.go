package store

import (
	"context"
	"errors"
	"testing"

	"donorwall/internal/models"
)

func TestMemoryInsertPrependsNewest(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	if _, err := s.InsertDonor(ctx, models.Donor{ID: "a", Name: "First"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertDonor(ctx, models.Donor{ID: "b", Name: "Second"}); err != nil {
		t.Fatal(err)
	}

	donors, err := s.ListDonors(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(donors) != 2 || donors[0].ID != "b" || donors[1].ID != "a" {
		t.Errorf("expected newest-first order, got %+v", donors)
	}
}

func TestMemoryListReturnsSnapshot(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	s.InsertDonor(ctx, models.Donor{ID: "a", Name: "Ada"})

	donors, _ := s.ListDonors(ctx)
	donors[0].Name = "changed"

	again, _ := s.ListDonors(ctx)
	if again[0].Name != "Ada" {
		t.Error("ListDonors must return a copy, not the backing slice")
	}
}

func TestIsColumnError(t *testing.T) {
	if !isColumnError(errors.New(`pq: column "social_x" of relation "donors" does not exist`)) {
		t.Error("expected a column error to be recognized")
	}
	if isColumnError(errors.New("connection refused")) {
		t.Error("connection errors must not trigger the social-column retry")
	}
	if isColumnError(nil) {
		t.Error("nil is not a column error")
	}
}
