package store

import (
	"context"
	"sync"

	"donorwall/internal/models"
)

// Memory is the non-authoritative demo collection used when the payment
// gateway or database is not configured. It only claims to exist for the
// lifetime of the process.
type Memory struct {
	mu     sync.Mutex
	donors []models.Donor
}

func NewMemory() *Memory {
	return &Memory{}
}

// ListDonors returns a fresh snapshot, newest insertion first.
func (s *Memory) ListDonors(ctx context.Context) ([]models.Donor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Donor(nil), s.donors...), nil
}

// InsertDonor prepends the record, echoing it back to the caller.
func (s *Memory) InsertDonor(ctx context.Context, d models.Donor) (models.Donor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.donors = append([]models.Donor{d}, s.donors...)
	return d, nil
}
