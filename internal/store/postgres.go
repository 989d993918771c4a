// Package store persists donor records and pending checkouts.
package store

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"donorwall/internal/models"
)

// DonorStore is the record store the wall reads from and the confirm
// path writes to.
type DonorStore interface {
	ListDonors(ctx context.Context) ([]models.Donor, error)
	InsertDonor(ctx context.Context, d models.Donor) (models.Donor, error)
}

// Postgres stores donors and checkouts in PostgreSQL via sqlx.
type Postgres struct {
	DB *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{DB: db}
}

// ListDonors returns donor records newest first, capped at 1000.
func (s *Postgres) ListDonors(ctx context.Context) ([]models.Donor, error) {
	query := `
		SELECT id, name, amountusd, message, date,
		       COALESCE(social_x, '') AS social_x,
		       COALESCE(social_tiktok, '') AS social_tiktok,
		       COALESCE(social_instagram, '') AS social_instagram,
		       COALESCE(social_youtube, '') AS social_youtube,
		       COALESCE(social_twitch, '') AS social_twitch
		FROM donors
		ORDER BY date DESC
		LIMIT 1000
	`
	donors := []models.Donor{}
	if err := s.DB.SelectContext(ctx, &donors, query); err != nil {
		return nil, err
	}
	return donors, nil
}

// InsertDonor writes a completed contribution. If the donors table has
// not been provisioned with the optional social columns, the insert is
// retried once with those fields stripped before the error surfaces.
func (s *Postgres) InsertDonor(ctx context.Context, d models.Donor) (models.Donor, error) {
	full := `
		INSERT INTO donors
		  (id, name, amountusd, message, date,
		   social_x, social_tiktok, social_instagram, social_youtube, social_twitch)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.DB.ExecContext(ctx, full,
		d.ID, d.Name, d.AmountUSD, d.Message, d.Date,
		d.SocialX, d.SocialTiktok, d.SocialInstagram, d.SocialYoutube, d.SocialTwitch,
	)
	if err == nil {
		return d, nil
	}
	if !isColumnError(err) {
		return models.Donor{}, err
	}

	base := `
		INSERT INTO donors (id, name, amountusd, message, date)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.DB.ExecContext(ctx, base, d.ID, d.Name, d.AmountUSD, d.Message, d.Date); err != nil {
		return models.Donor{}, err
	}
	stripped := d
	stripped.SocialX = ""
	stripped.SocialTiktok = ""
	stripped.SocialInstagram = ""
	stripped.SocialYoutube = ""
	stripped.SocialTwitch = ""
	return stripped, nil
}

// isColumnError reports whether an insert failed on an unprovisioned
// column, the one store failure the confirm path recovers from.
func isColumnError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "column")
}

// CreatePendingCheckout records a checkout session before the donor is
// handed to the payment gateway.
func (s *Postgres) CreatePendingCheckout(ctx context.Context, p models.PendingCheckout) error {
	query := `
		INSERT INTO checkouts
		  (order_id, name, amountusd, message,
		   social_x, social_tiktok, social_instagram, social_youtube, social_twitch,
		   status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.DB.ExecContext(ctx, query,
		p.OrderID, p.Name, p.AmountUSD, p.Message,
		p.SocialX, p.SocialTiktok, p.SocialInstagram, p.SocialYoutube, p.SocialTwitch,
		models.CheckoutPending,
	)
	return err
}

// GetCheckout loads a checkout session by order ID.
func (s *Postgres) GetCheckout(ctx context.Context, orderID string) (models.PendingCheckout, error) {
	var p models.PendingCheckout
	query := `
		SELECT order_id, name, amountusd, message,
		       COALESCE(social_x, '') AS social_x,
		       COALESCE(social_tiktok, '') AS social_tiktok,
		       COALESCE(social_instagram, '') AS social_instagram,
		       COALESCE(social_youtube, '') AS social_youtube,
		       COALESCE(social_twitch, '') AS social_twitch,
		       status,
		       COALESCE(payment_gateway_tx_id, '') AS payment_gateway_tx_id,
		       created_at
		FROM checkouts
		WHERE order_id = $1
	`
	err := s.DB.GetContext(ctx, &p, query, orderID)
	return p, err
}

// SettleCheckout marks a checkout as settled with the gateway's
// transaction ID.
func (s *Postgres) SettleCheckout(ctx context.Context, orderID, txID string) error {
	query := `UPDATE checkouts SET status = $1, payment_gateway_tx_id = $2 WHERE order_id = $3`
	_, err := s.DB.ExecContext(ctx, query, models.CheckoutSettled, txID, orderID)
	return err
}
