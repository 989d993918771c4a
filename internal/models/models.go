package models

import "time"

// We use 'db' tags for sqlx to automatically map
// the database column names (snake_case) to our Go fields (CamelCase).
// The 'json' tags match the shape the wall page consumes.

// Donor represents a single completed contribution. Records are
// insert-only: nothing in the system updates or deletes a donor row.
type Donor struct {
	ID              string    `db:"id" json:"id,omitempty"`
	Name            string    `db:"name" json:"name"`
	AmountUSD       int       `db:"amountusd" json:"amountUsd"`
	Message         string    `db:"message" json:"message"`
	Date            time.Time `db:"date" json:"date"`
	SocialX         string    `db:"social_x" json:"social_x,omitempty"`
	SocialTiktok    string    `db:"social_tiktok" json:"social_tiktok,omitempty"`
	SocialInstagram string    `db:"social_instagram" json:"social_instagram,omitempty"`
	SocialYoutube   string    `db:"social_youtube" json:"social_youtube,omitempty"`
	SocialTwitch    string    `db:"social_twitch" json:"social_twitch,omitempty"`
}

// PendingCheckout tracks a checkout session between creation and the
// gateway confirming payment.
type PendingCheckout struct {
	OrderID         string    `db:"order_id"`
	Name            string    `db:"name"`
	AmountUSD       int       `db:"amountusd"`
	Message         string    `db:"message"`
	SocialX         string    `db:"social_x"`
	SocialTiktok    string    `db:"social_tiktok"`
	SocialInstagram string    `db:"social_instagram"`
	SocialYoutube   string    `db:"social_youtube"`
	SocialTwitch    string    `db:"social_twitch"`
	Status          string    `db:"status"`
	GatewayTxID     string    `db:"payment_gateway_tx_id"`
	CreatedAt       time.Time `db:"created_at"`
}

// Checkout statuses.
const (
	CheckoutPending = "pending"
	CheckoutSettled = "settled"
)
