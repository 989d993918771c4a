package handlers

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"donorwall/internal/models"
	"donorwall/internal/moderation"
	"donorwall/internal/payments"
)

// CreateCheckoutRequest is the donor-entered payload, field names
// matching the wall page.
type CreateCheckoutRequest struct {
	Name            string `json:"name"`
	AmountUSD       int    `json:"amountUsd"`
	Message         string `json:"message"`
	SocialX         string `json:"socialX"`
	SocialTiktok    string `json:"socialTiktok"`
	SocialInstagram string `json:"socialInstagram"`
	SocialYoutube   string `json:"socialYoutube"`
	SocialTwitch    string `json:"socialTwitch"`
}

// CreateCheckout starts a hosted checkout session. Validation and the
// moderation gate run before any collaborator is touched; an
// unconfigured or unreachable gateway falls back to a local demo
// insertion instead of failing the user flow.
func (h *DonationHandler) CreateCheckout(c *gin.Context) {
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || req.AmountUSD < 1 || utf8.RuneCountInString(req.Message) > MessageMaxChars {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	// Authoritative gate: the page runs the same check for UX, but this
	// is the one that counts.
	if moderation.IsOffensive(name) || moderation.IsOffensive(req.Message) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offensive_content"})
		return
	}

	name = truncate(name, NameMaxChars)
	message := truncate(req.Message, messageServerCap)

	if h.Gateway == nil || h.Store == nil {
		h.demoInsert(c, name, req.AmountUSD, message, req)
		return
	}

	orderID := "DONATION-" + uuid.NewString()
	pending := models.PendingCheckout{
		OrderID:         orderID,
		Name:            name,
		AmountUSD:       req.AmountUSD,
		Message:         message,
		SocialX:         truncate(strings.TrimSpace(req.SocialX), socialHandleLimit),
		SocialTiktok:    truncate(strings.TrimSpace(req.SocialTiktok), socialHandleLimit),
		SocialInstagram: truncate(strings.TrimSpace(req.SocialInstagram), socialHandleLimit),
		SocialYoutube:   truncate(strings.TrimSpace(req.SocialYoutube), socialHandleLimit),
		SocialTwitch:    truncate(strings.TrimSpace(req.SocialTwitch), socialHandleLimit),
	}
	if err := h.Store.CreatePendingCheckout(c.Request.Context(), pending); err != nil {
		h.Logger.Warn("pending checkout insert failed, using demo fallback", zap.Error(err))
		h.demoInsert(c, name, req.AmountUSD, message, req)
		return
	}

	session, err := h.Gateway.CreateCheckout(c.Request.Context(), payments.CheckoutRequest{
		OrderID:   orderID,
		Name:      name,
		AmountUSD: req.AmountUSD,
	})
	if err != nil {
		h.Logger.Warn("gateway checkout failed, using demo fallback",
			zap.String("order_id", orderID), zap.Error(err))
		h.demoInsert(c, name, req.AmountUSD, message, req)
		return
	}

	h.Logger.Info("checkout session created",
		zap.String("order_id", orderID), zap.Int("amount_usd", req.AmountUSD))
	c.JSON(http.StatusOK, gin.H{"url": session.RedirectURL, "order_id": orderID})
}

// demoInsert is the non-authoritative local echo: the record goes into
// the in-memory collection the wall renders, and nowhere else.
func (h *DonationHandler) demoInsert(c *gin.Context, name string, amountUSD int, message string, req CreateCheckoutRequest) {
	donor := models.Donor{
		ID:              uuid.NewString(),
		Name:            name,
		AmountUSD:       amountUSD,
		Message:         truncate(message, MessageMaxChars),
		Date:            time.Now().UTC(),
		SocialX:         strings.TrimSpace(req.SocialX),
		SocialTiktok:    strings.TrimSpace(req.SocialTiktok),
		SocialInstagram: strings.TrimSpace(req.SocialInstagram),
		SocialYoutube:   strings.TrimSpace(req.SocialYoutube),
		SocialTwitch:    strings.TrimSpace(req.SocialTwitch),
	}
	donor, _ = h.Demo.InsertDonor(c.Request.Context(), donor)

	total := 0
	for _, d := range h.loadDonors(c.Request.Context()) {
		total += d.AmountUSD
	}
	h.publish(donor, total)

	h.Logger.Info("demo donation recorded", zap.Int("amount_usd", amountUSD))
	c.JSON(http.StatusOK, gin.H{"demo": true, "donor": donor})
}
