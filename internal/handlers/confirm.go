package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"donorwall/internal/models"
	"donorwall/internal/moderation"
	"donorwall/internal/wall"
)

var errAlreadySettled = errors.New("checkout already settled")

// ConfirmSocials is the client-cached social payload, the fallback for
// handles the gateway round trip does not echo back.
type ConfirmSocials struct {
	SocialX         string `json:"socialX"`
	SocialTiktok    string `json:"socialTiktok"`
	SocialInstagram string `json:"socialInstagram"`
	SocialYoutube   string `json:"socialYoutube"`
	SocialTwitch    string `json:"socialTwitch"`
}

type ConfirmRequest struct {
	OrderID string         `json:"order_id"`
	Socials ConfirmSocials `json:"socials"`
}

// Confirm is the post-checkout return path: verify the session was paid,
// then persist the donor record. Donor text is re-screened here; a
// moderation hit after a completed payment substitutes the anonymous
// placeholder instead of failing the transaction.
func (h *DonationHandler) Confirm(c *gin.Context) {
	if h.Gateway == nil || h.Store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not_configured"})
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_order_id"})
		return
	}

	status, err := h.Gateway.CheckStatus(c.Request.Context(), req.OrderID)
	if err != nil {
		h.Logger.Error("gateway status check failed", zap.String("order_id", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "confirm_failed"})
		return
	}
	if !status.Paid {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "not_paid"})
		return
	}

	donor, err := h.settle(c.Request.Context(), req.OrderID, status.TransactionID, req.Socials)
	if errors.Is(err, errAlreadySettled) {
		c.JSON(http.StatusOK, gin.H{"status": "ok (duplicate)"})
		return
	}
	if err != nil {
		h.Logger.Error("confirm failed", zap.String("order_id", req.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "confirm_failed"})
		return
	}
	c.JSON(http.StatusOK, donor)
}

// HandleWebhook is the gateway's server-to-server notification. The
// order status is always re-verified against the gateway rather than
// trusted from the notification body. Duplicate notifications are
// acknowledged without re-applying.
func (h *DonationHandler) HandleWebhook(c *gin.Context) {
	if h.Gateway == nil || h.Store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not_configured"})
		return
	}

	var notification struct {
		OrderID string `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&notification); err != nil || notification.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_notification"})
		return
	}

	status, err := h.Gateway.CheckStatus(c.Request.Context(), notification.OrderID)
	if err != nil {
		h.Logger.Error("webhook verification failed",
			zap.String("order_id", notification.OrderID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction_not_found"})
		return
	}
	if !status.Paid {
		h.Logger.Info("webhook for unsettled transaction",
			zap.String("order_id", notification.OrderID), zap.String("status", status.Raw))
		c.JSON(http.StatusOK, gin.H{"status": "ok (not settled)"})
		return
	}

	_, err = h.settle(c.Request.Context(), notification.OrderID, status.TransactionID, ConfirmSocials{})
	if errors.Is(err, errAlreadySettled) {
		c.JSON(http.StatusOK, gin.H{"status": "ok (duplicate)"})
		return
	}
	if err != nil {
		h.Logger.Error("webhook settle failed",
			zap.String("order_id", notification.OrderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook_handler_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// settle turns a paid checkout into a persisted donor record. The stored
// checkout row is the source of donor text; client-supplied socials only
// fill gaps. Text that fails the re-screen is scrubbed, never rejected:
// the payment already happened.
func (h *DonationHandler) settle(ctx context.Context, orderID, txID string, fallback ConfirmSocials) (models.Donor, error) {
	checkout, err := h.Store.GetCheckout(ctx, orderID)
	if err != nil {
		return models.Donor{}, err
	}
	if checkout.Status == models.CheckoutSettled {
		return models.Donor{}, errAlreadySettled
	}

	name := strings.TrimSpace(checkout.Name)
	if name == "" || moderation.IsOffensive(name) {
		name = wall.AnonymousName
	}
	message := truncate(checkout.Message, MessageMaxChars)
	if moderation.IsOffensive(message) {
		message = ""
	}

	donor := models.Donor{
		ID:              uuid.NewString(),
		Name:            name,
		AmountUSD:       checkout.AmountUSD,
		Message:         message,
		Date:            time.Now().UTC(),
		SocialX:         firstNonEmpty(checkout.SocialX, fallback.SocialX),
		SocialTiktok:    firstNonEmpty(checkout.SocialTiktok, fallback.SocialTiktok),
		SocialInstagram: firstNonEmpty(checkout.SocialInstagram, fallback.SocialInstagram),
		SocialYoutube:   firstNonEmpty(checkout.SocialYoutube, fallback.SocialYoutube),
		SocialTwitch:    firstNonEmpty(checkout.SocialTwitch, fallback.SocialTwitch),
	}

	donor, err = h.Store.InsertDonor(ctx, donor)
	if err != nil {
		return models.Donor{}, err
	}
	if err := h.Store.SettleCheckout(ctx, orderID, txID); err != nil {
		// The donor row is in; a failed status flip only risks one
		// duplicate-looking webhook log line later.
		h.Logger.Warn("failed to mark checkout settled",
			zap.String("order_id", orderID), zap.Error(err))
	}

	total := 0
	for _, d := range h.loadDonors(ctx) {
		total += d.AmountUSD
	}
	h.publish(donor, total)

	h.Logger.Info("donation settled",
		zap.String("order_id", orderID),
		zap.String("tx_id", txID),
		zap.Int("amount_usd", donor.AmountUSD))
	return donor, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return truncate(s, socialHandleLimit)
		}
	}
	return ""
}
