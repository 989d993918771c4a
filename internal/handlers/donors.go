package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"donorwall/internal/models"
	"donorwall/internal/wall"
)

// HealthCheck answers the uptime probe.
func (h *DonationHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListDonors returns the raw donor collection, newest first. A store
// failure degrades to an empty (or demo-only) list with HTTP 200 so the
// page never errors on load.
func (h *DonationHandler) ListDonors(c *gin.Context) {
	donors := h.loadDonors(c.Request.Context())
	if donors == nil {
		donors = []models.Donor{}
	}
	c.JSON(http.StatusOK, donors)
}

// GetWall computes the render model for the requested view state. The
// caller owns the mode/sort/visible selections; nothing about the view
// is kept server-side between requests.
func (h *DonationHandler) GetWall(c *gin.Context) {
	visible, _ := strconv.Atoi(c.Query("visible"))
	previewCount, _ := strconv.Atoi(c.Query("count"))
	mode := wall.ParseMode(c.Query("mode"))
	opts := wall.Options{
		Mode:         mode,
		Sort:         wall.ParseSort(c.Query("sort"), mode),
		GoalUSD:      h.GoalUSD,
		PreviewCount: previewCount,
		Visible:      visible,
	}
	donors := h.loadDonors(c.Request.Context())
	c.JSON(http.StatusOK, wall.ComputeView(donors, opts))
}
