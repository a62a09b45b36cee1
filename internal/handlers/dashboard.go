package handlers

import (
	"context"
	"strconv"

	"vetclinic-admin-server/internal/store"
	"vetclinic-admin-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// SummaryReader produces the dashboard aggregates.
type SummaryReader interface {
	Summary(ctx context.Context, days int, top int) (*store.DashboardSummary, error)
}

// DashboardHandler serves the analytics dashboard.
type DashboardHandler struct {
	Reports SummaryReader
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reports SummaryReader) *DashboardHandler {
	return &DashboardHandler{Reports: reports}
}

// GetSummary returns appointment statistics for the last ?days (default 30,
// at most 365) and the ?top services by completed appointments.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		utils.BadRequest(c, "days must be between 1 and 365")
		return
	}
	top, err := strconv.Atoi(c.DefaultQuery("top", "5"))
	if err != nil || top < 1 || top > 50 {
		utils.BadRequest(c, "top must be between 1 and 50")
		return
	}

	summary, err := h.Reports.Summary(c.Request.Context(), days, top)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, "Dashboard summary fetched successfully", summary)
}
