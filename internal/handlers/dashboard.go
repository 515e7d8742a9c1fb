package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-manager/internal/database"
	"property-manager/internal/format"
)

// DashboardHandler serves the aggregate views.
type DashboardHandler struct {
	store database.Store
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store database.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Summary handles GET /api/dashboard/summary
func (h *DashboardHandler) Summary(c *gin.Context) {
	stats, err := h.store.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute dashboard stats"})
		return
	}

	stats.TotalPriceFormatted = format.FormatPrice(stats.TotalPrice)
	stats.AverageAreaFormatted = format.FormatArea(stats.AverageArea)
	c.JSON(http.StatusOK, stats)
}

// DeleteLogs handles GET /api/admin/delete-logs
func (h *DashboardHandler) DeleteLogs(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, _ := strconv.Atoi(limitStr)

	logs, err := h.store.RecentDeleteLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}
