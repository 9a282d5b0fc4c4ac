package handlers

import (
	"net/http"
	"time"

	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// AnalyticsOverview returns summary counts over tasks visible to the
// requester (owned plus shared).
func (h *Handler) AnalyticsOverview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	overview, err := h.AnalyticsRepo.Overview(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch analytics overview"})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// AnalyticsTrends returns completed and overdue counts bucketed by day
// (weekly period) or month (monthly period, the default).
func (h *Handler) AnalyticsTrends(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	period := c.DefaultQuery("period", "monthly")
	byDay := period == "weekly"

	now := time.Now()
	var start time.Time
	if byDay {
		start = now.Add(-7 * 24 * time.Hour)
	} else {
		start = now.AddDate(0, -1, 0)
	}

	ctx := c.Request.Context()
	completed, err := h.AnalyticsRepo.CompletedTrend(ctx, userID, start, byDay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch analytics trends"})
		return
	}
	overdue, err := h.AnalyticsRepo.OverdueTrend(ctx, userID, start, byDay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch analytics trends"})
		return
	}

	if completed == nil {
		completed = []repository.TrendPoint{}
	}
	if overdue == nil {
		overdue = []repository.TrendPoint{}
	}
	c.JSON(http.StatusOK, gin.H{
		"period":    period,
		"completed": completed,
		"overdue":   overdue,
	})
}
