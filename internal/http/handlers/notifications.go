package handlers

import (
	"net/http"

	"taskboard/internal/domain"

	"github.com/gin-gonic/gin"
)

// Notifications returns the requester's notification log, newest first.
// This is the durable record behind the best-effort websocket pushes.
func (h *Handler) Notifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	notes, err := h.NotificationRepo.ListForUser(c.Request.Context(), userID, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notifications"})
		return
	}
	if notes == nil {
		notes = []*domain.Notification{}
	}
	c.JSON(http.StatusOK, notes)
}
