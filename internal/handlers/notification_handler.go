package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobsentry/jobsentry/internal/auth"
	"github.com/jobsentry/jobsentry/internal/services"
)

type NotificationHandler struct {
	Notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.Notifications.List(auth.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list notifications: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// HealthCheck is GET /api/v1/health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "jobsentry"})
}
