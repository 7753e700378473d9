package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alumniportal/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Inbox handles GET /admin/notifications
func (h *NotificationHandler) Inbox(c *gin.Context) {
	items, err := h.notifications.Inbox(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, items)
}

// Delete handles DELETE /admin/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid notification id"})
		return
	}

	if err := h.notifications.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"status": "deleted"})
}

// Clear handles DELETE /admin/notifications
func (h *NotificationHandler) Clear(c *gin.Context) {
	count, err := h.notifications.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": count})
}
