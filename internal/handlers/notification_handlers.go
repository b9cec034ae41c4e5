package handlers

import (
	"net/http"

	"github.com/akithw/supermart-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Notification Handlers ---
//

// ListNotifications is the handler for GET /api/notification. Returns the
// caller's unread notifications, newest first.
func (h *Handlers) ListNotifications(c *gin.Context) {
	notifications, err := h.Notifications.ListUnread(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(notifications) == 0 {
		c.JSON(http.StatusOK, models.OK("No new notifications", nil))
		return
	}
	c.JSON(http.StatusOK, models.OK("Received successfully", notifications))
}

// MarkNotificationRead is the handler for PUT /api/notification/markread/:id.
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	if err := h.Notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Notification marked as read", nil))
}

// DeleteNotification is the handler for DELETE /api/notification/delete/:id.
func (h *Handlers) DeleteNotification(c *gin.Context) {
	if err := h.Notifications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("Notification deleted", nil))
}
