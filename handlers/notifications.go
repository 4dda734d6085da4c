package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"learninghub/models"
)

func parseUserIDQuery(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return 0, false
	}
	return userID, true
}

// ListNotifications returns a user's notifications newest first, or every
// notification system-wide when no userId is given
func (h *Handler) ListNotifications(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		notifications []models.Notification
		err           error
	)
	if raw := c.Query("userId"); raw != "" {
		userID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a number"})
			return
		}
		notifications, err = h.repo.Notifications.FindByUserID(ctx, userID)
	} else {
		notifications, err = h.repo.Notifications.FindAll(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

// UnreadCount returns the number of unread notifications for a user
func (h *Handler) UnreadCount(c *gin.Context) {
	userID, ok := parseUserIDQuery(c)
	if !ok {
		return
	}

	count, err := h.repo.Notifications.CountUnreadByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkNotificationRead flags one notification as read. The update only
// applies when both the id and userId match; a mismatch is a silent no-op.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	userID, ok := parseUserIDQuery(c)
	if !ok {
		return
	}

	if err := h.repo.Notifications.MarkRead(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.String(http.StatusOK, "Notification marked as read")
}

// MarkAllNotificationsRead flags every notification for a user as read
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := parseUserIDQuery(c)
	if !ok {
		return
	}

	if err := h.repo.Notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.String(http.StatusOK, "All notifications marked as read")
}
