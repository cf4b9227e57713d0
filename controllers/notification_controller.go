package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"performance-management-api/config"
	"performance-management-api/services"
)

// GetNotifications lists the caller's notifications, newest first.
// Query params: unread_only=true, limit=N (default 50).
func GetNotifications(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	unreadOnly := c.Query("unread_only") == "true"
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	service := services.NewNotificationService(config.DB)
	notifications, err := service.ListForUser(user.UserID, unreadOnly, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         len(notifications),
	})
}

// GetUnreadNotificationCount returns the caller's unread notification count.
func GetUnreadNotificationCount(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	service := services.NewNotificationService(config.DB)
	count, err := service.UnreadCount(user.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkNotificationRead flips is_read on one of the caller's notifications.
func MarkNotificationRead(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	service := services.NewNotificationService(config.DB)
	notification, err := service.MarkRead(user.UserID, notificationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notification": notification})
}

// MarkAllNotificationsRead marks every unread notification of the caller as
// read.
func MarkAllNotificationsRead(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	service := services.NewNotificationService(config.DB)
	updated, err := service.MarkAllRead(user.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}
