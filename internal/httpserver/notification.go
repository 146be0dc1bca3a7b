package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agriconnect/internal/domain"
	"agriconnect/internal/session"
	notificationstore "agriconnect/internal/store/notification"
)

func notificationError(c *gin.Context, err error, action string) {
	if errors.Is(err, session.ErrNoSession) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed"})
}

func listNotificationsHandler(store *notificationstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.DefaultQuery("type", "all")
		if kind != "all" && !domain.ValidNotificationType(domain.NotificationType(kind)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown notification type"})
			return
		}

		items, err := store.ByType(c.Request.Context(), kind)
		if err != nil {
			notificationError(c, err, "load notifications")
			return
		}
		if items == nil {
			items = []domain.Notification{}
		}
		unread, err := store.UnreadCount(c.Request.Context())
		if err != nil {
			notificationError(c, err, "load notifications")
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": items, "unreadCount": unread})
	}
}

func addNotificationHandler(store *notificationstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notificationstore.AddInput
		if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and type required"})
			return
		}
		n, err := store.Add(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"notification": n})
	}
}

func markAllReadHandler(store *notificationstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.MarkAllAsRead(c.Request.Context()); err != nil {
			notificationError(c, err, "mark all read")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func markReadHandler(store *notificationstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
			notificationError(c, err, "mark read")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func deleteNotificationHandler(store *notificationstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), c.Param("id")); err != nil {
			notificationError(c, err, "delete notification")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
