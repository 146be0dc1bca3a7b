package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	chatstore "agriconnect/internal/store/chat"
)

func chatMessagesHandler(store *chatstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"messages": store.Messages(),
			"busy":     store.Busy(),
		})
	}
}

type chatSendRequest struct {
	Content string `json:"content" binding:"required"`
}

func chatSendHandler(store *chatstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatSendRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
			return
		}
		msg, err := store.AddMessage(c.Request.Context(), req.Content)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "send message failed"})
			return
		}
		// the assistant reply lands after the artificial delay
		c.JSON(http.StatusAccepted, gin.H{"message": msg})
	}
}

func chatToggleHandler(store *chatstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"open": store.Toggle()})
	}
}

func chatStateHandler(store *chatstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"open": store.Open(), "busy": store.Busy()})
	}
}
