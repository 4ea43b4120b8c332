package handlers

import (
	"github.com/gin-gonic/gin"

	"medibook-server/internal/middleware"
	"medibook-server/internal/services"
	"medibook-server/internal/utils"
)

// NotificationHandler serves the persisted notifications written by the
// dispatcher.
type NotificationHandler struct {
	Store *services.NotificationStore
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(store *services.NotificationStore) *NotificationHandler {
	return &NotificationHandler{Store: store}
}

// GetNotifications lists the caller's notifications, newest first.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	notifications, err := h.Store.ListForUser(userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Notifications fetched successfully", notifications)
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	notification, err := h.Store.MarkRead(c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Notification marked as read", notification)
}
