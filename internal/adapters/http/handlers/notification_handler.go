package handlers

import (
	"edumigrate/internal/core/services"
	"edumigrate/internal/pkg/pagination"
	"edumigrate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles in-app notification endpoints
type NotificationHandler struct {
	notifyService *services.NotifyService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifyService *services.NotifyService) *NotificationHandler {
	return &NotificationHandler{notifyService: notifyService}
}

// List handles listing the caller's notifications
// @Summary List my notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	params := pagination.GetParams(c)

	notifications, total, unread, err := h.notifyService.ListForUser(c.Context(), userID, userType, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
		"meta":          pagination.GetMeta(params, total),
	})
}

// MarkRead handles marking one notification as read
// @Summary Mark notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notifyService.MarkRead(c.Context(), id, userID, userType); err != nil {
		return response.InternalServerError(c, "Failed to mark notification as read")
	}
	return response.Success(c, "Notification marked as read", nil)
}

// MarkAllRead handles marking all the caller's notifications as read
// @Summary Mark all notifications as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.notifyService.MarkAllRead(c.Context(), userID, userType); err != nil {
		return response.InternalServerError(c, "Failed to mark notifications as read")
	}
	return response.Success(c, "All notifications marked as read", nil)
}
