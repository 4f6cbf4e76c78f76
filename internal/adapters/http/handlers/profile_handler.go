package handlers

import (
	"edumigrate/internal/core/services"
	"edumigrate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles member profile endpoints
type ProfileHandler struct {
	profileService *services.ProfileService
	authService    *services.AuthService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *services.ProfileService, authService *services.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

// Me returns the current member's account and profile
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	memberID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	member, err := h.authService.GetMemberByID(c.Context(), memberID)
	if err != nil {
		return response.NotFound(c, "Member not found")
	}
	return response.Success(c, "Profile retrieved successfully", member)
}

// Update applies a partial update to the member's profile
// @Summary Update my profile
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Router /profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	memberID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.profileService.UpdateMember(c.Context(), memberID, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}
	return response.Success(c, "Profile updated successfully", member)
}

// Status reports the member's profile completeness
// @Summary Check my profile completeness
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /profile/status [get]
func (h *ProfileHandler) Status(c *fiber.Ctx) error {
	memberID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	status, err := h.profileService.CheckMember(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check profile")
	}
	return response.Success(c, "Profile status retrieved successfully", status)
}
