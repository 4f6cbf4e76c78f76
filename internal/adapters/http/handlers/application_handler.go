package handlers

import (
	"errors"

	"edumigrate/internal/core/domain"
	"edumigrate/internal/core/services"
	"edumigrate/internal/pkg/pagination"
	"edumigrate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplicationHandler handles application endpoints for members and agents
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Create handles a member submitting a new application
// @Summary Submit application
// @Tags Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.InitiateApplicationInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	memberID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.InitiateApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.ProgramID == 0 {
		return response.BadRequest(c, "program_id is required")
	}

	return sendResult(c, h.applicationService.InitiateDirect(c.Context(), memberID, &input))
}

// ListMine handles a member listing their own applications
// @Summary List my applications
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applications [get]
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	memberID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	apps, err := h.applicationService.ListForMember(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}
	return response.Success(c, "Applications retrieved successfully", apps)
}

// GetMine handles a member reading one of their applications
// @Summary Get my application
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [get]
func (h *ApplicationHandler) GetMine(c *fiber.Ctx) error {
	memberID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.applicationService.GetDirectByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to get application")
	}
	if app.MemberID != memberID {
		return response.NotFound(c, "Application not found")
	}

	return response.Success(c, "Application retrieved successfully", app)
}

// CreateForStudent handles an agent submitting an application for a student
// @Summary Submit application for a managed student
// @Tags Agent Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.InitiateAgentApplicationInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /agent/applications [post]
func (h *ApplicationHandler) CreateForStudent(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.InitiateAgentApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.StudentID == 0 || input.ProgramID == 0 {
		return response.BadRequest(c, "student_id and program_id are required")
	}

	return sendResult(c, h.applicationService.InitiateAgent(c.Context(), agentID, &input))
}

// ListForAgent handles an agent listing their submitted applications
// @Summary List my submitted applications
// @Tags Agent Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /agent/applications [get]
func (h *ApplicationHandler) ListForAgent(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	apps, err := h.applicationService.ListForAgent(c.Context(), agentID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}
	return response.Success(c, "Applications retrieved successfully", apps)
}

// GetForAgent handles an agent reading one submitted application
// @Summary Get one submitted application
// @Tags Agent Applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agent/applications/{id} [get]
func (h *ApplicationHandler) GetForAgent(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid application ID")
	}

	app, err := h.applicationService.GetAgentByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to get application")
	}
	if app.AgentID != agentID {
		return response.NotFound(c, "Application not found")
	}

	return response.Success(c, "Application retrieved successfully", app)
}

// ============================================================
// Admin endpoints
// ============================================================

// AdminList handles the admin console listing applications of one variant
// @Summary List applications (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param type path string true "Application type (direct or agent)"
// @Param status query string false "Filter by application status"
// @Success 200 {object} response.Response
// @Router /admin/applications/{type} [get]
func (h *ApplicationHandler) AdminList(c *fiber.Ctx) error {
	applicationType := c.Params("type")
	status := c.Query("status")
	params := pagination.GetParams(c)

	apps, total, err := h.applicationService.ListAll(c.Context(), applicationType, status, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidApplicationType) {
			return response.BadRequest(c, "Invalid application type")
		}
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", pagination.NewResponse(apps, params, total))
}

// AdminUpdateStatus handles the admin console driving the transition engine
// @Summary Update application status (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type path string true "Application type (direct or agent)"
// @Param id path int true "Application ID"
// @Param body body services.UpdateStatusInput true "Status update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/applications/{type}/{id}/status [patch]
func (h *ApplicationHandler) AdminUpdateStatus(c *fiber.Ctx) error {
	applicationType := c.Params("type")
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid application ID")
	}

	var input services.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	return sendResult(c, h.applicationService.UpdateStatus(c.Context(), applicationType, id, &input))
}

// AdminHistory handles the admin console reading an application's audit trail
// @Summary Get application history (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param type path string true "Application type (direct or agent)"
// @Param id path int true "Application ID"
// @Success 200 {object} response.Response
// @Router /admin/applications/{type}/{id}/history [get]
func (h *ApplicationHandler) AdminHistory(c *fiber.Ctx) error {
	applicationType := c.Params("type")
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid application ID")
	}

	entries, err := h.applicationService.GetHistory(c.Context(), applicationType, id)
	if err != nil {
		return response.BadRequest(c, "Invalid application type")
	}

	return response.Success(c, "History retrieved successfully", entries)
}
