package handlers

import (
	"errors"

	"edumigrate/internal/core/domain"
	"edumigrate/internal/core/services"
	"edumigrate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StudentHandler handles an agent's student roster endpoints
type StudentHandler struct {
	studentService *services.StudentService
	profileService *services.ProfileService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *services.StudentService, profileService *services.ProfileService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		profileService: profileService,
	}
}

// Create handles an agent registering a new student
// @Summary Register student
// @Tags Agent Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateStudentInput true "Student data"
// @Success 201 {object} response.Response
// @Router /agent/students [post]
func (h *StudentHandler) Create(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreateStudentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	student, err := h.studentService.Create(c.Context(), agentID, &input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Full name is required")
		}
		return response.InternalServerError(c, "Failed to register student")
	}
	return response.Created(c, "Student registered successfully", student)
}

// List handles an agent listing their students
// @Summary List my students
// @Tags Agent Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /agent/students [get]
func (h *StudentHandler) List(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	students, err := h.studentService.List(c.Context(), agentID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list students")
	}
	return response.Success(c, "Students retrieved successfully", students)
}

// Get handles an agent reading one of their students
// @Summary Get one of my students
// @Tags Agent Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agent/students/{id} [get]
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid student ID")
	}

	student, err := h.studentService.GetByID(c.Context(), agentID, id)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to get student")
	}
	return response.Success(c, "Student retrieved successfully", student)
}

// UpdateProfile handles an agent updating a student's profile fields
// @Summary Update a student's profile
// @Tags Agent Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /agent/students/{id}/profile [put]
func (h *StudentHandler) UpdateProfile(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid student ID")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	student, err := h.profileService.UpdateStudent(c.Context(), agentID, id, &input)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return response.NotFound(c, "Student not found")
		}
		return response.InternalServerError(c, "Failed to update student profile")
	}
	return response.Success(c, "Student profile updated successfully", student)
}

// ProfileStatus reports a student's profile completeness
// @Summary Check a student's profile completeness
// @Tags Agent Students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Router /agent/students/{id}/profile/status [get]
func (h *StudentHandler) ProfileStatus(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid student ID")
	}

	// Ownership check before reading the profile
	if _, err := h.studentService.GetByID(c.Context(), agentID, id); err != nil {
		return response.NotFound(c, "Student not found")
	}

	status, err := h.profileService.CheckStudent(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to check profile")
	}
	return response.Success(c, "Profile status retrieved successfully", status)
}
