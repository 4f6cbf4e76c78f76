package handlers

import (
	"errors"

	"edumigrate/internal/core/domain"
	"edumigrate/internal/core/services"
	"edumigrate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProgramHandler handles program catalog endpoints
type ProgramHandler struct {
	programService *services.ProgramService
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(programService *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// List handles listing active programs, optionally filtered by category
// @Summary List programs
// @Tags Programs
// @Produce json
// @Param category query string false "Program category"
// @Success 200 {object} response.Response
// @Router /programs [get]
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	programs, err := h.programService.List(c.Context(), c.Query("category"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			return response.BadRequest(c, "Invalid program category")
		}
		return response.InternalServerError(c, "Failed to list programs")
	}
	return response.Success(c, "Programs retrieved successfully", programs)
}

// Get handles reading one program
// @Summary Get program
// @Tags Programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /programs/{id} [get]
func (h *ProgramHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid program ID")
	}

	program, err := h.programService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProgramNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to get program")
	}
	return response.Success(c, "Program retrieved successfully", program)
}

// AdminList handles listing every program including inactive ones
func (h *ProgramHandler) AdminList(c *fiber.Ctx) error {
	programs, err := h.programService.ListAll(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list programs")
	}
	return response.Success(c, "Programs retrieved successfully", programs)
}

// AdminCreate handles creating a program
func (h *ProgramHandler) AdminCreate(c *fiber.Ctx) error {
	var input services.ProgramInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	program, err := h.programService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Name and school are required")
		case errors.Is(err, domain.ErrInvalidCategory):
			return response.BadRequest(c, "Invalid program category")
		default:
			return response.InternalServerError(c, "Failed to create program")
		}
	}
	return response.Created(c, "Program created successfully", program)
}

// AdminUpdate handles updating a program
func (h *ProgramHandler) AdminUpdate(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid program ID")
	}

	var input services.ProgramInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	program, err := h.programService.Update(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProgramNotFound):
			return response.NotFound(c, "Program not found")
		case errors.Is(err, domain.ErrInvalidCategory):
			return response.BadRequest(c, "Invalid program category")
		default:
			return response.InternalServerError(c, "Failed to update program")
		}
	}
	return response.Success(c, "Program updated successfully", program)
}

// AdminDelete handles soft deleting a program
func (h *ProgramHandler) AdminDelete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid program ID")
	}

	if err := h.programService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProgramNotFound) {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to delete program")
	}
	return response.Success(c, "Program deleted successfully", nil)
}
