package handlers

import (
	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/core/services"
	"edumigrate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DocumentHandler handles document upload, listing, and review
type DocumentHandler struct {
	documentService *services.DocumentService
	studentService  *services.StudentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *services.DocumentService, studentService *services.StudentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		studentService:  studentService,
	}
}

// Upload handles a member uploading one of their own documents
// @Summary Upload document
// @Tags Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UploadInput true "Document data"
// @Success 201 {object} response.Response
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UploadInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	return sendResult(c, h.documentService.Upload(c.Context(), userID, userType, &input))
}

// ListMine handles a member listing their uploaded documents
// @Summary List my documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /documents [get]
func (h *DocumentHandler) ListMine(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	docs, err := h.documentService.ListForOwner(c.Context(), userID, userType)
	if err != nil {
		return response.InternalServerError(c, "Failed to list documents")
	}
	return response.Success(c, "Documents retrieved successfully", docs)
}

// CheckCompleteness handles a member checking their checklist for a category
// @Summary Check document completeness
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param category path string true "Program category"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /documents/completeness/{category} [get]
func (h *DocumentHandler) CheckCompleteness(c *fiber.Ctx) error {
	userID, userType, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	category := c.Params("category")
	return sendResult(c, h.documentService.CheckCompleteness(c.Context(), userID, userType, category))
}

// UploadForStudent handles an agent uploading a document for a managed student
// @Summary Upload document for a managed student
// @Tags Agent Documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param body body services.UploadInput true "Document data"
// @Success 201 {object} response.Response
// @Router /agent/students/{studentId}/documents [post]
func (h *DocumentHandler) UploadForStudent(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return response.BadRequest(c, "Invalid student ID")
	}

	// Ownership check
	if _, err := h.studentService.GetByID(c.Context(), agentID, studentID); err != nil {
		return response.NotFound(c, "Student not found")
	}

	var input services.UploadInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	return sendResult(c, h.documentService.Upload(c.Context(), studentID, models.UserTypeStudent, &input))
}

// ListForStudent handles an agent listing a managed student's documents
// @Summary List a managed student's documents
// @Tags Agent Documents
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Response
// @Router /agent/students/{studentId}/documents [get]
func (h *DocumentHandler) ListForStudent(c *fiber.Ctx) error {
	agentID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return response.BadRequest(c, "Invalid student ID")
	}

	if _, err := h.studentService.GetByID(c.Context(), agentID, studentID); err != nil {
		return response.NotFound(c, "Student not found")
	}

	docs, err := h.documentService.ListForOwner(c.Context(), studentID, models.UserTypeStudent)
	if err != nil {
		return response.InternalServerError(c, "Failed to list documents")
	}
	return response.Success(c, "Documents retrieved successfully", docs)
}

// AdminReview handles an admin approving or rejecting a document
// @Summary Review document (admin)
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param body body services.ReviewInput true "Review decision"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/documents/{id}/review [patch]
func (h *DocumentHandler) AdminReview(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid document ID")
	}

	var input services.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	return sendResult(c, h.documentService.Review(c.Context(), id, &input))
}
