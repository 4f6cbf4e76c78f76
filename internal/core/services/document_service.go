package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// requiredDocuments is the checklist per program category. Order matters:
// missing documents are reported in checklist order so the UI renders a
// stable list.
var requiredDocuments = map[string][]string{
	models.CategoryUndergraduate: {
		"passport",
		"birth_certificate",
		"olevel_result",
		"olevel_pin",
		"passport_photo",
		"recommendation_letter",
	},
	models.CategoryPostgraduate: {
		"passport",
		"birth_certificate",
		"olevel_result",
		"passport_photo",
		"recommendation_letter",
		"degree_certificate",
		"academic_transcript",
		"cv",
		"research_proposal",
	},
}

// documentStatusCopy is the notification copy per review outcome
var documentStatusCopy = map[string]struct {
	Title   string
	Message string
}{
	models.DocStatusApproved: {
		Title:   "Document Approved",
		Message: "Your %s has been reviewed and approved.",
	},
	models.DocStatusRejected: {
		Title:   "Document Rejected",
		Message: "Your %s was rejected. Please upload a corrected copy.",
	},
}

// DocumentService handles document uploads, review, and the completeness checker
type DocumentService struct {
	documentRepo  *repositories.DocumentRepository
	notifyService *NotifyService
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo *repositories.DocumentRepository, notifyService *NotifyService) *DocumentService {
	return &DocumentService{documentRepo: documentRepo, notifyService: notifyService}
}

// CompletenessStatus is the checker's report for one owner and category
type CompletenessStatus struct {
	IsComplete  bool     `json:"is_complete"`
	MissingDocs []string `json:"missing_docs"`
}

// completeness computes the checklist diff for an owner. Any document row
// counts toward completeness regardless of review status; review happens
// after submission, not before.
func (s *DocumentService) completeness(ctx context.Context, ownerID uint, ownerType, category string) (*CompletenessStatus, error) {
	required, known := requiredDocuments[category]
	if !known {
		return nil, domain.ErrInvalidCategory
	}

	uploaded, err := s.documentRepo.GetTypesByOwner(ctx, ownerID, ownerType)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(uploaded))
	for _, t := range uploaded {
		have[t] = true
	}

	missing := []string{}
	for _, t := range required {
		if !have[t] {
			missing = append(missing, t)
		}
	}

	return &CompletenessStatus{IsComplete: len(missing) == 0, MissingDocs: missing}, nil
}

// CheckCompleteness runs the checker and wraps the report in the response envelope
func (s *DocumentService) CheckCompleteness(ctx context.Context, ownerID uint, ownerType, category string) *Result {
	status, err := s.completeness(ctx, ownerID, ownerType, category)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			return fail(fiber.StatusBadRequest, "Invalid program category")
		}
		return internalError(err)
	}

	if !status.IsComplete {
		return &Result{
			Success:    true,
			StatusCode: fiber.StatusOK,
			Message:    "Documents incomplete",
			Data:       status,
		}
	}
	return ok(fiber.StatusOK, "All required documents uploaded", status)
}

// UploadInput carries one document upload
type UploadInput struct {
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	StoragePath  string `json:"storage_path"`
}

// Upload stores a document for an owner. Re-uploading an existing type
// overwrites the previous file and resets its review status to pending.
func (s *DocumentService) Upload(ctx context.Context, ownerID uint, ownerType string, input *UploadInput) *Result {
	if input.DocumentType == "" || input.StoragePath == "" {
		return fail(fiber.StatusBadRequest, "document_type and storage_path are required")
	}

	doc := &models.Document{
		OwnerID:      ownerID,
		OwnerType:    ownerType,
		DocumentType: input.DocumentType,
		FileName:     input.FileName,
		StoragePath:  input.StoragePath,
	}
	if err := s.documentRepo.Upsert(ctx, doc); err != nil {
		log.Printf("❌ Failed to upsert document %s for %s %d: %v", input.DocumentType, ownerType, ownerID, err)
		return internalError(err)
	}

	return ok(fiber.StatusCreated, "Document uploaded successfully", doc)
}

// ListForOwner gets all documents uploaded by an owner
func (s *DocumentService) ListForOwner(ctx context.Context, ownerID uint, ownerType string) ([]*models.Document, error) {
	return s.documentRepo.GetByOwner(ctx, ownerID, ownerType)
}

// ReviewInput carries an admin review decision
type ReviewInput struct {
	Status string `json:"status"`
	Remark string `json:"remark"`
}

// Review applies an admin decision to a document and notifies the owner
func (s *DocumentService) Review(ctx context.Context, documentID uint, input *ReviewInput) *Result {
	tmpl, known := documentStatusCopy[input.Status]
	if !known {
		return fail(fiber.StatusBadRequest, "Invalid document status")
	}

	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(fiber.StatusNotFound, "Document not found")
		}
		return internalError(err)
	}

	if err := s.documentRepo.UpdateStatus(ctx, documentID, input.Status); err != nil {
		return internalError(err)
	}
	doc.Status = input.Status

	message := fmt.Sprintf(tmpl.Message, doc.DocumentType)
	if input.Remark != "" {
		message = message + " Note: " + input.Remark
	}
	s.notifyService.Push(ctx, &models.Notification{
		UserID:   doc.OwnerID,
		UserType: doc.OwnerType,
		Type:     models.NotifyTypeDocument,
		Title:    tmpl.Title,
		Message:  message,
		Link:     "/documents",
	})

	return ok(fiber.StatusOK, "Document reviewed successfully", doc)
}
