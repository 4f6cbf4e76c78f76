package services

import (
	"context"
	"testing"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDocumentService(db *gorm.DB) *DocumentService {
	notifyService := NewNotifyService(repositories.NewNotificationRepository(db))
	return NewDocumentService(repositories.NewDocumentRepository(db), notifyService)
}

func TestCheckCompleteness(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDocumentService(db)
	ctx := context.Background()

	t.Run("InvalidCategory", func(t *testing.T) {
		result := svc.CheckCompleteness(ctx, 1, models.UserTypeMember, models.CategoryPhd)
		assert.False(t, result.Success)
		assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
		assert.Equal(t, "Invalid program category", result.Message)
	})

	t.Run("MissingReportedInChecklistOrder", func(t *testing.T) {
		// Upload out of checklist order; the report stays in checklist order.
		for _, docType := range []string{"passport_photo", "passport"} {
			require.NoError(t, db.Create(&models.Document{
				OwnerID:      1,
				OwnerType:    models.UserTypeMember,
				DocumentType: docType,
				StoragePath:  "/uploads/" + docType + ".pdf",
			}).Error)
		}

		result := svc.CheckCompleteness(ctx, 1, models.UserTypeMember, models.CategoryUndergraduate)
		require.True(t, result.Success)
		assert.Equal(t, "Documents incomplete", result.Message)

		status, isStatus := result.Data.(*CompletenessStatus)
		require.True(t, isStatus)
		assert.False(t, status.IsComplete)
		assert.Equal(t, []string{"birth_certificate", "olevel_result", "olevel_pin", "recommendation_letter"}, status.MissingDocs)
	})

	t.Run("PendingUploadsCount", func(t *testing.T) {
		// Review status does not matter, only that the row exists.
		uploadChecklist(t, db, 2, models.UserTypeStudent, models.CategoryPostgraduate)

		result := svc.CheckCompleteness(ctx, 2, models.UserTypeStudent, models.CategoryPostgraduate)
		require.True(t, result.Success)
		assert.Equal(t, "All required documents uploaded", result.Message)

		status := result.Data.(*CompletenessStatus)
		assert.True(t, status.IsComplete)
		assert.Empty(t, status.MissingDocs)
	})

	t.Run("PostgraduateHasNoOlevelPin", func(t *testing.T) {
		assert.NotContains(t, requiredDocuments[models.CategoryPostgraduate], "olevel_pin")
		assert.Contains(t, requiredDocuments[models.CategoryPostgraduate], "research_proposal")
	})
}

func TestUpload_ReuploadResetsReview(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDocumentService(db)
	documentRepo := repositories.NewDocumentRepository(db)
	ctx := context.Background()

	result := svc.Upload(ctx, 7, models.UserTypeMember, &UploadInput{
		DocumentType: "passport",
		FileName:     "passport.pdf",
		StoragePath:  "/uploads/passport.pdf",
	})
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusCreated, result.StatusCode)

	doc := result.Data.(*models.Document)
	require.NoError(t, documentRepo.UpdateStatus(ctx, doc.ID, models.DocStatusApproved))

	// Re-uploading the same type overwrites the row and resets review.
	result = svc.Upload(ctx, 7, models.UserTypeMember, &UploadInput{
		DocumentType: "passport",
		FileName:     "passport-v2.pdf",
		StoragePath:  "/uploads/passport-v2.pdf",
	})
	require.True(t, result.Success)

	var docs []models.Document
	require.NoError(t, db.Where("owner_id = ? AND owner_type = ?", 7, models.UserTypeMember).Find(&docs).Error)
	require.Len(t, docs, 1)
	assert.Equal(t, models.DocStatusPending, docs[0].Status)
	assert.Equal(t, "passport-v2.pdf", docs[0].FileName)
}

func TestUpload_RequiresTypeAndPath(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDocumentService(db)

	result := svc.Upload(context.Background(), 7, models.UserTypeMember, &UploadInput{FileName: "a.pdf"})
	assert.False(t, result.Success)
	assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
}

func TestReview(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestDocumentService(db)
	ctx := context.Background()

	upload := svc.Upload(ctx, 9, models.UserTypeMember, &UploadInput{
		DocumentType: "birth_certificate",
		StoragePath:  "/uploads/birth_certificate.pdf",
	})
	require.True(t, upload.Success)
	doc := upload.Data.(*models.Document)

	t.Run("InvalidStatus", func(t *testing.T) {
		result := svc.Review(ctx, doc.ID, &ReviewInput{Status: "shredded"})
		assert.False(t, result.Success)
		assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
		assert.Equal(t, "Invalid document status", result.Message)
	})

	t.Run("NotFound", func(t *testing.T) {
		result := svc.Review(ctx, 999, &ReviewInput{Status: models.DocStatusApproved})
		assert.Equal(t, fiber.StatusNotFound, result.StatusCode)
	})

	t.Run("RejectWithRemark", func(t *testing.T) {
		result := svc.Review(ctx, doc.ID, &ReviewInput{Status: models.DocStatusRejected, Remark: "Scan is blurry"})
		require.True(t, result.Success)

		var stored models.Document
		require.NoError(t, db.First(&stored, doc.ID).Error)
		assert.Equal(t, models.DocStatusRejected, stored.Status)

		var note models.Notification
		require.NoError(t, db.Where("title = ?", "Document Rejected").First(&note).Error)
		assert.EqualValues(t, 9, note.UserID)
		assert.Equal(t, models.UserTypeMember, note.UserType)
		assert.Contains(t, note.Message, "birth_certificate")
		assert.Contains(t, note.Message, "Note: Scan is blurry")
	})

	t.Run("Approve", func(t *testing.T) {
		result := svc.Review(ctx, doc.ID, &ReviewInput{Status: models.DocStatusApproved})
		require.True(t, result.Success)
		assert.EqualValues(t, 1, countNotifications(t, db, "Document Approved"))
	})
}
