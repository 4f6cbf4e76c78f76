package repositories

import (
	"context"

	"edumigrate/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DocumentRepository handles document metadata access
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// GetByID gets a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).First(&doc, id).Error
	return &doc, err
}

// GetByOwner gets all documents for an owner
func (r *DocumentRepository) GetByOwner(ctx context.Context, ownerID uint, ownerType string) ([]*models.Document, error) {
	var docs []*models.Document
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND owner_type = ?", ownerID, ownerType).
		Order("document_type ASC").
		Find(&docs).Error
	return docs, err
}

// GetTypesByOwner gets the distinct uploaded document types for an owner
func (r *DocumentRepository) GetTypesByOwner(ctx context.Context, ownerID uint, ownerType string) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).
		Model(&models.Document{}).
		Where("owner_id = ? AND owner_type = ?", ownerID, ownerType).
		Distinct().
		Pluck("document_type", &types).Error
	return types, err
}

// Upsert creates the document row or overwrites the existing one for
// the same (owner, documentType). One active row per type.
func (r *DocumentRepository) Upsert(ctx context.Context, doc *models.Document) error {
	var existing models.Document
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND owner_type = ? AND document_type = ?",
			doc.OwnerID, doc.OwnerType, doc.DocumentType).
		First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(doc).Error
	}
	if err != nil {
		return err
	}

	existing.FileName = doc.FileName
	existing.StoragePath = doc.StoragePath
	existing.Status = models.DocStatusPending
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*doc = existing
	return nil
}

// UpdateStatus updates a document's review status
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Document{}).
		Where("id = ?", id).
		Update("status", status).Error
}
