package repositories

import (
	"context"

	"edumigrate/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ProgramRepository handles program catalog data access
type ProgramRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Create creates a new program
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

// GetByID gets a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id uint) (*models.Program, error) {
	var program models.Program
	err := r.db.WithContext(ctx).First(&program, id).Error
	return &program, err
}

// List lists all active programs
func (r *ProgramRepository) List(ctx context.Context) ([]*models.Program, error) {
	var programs []*models.Program
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&programs).Error
	return programs, err
}

// ListAll lists all programs including inactive
func (r *ProgramRepository) ListAll(ctx context.Context) ([]*models.Program, error) {
	var programs []*models.Program
	err := r.db.WithContext(ctx).Find(&programs).Error
	return programs, err
}

// ListByCategory lists active programs in a category
func (r *ProgramRepository) ListByCategory(ctx context.Context, category string) ([]*models.Program, error) {
	var programs []*models.Program
	err := r.db.WithContext(ctx).
		Where("category = ? AND is_active = ?", category, true).
		Find(&programs).Error
	return programs, err
}

// Update updates a program
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Save(program).Error
}

// Delete soft deletes a program
func (r *ProgramRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Program{}, id).Error
}
