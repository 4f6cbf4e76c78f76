package services

import (
	"context"
	"errors"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProgramService manages the program catalog
type ProgramService struct {
	programRepo *repositories.ProgramRepository
}

// NewProgramService creates a new program service
func NewProgramService(programRepo *repositories.ProgramRepository) *ProgramService {
	return &ProgramService{programRepo: programRepo}
}

// ProgramInput carries program create/update fields
type ProgramInput struct {
	Name           string          `json:"name"`
	School         string          `json:"school"`
	Country        string          `json:"country"`
	Category       string          `json:"category"`
	ApplicationFee decimal.Decimal `json:"application_fee"`
	IntakeMonths   string          `json:"intake_months"`
	Description    string          `json:"description"`
	IsActive       *bool           `json:"is_active"`
}

func validCategory(category string) bool {
	switch category {
	case models.CategoryUndergraduate, models.CategoryPostgraduate, models.CategoryPhd:
		return true
	}
	return false
}

// Create adds a program to the catalog
func (s *ProgramService) Create(ctx context.Context, input *ProgramInput) (*models.Program, error) {
	if input.Name == "" || input.School == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validCategory(input.Category) {
		return nil, domain.ErrInvalidCategory
	}

	program := &models.Program{
		Name:           input.Name,
		School:         input.School,
		Country:        input.Country,
		Category:       input.Category,
		ApplicationFee: input.ApplicationFee,
		IntakeMonths:   input.IntakeMonths,
		Description:    input.Description,
		IsActive:       true,
	}
	if input.IsActive != nil {
		program.IsActive = *input.IsActive
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// GetByID gets one program
func (s *ProgramService) GetByID(ctx context.Context, id uint) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProgramNotFound
	}
	return program, err
}

// List lists active programs, optionally filtered by category
func (s *ProgramService) List(ctx context.Context, category string) ([]*models.Program, error) {
	if category == "" {
		return s.programRepo.List(ctx)
	}
	if !validCategory(category) {
		return nil, domain.ErrInvalidCategory
	}
	return s.programRepo.ListByCategory(ctx, category)
}

// ListAll lists every program including inactive ones (admin view)
func (s *ProgramService) ListAll(ctx context.Context) ([]*models.Program, error) {
	return s.programRepo.ListAll(ctx)
}

// Update applies a partial update to a program
func (s *ProgramService) Update(ctx context.Context, id uint, input *ProgramInput) (*models.Program, error) {
	program, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		program.Name = input.Name
	}
	if input.School != "" {
		program.School = input.School
	}
	if input.Country != "" {
		program.Country = input.Country
	}
	if input.Category != "" {
		if !validCategory(input.Category) {
			return nil, domain.ErrInvalidCategory
		}
		program.Category = input.Category
	}
	if !input.ApplicationFee.IsZero() {
		program.ApplicationFee = input.ApplicationFee
	}
	if input.IntakeMonths != "" {
		program.IntakeMonths = input.IntakeMonths
	}
	if input.Description != "" {
		program.Description = input.Description
	}
	if input.IsActive != nil {
		program.IsActive = *input.IsActive
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// Delete soft deletes a program
func (s *ProgramService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.programRepo.Delete(ctx, id)
}
