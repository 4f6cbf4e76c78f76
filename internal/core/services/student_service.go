package services

import (
	"context"
	"errors"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/core/domain"

	"gorm.io/gorm"
)

// StudentService manages the student roster of an agent. All reads and
// writes are scoped to the calling agent; one agent can never see or
// touch another agent's students.
type StudentService struct {
	studentRepo *repositories.AgentStudentRepository
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo *repositories.AgentStudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// CreateStudentInput carries the minimal fields to register a student;
// profile fields are filled in later via the profile service.
type CreateStudentInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Create registers a new student under an agent
func (s *StudentService) Create(ctx context.Context, agentID uint, input *CreateStudentInput) (*models.AgentStudent, error) {
	if input.FullName == "" {
		return nil, domain.ErrInvalidInput
	}

	student := &models.AgentStudent{
		AgentID:  agentID,
		FullName: input.FullName,
		Email:    input.Email,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetByID gets one student, scoped to the calling agent
func (s *StudentService) GetByID(ctx context.Context, agentID, studentID uint) (*models.AgentStudent, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}
	if student.AgentID != agentID {
		return nil, domain.ErrStudentNotFound
	}
	return student, nil
}

// List lists an agent's students
func (s *StudentService) List(ctx context.Context, agentID uint) ([]*models.AgentStudent, error) {
	return s.studentRepo.GetByAgentID(ctx, agentID)
}
