package repositories

import (
	"context"

	"edumigrate/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ApplicationRepository handles direct application data access
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create creates a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an application by ID with relations
func (r *ApplicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Program").
		First(&app, id).Error
	return &app, err
}

// GetByMemberID gets applications owned by a member
func (r *ApplicationRepository) GetByMemberID(ctx context.Context, memberID uint) ([]*models.Application, error) {
	var apps []*models.Application
	err := r.db.WithContext(ctx).
		Preload("Program").
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// List lists applications with pagination, optionally filtered by status
func (r *ApplicationRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Application, int64, error) {
	var apps []*models.Application
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Application{})
	if status != "" {
		query = query.Where("application_status = ?", status)
	}
	query.Count(&total)

	err := query.
		Preload("Member").
		Preload("Program").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error

	return apps, total, err
}

// ExistsActive reports whether the member already has a non-cancelled application for a program
func (r *ApplicationRepository) ExistsActive(ctx context.Context, memberID, programID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("member_id = ? AND program_id = ?", memberID, programID).
		Where("application_status <> ?", models.StatusCancelled).
		Count(&count).Error
	return count > 0, err
}

// AgentApplicationRepository handles agent application data access
type AgentApplicationRepository struct {
	db *gorm.DB
}

// NewAgentApplicationRepository creates a new agent application repository
func NewAgentApplicationRepository(db *gorm.DB) *AgentApplicationRepository {
	return &AgentApplicationRepository{db: db}
}

// Create creates a new agent application
func (r *AgentApplicationRepository) Create(ctx context.Context, app *models.AgentApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// GetByID gets an agent application by ID with relations
func (r *AgentApplicationRepository) GetByID(ctx context.Context, id uint) (*models.AgentApplication, error) {
	var app models.AgentApplication
	err := r.db.WithContext(ctx).
		Preload("Agent").
		Preload("Student").
		Preload("Program").
		First(&app, id).Error
	return &app, err
}

// GetByAgentID gets applications submitted by an agent
func (r *AgentApplicationRepository) GetByAgentID(ctx context.Context, agentID uint) ([]*models.AgentApplication, error) {
	var apps []*models.AgentApplication
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Program").
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// List lists agent applications with pagination, optionally filtered by status
func (r *AgentApplicationRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.AgentApplication, int64, error) {
	var apps []*models.AgentApplication
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AgentApplication{})
	if status != "" {
		query = query.Where("application_status = ?", status)
	}
	query.Count(&total)

	err := query.
		Preload("Agent").
		Preload("Student").
		Preload("Program").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error

	return apps, total, err
}

// ExistsActiveForStudent reports whether the student already has a non-cancelled application for a program
func (r *AgentApplicationRepository) ExistsActiveForStudent(ctx context.Context, studentID, programID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AgentApplication{}).
		Where("student_id = ? AND program_id = ?", studentID, programID).
		Where("application_status <> ?", models.StatusCancelled).
		Count(&count).Error
	return count > 0, err
}

// ActivityLogRepository handles audit entries
type ActivityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create creates a new activity log entry
func (r *ActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByEntity gets log entries for an entity (History)
func (r *ActivityLogRepository) GetByEntity(ctx context.Context, entityType string, entityID uint) ([]*models.ActivityLog, error) {
	var entries []*models.ActivityLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
