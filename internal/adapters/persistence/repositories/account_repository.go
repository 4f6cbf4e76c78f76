package repositories

import (
	"context"

	"edumigrate/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MemberRepository handles member account data access
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create creates a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by ID
func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, id).Error
	return &member, err
}

// GetByEmail gets a member by email
func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	return &member, err
}

// ExistsByEmail checks if a member email is already registered
func (r *MemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// Update updates a member
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// AgentRepository handles agent account data access
type AgentRepository struct {
	db *gorm.DB
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create creates a new agent
func (r *AgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

// GetByID gets an agent by ID
func (r *AgentRepository) GetByID(ctx context.Context, id uint) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).First(&agent, id).Error
	return &agent, err
}

// GetByEmail gets an agent by email
func (r *AgentRepository) GetByEmail(ctx context.Context, email string) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&agent).Error
	return &agent, err
}

// ExistsByEmail checks if an agent email is already registered
func (r *AgentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Agent{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// AgentStudentRepository handles agent-managed student records
type AgentStudentRepository struct {
	db *gorm.DB
}

// NewAgentStudentRepository creates a new agent student repository
func NewAgentStudentRepository(db *gorm.DB) *AgentStudentRepository {
	return &AgentStudentRepository{db: db}
}

// Create creates a new student record
func (r *AgentStudentRepository) Create(ctx context.Context, student *models.AgentStudent) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// GetByID gets a student by ID
func (r *AgentStudentRepository) GetByID(ctx context.Context, id uint) (*models.AgentStudent, error) {
	var student models.AgentStudent
	err := r.db.WithContext(ctx).First(&student, id).Error
	return &student, err
}

// GetByAgentID gets all students managed by an agent
func (r *AgentStudentRepository) GetByAgentID(ctx context.Context, agentID uint) ([]*models.AgentStudent, error) {
	var students []*models.AgentStudent
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&students).Error
	return students, err
}

// Update updates a student record
func (r *AgentStudentRepository) Update(ctx context.Context, student *models.AgentStudent) error {
	return r.db.WithContext(ctx).Save(student).Error
}
