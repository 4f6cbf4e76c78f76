package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// Member represents a direct applicant account
type Member struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FullName  string         `gorm:"size:100;not null" json:"full_name"`
	Role      string         `gorm:"size:20;default:'MEMBER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Profile fields gated by the completeness checker
	Phone       *string    `gorm:"size:30" json:"phone"`
	DOB         *time.Time `gorm:"type:date" json:"dob"`
	IDNumber    *string    `gorm:"size:50" json:"id_number"`
	IDType      *string    `gorm:"size:30" json:"id_type"`
	Nationality *string    `gorm:"size:50" json:"nationality"`
	HomeAddress *string    `gorm:"size:200" json:"home_address"`
	HomeCity    *string    `gorm:"size:100" json:"home_city"`
	HomeZipCode *string    `gorm:"size:20" json:"home_zip_code"`
	HomeState   *string    `gorm:"size:100" json:"home_state"`
	HomeCountry *string    `gorm:"size:100" json:"home_country"`
	Gender      *string    `gorm:"size:20" json:"gender"`
}

func (Member) TableName() string {
	return "members"
}

// MemberResponse DTO
type MemberResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:        m.ID,
		Email:     m.Email,
		FullName:  m.FullName,
		Role:      m.Role,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

// Agent represents an education agent account submitting on behalf of students
type Agent struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	AgencyName string         `gorm:"size:100;not null" json:"agency_name"`
	Phone      string         `gorm:"size:30" json:"phone"`
	Country    string         `gorm:"size:100" json:"country"`
	Role       string         `gorm:"size:20;default:'AGENT'" json:"role"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Agent) TableName() string {
	return "agents"
}

// AgentStudent represents a student record managed by an agent
type AgentStudent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AgentID   uint           `gorm:"index;not null" json:"agent_id"`
	FullName  string         `gorm:"size:100;not null" json:"full_name"`
	Email     string         `gorm:"size:100" json:"email"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Same completeness-gated profile fields as Member
	Phone       *string    `gorm:"size:30" json:"phone"`
	DOB         *time.Time `gorm:"type:date" json:"dob"`
	IDNumber    *string    `gorm:"size:50" json:"id_number"`
	IDType      *string    `gorm:"size:30" json:"id_type"`
	Nationality *string    `gorm:"size:50" json:"nationality"`
	HomeAddress *string    `gorm:"size:200" json:"home_address"`
	HomeCity    *string    `gorm:"size:100" json:"home_city"`
	HomeZipCode *string    `gorm:"size:20" json:"home_zip_code"`
	HomeState   *string    `gorm:"size:100" json:"home_state"`
	HomeCountry *string    `gorm:"size:100" json:"home_country"`
	Gender      *string    `gorm:"size:20" json:"gender"`

	Agent *Agent `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
}

func (AgentStudent) TableName() string {
	return "agent_students"
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	UserType  string     `gorm:"size:20;not null;index" json:"user_type"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// User types (wallet owners, notification targets)
const (
	UserTypeMember  = "member"
	UserTypeAgent   = "agent"
	UserTypeStudent = "student"
	UserTypeAdmin   = "admin"
)

// ============================================================
// Program catalog (Master)
// ============================================================

// Program represents a study program offered by a partner school
type Program struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:150;not null" json:"name"`
	School         string          `gorm:"size:150;not null" json:"school"`
	Country        string          `gorm:"size:100;not null" json:"country"`
	Category       string          `gorm:"size:30;not null;index" json:"category"`
	ApplicationFee decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"application_fee"`
	IntakeMonths   string          `gorm:"size:100" json:"intake_months"`
	Description    string          `gorm:"type:text" json:"description"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Program) TableName() string {
	return "programs"
}

// Program categories
const (
	CategoryUndergraduate = "undergraduate"
	CategoryPostgraduate  = "postgraduate"
	CategoryPhd           = "phd"
)

// ============================================================
// Applications
// ============================================================

// Application represents a direct member application
type Application struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	MemberID              uint      `gorm:"index;not null" json:"member_id"`
	ProgramID             uint      `gorm:"index;not null" json:"program_id"`
	ApplicationStage      int       `gorm:"default:1" json:"application_stage"`
	PaymentStatus         string    `gorm:"size:20;default:'Unpaid'" json:"payment_status"`
	ApplicationStatus     string    `gorm:"size:30;default:'pending';index" json:"application_status"`
	Intake                string    `gorm:"size:50" json:"intake"`
	ApplicationDate       time.Time `gorm:"autoCreateTime" json:"application_date"`
	ApplicationStatusDate time.Time `json:"application_status_date"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member  *Member  `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Program *Program `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (Application) TableName() string {
	return "applications"
}

// AgentApplication represents an application submitted by an agent for a managed student
type AgentApplication struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	AgentID               uint      `gorm:"index;not null" json:"agent_id"`
	StudentID             uint      `gorm:"index;not null" json:"student_id"`
	ProgramID             uint      `gorm:"index;not null" json:"program_id"`
	ApplicationStage      int       `gorm:"default:1" json:"application_stage"`
	PaymentStatus         string    `gorm:"size:20;default:'Unpaid'" json:"payment_status"`
	ApplicationStatus     string    `gorm:"size:30;default:'pending';index" json:"application_status"`
	Intake                string    `gorm:"size:50" json:"intake"`
	ApplicationDate       time.Time `gorm:"autoCreateTime" json:"application_date"`
	ApplicationStatusDate time.Time `json:"application_status_date"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Agent   *Agent        `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	Student *AgentStudent `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Program *Program      `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}

func (AgentApplication) TableName() string {
	return "agent_applications"
}

// Application types
const (
	ApplicationTypeDirect = "direct"
	ApplicationTypeAgent  = "agent"
)

// Application statuses with canned notification copy
const (
	StatusPending           = "pending"
	StatusInReview          = "in_review"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusOnHold            = "on_hold"
	StatusSubmittedToSchool = "submitted_to_school"
	StatusOfferReceived     = "offer_received"
	StatusVisaProcessing    = "visa_processing"
	StatusCancelled         = "cancelled"
)

// Payment statuses
const (
	PaymentUnpaid   = "Unpaid"
	PaymentPaid     = "Paid"
	PaymentRefunded = "refunded"
)

// ============================================================
// Documents
// ============================================================

// Document represents one uploaded file per (owner, documentType).
// Re-uploads overwrite the existing row rather than creating a duplicate.
type Document struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OwnerID      uint           `gorm:"not null;uniqueIndex:idx_owner_doc" json:"owner_id"`
	OwnerType    string         `gorm:"size:20;not null;uniqueIndex:idx_owner_doc" json:"owner_type"`
	DocumentType string         `gorm:"size:50;not null;uniqueIndex:idx_owner_doc" json:"document_type"`
	FileName     string         `gorm:"size:150" json:"file_name"`
	StoragePath  string         `gorm:"size:255;not null" json:"storage_path"`
	Status       string         `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

// Document statuses
const (
	DocStatusPending  = "pending"
	DocStatusApproved = "approved"
	DocStatusRejected = "rejected"
)

// ============================================================
// Wallet ledger
// ============================================================

// Wallet holds one platform balance per (userID, userType)
type Wallet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_wallet_owner" json:"user_id"`
	UserType  string          `gorm:"size:20;not null;uniqueIndex:idx_wallet_owner" json:"user_type"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// WalletTransaction is an immutable ledger entry paired with every balance change
type WalletTransaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	WalletID      uint            `gorm:"index;not null" json:"wallet_id"`
	Type          string          `gorm:"size:30;not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status        string          `gorm:"size:20;not null" json:"status"`
	Reference     string          `gorm:"size:50;index" json:"reference"`
	ApplicationID *uint           `gorm:"index" json:"application_id"`
	Description   string          `gorm:"size:200" json:"description"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Wallet *Wallet `gorm:"foreignKey:WalletID" json:"-"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}

// Wallet transaction types
const (
	WalletTxRefund     = "refund"
	WalletTxCredit     = "credit"
	WalletTxWithdrawal = "withdrawal"
)

// Wallet transaction statuses
const (
	WalletTxCompleted = "Completed"
	WalletTxPending   = "Pending"
)

// ============================================================
// Notifications & audit
// ============================================================

// Notification is an informational record of an event delivered to a user
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	UserType  string    `gorm:"size:20;not null;index" json:"user_type"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Link      string    `gorm:"size:200" json:"link"`
	Priority  string    `gorm:"size:20;default:'normal'" json:"priority"`
	Metadata  string    `gorm:"type:text" json:"metadata"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Notification types
const (
	NotifyTypeApplication = "application"
	NotifyTypeDocument    = "document"
	NotifyTypePayment     = "payment"
	NotifyTypeReminder    = "reminder"
)

// ActivityLog records best-effort audit entries; never authoritative state
type ActivityLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	UserType    string    `gorm:"size:20" json:"user_type"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	EntityType  string    `gorm:"size:50" json:"entity_type"`
	EntityID    uint      `gorm:"index" json:"entity_id"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ============================================================
// Platform config (key-value feature flags)
// ============================================================

// PlatformConfig is a key-value store for runtime flags, editable without deploy
type PlatformConfig struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PlatformConfig) TableName() string {
	return "platform_configs"
}

// Config keys
const (
	ConfigRequireDocumentValidation = "require_document_validation"
	ConfigAgentApplicationDocument  = "agent_application_document"
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Accounts
		&Member{},
		&Agent{},
		&AgentStudent{},
		&RefreshToken{},
		// Catalog
		&Program{},
		// Pipeline
		&Application{},
		&AgentApplication{},
		&Document{},
		// Wallet
		&Wallet{},
		&WalletTransaction{},
		// Side effects
		&Notification{},
		&ActivityLog{},
		// Config
		&PlatformConfig{},
	)
}
