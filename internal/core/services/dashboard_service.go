package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardService handles dashboard aggregation queries
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Account Statistics
	TotalMembers  int64 `json:"total_members"`
	TotalAgents   int64 `json:"total_agents"`
	TotalStudents int64 `json:"total_students"`

	// Application Statistics (both variants combined)
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	InReviewApplications int64 `json:"in_review_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	RejectedApplications int64 `json:"rejected_applications"`

	// Payment Statistics
	PaidApplications     int64 `json:"paid_applications"`
	RefundedApplications int64 `json:"refunded_applications"`

	// Monthly Statistics
	ApplicationsThisMonth int64 `json:"applications_this_month"`

	// Recent Activity
	RecentApplications []ApplicationSummary `json:"recent_applications"`
}

// ApplicationSummary represents a row in the dashboard's recent list
type ApplicationSummary struct {
	ID                uint      `json:"id"`
	ApplicantName     string    `json:"applicant_name"`
	ProgramName       string    `json:"program_name"`
	ApplicationStatus string    `json:"application_status"`
	PaymentStatus     string    `json:"payment_status"`
	CreatedAt         time.Time `json:"created_at"`
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	// Account counts
	s.db.WithContext(ctx).Table("members").Where("deleted_at IS NULL").Count(&data.TotalMembers)
	s.db.WithContext(ctx).Table("agents").Where("deleted_at IS NULL").Count(&data.TotalAgents)
	s.db.WithContext(ctx).Table("agent_students").Where("deleted_at IS NULL").Count(&data.TotalStudents)

	// Application counts across both variants
	data.TotalApplications = s.countBoth(ctx, "", "")
	data.PendingApplications = s.countBoth(ctx, "application_status = ?", "pending")
	data.InReviewApplications = s.countBoth(ctx, "application_status = ?", "in_review")
	data.ApprovedApplications = s.countBoth(ctx, "application_status = ?", "approved")
	data.RejectedApplications = s.countBoth(ctx, "application_status = ?", "rejected")
	data.PaidApplications = s.countBoth(ctx, "payment_status = ?", "Paid")
	data.RefundedApplications = s.countBoth(ctx, "payment_status = ?", "refunded")

	// This month statistics
	startOfMonth := time.Now().AddDate(0, 0, -time.Now().Day()+1).Truncate(24 * time.Hour)
	data.ApplicationsThisMonth = s.countBoth(ctx, "created_at >= ?", startOfMonth)

	// Recent direct applications
	var recent []struct {
		ID                uint
		ApplicantName     string
		ProgramName       string
		ApplicationStatus string
		PaymentStatus     string
		CreatedAt         time.Time
	}
	s.db.WithContext(ctx).Table("applications").
		Select("applications.id, members.full_name as applicant_name, programs.name as program_name, applications.application_status, applications.payment_status, applications.created_at").
		Joins("LEFT JOIN members ON applications.member_id = members.id").
		Joins("LEFT JOIN programs ON applications.program_id = programs.id").
		Order("applications.created_at DESC").
		Limit(10).
		Scan(&recent)

	data.RecentApplications = make([]ApplicationSummary, len(recent))
	for i, a := range recent {
		data.RecentApplications[i] = ApplicationSummary{
			ID:                a.ID,
			ApplicantName:     a.ApplicantName,
			ProgramName:       a.ProgramName,
			ApplicationStatus: a.ApplicationStatus,
			PaymentStatus:     a.PaymentStatus,
			CreatedAt:         a.CreatedAt,
		}
	}

	return data, nil
}

// countBoth sums a count over the direct and agent application tables
func (s *DashboardService) countBoth(ctx context.Context, condition string, value interface{}) int64 {
	var direct, agent int64

	directQuery := s.db.WithContext(ctx).Table("applications")
	agentQuery := s.db.WithContext(ctx).Table("agent_applications")
	if condition != "" {
		directQuery = directQuery.Where(condition, value)
		agentQuery = agentQuery.Where(condition, value)
	}
	directQuery.Count(&direct)
	agentQuery.Count(&agent)

	return direct + agent
}

// ============================================================
// Member Dashboard
// ============================================================

// MemberDashboardData represents a member's dashboard
type MemberDashboardData struct {
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	OffersReceived       int64 `json:"offers_received"`
	UploadedDocuments    int64 `json:"uploaded_documents"`
	UnreadNotifications  int64 `json:"unread_notifications"`

	Applications []ApplicationSummary `json:"applications"`
}

// GetMemberDashboard returns a member's dashboard data
func (s *DashboardService) GetMemberDashboard(ctx context.Context, memberID uint) (*MemberDashboardData, error) {
	data := &MemberDashboardData{}

	s.db.WithContext(ctx).Table("applications").
		Where("member_id = ?", memberID).
		Count(&data.TotalApplications)

	s.db.WithContext(ctx).Table("applications").
		Where("member_id = ? AND application_status = ?", memberID, "pending").
		Count(&data.PendingApplications)

	s.db.WithContext(ctx).Table("applications").
		Where("member_id = ? AND application_status = ?", memberID, "approved").
		Count(&data.ApprovedApplications)

	s.db.WithContext(ctx).Table("applications").
		Where("member_id = ? AND application_status = ?", memberID, "offer_received").
		Count(&data.OffersReceived)

	s.db.WithContext(ctx).Table("documents").
		Where("owner_id = ? AND owner_type = ? AND deleted_at IS NULL", memberID, "member").
		Count(&data.UploadedDocuments)

	s.db.WithContext(ctx).Table("notifications").
		Where("user_id = ? AND user_type = ? AND is_read = ?", memberID, "member", false).
		Count(&data.UnreadNotifications)

	var apps []struct {
		ID                uint
		ProgramName       string
		ApplicationStatus string
		PaymentStatus     string
		CreatedAt         time.Time
	}
	s.db.WithContext(ctx).Table("applications").
		Select("applications.id, programs.name as program_name, applications.application_status, applications.payment_status, applications.created_at").
		Joins("LEFT JOIN programs ON applications.program_id = programs.id").
		Where("applications.member_id = ?", memberID).
		Order("applications.created_at DESC").
		Scan(&apps)

	data.Applications = make([]ApplicationSummary, len(apps))
	for i, a := range apps {
		data.Applications[i] = ApplicationSummary{
			ID:                a.ID,
			ProgramName:       a.ProgramName,
			ApplicationStatus: a.ApplicationStatus,
			PaymentStatus:     a.PaymentStatus,
			CreatedAt:         a.CreatedAt,
		}
	}

	return data, nil
}

// ============================================================
// Agent Dashboard
// ============================================================

// AgentDashboardData represents an agent's dashboard
type AgentDashboardData struct {
	TotalStudents        int64 `json:"total_students"`
	TotalApplications    int64 `json:"total_applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	UnreadNotifications  int64 `json:"unread_notifications"`

	Applications []ApplicationSummary `json:"applications"`
}

// GetAgentDashboard returns an agent's dashboard data
func (s *DashboardService) GetAgentDashboard(ctx context.Context, agentID uint) (*AgentDashboardData, error) {
	data := &AgentDashboardData{}

	s.db.WithContext(ctx).Table("agent_students").
		Where("agent_id = ? AND deleted_at IS NULL", agentID).
		Count(&data.TotalStudents)

	s.db.WithContext(ctx).Table("agent_applications").
		Where("agent_id = ?", agentID).
		Count(&data.TotalApplications)

	s.db.WithContext(ctx).Table("agent_applications").
		Where("agent_id = ? AND application_status = ?", agentID, "pending").
		Count(&data.PendingApplications)

	s.db.WithContext(ctx).Table("agent_applications").
		Where("agent_id = ? AND application_status = ?", agentID, "approved").
		Count(&data.ApprovedApplications)

	s.db.WithContext(ctx).Table("notifications").
		Where("user_id = ? AND user_type = ? AND is_read = ?", agentID, "agent", false).
		Count(&data.UnreadNotifications)

	var apps []struct {
		ID                uint
		ApplicantName     string
		ProgramName       string
		ApplicationStatus string
		PaymentStatus     string
		CreatedAt         time.Time
	}
	s.db.WithContext(ctx).Table("agent_applications").
		Select("agent_applications.id, agent_students.full_name as applicant_name, programs.name as program_name, agent_applications.application_status, agent_applications.payment_status, agent_applications.created_at").
		Joins("LEFT JOIN agent_students ON agent_applications.student_id = agent_students.id").
		Joins("LEFT JOIN programs ON agent_applications.program_id = programs.id").
		Where("agent_applications.agent_id = ?", agentID).
		Order("agent_applications.created_at DESC").
		Scan(&apps)

	data.Applications = make([]ApplicationSummary, len(apps))
	for i, a := range apps {
		data.Applications[i] = ApplicationSummary{
			ID:                a.ID,
			ApplicantName:     a.ApplicantName,
			ProgramName:       a.ProgramName,
			ApplicationStatus: a.ApplicationStatus,
			PaymentStatus:     a.PaymentStatus,
			CreatedAt:         a.CreatedAt,
		}
	}

	return data, nil
}
