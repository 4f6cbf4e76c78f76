package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Status catalog
// ============================================================

type statusCopy struct {
	Title   string
	Message string
}

// statusNotificationCopy holds the canned copy sent when an application
// enters one of the well-known statuses. The status itself is free-form;
// the catalog only enriches the copy for the statuses we recognize.
var statusNotificationCopy = map[string]statusCopy{
	models.StatusPending:           {"Application Received", "Your application has been received and is awaiting review."},
	models.StatusInReview:          {"Application In Review", "Your application is now being reviewed by our team."},
	models.StatusApproved:          {"Application Approved!", "Congratulations! Your application has been approved."},
	models.StatusRejected:          {"Application Update", "Unfortunately your application was not successful this time."},
	models.StatusOnHold:            {"Application On Hold", "Your application has been placed on hold while we gather more information."},
	models.StatusSubmittedToSchool: {"Submitted To School", "Your application has been submitted to the school for a decision."},
	models.StatusOfferReceived:     {"Offer Received!", "Great news! The school has made an offer on your application."},
	models.StatusVisaProcessing:    {"Visa Processing", "Your application has moved to the visa processing stage."},
	models.StatusCancelled:         {"Application Cancelled", "Your application has been cancelled."},
}

// copyForStatus falls back to generic copy for uncatalogued statuses
func copyForStatus(status string) statusCopy {
	if tmpl, known := statusNotificationCopy[status]; known {
		return tmpl
	}
	return statusCopy{
		Title:   "Application Updated",
		Message: fmt.Sprintf("Your application status has been updated to %s.", status),
	}
}

func isValidPaymentStatus(status string) bool {
	switch status {
	case models.PaymentUnpaid, models.PaymentPaid, models.PaymentRefunded:
		return true
	}
	return false
}

// ============================================================
// Owner adapters
// ============================================================

// applicationView is the owner-independent projection the transition
// engine works on. Each adapter fills it from its own table.
type applicationView struct {
	ID                uint
	OwnerName         string
	OwnerEmail        string
	NotifyUserID      uint
	NotifyUserType    string
	WalletUserID      uint
	WalletUserType    string
	ApplicationFee    decimal.Decimal
	ApplicationStatus string
	PaymentStatus     string
	Record            interface{}
}

// ownerAdapter abstracts the two application variants (direct member,
// agent-managed student) so the transition engine is written once.
type ownerAdapter interface {
	entity() string
	load(tx *gorm.DB, id uint) (*applicationView, error)
	update(tx *gorm.DB, id uint, updates map[string]interface{}) error
}

func adapterFor(applicationType string) (ownerAdapter, bool) {
	switch applicationType {
	case models.ApplicationTypeDirect:
		return directAdapter{}, true
	case models.ApplicationTypeAgent:
		return agentAdapter{}, true
	}
	return nil, false
}

type directAdapter struct{}

func (directAdapter) entity() string { return "application" }

func (directAdapter) load(tx *gorm.DB, id uint) (*applicationView, error) {
	var app models.Application
	if err := tx.Preload("Member").Preload("Program").First(&app, id).Error; err != nil {
		return nil, err
	}

	view := &applicationView{
		ID:                app.ID,
		NotifyUserID:      app.MemberID,
		NotifyUserType:    models.UserTypeMember,
		WalletUserID:      app.MemberID,
		WalletUserType:    models.UserTypeMember,
		ApplicationStatus: app.ApplicationStatus,
		PaymentStatus:     app.PaymentStatus,
		Record:            &app,
	}
	if app.Member != nil {
		view.OwnerName = app.Member.FullName
		view.OwnerEmail = app.Member.Email
	}
	if app.Program != nil {
		view.ApplicationFee = app.Program.ApplicationFee
	}
	return view, nil
}

func (directAdapter) update(tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return tx.Model(&models.Application{}).Where("id = ?", id).Updates(updates).Error
}

type agentAdapter struct{}

func (agentAdapter) entity() string { return "agent_application" }

// Refunds for agent applications credit the agent's wallet since the
// agent paid the fee, and the agent is the notification target.
func (agentAdapter) load(tx *gorm.DB, id uint) (*applicationView, error) {
	var app models.AgentApplication
	if err := tx.Preload("Agent").Preload("Student").Preload("Program").First(&app, id).Error; err != nil {
		return nil, err
	}

	view := &applicationView{
		ID:                app.ID,
		NotifyUserID:      app.AgentID,
		NotifyUserType:    models.UserTypeAgent,
		WalletUserID:      app.AgentID,
		WalletUserType:    models.UserTypeAgent,
		ApplicationStatus: app.ApplicationStatus,
		PaymentStatus:     app.PaymentStatus,
		Record:            &app,
	}
	if app.Student != nil {
		view.OwnerName = app.Student.FullName
	}
	if app.Agent != nil {
		view.OwnerEmail = app.Agent.Email
	}
	if app.Program != nil {
		view.ApplicationFee = app.Program.ApplicationFee
	}
	return view, nil
}

func (agentAdapter) update(tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return tx.Model(&models.AgentApplication{}).Where("id = ?", id).Updates(updates).Error
}

// ============================================================
// Service
// ============================================================

// ApplicationService owns the application lifecycle: initiation with
// profile and document gates, the status transition engine, and refunds.
type ApplicationService struct {
	db              *gorm.DB
	appRepo         *repositories.ApplicationRepository
	agentAppRepo    *repositories.AgentApplicationRepository
	memberRepo      *repositories.MemberRepository
	agentRepo       *repositories.AgentRepository
	studentRepo     *repositories.AgentStudentRepository
	programRepo     *repositories.ProgramRepository
	configRepo      *repositories.ConfigRepository
	activityRepo    *repositories.ActivityLogRepository
	documentService *DocumentService
	notifyService   *NotifyService
	emailService    *EmailService
}

// NewApplicationService creates a new application service
func NewApplicationService(
	db *gorm.DB,
	appRepo *repositories.ApplicationRepository,
	agentAppRepo *repositories.AgentApplicationRepository,
	memberRepo *repositories.MemberRepository,
	agentRepo *repositories.AgentRepository,
	studentRepo *repositories.AgentStudentRepository,
	programRepo *repositories.ProgramRepository,
	configRepo *repositories.ConfigRepository,
	activityRepo *repositories.ActivityLogRepository,
	documentService *DocumentService,
	notifyService *NotifyService,
	emailService *EmailService,
) *ApplicationService {
	return &ApplicationService{
		db:              db,
		appRepo:         appRepo,
		agentAppRepo:    agentAppRepo,
		memberRepo:      memberRepo,
		agentRepo:       agentRepo,
		studentRepo:     studentRepo,
		programRepo:     programRepo,
		configRepo:      configRepo,
		activityRepo:    activityRepo,
		documentService: documentService,
		notifyService:   notifyService,
		emailService:    emailService,
	}
}

// ============================================================
// Status transition engine
// ============================================================

// UpdateStatusInput carries a partial status update; nil fields are untouched
type UpdateStatusInput struct {
	ApplicationStatus *string `json:"application_status"`
	PaymentStatus     *string `json:"payment_status"`
	ApplicationStage  *int    `json:"application_stage"`
	Intake            *string `json:"intake"`
}

// UpdateStatus applies a status transition to one application. The record
// update, refund credit, and ledger entry commit in a single transaction;
// notifications and emails are buffered and dispatched only after commit.
//
// A transition to payment status "refunded" credits the application fee to
// the payer's wallet exactly once (subsequent refunded updates are no-ops)
// and, when no explicit application status accompanies it, cancels the
// application.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationType string, applicationID uint, input *UpdateStatusInput) *Result {
	adapter, known := adapterFor(applicationType)
	if !known {
		return fail(fiber.StatusBadRequest, "Invalid application type")
	}

	if input.PaymentStatus != nil && !isValidPaymentStatus(*input.PaymentStatus) {
		return fail(fiber.StatusBadRequest, "Invalid payment status")
	}

	var view *applicationView
	var box outbox

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := adapter.load(tx, applicationID)
		if err != nil {
			return err
		}

		// Every update stamps the status date, even a no-op one.
		updates := map[string]interface{}{
			"application_status_date": time.Now(),
		}
		newStatus := loaded.ApplicationStatus
		statusChanged := false
		var changes []string

		if input.ApplicationStatus != nil && *input.ApplicationStatus != loaded.ApplicationStatus {
			updates["application_status"] = *input.ApplicationStatus
			newStatus = *input.ApplicationStatus
			statusChanged = true
		}
		if input.ApplicationStage != nil {
			updates["application_stage"] = *input.ApplicationStage
			changes = append(changes, fmt.Sprintf("application stage set to %d", *input.ApplicationStage))
		}
		if input.Intake != nil {
			updates["intake"] = *input.Intake
			changes = append(changes, "intake set to "+*input.Intake)
		}

		refund := false
		if input.PaymentStatus != nil && *input.PaymentStatus != loaded.PaymentStatus {
			updates["payment_status"] = *input.PaymentStatus
			refund = *input.PaymentStatus == models.PaymentRefunded
			changes = append(changes, fmt.Sprintf("payment status changed from %s to %s", loaded.PaymentStatus, *input.PaymentStatus))
		}

		if refund {
			// A refund with no explicit target status cancels the application.
			if input.ApplicationStatus == nil && loaded.ApplicationStatus != models.StatusCancelled {
				updates["application_status"] = models.StatusCancelled
				newStatus = models.StatusCancelled
				statusChanged = true
			}

			// The wallet credit needs a positive fee; the refund
			// notification goes out either way.
			if loaded.ApplicationFee.IsPositive() {
				if err := s.creditRefund(tx, adapter, loaded); err != nil {
					return err
				}
			}
			box.notify(models.Notification{
				UserID:   loaded.NotifyUserID,
				UserType: loaded.NotifyUserType,
				Type:     models.NotifyTypePayment,
				Title:    "Refund Processed",
				Message:  fmt.Sprintf("Your application fee of %s has been refunded to your wallet.", loaded.ApplicationFee.StringFixed(2)),
				Link:     "/wallet",
			})
			box.email(loaded.OwnerEmail, "Refund Processed", "wallet_refund", map[string]interface{}{
				"name":   loaded.OwnerName,
				"amount": loaded.ApplicationFee.StringFixed(2),
			})
		}

		if statusChanged {
			changes = append([]string{fmt.Sprintf("application status changed from %s to %s", loaded.ApplicationStatus, newStatus)}, changes...)
		}

		if err := adapter.update(tx, applicationID, updates); err != nil {
			return err
		}

		// Audit trail is best effort and never blocks the update.
		if len(changes) > 0 {
			entry := &models.ActivityLog{
				UserID:      loaded.NotifyUserID,
				UserType:    loaded.NotifyUserType,
				Action:      "status_change",
				EntityType:  adapter.entity(),
				EntityID:    loaded.ID,
				Description: strings.Join(changes, "; "),
			}
			if err := tx.Create(entry).Error; err != nil {
				log.Printf("⚠️ Failed to write activity log for %s %d: %v", adapter.entity(), loaded.ID, err)
			}
		}

		if statusChanged {
			tmpl := copyForStatus(newStatus)
			box.notify(models.Notification{
				UserID:   loaded.NotifyUserID,
				UserType: loaded.NotifyUserType,
				Type:     models.NotifyTypeApplication,
				Title:    tmpl.Title,
				Message:  tmpl.Message,
				Link:     fmt.Sprintf("/applications/%d", loaded.ID),
			})
			box.email(loaded.OwnerEmail, tmpl.Title, "application_status", map[string]interface{}{
				"name":    loaded.OwnerName,
				"status":  newStatus,
				"message": tmpl.Message,
			})
		}

		// Reload so the response reflects the committed row.
		view, err = adapter.load(tx, applicationID)
		return err
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(fiber.StatusNotFound, "Application not found")
		}
		log.Printf("❌ Failed to update %s %d: %v", adapter.entity(), applicationID, err)
		return internalError(err)
	}

	box.dispatch(ctx, s.notifyService, s.emailService)

	return ok(fiber.StatusOK, "Application updated successfully", view.Record)
}

// creditRefund credits the application fee back to the payer's wallet
func (s *ApplicationService) creditRefund(tx *gorm.DB, adapter ownerAdapter, loaded *applicationView) error {
	wallet, err := repositories.FindOrCreateWalletTx(tx, loaded.WalletUserID, loaded.WalletUserType)
	if err != nil {
		return err
	}

	appID := loaded.ID
	entry := &models.WalletTransaction{
		Type:          models.WalletTxRefund,
		Amount:        loaded.ApplicationFee,
		Status:        models.WalletTxCompleted,
		Reference:     "RF-" + uuid.NewString(),
		ApplicationID: &appID,
		Description:   fmt.Sprintf("Application fee refund (%s #%d)", adapter.entity(), loaded.ID),
	}
	return repositories.CreditTx(tx, wallet, entry)
}

// ============================================================
// Initiation
// ============================================================

// InitiateApplicationInput starts a direct application
type InitiateApplicationInput struct {
	ProgramID uint   `json:"program_id"`
	Intake    string `json:"intake"`
}

// InitiateDirect starts an application for a member. The member's profile
// must be complete, and when the require_document_validation flag is on,
// the category checklist must be complete too.
func (s *ApplicationService) InitiateDirect(ctx context.Context, memberID uint, input *InitiateApplicationInput) *Result {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(fiber.StatusNotFound, "Member not found")
		}
		return internalError(err)
	}

	if missing := missingProfileFields(memberProfile(member)); len(missing) > 0 {
		return failWithDetails(fiber.StatusBadRequest, "Please complete your profile before applying", &PreconditionDetails{
			Title:   "Profile Incomplete",
			Missing: missing,
			Help:    "Update your profile from the settings page, then try again.",
		})
	}

	program, result := s.loadOpenProgram(ctx, input.ProgramID)
	if result != nil {
		return result
	}

	if s.configRepo.GetBool(ctx, models.ConfigRequireDocumentValidation, true) {
		if result := s.documentGate(ctx, memberID, models.UserTypeMember, program.Category); result != nil {
			return result
		}
	}

	exists, err := s.appRepo.ExistsActive(ctx, memberID, input.ProgramID)
	if err != nil {
		return internalError(err)
	}
	if exists {
		return fail(fiber.StatusConflict, "You already have an active application for this program")
	}

	app := &models.Application{
		MemberID:              memberID,
		ProgramID:             input.ProgramID,
		ApplicationStage:      1,
		PaymentStatus:         models.PaymentUnpaid,
		ApplicationStatus:     models.StatusPending,
		Intake:                input.Intake,
		ApplicationStatusDate: time.Now(),
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		log.Printf("❌ Failed to create application for member %d: %v", memberID, err)
		return internalError(err)
	}

	s.announceCreated(ctx, app.ID, member.FullName, member.Email, memberID, models.UserTypeMember, program.Name)

	created, err := s.appRepo.GetByID(ctx, app.ID)
	if err != nil {
		return ok(fiber.StatusCreated, "Application submitted successfully", app)
	}
	return ok(fiber.StatusCreated, "Application submitted successfully", created)
}

// InitiateAgentApplicationInput starts an agent application for a managed student
type InitiateAgentApplicationInput struct {
	StudentID uint   `json:"student_id"`
	ProgramID uint   `json:"program_id"`
	Intake    string `json:"intake"`
}

// InitiateAgent starts an application on behalf of a managed student. The
// student's profile must be complete; the document gate runs only when the
// agent_application_document flag is on.
func (s *ApplicationService) InitiateAgent(ctx context.Context, agentID uint, input *InitiateAgentApplicationInput) *Result {
	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(fiber.StatusNotFound, "Student not found")
		}
		return internalError(err)
	}
	if student.AgentID != agentID {
		// Do not reveal other agents' students.
		return fail(fiber.StatusNotFound, "Student not found")
	}

	if missing := missingProfileFields(studentProfile(student)); len(missing) > 0 {
		return failWithDetails(fiber.StatusBadRequest, "Please complete the student's profile before applying", &PreconditionDetails{
			Title:   "Student Profile Incomplete",
			Missing: missing,
			Help:    "Update the student's profile, then try again.",
		})
	}

	program, result := s.loadOpenProgram(ctx, input.ProgramID)
	if result != nil {
		return result
	}

	if s.configRepo.GetBool(ctx, models.ConfigAgentApplicationDocument, false) {
		if result := s.documentGate(ctx, input.StudentID, models.UserTypeStudent, program.Category); result != nil {
			return result
		}
	}

	exists, err := s.agentAppRepo.ExistsActiveForStudent(ctx, input.StudentID, input.ProgramID)
	if err != nil {
		return internalError(err)
	}
	if exists {
		return fail(fiber.StatusConflict, "This student already has an active application for this program")
	}

	app := &models.AgentApplication{
		AgentID:               agentID,
		StudentID:             input.StudentID,
		ProgramID:             input.ProgramID,
		ApplicationStage:      1,
		PaymentStatus:         models.PaymentUnpaid,
		ApplicationStatus:     models.StatusPending,
		Intake:                input.Intake,
		ApplicationStatusDate: time.Now(),
	}
	if err := s.agentAppRepo.Create(ctx, app); err != nil {
		log.Printf("❌ Failed to create agent application for student %d: %v", input.StudentID, err)
		return internalError(err)
	}

	agentEmail := ""
	agentName := student.FullName
	if agent, err := s.agentRepo.GetByID(ctx, agentID); err == nil {
		agentEmail = agent.Email
		agentName = agent.AgencyName
	}
	s.announceCreated(ctx, app.ID, agentName, agentEmail, agentID, models.UserTypeAgent, program.Name)

	created, err := s.agentAppRepo.GetByID(ctx, app.ID)
	if err != nil {
		return ok(fiber.StatusCreated, "Application submitted successfully", app)
	}
	return ok(fiber.StatusCreated, "Application submitted successfully", created)
}

// loadOpenProgram loads a program and rejects inactive ones
func (s *ApplicationService) loadOpenProgram(ctx context.Context, programID uint) (*models.Program, *Result) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(fiber.StatusNotFound, "Program not found")
		}
		return nil, internalError(err)
	}
	if !program.IsActive {
		return nil, fail(fiber.StatusBadRequest, "Program is not open for applications")
	}
	return program, nil
}

// documentGate returns a failure Result when the checklist is incomplete
func (s *ApplicationService) documentGate(ctx context.Context, ownerID uint, ownerType, category string) *Result {
	status, err := s.documentService.completeness(ctx, ownerID, ownerType, category)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			return fail(fiber.StatusBadRequest, "Invalid program category")
		}
		return internalError(err)
	}
	if !status.IsComplete {
		return failWithDetails(fiber.StatusBadRequest, "Please upload all required documents before applying", &PreconditionDetails{
			Title:   "Documents Incomplete",
			Missing: status.MissingDocs,
			Note:    "Uploaded documents are reviewed within 2 business days.",
			Help:    "Upload the missing documents from the documents page, then try again.",
		})
	}
	return nil
}

// announceCreated dispatches the post-creation notification and email
func (s *ApplicationService) announceCreated(ctx context.Context, appID uint, name, email string, userID uint, userType, programName string) {
	var box outbox
	tmpl := statusNotificationCopy[models.StatusPending]
	box.notify(models.Notification{
		UserID:   userID,
		UserType: userType,
		Type:     models.NotifyTypeApplication,
		Title:    tmpl.Title,
		Message:  tmpl.Message,
		Link:     fmt.Sprintf("/applications/%d", appID),
	})
	box.email(email, tmpl.Title, "application_created", map[string]interface{}{
		"name":    name,
		"program": programName,
	})
	box.dispatch(ctx, s.notifyService, s.emailService)
}

// ============================================================
// Queries
// ============================================================

// GetDirectByID gets a direct application with its relations
func (s *ApplicationService) GetDirectByID(ctx context.Context, id uint) (*models.Application, error) {
	return s.appRepo.GetByID(ctx, id)
}

// GetAgentByID gets an agent application with its relations
func (s *ApplicationService) GetAgentByID(ctx context.Context, id uint) (*models.AgentApplication, error) {
	return s.agentAppRepo.GetByID(ctx, id)
}

// ListForMember lists a member's applications, newest first
func (s *ApplicationService) ListForMember(ctx context.Context, memberID uint) ([]*models.Application, error) {
	return s.appRepo.GetByMemberID(ctx, memberID)
}

// ListForAgent lists an agent's submitted applications, newest first
func (s *ApplicationService) ListForAgent(ctx context.Context, agentID uint) ([]*models.AgentApplication, error) {
	return s.agentAppRepo.GetByAgentID(ctx, agentID)
}

// ListAll lists applications of one variant for the admin console
func (s *ApplicationService) ListAll(ctx context.Context, applicationType, status string, offset, limit int) (interface{}, int64, error) {
	switch applicationType {
	case models.ApplicationTypeDirect:
		return listAsAny(s.appRepo.List(ctx, status, offset, limit))
	case models.ApplicationTypeAgent:
		return listAsAny(s.agentAppRepo.List(ctx, status, offset, limit))
	}
	return nil, 0, domain.ErrInvalidApplicationType
}

func listAsAny[T any](items []T, total int64, err error) (interface{}, int64, error) {
	return items, total, err
}

// GetHistory gets the audit trail for one application
func (s *ApplicationService) GetHistory(ctx context.Context, applicationType string, id uint) ([]*models.ActivityLog, error) {
	adapter, known := adapterFor(applicationType)
	if !known {
		return nil, domain.ErrInvalidApplicationType
	}
	return s.activityRepo.GetByEntity(ctx, adapter.entity(), id)
}
