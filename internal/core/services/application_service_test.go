package services

import (
	"context"
	"testing"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDirectApplication(t *testing.T, db *gorm.DB, memberID, programID uint, paymentStatus string) *models.Application {
	t.Helper()

	app := &models.Application{
		MemberID:          memberID,
		ProgramID:         programID,
		ApplicationStage:  1,
		PaymentStatus:     paymentStatus,
		ApplicationStatus: models.StatusPending,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func TestUpdateStatus_InvalidInputs(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	t.Run("UnknownApplicationType", func(t *testing.T) {
		result := svc.UpdateStatus(ctx, "phone", 1, &UpdateStatusInput{})
		assert.False(t, result.Success)
		assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
		assert.Equal(t, "Invalid application type", result.Message)
	})

	t.Run("UnknownPaymentStatus", func(t *testing.T) {
		result := svc.UpdateStatus(ctx, models.ApplicationTypeDirect, 1, &UpdateStatusInput{
			PaymentStatus: strPtr("maybe"),
		})
		assert.False(t, result.Success)
		assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
		assert.Equal(t, "Invalid payment status", result.Message)
	})

	t.Run("MissingApplication", func(t *testing.T) {
		result := svc.UpdateStatus(ctx, models.ApplicationTypeDirect, 999, &UpdateStatusInput{
			ApplicationStatus: strPtr(models.StatusApproved),
		})
		assert.False(t, result.Success)
		assert.Equal(t, fiber.StatusNotFound, result.StatusCode)
		assert.Equal(t, "Application not found", result.Message)
	})
}

func TestUpdateStatus_ApprovedNotifiesOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	app := seedDirectApplication(t, db, member.ID, program.ID, models.PaymentPaid)

	result := svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		ApplicationStatus: strPtr(models.StatusApproved),
	})
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusOK, result.StatusCode)
	assert.Equal(t, "Application updated successfully", result.Message)

	var updated models.Application
	require.NoError(t, db.First(&updated, app.ID).Error)
	assert.Equal(t, models.StatusApproved, updated.ApplicationStatus)
	assert.False(t, updated.ApplicationStatusDate.IsZero())

	assert.EqualValues(t, 1, countNotifications(t, db, "Application Approved!"))

	var logs []models.ActivityLog
	require.NoError(t, db.Where("entity_type = ? AND entity_id = ?", "application", app.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "status_change", logs[0].Action)

	// Re-applying the same status is a no-op and sends nothing new.
	result = svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		ApplicationStatus: strPtr(models.StatusApproved),
	})
	require.True(t, result.Success)
	assert.EqualValues(t, 1, countNotifications(t, db, "Application Approved!"))
}

func TestUpdateStatus_UncataloguedStatusGetsGenericCopy(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	app := seedDirectApplication(t, db, member.ID, program.ID, models.PaymentPaid)

	// The status is free-form; values outside the copy catalog still apply.
	result := svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		ApplicationStatus: strPtr("deferred"),
	})
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusOK, result.StatusCode)

	var updated models.Application
	require.NoError(t, db.First(&updated, app.ID).Error)
	assert.Equal(t, "deferred", updated.ApplicationStatus)

	var note models.Notification
	require.NoError(t, db.Where("title = ?", "Application Updated").First(&note).Error)
	assert.Contains(t, note.Message, "deferred")
}

func TestUpdateStatus_PaymentOnlyUpdateIsAudited(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	app := seedDirectApplication(t, db, member.ID, program.ID, models.PaymentUnpaid)

	result := svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		PaymentStatus: strPtr(models.PaymentPaid),
	})
	require.True(t, result.Success)

	// Marking an application paid leaves an audit row even though the
	// application status itself did not move.
	var logs []models.ActivityLog
	require.NoError(t, db.Where("entity_type = ? AND entity_id = ?", "application", app.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Description, models.PaymentUnpaid)
	assert.Contains(t, logs[0].Description, models.PaymentPaid)

	// No status change, no status notification.
	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	assert.Empty(t, notifications)
}

func TestUpdateStatus_RefundCreditsWalletOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	walletRepo := repositories.NewWalletRepository(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	app := seedDirectApplication(t, db, member.ID, program.ID, models.PaymentPaid)

	result := svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		PaymentStatus: strPtr(models.PaymentRefunded),
	})
	require.True(t, result.Success)

	var updated models.Application
	require.NoError(t, db.First(&updated, app.ID).Error)
	assert.Equal(t, models.PaymentRefunded, updated.PaymentStatus)
	// A refund without an explicit target status cancels the application.
	assert.Equal(t, models.StatusCancelled, updated.ApplicationStatus)

	wallet, err := walletRepo.GetByOwner(ctx, member.ID, models.UserTypeMember)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(150)), "balance = %s", wallet.Balance)

	entries, err := walletRepo.GetTransactions(ctx, wallet.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.WalletTxRefund, entries[0].Type)
	require.NotNil(t, entries[0].ApplicationID)
	assert.Equal(t, app.ID, *entries[0].ApplicationID)

	assert.EqualValues(t, 1, countNotifications(t, db, "Refund Processed"))

	// A second refunded update must not credit again.
	result = svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		PaymentStatus: strPtr(models.PaymentRefunded),
	})
	require.True(t, result.Success)

	wallet, err = walletRepo.GetByOwner(ctx, member.ID, models.UserTypeMember)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(150)))
	assert.EqualValues(t, 1, countNotifications(t, db, "Refund Processed"))
}

func TestUpdateStatus_FreeProgramRefundSkipsCredit(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 0)
	app := seedDirectApplication(t, db, member.ID, program.ID, models.PaymentPaid)

	result := svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		PaymentStatus: strPtr(models.PaymentRefunded),
	})
	require.True(t, result.Success)

	// Nothing to credit, but the owner still hears about the refund.
	var entries []models.WalletTransaction
	require.NoError(t, db.Find(&entries).Error)
	assert.Empty(t, entries)
	assert.EqualValues(t, 1, countNotifications(t, db, "Refund Processed"))
}

func TestUpdateStatus_RefundRollsBackAtomically(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	app := seedDirectApplication(t, db, member.ID, program.ID, models.PaymentPaid)

	// Break the ledger so the refund credit fails mid-transaction.
	require.NoError(t, db.Migrator().DropTable(&models.WalletTransaction{}))

	result := svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		PaymentStatus: strPtr(models.PaymentRefunded),
	})
	assert.False(t, result.Success)
	assert.Equal(t, fiber.StatusInternalServerError, result.StatusCode)

	var updated models.Application
	require.NoError(t, db.First(&updated, app.ID).Error)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, models.StatusPending, updated.ApplicationStatus)

	// Rolled back side effects are dropped, not delivered.
	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	assert.Empty(t, notifications)
}

func TestUpdateStatus_AgentRefundCreditsAgentWallet(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	walletRepo := repositories.NewWalletRepository(db)
	ctx := context.Background()

	agent := seedAgent(t, db)
	student := seedStudent(t, db, agent.ID, true)
	program := seedProgram(t, db, models.CategoryPostgraduate, 200)

	app := &models.AgentApplication{
		AgentID:           agent.ID,
		StudentID:         student.ID,
		ProgramID:         program.ID,
		ApplicationStage:  2,
		PaymentStatus:     models.PaymentPaid,
		ApplicationStatus: models.StatusInReview,
	}
	require.NoError(t, db.Create(app).Error)

	result := svc.UpdateStatus(ctx, models.ApplicationTypeAgent, app.ID, &UpdateStatusInput{
		PaymentStatus: strPtr(models.PaymentRefunded),
	})
	require.True(t, result.Success)

	// The agent paid the fee, so the agent gets the refund.
	wallet, err := walletRepo.GetByOwner(ctx, agent.ID, models.UserTypeAgent)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(200)))

	var studentWallet models.Wallet
	err = db.Where("user_id = ? AND user_type = ?", student.ID, models.UserTypeStudent).First(&studentWallet).Error
	assert.Error(t, err)
}

func TestInitiateDirect_ProfileGate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, false)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)

	result := svc.InitiateDirect(ctx, member.ID, &InitiateApplicationInput{ProgramID: program.ID})
	assert.False(t, result.Success)
	assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "Please complete your profile before applying", result.Message)

	details, isDetails := result.Details.(*PreconditionDetails)
	require.True(t, isDetails)
	assert.Equal(t, "Profile Incomplete", details.Title)
	assert.Len(t, details.Missing, 11)
	assert.Equal(t, "phone", details.Missing[0])
}

func TestInitiateDirect_DocumentGate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)

	result := svc.InitiateDirect(ctx, member.ID, &InitiateApplicationInput{ProgramID: program.ID})
	assert.False(t, result.Success)
	assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "Please upload all required documents before applying", result.Message)

	details, isDetails := result.Details.(*PreconditionDetails)
	require.True(t, isDetails)
	assert.Equal(t, "Documents Incomplete", details.Title)
	assert.Equal(t, requiredDocuments[models.CategoryUndergraduate], details.Missing)
}

func TestInitiateDirect_DocumentGateDisabledByFlag(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	configRepo := repositories.NewConfigRepository(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	require.NoError(t, configRepo.Set(ctx, models.ConfigRequireDocumentValidation, "false"))

	result := svc.InitiateDirect(ctx, member.ID, &InitiateApplicationInput{ProgramID: program.ID, Intake: "September"})
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusCreated, result.StatusCode)
}

func TestInitiateDirect_SuccessAndDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	uploadChecklist(t, db, member.ID, models.UserTypeMember, models.CategoryUndergraduate)

	result := svc.InitiateDirect(ctx, member.ID, &InitiateApplicationInput{ProgramID: program.ID, Intake: "September"})
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusCreated, result.StatusCode)
	assert.Equal(t, "Application submitted successfully", result.Message)

	var app models.Application
	require.NoError(t, db.Where("member_id = ?", member.ID).First(&app).Error)
	assert.Equal(t, models.StatusPending, app.ApplicationStatus)
	assert.Equal(t, models.PaymentUnpaid, app.PaymentStatus)
	assert.Equal(t, 1, app.ApplicationStage)
	assert.False(t, app.ApplicationStatusDate.IsZero())

	assert.EqualValues(t, 1, countNotifications(t, db, "Application Received"))

	// One active application per (member, program).
	result = svc.InitiateDirect(ctx, member.ID, &InitiateApplicationInput{ProgramID: program.ID, Intake: "January"})
	assert.False(t, result.Success)
	assert.Equal(t, fiber.StatusConflict, result.StatusCode)
	assert.Equal(t, "You already have an active application for this program", result.Message)

	// A cancelled application frees the slot.
	require.NoError(t, db.Model(&models.Application{}).Where("id = ?", app.ID).
		Update("application_status", models.StatusCancelled).Error)
	result = svc.InitiateDirect(ctx, member.ID, &InitiateApplicationInput{ProgramID: program.ID, Intake: "January"})
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusCreated, result.StatusCode)
}

func TestInitiateDirect_ClosedProgram(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	require.NoError(t, db.Model(&models.Program{}).Where("id = ?", program.ID).Update("is_active", false).Error)

	result := svc.InitiateDirect(ctx, member.ID, &InitiateApplicationInput{ProgramID: program.ID})
	assert.False(t, result.Success)
	assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "Program is not open for applications", result.Message)

	result = svc.InitiateDirect(ctx, member.ID, &InitiateApplicationInput{ProgramID: 999})
	assert.Equal(t, fiber.StatusNotFound, result.StatusCode)
	assert.Equal(t, "Program not found", result.Message)
}

func TestInitiateAgent_DocumentGateOffByDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	agent := seedAgent(t, db)
	student := seedStudent(t, db, agent.ID, true)
	program := seedProgram(t, db, models.CategoryPostgraduate, 200)

	// No documents uploaded; the agent gate defaults to off.
	result := svc.InitiateAgent(ctx, agent.ID, &InitiateAgentApplicationInput{
		StudentID: student.ID,
		ProgramID: program.ID,
		Intake:    "October",
	})
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusCreated, result.StatusCode)

	var app models.AgentApplication
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&app).Error)
	assert.Equal(t, agent.ID, app.AgentID)
	assert.Equal(t, models.StatusPending, app.ApplicationStatus)
}

func TestInitiateAgent_DocumentGateEnabledByFlag(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	configRepo := repositories.NewConfigRepository(db)
	ctx := context.Background()

	agent := seedAgent(t, db)
	student := seedStudent(t, db, agent.ID, true)
	program := seedProgram(t, db, models.CategoryPostgraduate, 200)
	require.NoError(t, configRepo.Set(ctx, models.ConfigAgentApplicationDocument, "true"))

	result := svc.InitiateAgent(ctx, agent.ID, &InitiateAgentApplicationInput{
		StudentID: student.ID,
		ProgramID: program.ID,
	})
	assert.False(t, result.Success)
	assert.Equal(t, fiber.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "Please upload all required documents before applying", result.Message)

	uploadChecklist(t, db, student.ID, models.UserTypeStudent, models.CategoryPostgraduate)
	result = svc.InitiateAgent(ctx, agent.ID, &InitiateAgentApplicationInput{
		StudentID: student.ID,
		ProgramID: program.ID,
	})
	require.True(t, result.Success)
	assert.Equal(t, fiber.StatusCreated, result.StatusCode)
}

func TestInitiateAgent_CrossAgentStudentHidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	owner := seedAgent(t, db)
	student := seedStudent(t, db, owner.ID, true)
	program := seedProgram(t, db, models.CategoryPostgraduate, 200)

	other := &models.Agent{
		AgencyName: "Rival Agency",
		Email:      "rival@example.com",
		Password:   "hashed",
		Role:       "AGENT",
		IsActive:   true,
	}
	require.NoError(t, db.Create(other).Error)

	result := svc.InitiateAgent(ctx, other.ID, &InitiateAgentApplicationInput{
		StudentID: student.ID,
		ProgramID: program.ID,
	})
	assert.False(t, result.Success)
	assert.Equal(t, fiber.StatusNotFound, result.StatusCode)
	assert.Equal(t, "Student not found", result.Message)
}

func TestListAllAndHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestApplicationService(db)
	ctx := context.Background()

	member := seedMember(t, db, true)
	program := seedProgram(t, db, models.CategoryUndergraduate, 150)
	app := seedDirectApplication(t, db, member.ID, program.ID, models.PaymentPaid)

	_, _, err := svc.ListAll(ctx, "fax", "", 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidApplicationType)

	_, total, err := svc.ListAll(ctx, models.ApplicationTypeDirect, "", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = svc.ListAll(ctx, models.ApplicationTypeDirect, models.StatusApproved, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		ApplicationStatus: strPtr(models.StatusInReview),
	})
	svc.UpdateStatus(ctx, models.ApplicationTypeDirect, app.ID, &UpdateStatusInput{
		ApplicationStatus: strPtr(models.StatusApproved),
	})

	history, err := svc.GetHistory(ctx, models.ApplicationTypeDirect, app.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
