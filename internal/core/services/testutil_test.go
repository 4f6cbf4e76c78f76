package services

import (
	"fmt"
	"testing"
	"time"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/adapters/persistence/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func strPtr(s string) *string { return &s }

// completeProfile fills every completeness-gated field
func completeProfile(phone, idNumber, idType, nationality, address, city, zip, state, country, gender **string, dob **time.Time) {
	birthday := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
	*phone = strPtr("+2348012345678")
	*dob = &birthday
	*idNumber = strPtr("A1234567")
	*idType = strPtr("passport")
	*nationality = strPtr("Nigerian")
	*address = strPtr("12 Marina Road")
	*city = strPtr("Lagos")
	*zip = strPtr("100001")
	*state = strPtr("Lagos")
	*country = strPtr("Nigeria")
	*gender = strPtr("female")
}

func seedMember(t *testing.T, db *gorm.DB, complete bool) *models.Member {
	t.Helper()

	m := &models.Member{
		FullName: "Jane Doe",
		Email:    fmt.Sprintf("jane+%s@example.com", t.Name()),
		Password: "hashed",
		Role:     "MEMBER",
		IsActive: true,
	}
	if complete {
		completeProfile(&m.Phone, &m.IDNumber, &m.IDType, &m.Nationality,
			&m.HomeAddress, &m.HomeCity, &m.HomeZipCode, &m.HomeState, &m.HomeCountry, &m.Gender, &m.DOB)
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedAgent(t *testing.T, db *gorm.DB) *models.Agent {
	t.Helper()

	a := &models.Agent{
		AgencyName: "Global Study Partners",
		Email:      fmt.Sprintf("agency+%s@example.com", t.Name()),
		Password:   "hashed",
		Role:       "AGENT",
		IsActive:   true,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func seedStudent(t *testing.T, db *gorm.DB, agentID uint, complete bool) *models.AgentStudent {
	t.Helper()

	s := &models.AgentStudent{
		AgentID:  agentID,
		FullName: "Ade Bello",
		Email:    "ade@example.com",
	}
	if complete {
		completeProfile(&s.Phone, &s.IDNumber, &s.IDType, &s.Nationality,
			&s.HomeAddress, &s.HomeCity, &s.HomeZipCode, &s.HomeState, &s.HomeCountry, &s.Gender, &s.DOB)
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func seedProgram(t *testing.T, db *gorm.DB, category string, fee int64) *models.Program {
	t.Helper()

	p := &models.Program{
		Name:           "BSc Computer Science",
		School:         "University of Toronto",
		Country:        "Canada",
		Category:       category,
		ApplicationFee: decimal.NewFromInt(fee),
		IntakeMonths:   "September",
		IsActive:       true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// uploadChecklist uploads every required document for a category
func uploadChecklist(t *testing.T, db *gorm.DB, ownerID uint, ownerType, category string) {
	t.Helper()

	for _, docType := range requiredDocuments[category] {
		require.NoError(t, db.Create(&models.Document{
			OwnerID:      ownerID,
			OwnerType:    ownerType,
			DocumentType: docType,
			FileName:     docType + ".pdf",
			StoragePath:  "/uploads/" + docType + ".pdf",
			Status:       models.DocStatusPending,
		}).Error)
	}
}

func countNotifications(t *testing.T, db *gorm.DB, title string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("title = ?", title).Count(&count).Error)
	return count
}

func newTestApplicationService(db *gorm.DB) *ApplicationService {
	notifyService := NewNotifyService(repositories.NewNotificationRepository(db))
	documentService := NewDocumentService(repositories.NewDocumentRepository(db), notifyService)

	return NewApplicationService(
		db,
		repositories.NewApplicationRepository(db),
		repositories.NewAgentApplicationRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewAgentRepository(db),
		repositories.NewAgentStudentRepository(db),
		repositories.NewProgramRepository(db),
		repositories.NewConfigRepository(db),
		repositories.NewActivityLogRepository(db),
		documentService,
		notifyService,
		NewEmailService(),
	)
}
