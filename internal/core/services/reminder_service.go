package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"edumigrate/internal/adapters/persistence/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService runs the daily reminder job: applicants with pending,
// unpaid applications older than three days get nudged to finish.
type ReminderService struct {
	db            *gorm.DB
	notifyService *NotifyService
	emailService  *EmailService
	cron          *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(db *gorm.DB, notifyService *NotifyService, emailService *EmailService) *ReminderService {
	return &ReminderService{
		db:            db,
		notifyService: notifyService,
		emailService:  emailService,
		cron:          cron.New(),
	}
}

// Start schedules the daily run at 08:00 server time
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc("0 8 * * *", func() {
		if err := s.Run(context.Background()); err != nil {
			log.Printf("❌ Reminder job failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Reminder scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Reminder scheduler stopped")
}

// Run executes one reminder pass. Exported so it can be triggered
// manually from the admin console.
func (s *ReminderService) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-72 * time.Hour)
	sent := 0

	// Direct applications
	var apps []models.Application
	err := s.db.WithContext(ctx).
		Preload("Member").
		Preload("Program").
		Where("application_status = ? AND payment_status = ?", models.StatusPending, models.PaymentUnpaid).
		Where("created_at < ?", cutoff).
		Find(&apps).Error
	if err != nil {
		return err
	}
	for i := range apps {
		s.remindDirect(ctx, &apps[i])
		sent++
	}

	// Agent applications
	var agentApps []models.AgentApplication
	err = s.db.WithContext(ctx).
		Preload("Agent").
		Preload("Student").
		Preload("Program").
		Where("application_status = ? AND payment_status = ?", models.StatusPending, models.PaymentUnpaid).
		Where("created_at < ?", cutoff).
		Find(&agentApps).Error
	if err != nil {
		return err
	}
	for i := range agentApps {
		s.remindAgent(ctx, &agentApps[i])
		sent++
	}

	log.Printf("✅ Reminder job done, %d reminders sent", sent)
	return nil
}

func (s *ReminderService) remindDirect(ctx context.Context, app *models.Application) {
	programName := ""
	if app.Program != nil {
		programName = app.Program.Name
	}

	s.notifyService.Push(ctx, &models.Notification{
		UserID:   app.MemberID,
		UserType: models.UserTypeMember,
		Type:     models.NotifyTypeReminder,
		Title:    "Complete Your Application",
		Message:  fmt.Sprintf("Your application for %s is still awaiting payment. Pay the application fee to move it forward.", programName),
		Link:     fmt.Sprintf("/applications/%d", app.ID),
	})

	if app.Member != nil {
		s.emailService.SendAsync(app.Member.Email, "Complete Your Application", "application_reminder", map[string]interface{}{
			"name":    app.Member.FullName,
			"program": programName,
		})
	}
}

func (s *ReminderService) remindAgent(ctx context.Context, app *models.AgentApplication) {
	programName := ""
	if app.Program != nil {
		programName = app.Program.Name
	}
	studentName := ""
	if app.Student != nil {
		studentName = app.Student.FullName
	}

	s.notifyService.Push(ctx, &models.Notification{
		UserID:   app.AgentID,
		UserType: models.UserTypeAgent,
		Type:     models.NotifyTypeReminder,
		Title:    "Complete Student Application",
		Message:  fmt.Sprintf("The application for %s (%s) is still awaiting payment.", studentName, programName),
		Link:     fmt.Sprintf("/agent/applications/%d", app.ID),
	})

	if app.Agent != nil {
		s.emailService.SendAsync(app.Agent.Email, "Complete Student Application", "application_reminder", map[string]interface{}{
			"name":    app.Agent.AgencyName,
			"student": studentName,
			"program": programName,
		})
	}
}
