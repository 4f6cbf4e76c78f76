package config

import (
	"log"

	"edumigrate/internal/adapters/persistence/models"
	"edumigrate/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedFeatureFlags(); err != nil {
		log.Printf("⚠️ Feature flag seeder skipped: %v", err)
	}
	if err := s.seedPrograms(); err != nil {
		log.Printf("⚠️ Program seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin account
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.Member{}).Where("role = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.Member{
		FullName: "Platform Admin",
		Email:    "admin@edumigrate.io",
		Password: hashedPassword,
		Role:     "ADMIN",
		IsActive: true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedFeatureFlags seeds default platform config entries
func (s *Seeder) seedFeatureFlags() error {
	defaults := map[string]string{
		models.ConfigRequireDocumentValidation: "true",
		models.ConfigAgentApplicationDocument:  "false",
	}

	for key, value := range defaults {
		var count int64
		s.db.Model(&models.PlatformConfig{}).Where("`key` = ?", key).Count(&count)
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.PlatformConfig{Key: key, Value: value}).Error; err != nil {
			return err
		}
		log.Printf("✅ Config seeded: %s=%s", key, value)
	}
	return nil
}

// seedPrograms seeds a starter program catalog for development
func (s *Seeder) seedPrograms() error {
	var count int64
	s.db.Model(&models.Program{}).Count(&count)
	if count > 0 {
		return nil // Catalog already populated
	}

	programs := []models.Program{
		{
			Name:           "BSc Computer Science",
			School:         "University of Toronto",
			Country:        "Canada",
			Category:       models.CategoryUndergraduate,
			ApplicationFee: decimal.NewFromInt(150),
			IntakeMonths:   "September,January",
			IsActive:       true,
		},
		{
			Name:           "BA Business Administration",
			School:         "University of Manchester",
			Country:        "United Kingdom",
			Category:       models.CategoryUndergraduate,
			ApplicationFee: decimal.NewFromInt(100),
			IntakeMonths:   "September",
			IsActive:       true,
		},
		{
			Name:           "MSc Data Science",
			School:         "Technical University of Munich",
			Country:        "Germany",
			Category:       models.CategoryPostgraduate,
			ApplicationFee: decimal.NewFromInt(200),
			IntakeMonths:   "October,April",
			IsActive:       true,
		},
	}
	if err := s.db.Create(&programs).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d programs", len(programs))
	return nil
}
