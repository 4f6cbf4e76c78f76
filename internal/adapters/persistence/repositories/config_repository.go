package repositories

import (
	"context"

	"edumigrate/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ConfigRepository handles the key-value platform config store
type ConfigRepository struct {
	db *gorm.DB
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// GetValue gets a raw config value by key
func (r *ConfigRepository) GetValue(ctx context.Context, key string) (string, error) {
	var cfg models.PlatformConfig
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&cfg).Error
	if err != nil {
		return "", err
	}
	return cfg.Value, nil
}

// GetBool gets a boolean flag; missing keys fall back to the given default
func (r *ConfigRepository) GetBool(ctx context.Context, key string, fallback bool) bool {
	value, err := r.GetValue(ctx, key)
	if err != nil {
		return fallback
	}
	return value == "true" || value == "1"
}

// Set creates or updates a config entry
func (r *ConfigRepository) Set(ctx context.Context, key, value string) error {
	var cfg models.PlatformConfig
	err := r.db.WithContext(ctx).Where("`key` = ?", key).First(&cfg).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(&models.PlatformConfig{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}

	cfg.Value = value
	return r.db.WithContext(ctx).Save(&cfg).Error
}

// List lists all config entries
func (r *ConfigRepository) List(ctx context.Context) ([]*models.PlatformConfig, error) {
	var configs []*models.PlatformConfig
	err := r.db.WithContext(ctx).Find(&configs).Error
	return configs, err
}
