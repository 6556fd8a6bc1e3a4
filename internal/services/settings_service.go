package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

// SettingsService reads the singleton pizzeria settings record
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
}

type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(db *gorm.DB) SettingsService {
	return &settingsService{db: db}
}

func (s *settingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: settings", models.ErrNotFound)
	}
	if err != nil {
		return nil, models.NewStorageError("load settings", err)
	}
	return &settings, nil
}
