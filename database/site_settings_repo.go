package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type SiteSettingsRepo struct {
	db *gorm.DB
}

func NewSiteSettingsRepo(db *gorm.DB) *SiteSettingsRepo {
	return &SiteSettingsRepo{db}
}

// Get returns the settings row, or gorm.ErrRecordNotFound when it was never seeded.
func (r *SiteSettingsRepo) Get(ctx context.Context) (*models.SiteSettings, error) {
	var settings models.SiteSettings
	if err := r.db.WithContext(ctx).Order("id").First(&settings).Error; err != nil {
		return nil, err
	}
	settings.Normalize()
	return &settings, nil
}

// GetOrDefault is the public read: a missing row renders with defaults.
func (r *SiteSettingsRepo) GetOrDefault(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := r.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := models.DefaultSiteSettings()
		return &defaults, nil
	}
	return nil, err
}

// Update applies the input to the existing row. The row is never created here.
func (r *SiteSettingsRepo) Update(ctx context.Context, input *models.SiteSettingsInput) (*models.SiteSettings, error) {
	var settings *models.SiteSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.SiteSettings
		if err := tx.Order("id").First(&current).Error; err != nil {
			return err
		}
		input.ApplyTo(&current)
		if err := tx.Model(&current).Select("*").Omit("id").Updates(&current).Error; err != nil {
			return err
		}
		settings = &current
		return nil
	})
	return settings, err
}
