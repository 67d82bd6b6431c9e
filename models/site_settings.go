package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SiteSettings is the single row of site wide copy and links.
type SiteSettings struct {
	ID                    uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey;not null"`
	DisplayName           string            `json:"display_name" gorm:"type:text;not null;default:''"`
	Headline              string            `json:"headline" gorm:"type:text;not null;default:''"`
	Subheadline           string            `json:"subheadline" gorm:"type:text;not null;default:''"`
	Socials               datatypes.JSONMap `json:"socials"`
	UpworkLink            *string           `json:"upwork_link" gorm:"type:text"`
	FiverrLink            *string           `json:"fiverr_link" gorm:"type:text"`
	CalendlyLink          *string           `json:"calendly_link" gorm:"type:text"`
	DefaultSEOTitle       string            `json:"default_seo_title" gorm:"column:default_seo_title;type:text;not null;default:''"`
	DefaultSEODescription string            `json:"default_seo_description" gorm:"column:default_seo_description;type:text;not null;default:''"`
}

// TableName pins the singleton table name.
func (SiteSettings) TableName() string {
	return "site_settings"
}

func (s *SiteSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Normalize()
	return nil
}

func (s *SiteSettings) Normalize() {
	if s.Socials == nil {
		s.Socials = datatypes.JSONMap{}
	}
}

// DefaultSiteSettings is what the public pages render before the row is configured.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		DisplayName: "Portfolio",
		Socials:     datatypes.JSONMap{},
	}
}
