package models

import (
	"strings"

	"gorm.io/datatypes"
)

type SiteSettingsInput struct {
	DisplayName           string            `json:"display_name" validate:"required,max=200"`
	Headline              string            `json:"headline"`
	Subheadline           string            `json:"subheadline"`
	Socials               map[string]string `json:"socials" validate:"dive,omitempty,url"`
	UpworkLink            *string           `json:"upwork_link" validate:"omitempty,url"`
	FiverrLink            *string           `json:"fiverr_link" validate:"omitempty,url"`
	CalendlyLink          *string           `json:"calendly_link" validate:"omitempty,url"`
	DefaultSEOTitle       string            `json:"default_seo_title" validate:"max=120"`
	DefaultSEODescription string            `json:"default_seo_description" validate:"max=320"`
}

func (in *SiteSettingsInput) Normalize() {
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	socials := make(map[string]string, len(in.Socials))
	for name, link := range in.Socials {
		if link = strings.TrimSpace(link); link != "" {
			socials[strings.ToLower(strings.TrimSpace(name))] = link
		}
	}
	in.Socials = socials
	in.UpworkLink = nilIfBlank(in.UpworkLink)
	in.FiverrLink = nilIfBlank(in.FiverrLink)
	in.CalendlyLink = nilIfBlank(in.CalendlyLink)
}

func (in *SiteSettingsInput) Validate() error {
	return validateStruct(in)
}

func (in *SiteSettingsInput) ApplyTo(s *SiteSettings) {
	s.DisplayName = in.DisplayName
	s.Headline = in.Headline
	s.Subheadline = in.Subheadline
	socials := make(datatypes.JSONMap, len(in.Socials))
	for name, link := range in.Socials {
		socials[name] = link
	}
	s.Socials = socials
	s.UpworkLink = in.UpworkLink
	s.FiverrLink = in.FiverrLink
	s.CalendlyLink = in.CalendlyLink
	s.DefaultSEOTitle = in.DefaultSEOTitle
	s.DefaultSEODescription = in.DefaultSEODescription
}

// SiteSettingsFormFrom hydrates the settings form from the stored row.
func SiteSettingsFormFrom(s *SiteSettings) SiteSettingsInput {
	socials := make(map[string]string, len(s.Socials))
	for name, link := range s.Socials {
		if text, ok := link.(string); ok {
			socials[name] = text
		}
	}
	return SiteSettingsInput{
		DisplayName:           s.DisplayName,
		Headline:              s.Headline,
		Subheadline:           s.Subheadline,
		Socials:               socials,
		UpworkLink:            s.UpworkLink,
		FiverrLink:            s.FiverrLink,
		CalendlyLink:          s.CalendlyLink,
		DefaultSEOTitle:       s.DefaultSEOTitle,
		DefaultSEODescription: s.DefaultSEODescription,
	}
}
