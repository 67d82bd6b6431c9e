package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultAccentPreset = "blue"

// ClientPortfolio is a tailored page sent to one prospective client.
type ClientPortfolio struct {
	ID            uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string                      `json:"title" gorm:"type:text;not null"`
	Slug          string                      `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	ClientName    string                      `json:"client_name" gorm:"type:text;not null;default:''"`
	ClientLogoURL *string                     `json:"client_logo_url" gorm:"column:client_logo_url;type:text"`
	IntroMessage  string                      `json:"intro_message" gorm:"type:text;not null;default:''"`
	WhyFitBullets datatypes.JSONSlice[string] `json:"why_fit_bullets"`
	AccentPreset  string                      `json:"accent_preset" gorm:"type:text;not null;default:'blue'"`
	Published     bool                        `json:"published" gorm:"not null;default:false;index"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`

	Links []PortfolioProject `json:"-" gorm:"foreignKey:PortfolioID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *ClientPortfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Normalize()
	return nil
}

func (p *ClientPortfolio) Normalize() {
	if p.WhyFitBullets == nil {
		p.WhyFitBullets = datatypes.JSONSlice[string]{}
	}
	if p.AccentPreset == "" {
		p.AccentPreset = DefaultAccentPreset
	}
}

// PortfolioListItem is the admin list row.
type PortfolioListItem struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	ClientName string    `json:"client_name"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
}

func (p *ClientPortfolio) ListItem() PortfolioListItem {
	return PortfolioListItem{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		ClientName: p.ClientName,
		Published:  p.Published,
		CreatedAt:  p.CreatedAt,
	}
}

// PortfolioProject links a portfolio to one of its projects. SortOrder is the
// 0-based position on the portfolio page.
type PortfolioProject struct {
	PortfolioID uuid.UUID `json:"portfolio_id" gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `json:"project_id" gorm:"type:uuid;primaryKey;index"`
	SortOrder   int       `json:"sort_order" gorm:"not null;default:0"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// NewPortfolioLinks turns an ordered selection into link rows, one per project
// with its 0-based position as the sort order.
func NewPortfolioLinks(portfolioID uuid.UUID, projectIDs []uuid.UUID) []PortfolioProject {
	links := make([]PortfolioProject, 0, len(projectIDs))
	for i, projectID := range projectIDs {
		links = append(links, PortfolioProject{
			PortfolioID: portfolioID,
			ProjectID:   projectID,
			SortOrder:   i,
		})
	}
	return links
}
