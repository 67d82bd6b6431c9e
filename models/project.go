package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a case study shown on the public site once published.
type Project struct {
	ID        uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;not null"`
	Title     string                      `json:"title" gorm:"type:text;not null"`
	Slug      string                      `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Summary   string                      `json:"summary" gorm:"type:text;not null;default:''"`
	Problem   string                      `json:"problem" gorm:"type:text;not null;default:''"`
	Approach  string                      `json:"approach" gorm:"type:text;not null;default:''"`
	Outcome   string                      `json:"outcome" gorm:"type:text;not null;default:''"`
	Metrics   datatypes.JSONMap           `json:"metrics"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	TechStack datatypes.JSONSlice[string] `json:"tech_stack"`
	Role      string                      `json:"role" gorm:"type:text;not null;default:''"`
	Timeline  string                      `json:"timeline" gorm:"type:text;not null;default:''"`
	Images    datatypes.JSONSlice[string] `json:"images"`
	LiveURL   *string                     `json:"live_url" gorm:"column:live_url;type:text"`
	GithubURL *string                     `json:"github_url" gorm:"column:github_url;type:text"`
	Featured  bool                        `json:"featured" gorm:"not null;default:false;index"`
	Published bool                        `json:"published" gorm:"not null;default:false;index"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.Normalize()
	return nil
}

// Normalize replaces nil containers so rows always serialize as [] and {}.
func (p *Project) Normalize() {
	if p.Metrics == nil {
		p.Metrics = datatypes.JSONMap{}
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	if p.TechStack == nil {
		p.TechStack = datatypes.JSONSlice[string]{}
	}
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
}

// ProjectListItem is the admin list row.
type ProjectListItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	Featured  bool      `json:"featured"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) ListItem() ProjectListItem {
	return ProjectListItem{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Published: p.Published,
		Featured:  p.Featured,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProjectRef is the short form used by the portfolio editor.
type ProjectRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

func (p *Project) Ref() ProjectRef {
	return ProjectRef{ID: p.ID, Title: p.Title, Slug: p.Slug}
}

// HasTag reports whether tag is one of the project's tags.
func (p *Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
