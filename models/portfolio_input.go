package models

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

var AccentPresets = []string{"blue", "green", "purple", "orange", "slate"}

// PortfolioInput is the editor payload for a client portfolio. ProjectIDs is
// the selection in display order.
type PortfolioInput struct {
	Title         string      `json:"title" validate:"required,max=200"`
	Slug          string      `json:"slug" validate:"max=200"`
	ClientName    string      `json:"client_name" validate:"required,max=200"`
	ClientLogoURL *string     `json:"client_logo_url" validate:"omitempty,url"`
	IntroMessage  string      `json:"intro_message"`
	WhyFitBullets []string    `json:"why_fit_bullets"`
	AccentPreset  string      `json:"accent_preset" validate:"oneof=blue green purple orange slate"`
	ProjectIDs    []uuid.UUID `json:"project_ids"`
}

func (in *PortfolioInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.Slug == "" {
		in.Slug = Slugify(in.Title)
	}
	in.ClientLogoURL = nilIfBlank(in.ClientLogoURL)
	in.WhyFitBullets = cleanList(in.WhyFitBullets)
	in.AccentPreset = strings.TrimSpace(in.AccentPreset)
	if in.AccentPreset == "" {
		in.AccentPreset = DefaultAccentPreset
	}
	if in.ProjectIDs == nil {
		in.ProjectIDs = []uuid.UUID{}
	}
}

func (in *PortfolioInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if err := checkSlug(in.Slug); err != nil {
		return err
	}
	seen := make(map[uuid.UUID]bool, len(in.ProjectIDs))
	for _, id := range in.ProjectIDs {
		if id == uuid.Nil {
			return errs.NewInvalidFieldError("project_ids", "contains an empty id")
		}
		if seen[id] {
			return errs.NewInvalidFieldError("project_ids", "lists project "+id.String()+" twice")
		}
		seen[id] = true
	}
	return nil
}

func (in *PortfolioInput) ApplyTo(p *ClientPortfolio, published bool) {
	p.Title = in.Title
	p.Slug = in.Slug
	p.ClientName = in.ClientName
	p.ClientLogoURL = in.ClientLogoURL
	p.IntroMessage = in.IntroMessage
	p.WhyFitBullets = datatypes.JSONSlice[string](in.WhyFitBullets)
	p.AccentPreset = in.AccentPreset
	p.Published = published
}

func NewPortfolioForm() PortfolioInput {
	var in PortfolioInput
	in.Normalize()
	return in
}

// PortfolioFormFrom hydrates the editor form from a stored portfolio and its
// link rows, with ProjectIDs in sort order.
func PortfolioFormFrom(p *ClientPortfolio, links []PortfolioProject) PortfolioInput {
	ordered := append([]PortfolioProject{}, links...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].SortOrder < ordered[j].SortOrder })

	projectIDs := make([]uuid.UUID, 0, len(ordered))
	for _, link := range ordered {
		projectIDs = append(projectIDs, link.ProjectID)
	}
	return PortfolioInput{
		Title:         p.Title,
		Slug:          p.Slug,
		ClientName:    p.ClientName,
		ClientLogoURL: p.ClientLogoURL,
		IntroMessage:  p.IntroMessage,
		WhyFitBullets: append([]string{}, p.WhyFitBullets...),
		AccentPreset:  p.AccentPreset,
		ProjectIDs:    projectIDs,
	}
}
