package models

import (
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// ProjectInput is the editor payload for a project. Published is set by the
// save action, never by the payload.
type ProjectInput struct {
	Title     string         `json:"title" validate:"required,max=200"`
	Slug      string         `json:"slug" validate:"max=200"`
	Summary   string         `json:"summary"`
	Problem   string         `json:"problem"`
	Approach  string         `json:"approach"`
	Outcome   string         `json:"outcome"`
	Metrics   map[string]any `json:"metrics"`
	Tags      []string       `json:"tags"`
	TechStack []string       `json:"tech_stack"`
	Role      string         `json:"role"`
	Timeline  string         `json:"timeline"`
	Images    []string       `json:"images"`
	LiveURL   *string        `json:"live_url" validate:"omitempty,url"`
	GithubURL *string        `json:"github_url" validate:"omitempty,url"`
	Featured  bool           `json:"featured"`
}

// Normalize trims text, derives the slug from the title when none was given
// and fills nil containers.
func (in *ProjectInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = Slugify(in.Title)
	}
	if in.Metrics == nil {
		in.Metrics = map[string]any{}
	}
	in.Tags = cleanList(in.Tags)
	in.TechStack = cleanList(in.TechStack)
	in.Images = cleanList(in.Images)
	in.LiveURL = nilIfBlank(in.LiveURL)
	in.GithubURL = nilIfBlank(in.GithubURL)
}

func (in *ProjectInput) Validate() error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if err := checkSlug(in.Slug); err != nil {
		return err
	}
	for key, value := range in.Metrics {
		switch value.(type) {
		case string, float64, int, int64:
		default:
			return errs.NewInvalidFieldError("metrics", fmt.Sprintf("value for %q must be text or a number", key))
		}
	}
	return nil
}

// ApplyTo copies the payload onto p with the given published state.
func (in *ProjectInput) ApplyTo(p *Project, published bool) {
	p.Title = in.Title
	p.Slug = in.Slug
	p.Summary = in.Summary
	p.Problem = in.Problem
	p.Approach = in.Approach
	p.Outcome = in.Outcome
	p.Metrics = datatypes.JSONMap(in.Metrics)
	p.Tags = datatypes.JSONSlice[string](in.Tags)
	p.TechStack = datatypes.JSONSlice[string](in.TechStack)
	p.Role = in.Role
	p.Timeline = in.Timeline
	p.Images = datatypes.JSONSlice[string](in.Images)
	p.LiveURL = in.LiveURL
	p.GithubURL = in.GithubURL
	p.Featured = in.Featured
	p.Published = published
}

// ProjectFlagsInput toggles individual list flags. Absent fields are left alone.
type ProjectFlagsInput struct {
	Featured  *bool `json:"featured"`
	Published *bool `json:"published"`
}

func (in *ProjectFlagsInput) Validate() error {
	if in.Featured == nil && in.Published == nil {
		return errs.NewBadRequestErrorWithField("no flags given", "flags", "Send featured and/or published")
	}
	return nil
}

// Columns returns the column updates the payload asks for.
func (in *ProjectFlagsInput) Columns() map[string]any {
	cols := map[string]any{}
	if in.Featured != nil {
		cols["featured"] = *in.Featured
	}
	if in.Published != nil {
		cols["published"] = *in.Published
	}
	return cols
}

// NewProjectForm is the blank editor state for a project that does not exist yet.
func NewProjectForm() ProjectInput {
	var in ProjectInput
	in.Normalize()
	return in
}

// ProjectFormFrom hydrates the editor form from a stored project. The result
// can be posted back to either save action unchanged.
func ProjectFormFrom(p *Project) ProjectInput {
	in := ProjectInput{
		Title:     p.Title,
		Slug:      p.Slug,
		Summary:   p.Summary,
		Problem:   p.Problem,
		Approach:  p.Approach,
		Outcome:   p.Outcome,
		Metrics:   map[string]any{},
		Tags:      append([]string{}, p.Tags...),
		TechStack: append([]string{}, p.TechStack...),
		Role:      p.Role,
		Timeline:  p.Timeline,
		Images:    append([]string{}, p.Images...),
		LiveURL:   p.LiveURL,
		GithubURL: p.GithubURL,
		Featured:  p.Featured,
	}
	for key, value := range p.Metrics {
		in.Metrics[key] = value
	}
	return in
}
