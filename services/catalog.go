package services

import (
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// FilterProjects narrows an already fetched project list. query matches a
// case-insensitive substring of the title or summary, tag must be one of the
// project's tags. Empty arguments match everything.
func FilterProjects(projects []models.Project, query, tag string) []models.Project {
	query = strings.ToLower(strings.TrimSpace(query))
	tag = strings.TrimSpace(tag)

	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Summary), query) {
			continue
		}
		if tag != "" && !p.HasTag(tag) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// UnionTags collects every tag across projects in first-seen order.
func UnionTags(projects []models.Project) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, p := range projects {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}
