package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// Selection is the ordered set of projects chosen for a portfolio. Position in
// the list is the persisted sort order.
type Selection struct {
	ids []uuid.UUID
}

func NewSelection(ids []uuid.UUID) *Selection {
	s := &Selection{ids: make([]uuid.UUID, 0, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// SelectionFromLinks rebuilds a selection from stored link rows.
func SelectionFromLinks(links []models.PortfolioProject) *Selection {
	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ProjectID)
	}
	return NewSelection(ids)
}

func (s *Selection) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Contains(id uuid.UUID) bool {
	return s.indexOf(id) >= 0
}

// Add appends id unless it is already selected.
func (s *Selection) Add(id uuid.UUID) bool {
	if s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove drops id, reporting whether it was selected.
func (s *Selection) Remove(id uuid.UUID) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.ids = append(s.ids[:i], s.ids[i+1:]...)
	return true
}

// Move takes the entry at from and puts it at to, shifting the entries in
// between by one.
func (s *Selection) Move(from, to int) error {
	n := len(s.ids)
	if from < 0 || from >= n || to < 0 || to >= n {
		return errs.NewInvalidFieldError("move", fmt.Sprintf("positions must be between 0 and %d", n-1))
	}
	if from == to {
		return nil
	}

	id := s.ids[from]
	if from < to {
		copy(s.ids[from:to], s.ids[from+1:to+1])
	} else {
		copy(s.ids[to+1:from+1], s.ids[to:from])
	}
	s.ids[to] = id
	return nil
}

// Links returns the rows to persist for portfolioID.
func (s *Selection) Links(portfolioID uuid.UUID) []models.PortfolioProject {
	return models.NewPortfolioLinks(portfolioID, s.ids)
}

func (s *Selection) indexOf(id uuid.UUID) int {
	for i, existing := range s.ids {
		if existing == id {
			return i
		}
	}
	return -1
}
