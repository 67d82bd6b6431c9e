package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionAddRemove(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	s := NewSelection([]uuid.UUID{a, a})
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Add(b))
	assert.False(t, s.Add(a))
	assert.Equal(t, []uuid.UUID{a, b}, s.IDs())

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, []uuid.UUID{b}, s.IDs())
}

func TestSelectionMove(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name     string
		from, to int
		want     []uuid.UUID
	}{
		{"down", 0, 2, []uuid.UUID{b, c, a, d}},
		{"up", 3, 1, []uuid.UUID{a, d, b, c}},
		{"to front", 2, 0, []uuid.UUID{c, a, b, d}},
		{"same place", 1, 1, []uuid.UUID{a, b, c, d}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection([]uuid.UUID{a, b, c, d})
			require.NoError(t, s.Move(tt.from, tt.to))
			assert.Equal(t, tt.want, s.IDs())
		})
	}

	s := NewSelection([]uuid.UUID{a, b})
	assert.Error(t, s.Move(0, 2))
	assert.Error(t, s.Move(-1, 0))
}

func TestSelectionLinks(t *testing.T) {
	portfolioID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	s := NewSelection([]uuid.UUID{a, b, c})
	require.NoError(t, s.Move(2, 0))

	links := s.Links(portfolioID)
	require.Len(t, links, 3)
	for i, want := range []uuid.UUID{c, a, b} {
		assert.Equal(t, portfolioID, links[i].PortfolioID)
		assert.Equal(t, want, links[i].ProjectID)
		assert.Equal(t, i, links[i].SortOrder)
	}

	restored := SelectionFromLinks(links)
	assert.Equal(t, []uuid.UUID{c, a, b}, restored.IDs())
}
