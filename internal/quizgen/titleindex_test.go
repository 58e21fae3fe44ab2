package quizgen

import (
	"testing"
	"time"

	"newsquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNewTitleIndex(t *testing.T) {
	published := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	idx := NewTitleIndex([]domain.Article{
		{Title: "First", URL: "u1", PublishedAt: published},
		{Title: "", URL: "u-empty"},
		{Title: "Second", URL: "u2"},
		{Title: "First", URL: "u3"},
	})

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, []string{"First", "Second"}, idx.titles)

	entry, ok := idx.lookupExact("First")
	assert.True(t, ok)
	assert.Equal(t, "u3", entry.URL)

	entry, ok = idx.lookupNormalized("second")
	assert.True(t, ok)
	assert.Equal(t, "Second", entry.OriginalTitle)
	assert.Empty(t, entry.PublishedDate)
}

func TestNewTitleIndex_PublishedDate(t *testing.T) {
	published := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	idx := NewTitleIndex([]domain.Article{{Title: "First", URL: "u1", PublishedAt: published}})

	entry, _ := idx.lookupExact("First")
	assert.Equal(t, "2025-03-10T09:00:00Z", entry.PublishedDate)
}
