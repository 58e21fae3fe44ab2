package quizgen

import (
	"testing"

	"newsquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func indexOf(titles map[string]string) *TitleIndex {
	articles := make([]domain.Article, 0, len(titles))
	for title, url := range titles {
		articles = append(articles, domain.Article{Title: title, URL: url})
	}
	return NewTitleIndex(articles)
}

func TestTitleResolver_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		titles     map[string]string
		referenced string
		wantURL    string
		wantTier   string
		wantOK     bool
	}{
		{
			name:       "exact match",
			titles:     map[string]string{"Fed Raises Rates": "url1"},
			referenced: "Fed Raises Rates",
			wantURL:    "url1",
			wantTier:   "exact",
			wantOK:     true,
		},
		{
			name:       "trailing whitespace still matches exactly",
			titles:     map[string]string{"Fed Raises Rates": "url1"},
			referenced: "Fed Raises Rates ",
			wantURL:    "url1",
			wantTier:   "exact",
			wantOK:     true,
		},
		{
			name:       "normalized match ignores punctuation and case",
			titles:     map[string]string{"한은, 기준금리 '전격' 인상": "url1"},
			referenced: "한은 기준금리 전격 인상",
			wantURL:    "url1",
			wantTier:   "normalized",
			wantOK:     true,
		},
		{
			name:       "thirty character prefix containment",
			titles:     map[string]string{"Fed Raises Rates Amid Inflation Concerns Again": "url1"},
			referenced: "Fed Raises Rates Amid Inflation Concerns Again - analysis",
			wantURL:    "url1",
			wantTier:   "prefix",
			wantOK:     true,
		},
		{
			name:       "fifteen character prefix containment",
			titles:     map[string]string{"Chip exports rebound in Q3 as demand recovers": "url1"},
			referenced: "Chip exports rebound strongly",
			wantURL:    "url1",
			wantTier:   "short-prefix",
			wantOK:     true,
		},
		{
			name:       "three shared words",
			titles:     map[string]string{"Korea exports fall as chip demand slows sharply": "url1"},
			referenced: "Why chip demand slows: exports fall",
			wantURL:    "url1",
			wantTier:   "token-overlap",
			wantOK:     true,
		},
		{
			name:       "no match",
			titles:     map[string]string{"Fed Raises Rates": "url1"},
			referenced: "Completely unrelated headline",
			wantOK:     false,
		},
		{
			name:       "empty reference never matches",
			titles:     map[string]string{"Fed Raises Rates": "url1"},
			referenced: "   ",
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTitleResolver(indexOf(tt.titles), nil, zap.NewNop())

			entry, tier, ok := r.Resolve(tt.referenced)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantURL, entry.URL)
		})
	}
}

func TestTitleResolver_ExactBeatsNormalized(t *testing.T) {
	// both titles share a normalized key; the later one owns it
	idx := NewTitleIndex([]domain.Article{
		{Title: "Fed Raises Rates", URL: "url1"},
		{Title: "fed raises rates!", URL: "url2"},
	})
	r := NewTitleResolver(idx, nil, zap.NewNop())

	entry, tier, ok := r.Resolve("Fed Raises Rates")

	assert.True(t, ok)
	assert.Equal(t, "exact", tier)
	assert.Equal(t, "url1", entry.URL)
	assert.Equal(t, "Fed Raises Rates", entry.OriginalTitle)
}

func TestPrefixMatcher_MinLength(t *testing.T) {
	idx := indexOf(map[string]string{"Chip exports rebound in Q3": "url1"})
	m := PrefixMatcher{Length: 15, MinLength: 15}

	_, ok := m.Match("Chip exports", idx)
	assert.False(t, ok)

	entry, ok := m.Match("Chip exports rebound later", idx)
	assert.True(t, ok)
	assert.Equal(t, "url1", entry.URL)
}

func TestTitleResolver_CustomMatchers(t *testing.T) {
	idx := indexOf(map[string]string{"Fed Raises Rates": "url1"})
	r := NewTitleResolver(idx, []TitleMatcher{ExactMatcher{}}, zap.NewNop())

	_, _, ok := r.Resolve("fed raises rates")
	assert.False(t, ok)
}
