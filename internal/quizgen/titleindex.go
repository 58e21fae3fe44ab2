package quizgen

import (
	"time"

	"newsquiz/internal/domain"
)

// IndexEntry is what a resolved title points at.
type IndexEntry struct {
	URL           string
	PublishedDate string
	OriginalTitle string
}

// TitleIndex maps article titles, raw and normalized, to their source articles.
// It is built once per run and read-only afterwards.
type TitleIndex struct {
	exact      map[string]IndexEntry
	normalized map[string]IndexEntry
	titles     []string // insertion order, used by the fuzzy tiers
}

// NewTitleIndex indexes every titled article in the batch.
func NewTitleIndex(articles []domain.Article) *TitleIndex {
	idx := &TitleIndex{
		exact:      make(map[string]IndexEntry, len(articles)),
		normalized: make(map[string]IndexEntry, len(articles)),
	}
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		entry := IndexEntry{
			URL:           a.URL,
			OriginalTitle: a.Title,
		}
		if !a.PublishedAt.IsZero() {
			entry.PublishedDate = a.PublishedAt.Format(time.RFC3339)
		}
		if _, seen := idx.exact[a.Title]; !seen {
			idx.titles = append(idx.titles, a.Title)
		}
		idx.exact[a.Title] = entry
		idx.normalized[NormalizeTitle(a.Title)] = entry
	}
	return idx
}

// Len is the number of distinct raw titles in the index.
func (idx *TitleIndex) Len() int {
	return len(idx.titles)
}

func (idx *TitleIndex) lookupExact(title string) (IndexEntry, bool) {
	e, ok := idx.exact[title]
	return e, ok
}

func (idx *TitleIndex) lookupNormalized(key string) (IndexEntry, bool) {
	e, ok := idx.normalized[key]
	return e, ok
}
