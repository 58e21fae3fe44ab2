package quizgen

import (
	"strings"

	"go.uber.org/zap"
)

// TitleMatcher is one resolution tier. Tiers are tried in order and the first hit wins.
type TitleMatcher interface {
	Name() string
	Match(title string, idx *TitleIndex) (IndexEntry, bool)
}

// ExactMatcher looks the cleaned title up verbatim.
type ExactMatcher struct{}

func (ExactMatcher) Name() string { return "exact" }

func (ExactMatcher) Match(title string, idx *TitleIndex) (IndexEntry, bool) {
	return idx.lookupExact(title)
}

// NormalizedMatcher looks the title up by its normalized form.
type NormalizedMatcher struct{}

func (NormalizedMatcher) Name() string { return "normalized" }

func (NormalizedMatcher) Match(title string, idx *TitleIndex) (IndexEntry, bool) {
	return idx.lookupNormalized(NormalizeTitle(title))
}

// PrefixMatcher accepts an indexed title when either title contains
// the other's first Length runes. With MinLength set, both titles must
// be at least that long for the tier to apply.
type PrefixMatcher struct {
	Length    int
	MinLength int
}

func (m PrefixMatcher) Name() string {
	if m.MinLength > 0 {
		return "short-prefix"
	}
	return "prefix"
}

func (m PrefixMatcher) Match(title string, idx *TitleIndex) (IndexEntry, bool) {
	if m.MinLength > 0 && runeLen(title) < m.MinLength {
		return IndexEntry{}, false
	}
	head := prefix(title, m.Length)
	for _, original := range idx.titles {
		if m.MinLength > 0 && runeLen(original) < m.MinLength {
			continue
		}
		if strings.Contains(original, head) || strings.Contains(title, prefix(original, m.Length)) {
			return idx.exact[original], true
		}
	}
	return IndexEntry{}, false
}

// TokenOverlapMatcher accepts an indexed title sharing at least MinShared
// whitespace-delimited words with the referenced title.
type TokenOverlapMatcher struct {
	MinShared int
}

func (TokenOverlapMatcher) Name() string { return "token-overlap" }

func (m TokenOverlapMatcher) Match(title string, idx *TitleIndex) (IndexEntry, bool) {
	words := wordSet(title)
	for _, original := range idx.titles {
		shared := 0
		for w := range wordSet(original) {
			if _, ok := words[w]; ok {
				shared++
			}
		}
		if shared >= m.MinShared {
			return idx.exact[original], true
		}
	}
	return IndexEntry{}, false
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// DefaultMatchers is the five-tier resolution chain.
func DefaultMatchers() []TitleMatcher {
	return []TitleMatcher{
		ExactMatcher{},
		NormalizedMatcher{},
		PrefixMatcher{Length: 30},
		PrefixMatcher{Length: 15, MinLength: 15},
		TokenOverlapMatcher{MinShared: 3},
	}
}

// TitleResolver resolves model-echoed article titles against a TitleIndex.
type TitleResolver struct {
	index    *TitleIndex
	matchers []TitleMatcher
	logger   *zap.Logger
}

// NewTitleResolver creates a resolver. A nil matcher list means DefaultMatchers.
func NewTitleResolver(index *TitleIndex, matchers []TitleMatcher, logger *zap.Logger) *TitleResolver {
	if matchers == nil {
		matchers = DefaultMatchers()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TitleResolver{index: index, matchers: matchers, logger: logger}
}

// Resolve returns the entry of the first tier that matches, and that tier's name.
// A miss is not an error; the caller keeps the reference with an empty URL.
func (r *TitleResolver) Resolve(title string) (IndexEntry, string, bool) {
	cleaned := CleanText(strings.TrimSpace(title))
	if cleaned == "" || r.index == nil {
		return IndexEntry{}, "", false
	}

	for i, m := range r.matchers {
		entry, ok := m.Match(cleaned, r.index)
		if !ok {
			continue
		}
		if i > 1 {
			r.logger.Warn("Fuzzy article title match",
				zap.String("tier", m.Name()),
				zap.String("referenced", prefix(cleaned, 40)),
				zap.String("matched", prefix(entry.OriginalTitle, 40)),
			)
		}
		return entry, m.Name(), true
	}

	r.logger.Warn("Article URL not found for referenced title",
		zap.String("referenced", prefix(cleaned, 50)),
		zap.Strings("available", firstN(r.index.titles, 3)),
	)
	return IndexEntry{}, "", false
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}
