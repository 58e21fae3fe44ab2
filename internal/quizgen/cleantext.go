package quizgen

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	markdownImagePattern = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	htmlImagePattern     = regexp.MustCompile(`<img[^>]*>`)
	imageTagPattern      = regexp.MustCompile(`\[이미지.*?\]`)
	photoCaptionPattern  = regexp.MustCompile(`\(사진.*?\)`)
	rawURLPattern        = regexp.MustCompile(`https?://\S+`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// CleanText strips image markup and raw URLs and collapses whitespace.
func CleanText(text string) string {
	text = markdownImagePattern.ReplaceAllString(text, "")
	text = htmlImagePattern.ReplaceAllString(text, "")
	text = imageTagPattern.ReplaceAllString(text, "")
	text = photoCaptionPattern.ReplaceAllString(text, "")
	text = rawURLPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeTitle folds a title into its matching key: diacritics removed,
// everything but letters, digits and underscores dropped, lower-cased.
func NormalizeTitle(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func runeLen(s string) int {
	return len([]rune(s))
}
