package quizgen

import (
	"fmt"
	"regexp"
	"strings"

	"newsquiz/internal/domain"

	"go.uber.org/zap"
)

// circledDigits maps the option glyphs to 0-based indexes.
var circledDigits = map[string]int{"①": 0, "②": 1, "③": 2, "④": 3}

const answerSectionHeader = "📋 정답 및 해설"

var answerSectionPattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(answerSectionHeader) + `(.*?)(?:━━━|💡|$)`)

type categoryPatterns struct {
	answer   *regexp.Regexp
	question *regexp.Regexp
}

var patterns = buildPatterns()

func buildPatterns() map[domain.Category]categoryPatterns {
	out := make(map[domain.Category]categoryPatterns, len(domain.Categories))
	for _, c := range domain.Categories {
		// emoji presentation selectors are optional in model output
		marker := regexp.QuoteMeta(strings.TrimSuffix(c.Marker(), "\uFE0F")) + `\x{FE0F}?`
		label := regexp.QuoteMeta(c.Label())
		out[c] = categoryPatterns{
			answer: regexp.MustCompile(`\*\*` + label + `: ([①②③④])\*\*`),
			question: regexp.MustCompile(`(?s)` + marker + ` ` + label +
				`.*?\n\n(.*?)\n\n①\s*(.*?)\n②\s*(.*?)\n③\s*(.*?)\n④\s*(.*?)\n\n📰 관련 기사:\s*(.*?)\n📝\s*"(.*?)"`),
		}
	}
	return out
}

type answerEntry struct {
	correct     int
	explanation string
}

type questionBlock struct {
	question     string
	options      [domain.OptionCount]string
	articleTitle string
	excerpt      string
}

// Parser turns fixed-layout generation output into a QuizResult.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// Parse extracts every question the text carries. It never fails: any
// problem while parsing yields an empty result, which validation rejects.
func (p *Parser) Parse(text string, index *TitleIndex) (result domain.QuizResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Failed to parse quiz output", zap.Any("panic", r))
			result = domain.NewQuizResult()
		}
	}()

	resolver := NewTitleResolver(index, nil, p.logger)
	section := extractAnswerSection(text)
	result = domain.NewQuizResult()

	for _, c := range domain.Categories {
		answers := extractAnswers(section, c)
		blocks := extractQuestionBlocks(text, c)

		for i, block := range blocks {
			if i >= len(answers) {
				p.logger.Warn("Question block has no answer entry, dropping",
					zap.String("category", c.String()),
					zap.Int("index", i+1),
				)
				continue
			}
			result[c] = append(result[c], p.buildQuestion(c, i, block, answers[i], resolver))
		}
	}

	p.logger.Info("Parsed quiz output", zap.Int("total", result.Total()), zap.Any("counts", result.Counts()))
	return result
}

func (p *Parser) buildQuestion(c domain.Category, i int, block questionBlock, answer answerEntry, resolver *TitleResolver) domain.Question {
	title := CleanText(strings.TrimSpace(block.articleTitle))
	url := ""
	if entry, tier, ok := resolver.Resolve(block.articleTitle); ok {
		title = entry.OriginalTitle
		url = entry.URL
		p.logger.Debug("Resolved article URL",
			zap.String("category", c.String()),
			zap.Int("index", i+1),
			zap.String("tier", tier),
			zap.String("url", url),
		)
	}

	options := make([]string, domain.OptionCount)
	for j, opt := range block.options {
		options[j] = CleanText(opt)
	}

	return domain.Question{
		Question:      CleanText(block.question),
		Options:       options,
		CorrectAnswer: answer.correct,
		Explanation:   CleanText(answer.explanation),
		NewsLink:      url,
		RelatedArticle: domain.RelatedArticle{
			Title:   title,
			Excerpt: CleanText(block.excerpt),
		},
	}
}

// extractAnswerSection returns the text between the answer header and the
// next major section marker, or "" when the header is missing.
func extractAnswerSection(text string) string {
	m := answerSectionPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractAnswers returns the (correct option, explanation) entries of a
// category in order. An explanation runs until the next bold marker.
func extractAnswers(section string, c domain.Category) []answerEntry {
	var entries []answerEntry
	for _, loc := range patterns[c].answer.FindAllStringSubmatchIndex(section, -1) {
		glyph := section[loc[2]:loc[3]]
		idx, ok := circledDigits[glyph]
		if !ok {
			panic(fmt.Sprintf("unexpected option glyph %q", glyph))
		}
		rest := section[loc[1]:]
		if end := strings.Index(rest, "**"); end >= 0 {
			rest = rest[:end]
		}
		entries = append(entries, answerEntry{correct: idx, explanation: strings.TrimSpace(rest)})
	}
	return entries
}

func extractQuestionBlocks(text string, c domain.Category) []questionBlock {
	var blocks []questionBlock
	for _, m := range patterns[c].question.FindAllStringSubmatch(text, -1) {
		blocks = append(blocks, questionBlock{
			question:     strings.TrimSpace(m[1]),
			options:      [domain.OptionCount]string{m[2], m[3], m[4], m[5]},
			articleTitle: m[6],
			excerpt:      strings.TrimSpace(m[7]),
		})
	}
	return blocks
}
