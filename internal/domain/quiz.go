package domain

import "time"

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// RelatedArticle points a question back at the article it was drafted from.
type RelatedArticle struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// Question is a single multiple-choice quiz question.
type Question struct {
	Question       string         `json:"question"`
	Options        []string       `json:"options"`
	CorrectAnswer  int            `json:"correctAnswer"` // 0-based option index
	Explanation    string         `json:"explanation"`
	NewsLink       string         `json:"newsLink"`
	RelatedArticle RelatedArticle `json:"relatedArticle"`
}

// QuizResult groups the questions of one run by category.
type QuizResult map[Category][]Question

// NewQuizResult returns a result with an empty list for every category.
func NewQuizResult() QuizResult {
	result := make(QuizResult, len(Categories))
	for _, c := range Categories {
		result[c] = []Question{}
	}
	return result
}

// Counts returns the number of questions per category, keyed by game type.
func (r QuizResult) Counts() map[string]int {
	counts := make(map[string]int, len(Categories))
	for _, c := range Categories {
		counts[string(c)] = len(r[c])
	}
	return counts
}

// Total is the number of questions across all categories.
func (r QuizResult) Total() int {
	total := 0
	for _, qs := range r {
		total += len(qs)
	}
	return total
}

// StoredQuiz is the persisted value for one (category, date) key.
type StoredQuiz struct {
	GameType      Category   `json:"gameType"`
	QuizDate      string     `json:"quizDate"`
	Questions     []Question `json:"questions"`
	QuestionCount int        `json:"questionCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// QuizEventType describes a change to stored quiz data.
type QuizEventType string

const (
	QuizEventUpsert QuizEventType = "UPSERT"
	QuizEventRemove QuizEventType = "REMOVE"
)

// QuizEvent is published whenever a stored quiz changes.
type QuizEvent struct {
	GameType Category      `json:"gameType"`
	QuizDate string        `json:"quizDate"`
	Event    QuizEventType `json:"event"`
}
