package dto

import (
	"time"

	"newsquiz/internal/domain"
)

// QuestionPayload is a question as accepted by the write API.
// CorrectAnswer is a pointer so a missing value can be told apart from 0.
type QuestionPayload struct {
	Question       string                `json:"question"`
	Options        []string              `json:"options"`
	CorrectAnswer  *int                  `json:"correctAnswer"`
	Explanation    string                `json:"explanation"`
	NewsLink       string                `json:"newsLink"`
	RelatedArticle domain.RelatedArticle `json:"relatedArticle"`
}

// QuizData wraps the question list of a save request.
type QuizData struct {
	Questions []QuestionPayload `json:"questions"`
}

// SaveQuizRequest is the body of POST /api/quiz.
type SaveQuizRequest struct {
	GameType  string            `json:"gameType"`
	QuizDate  string            `json:"quizDate"`
	Date      string            `json:"date,omitempty"`
	Data      *QuizData         `json:"data,omitempty"`
	Questions []QuestionPayload `json:"questions,omitempty"`
}

// ResolvedDate prefers quizDate over the legacy date field.
func (r *SaveQuizRequest) ResolvedDate() string {
	if r.QuizDate != "" {
		return r.QuizDate
	}
	return r.Date
}

// ResolvedQuestions prefers data.questions over a top-level questions list.
// ok is false when the body carried neither.
func (r *SaveQuizRequest) ResolvedQuestions() (questions []QuestionPayload, ok bool) {
	if r.Data != nil && r.Data.Questions != nil {
		return r.Data.Questions, true
	}
	if r.Questions != nil {
		return r.Questions, true
	}
	return nil, false
}

// SaveQuizResponse is returned after an upsert.
type SaveQuizResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	GameType      string `json:"gameType"`
	QuizDate      string `json:"quizDate"`
	QuestionCount int    `json:"questionCount"`
	Created       bool   `json:"-"`
}

// QuizMetaResponse lists the stored dates of a game type.
type QuizMetaResponse struct {
	Success  bool     `json:"success"`
	GameType string   `json:"gameType"`
	Dates    []string `json:"dates"`
	Count    int      `json:"count"`
}

// QuestionList is the data envelope game pages read questions from.
type QuestionList struct {
	Questions []domain.Question `json:"questions"`
}

// QuizResponse is one stored quiz. Questions are served both at the top
// level and inside data.
type QuizResponse struct {
	Success       bool              `json:"success"`
	GameType      string            `json:"gameType"`
	QuizDate      string            `json:"quizDate"`
	Questions     []domain.Question `json:"questions"`
	Data          QuestionList      `json:"data"`
	QuestionCount int               `json:"questionCount"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// QuizListItem is one entry of GET /api/quiz/all.
type QuizListItem struct {
	GameType      string       `json:"gameType"`
	QuizDate      string       `json:"quizDate"`
	Data          QuestionList `json:"data"`
	QuestionCount int          `json:"questionCount"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// DeleteQuizResponse is returned after a delete.
type DeleteQuizResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
