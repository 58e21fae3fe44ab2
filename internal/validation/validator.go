package validation

import (
	"fmt"
	"strings"
	"time"

	"newsquiz/internal/domain"
)

// DateLayout is the quiz date format used in keys and request paths.
const DateLayout = "2006-01-02"

// RecommendedPerCategory is the question count each category should carry.
const RecommendedPerCategory = 2

// Report is the outcome of validating a parsed quiz.
type Report struct {
	Errors   []string
	Warnings []string
}

// Accepted reports whether the quiz may be persisted. Warnings never block.
func (r Report) Accepted() bool {
	return len(r.Errors) == 0
}

// Validator checks parsed quizzes and API requests.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuiz applies the acceptance rules to a parsed quiz.
func (v *Validator) ValidateQuiz(result domain.QuizResult) Report {
	var report Report

	for _, c := range domain.Categories {
		questions := result[c]
		switch n := len(questions); {
		case n == 0:
			report.Errors = append(report.Errors, fmt.Sprintf("%s: no questions (at least 1 required)", c))
		case n != RecommendedPerCategory:
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %d questions (%d recommended)", c, n, RecommendedPerCategory))
		}

		for i, q := range questions {
			report.Errors = append(report.Errors, questionErrors(c, i, q)...)
		}

		if len(questions) >= 2 && distinctAnswers(questions) < 2 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: every question has correct answer %d", c, questions[0].CorrectAnswer))
		}
	}

	return report
}

func questionErrors(c domain.Category, i int, q domain.Question) []string {
	var errs []string
	label := fmt.Sprintf("%s question %d", c, i+1)

	if strings.TrimSpace(q.Question) == "" {
		errs = append(errs, label+": question missing")
	}
	if q.Options == nil {
		errs = append(errs, label+": options missing")
	} else if len(q.Options) != domain.OptionCount {
		errs = append(errs, fmt.Sprintf("%s: %d options (%d required)", label, len(q.Options), domain.OptionCount))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= domain.OptionCount {
		errs = append(errs, fmt.Sprintf("%s: correctAnswer %d out of range", label, q.CorrectAnswer))
	}
	return errs
}

func distinctAnswers(questions []domain.Question) int {
	seen := make(map[int]struct{}, len(questions))
	for _, q := range questions {
		seen[q.CorrectAnswer] = struct{}{}
	}
	return len(seen)
}

// ValidateCategory validates a game type path or body parameter.
func (v *Validator) ValidateCategory(raw string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(raw) == "" {
		errors = append(errors, domain.NewMissingFieldError("gameType"))
		return errors
	}
	if _, err := domain.ParseCategory(raw); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("gameType", raw))
	}

	return errors
}

// ValidateDate validates a YYYY-MM-DD quiz date.
func (v *Validator) ValidateDate(raw string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(raw) == "" {
		errors = append(errors, domain.NewMissingFieldError("quizDate"))
		return errors
	}
	if _, err := time.Parse(DateLayout, raw); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("quizDate", raw))
	}

	return errors
}

// ValidateQuizKey validates a (category, date) pair.
func (v *Validator) ValidateQuizKey(category, date string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	errors = append(errors, v.ValidateCategory(category)...)
	errors = append(errors, v.ValidateDate(date)...)
	return errors
}

// ValidateSaveRequest validates the envelope of a quiz upsert.
// hasQuestions is false when the body carried no question list at all; an
// empty list is rejected as well.
func (v *Validator) ValidateSaveRequest(category, date string, hasQuestions bool, questionCount int) domain.ValidationErrors {
	errors := v.ValidateQuizKey(category, date)
	switch {
	case !hasQuestions:
		errors = append(errors, domain.NewMissingFieldError("data.questions"))
	case questionCount == 0:
		errors = append(errors, domain.NewEmptyFieldError("data.questions"))
	}
	return errors
}

// ValidateQuestions checks the questions of a save request against the same
// shape rules the generator output must satisfy.
func (v *Validator) ValidateQuestions(questions []domain.Question, answered []bool) domain.ValidationErrors {
	var errors domain.ValidationErrors
	for i, q := range questions {
		field := fmt.Sprintf("data.questions[%d]", i)
		if strings.TrimSpace(q.Question) == "" {
			errors = append(errors, domain.NewMissingFieldError(field+".question"))
		}
		if q.Options == nil {
			errors = append(errors, domain.NewMissingFieldError(field+".options"))
		} else if len(q.Options) != domain.OptionCount {
			errors = append(errors, domain.NewOutOfRangeError(field+".options", len(q.Options), domain.OptionCount, domain.OptionCount))
		}
		if i < len(answered) && !answered[i] {
			errors = append(errors, domain.NewMissingFieldError(field+".correctAnswer"))
		} else if q.CorrectAnswer < 0 || q.CorrectAnswer >= domain.OptionCount {
			errors = append(errors, domain.NewOutOfRangeError(field+".correctAnswer", q.CorrectAnswer, 0, domain.OptionCount-1))
		}
	}
	return errors
}
