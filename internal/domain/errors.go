package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput     ErrorCode = "INVALID_INPUT"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeInvalidCategory  ErrorCode = "INVALID_CATEGORY"
	CodeUpstream         ErrorCode = "UPSTREAM_ERROR"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodePersistence      ErrorCode = "PERSISTENCE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a diagnostic value to the error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidCategoryError(category string) *DomainError {
	return NewError(CodeInvalidCategory, fmt.Sprintf("Invalid category: %s", category), nil)
}

// NewUpstreamError wraps a failure of the article source or the model backend.
func NewUpstreamError(message string, cause error) *DomainError {
	return NewError(CodeUpstream, message, cause)
}

// NewPersistenceError wraps a failure of the quiz store.
func NewPersistenceError(message string, cause error) *DomainError {
	return NewError(CodePersistence, message, cause)
}

// NewValidationFailedError reports a quiz that never passed validation.
func NewValidationFailedError(attempts int, errs []string) *DomainError {
	msg := fmt.Sprintf("quiz validation failed after %d attempt(s): %s", attempts, strings.Join(errs, "; "))
	return NewError(CodeValidationFailed, msg, nil).
		WithContext("attempts", attempts).
		WithContext("errors", errs)
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}
