package middleware

import (
	"errors"
	"net/http"

	"newsquiz/internal/domain"
	"newsquiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request. Error repeats Message
// for clients that only read the error field.
type ErrorResponse struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected field of a request.
type ValidationErrorResponse struct {
	Success bool                     `json:"success"`
	Error   string                   `json:"error"`
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

// ErrorHandler maps errors returned by handlers to JSON responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(zap.String("method", c.Method()), zap.String("path", c.Path()))

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Request rejected", zap.Int("error_count", len(validationErrs)), zap.Error(validationErrs))
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Error:   validationErrs.Error(),
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			status := statusFor(domainErr.Code)
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.Int("status", status),
				zap.Error(err),
			}
			if status >= http.StatusInternalServerError {
				log.Error("Request failed", fields...)
			} else {
				log.Warn("Request failed", fields...)
			}
			return writeError(c, status, string(domainErr.Code), domainErr.Message, domainErr.Context)
		}

		// fiber routing errors (404 unknown route, 405 wrong method) keep their status
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("HTTP error", zap.Int("status", fiberErr.Code), zap.String("message", fiberErr.Message))
			return writeError(c, fiberErr.Code, "HTTP_ERROR", fiberErr.Message, nil)
		}

		log.Error("Unhandled error", zap.Error(err))
		return writeError(c, http.StatusInternalServerError, string(domain.CodeInternal), "Internal server error", nil)
	}
}

func writeError(c *fiber.Ctx, status int, code, message string, details map[string]interface{}) error {
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		resp.Details = details
	}
	return c.Status(status).JSON(resp)
}

// statusFor maps domain error codes to HTTP status codes
func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeInvalidCategory, domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
