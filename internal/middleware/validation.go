package middleware

import (
	"newsquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalCategory = "validated_category"
	LocalDate     = "validated_date"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateCategory validates the :category path parameter
func (vm *ValidationMiddleware) ValidateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := c.Params("category")
		if errors := vm.validator.ValidateCategory(category); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(LocalCategory, category)
		return c.Next()
	}
}

// ValidateQuizKey validates the :category and :date path parameters
func (vm *ValidationMiddleware) ValidateQuizKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		category := c.Params("category")
		date := c.Params("date")
		if errors := vm.validator.ValidateQuizKey(category, date); len(errors) > 0 {
			return errors
		}

		c.Locals(LocalCategory, category)
		c.Locals(LocalDate, date)
		return c.Next()
	}
}
