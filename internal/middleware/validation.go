package middleware

import (
	"medqbank/internal/domain"
	"medqbank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Keys under which validated path parameters are stored in fiber.Ctx locals.
const (
	ValidatedBankKey      = "validated_bank"
	ValidatedSessionIDKey = "validated_session_id"
	ValidatedSlugKey      = "validated_slug"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: v}
}

// ValidateBank parses the :bank path parameter.
func (vm *ValidationMiddleware) ValidateBank() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bank, err := domain.ParseBank(c.Params("bank"))
		if err != nil {
			return err
		}
		c.Locals(ValidatedBankKey, bank)
		return c.Next()
	}
}

// ValidateSessionID checks the :id path parameter is a ULID.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("id")
		if errs := vm.validator.ValidateSessionID(sessionID); len(errs) > 0 {
			// A malformed id can't name a session; report it like an unknown one.
			return domain.NewInvalidSessionError(sessionID)
		}
		c.Locals(ValidatedSessionIDKey, sessionID)
		return c.Next()
	}
}

// ValidateSlug checks the :slug path parameter.
func (vm *ValidationMiddleware) ValidateSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if errs := vm.validator.ValidateSlug(slug); len(errs) > 0 {
			return domain.NewChapterNotFoundError(slug)
		}
		c.Locals(ValidatedSlugKey, slug)
		return c.Next()
	}
}
