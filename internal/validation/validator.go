package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"medqbank/internal/domain"
	"medqbank/internal/util"

	"github.com/go-playground/validator/v10"
)

// Validator checks request bodies and path parameters and reports problems
// as domain.ValidationErrors.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance. Field names in errors are
// taken from json tags.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct runs the `validate` tags of s.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{domain.NewValidationError(err.Error())}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toValidationError(fe))
	}
	return out
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "min", "gte":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("must be at least %s", fe.Param()),
			Value:   fe.Value(),
		}
	case "max", "lte":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("must be at most %s", fe.Param()),
			Value:   fe.Value(),
		}
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}

// ValidateSessionID checks the session id path parameter.
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("session_id")}
	}
	if !util.IsULID(sessionID) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("session_id", sessionID)}
	}
	return nil
}

// ValidateSlug checks a chapter slug: lower-case alphanumerics and hyphens.
func (v *Validator) ValidateSlug(slug string) domain.ValidationErrors {
	if strings.TrimSpace(slug) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("slug")}
	}
	if err := v.validate.Var(slug, "max=100,lowercase"); err != nil || !isSlug(slug) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("slug", slug)}
	}
	return nil
}

func isSlug(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}
