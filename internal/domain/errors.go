package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode identifies a class of domain failure. The HTTP layer maps codes
// to status codes.
type ErrorCode string

const (
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	CodeChapterNotFound     ErrorCode = "CHAPTER_NOT_FOUND"
	CodeInvalidSession      ErrorCode = "INVALID_SESSION"
	CodeInvalidBank         ErrorCode = "INVALID_BANK"
	CodeInvalidChoice       ErrorCode = "INVALID_CHOICE"
	CodeNoMatchingQuestions ErrorCode = "NO_MATCHING_QUESTIONS"
)

// InvalidSessionMessage is shown when a session id resolves to no questions.
// Missing sessions and empty sessions are deliberately indistinguishable.
const InvalidSessionMessage = "Session invalide ou aucune question trouvée."

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
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

// Is matches on code so errors.Is(err, &DomainError{Code: CodeInvalidSession}) works.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a detail that is echoed back in the error response.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

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

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewChapterNotFoundError(slug string) *DomainError {
	return NewError(CodeChapterNotFound, fmt.Sprintf("Chapter not found: %s", slug), nil)
}

func NewInvalidSessionError(sessionID string) *DomainError {
	return NewError(CodeInvalidSession, InvalidSessionMessage, nil).WithContext("session_id", sessionID)
}

func NewInvalidBankError(bank string) *DomainError {
	return NewError(CodeInvalidBank, fmt.Sprintf("Invalid bank: %s", bank), nil)
}

func NewInvalidChoiceError(choiceID string) *DomainError {
	return NewError(CodeInvalidChoice, fmt.Sprintf("Choice %s does not belong to the current question", choiceID), nil)
}

func NewNoMatchingQuestionsError() *DomainError {
	return NewError(CodeNoMatchingQuestions, "No question matches the selected filters", nil)
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned as a whole so clients see every bad field at once.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewValidationError(message string) ValidationError {
	return ValidationError{Code: CodeValidation, Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Code: CodeInvalidFormat, Message: "invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}
