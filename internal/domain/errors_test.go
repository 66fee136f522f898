package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewInvalidSessionError("01ABC"))

	assert.True(t, errors.Is(err, &DomainError{Code: CodeInvalidSession}))
	assert.False(t, errors.Is(err, &DomainError{Code: CodeNotFound}))
}

func TestDomainError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("failed to load chapters", cause)

	assert.Equal(t, "failed to load chapters: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Chapter not found: cardio", NewChapterNotFoundError("cardio").Error())
}

func TestInvalidSessionError(t *testing.T) {
	err := NewInvalidSessionError("01ABC")
	assert.Equal(t, CodeInvalidSession, err.Code)
	assert.Equal(t, InvalidSessionMessage, err.Message)
	assert.Equal(t, "01ABC", err.Context["session_id"])
}

func TestDomainError_MarshalJSONHidesCause(t *testing.T) {
	err := NewInternalError("boom", errors.New("secret dsn"))
	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"boom"}`, string(data))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		NewMissingFieldError("choice_id"),
		NewOutOfRangeError("year", 9, MinYear, MaxYear),
	}
	assert.Equal(t, "validation failed: choice_id: field is required; year: must be between 1 and 6", errs.Error())
	assert.Equal(t, "plain", NewValidationError("plain").Error())
}
