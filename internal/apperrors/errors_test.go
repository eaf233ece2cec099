package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatchingSurvivesWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("while deleting: %w", ErrForbidden)
	assert.ErrorIs(t, wrapped, ErrForbidden)
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}

func TestIsType(t *testing.T) {
	t.Parallel()

	err := NewDateFormatError("expiry", errors.New("parse failure"))
	assert.True(t, IsType(err, ErrorTypeDateFormat))
	assert.False(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeValidation))
	assert.False(t, IsType(nil, ErrorTypeValidation))
}

func TestUnwrapExposesInternal(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := NewStorageError(cause, "/tmp/qr.png")
	assert.ErrorIs(t, err, cause)
}

func TestLogFieldsIncludeContext(t *testing.T) {
	t.Parallel()

	err := NewDeliveryError(errors.New("timeout"), "a@x.com")
	fields := err.LogFields()

	assert.Contains(t, fields, "recipient")
	assert.Contains(t, fields, "a@x.com")
	assert.Contains(t, fields, "internal_error")
}
