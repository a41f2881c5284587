package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestConflictError_Creation(t *testing.T) {
	err := NewConflictError("client with this phone already exists")

	assert.NotNil(t, err)
	assert.Equal(t, "client with this phone already exists", err.Error())

	conflictErr, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.NotNil(t, conflictErr)
}

func TestConflictError_IsConflictError_WithOtherError(t *testing.T) {
	conflictErr, ok := IsConflictError(errors.New("boom"))
	assert.False(t, ok)
	assert.Nil(t, conflictErr)
}

func TestDeadlockError_Creation(t *testing.T) {
	err := NewDeadlockError("max retries exceeded")

	assert.NotNil(t, err)
	assert.Equal(t, "max retries exceeded", err.Error())

	deadlockErr, ok := IsDeadlockError(err)
	assert.True(t, ok)
	assert.NotNil(t, deadlockErr)

	deadlockErr, ok = IsDeadlockError(errors.New("boom"))
	assert.False(t, ok)
	assert.Nil(t, deadlockErr)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "email", Message: "invalid email"},
		{Field: "phone", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
