package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("surname", "please fill surname")

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "surname", FieldOf(err))
	assert.Equal(t, "please fill surname", err.Error())

	// Field survives further wrapping
	wrapped := fmt.Errorf("registering student: %w", err)
	assert.ErrorIs(t, wrapped, ErrValidationFailed)
	assert.Equal(t, "surname", FieldOf(wrapped))
}

func TestInvalidPhotoTypeError(t *testing.T) {
	err := NewInvalidPhotoTypeError(`file extension "gif" is not allowed`)

	assert.ErrorIs(t, err, ErrInvalidPhotoType)
	assert.NotErrorIs(t, err, ErrValidationFailed)
}

func TestFieldOfPlainError(t *testing.T) {
	assert.Empty(t, FieldOf(errors.New("plain")))
	assert.Empty(t, FieldOf(ErrExamNotFound))
}

func TestIsMatchesAnyTarget(t *testing.T) {
	assert.True(t, Is(ErrStudentNotFound, ErrExamNotFound, ErrStudentNotFound, ErrPhotoNotFound))
	assert.True(t, Is(fmt.Errorf("wrap: %w", ErrPhotoNotFound), ErrExamNotFound, ErrStudentNotFound, ErrPhotoNotFound))
	assert.False(t, Is(ErrBadRequest, ErrExamNotFound, ErrStudentNotFound, ErrPhotoNotFound))
}
