package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrExamNotFound    = errors.New("exam not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrPhotoNotFound   = errors.New("photo not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidPhotoType = errors.New("invalid photo type")
	ErrBadRequest       = errors.New("bad request")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField attaches the offending field name to the error
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// NewValidationError creates a validation error for a specific field
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewInvalidPhotoTypeError creates an error for a rejected photo upload
func NewInvalidPhotoTypeError(message string) error {
	return &CustomError{
		Err:     ErrInvalidPhotoType,
		Message: message,
	}
}

// FieldOf extracts the field name from an error chain, if any
func FieldOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Field
	}
	return ""
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
