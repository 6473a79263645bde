// Package apperr defines the error taxonomy shared by stores and handlers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication is returned for bad credentials. Its message never
	// says which field was wrong.
	ErrAuthentication = errors.New("invalid username or password")
	// ErrAuthorization is returned when a capability (session or doctor
	// access token) is missing or no longer valid.
	ErrAuthorization = errors.New("access not authorized")
	ErrNotFound      = errors.New("record not found")
	ErrConflict      = errors.New("record already exists")
	// ErrReadOnly is returned by stores that do not accept writes.
	ErrReadOnly = errors.New("data source is read-only")
)

// ValidationError reports user-correctable input problems.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
