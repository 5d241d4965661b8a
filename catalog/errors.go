package catalog

import "errors"

var (
	ErrNotFound           = errors.New("catalog: not found")
	ErrInvalidInput       = errors.New("catalog: invalid input")
	ErrInvalidCredentials = errors.New("catalog: invalid credentials")
	ErrConflict           = errors.New("catalog: conflict")
)

// ValidationError describes a rejected input field. It matches
// ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
