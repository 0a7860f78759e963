package services

import "errors"

var (
	// ErrValidation marks caller input the store refuses, e.g. a create
	// without lat, lng or type.
	ErrValidation = errors.New("validation failed")
	// ErrCameraNotFound is returned for ids absent from the collection.
	ErrCameraNotFound = errors.New("camera not found")
	// ErrPersistence wraps storage read or write failures on mutations.
	ErrPersistence = errors.New("persistence failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// ValidationError carries the message shown to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
