package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("Validation Error")
	ErrConflict      = errors.New("conflict")
	ErrForbidden     = errors.New("forbidden")
	ErrConfiguration = errors.New("configuration required")
	ErrUnavailable   = errors.New("storage unavailable")
	ErrExternal      = errors.New("external service error")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// ConfigurationMissing returns an AppError for a missing prerequisite credential.
// Distinct from a storage failure because the remedy is user action (enter the
// missing value on the account page), not a retry. Handlers map it to 412.
func ConfigurationMissing(field, message string) *AppError {
	return &AppError{
		Err:     ErrConfiguration,
		Message: message,
		Field:   field,
	}
}

// Unavailable wraps a failure to reach the backing store. The original cause
// stays in the chain via errors.Join, so logs still show the driver error while
// errors.Is(err, ErrUnavailable) works for callers.
func Unavailable(cause error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrUnavailable, cause),
		Message: "storage is temporarily unavailable",
	}
}

// External returns an AppError for a non-ok response from an external
// collaborator (the news-search API). The upstream message is passed through
// unchanged so the caller sees what the provider said.
func External(message string) *AppError {
	return &AppError{
		Err:     ErrExternal,
		Message: message,
	}
}
