// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrEmptyTitle is returned when a task or subtask title is blank.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrInvalidTaskType is returned when a task type is neither simple nor advanced.
	ErrInvalidTaskType = fmt.Errorf("%w: invalid task type", ErrValidation)

	// ErrSimpleTaskSubTasks is returned when a subtask operation targets a simple task.
	ErrSimpleTaskSubTasks = fmt.Errorf("%w: cannot add subtasks to a simple task", ErrValidation)

	// ErrSubTaskNotFound is returned by Task methods when no subtask has the given ID.
	// Stores translate it into their own not-found error.
	ErrSubTaskNotFound = errors.New("subtask not found")

	// ErrEmptyTagName is returned when a tag name is blank.
	ErrEmptyTagName = fmt.Errorf("%w: tag name cannot be empty", ErrValidation)

	// ErrInvalidColor is returned when a tag color is not a #RRGGBB hex string.
	ErrInvalidColor = fmt.Errorf("%w: color must match #RRGGBB", ErrValidation)
)

// ValidationError describes a single invalid input field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for field. When err is nil the
// error wraps ErrValidation so that errors.Is(err, ErrValidation) holds.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
