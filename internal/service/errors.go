package service

import (
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Store errors are wrapped in ServiceError, which keeps them reachable through errors.Is
// 3. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrTagNameExists indicates another tag already uses the name, compared case-insensitively.
	// API layer should map this to HTTP 409 Conflict.
	ErrTagNameExists = fmt.Errorf("%w: tag name already exists", store.ErrDuplicate)

	// ErrUnknownTag indicates a task references a tag ID that does not exist.
	// API layer should map this to HTTP 400 Bad Request.
	ErrUnknownTag = fmt.Errorf("%w: unknown tag", domain.ErrValidation)
)

// ServiceError is a custom error type for service errors.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
