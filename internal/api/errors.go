package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/contribution"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// safeValidationErrors are validation sentinels whose text is fit for clients.
var safeValidationErrors = []error{
	domain.ErrEmptyTitle,
	domain.ErrInvalidTaskType,
	domain.ErrSimpleTaskSubTasks,
	domain.ErrEmptyTagName,
	domain.ErrInvalidColor,
	contribution.ErrInvalidDays,
	contribution.ErrInvalidRange,
	contribution.ErrRangeTooLong,
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrSubTaskNotFound):
		return "Subtask not found"

	case errors.Is(err, store.ErrTagNotFound):
		return "Tag not found"

	// Conflict errors
	case errors.Is(err, service.ErrTagNameExists):
		return "Tag with this name already exists"
	}

	// Bad request errors
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
	}

	for _, sentinel := range safeValidationErrors {
		if errors.Is(err, sentinel) {
			return clientMessage(sentinel)
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid format"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and safe message and writes the
// error envelope. A non-empty fallback replaces the generic 500 message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns request validation failures into a short
// message naming the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "hexcolor", "len":
		return "must be a #RRGGBB color"
	case "notblank":
		return "must not be blank"
	default:
		return "validation failed"
	}
}

// clientMessage strips the generic "validation failed: " prefix from a
// sentinel's text and capitalizes the rest.
func clientMessage(sentinel error) string {
	msg := strings.TrimPrefix(sentinel.Error(), domain.ErrValidation.Error()+": ")
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
