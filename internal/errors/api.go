package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the structured JSON error payload returned by the HTTP
// transport.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// ValidationError carries per-field validation detail.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrValidationField creates a 400 validation error with field details.
func ErrValidationField(field, message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  "VALIDATION_FAILED",
		Message:    "Request validation failed",
		Details:    ValidationError{Field: field, Message: message},
	}
}

// Predefined errors for common transport scenarios.
var (
	ErrInvalidRequest = NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrNotFound       = NewAPIError(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ToAPIError maps an application error onto the HTTP error payload.
// Schema and validation problems are client errors (the request asked for
// columns or filters the data cannot answer); everything else is a 500.
func ToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return &APIError{
			StatusCode: http.StatusInternalServerError,
			ErrorCode:  "INTERNAL_SERVER_ERROR",
			Message:    "Internal server error",
			Details:    err.Error(),
		}
	}

	switch appErr.Type {
	case ErrTypeSchema, ErrTypeValidation:
		return &APIError{
			StatusCode: http.StatusBadRequest,
			ErrorCode:  string(appErr.Type),
			Message:    appErr.Message,
			Details:    appErr.Context,
		}
	case ErrTypeNotFound:
		return &APIError{
			StatusCode: http.StatusNotFound,
			ErrorCode:  string(appErr.Type),
			Message:    appErr.Message,
		}
	default:
		return &APIError{
			StatusCode: http.StatusInternalServerError,
			ErrorCode:  string(appErr.Type),
			Message:    appErr.Message,
		}
	}
}
