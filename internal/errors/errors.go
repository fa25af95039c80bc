// Package errors defines the application error taxonomy.
//
// Structural problems (a required column wholly absent from an input
// collection) are fatal and loud: they become typed AppErrors that
// propagate to the caller. Data-quality problems (bad individual values,
// missing optional fields) never become errors; the pipeline absorbs them
// and reports counts.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType classifies an AppError.
type ErrorType string

const (
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError is an application-specific error with a type, an optional
// cause, and optional structured context.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSchemaError reports that required columns are wholly absent from an
// input collection. The missing column names ride along in the context
// and the message so callers can identify every gap at once.
func NewSchemaError(dataset string, missing []string) *AppError {
	e := NewAppError(ErrTypeSchema,
		fmt.Sprintf("%s dataset is missing required columns: %s", dataset, strings.Join(missing, ", ")),
		nil)
	e.Context["dataset"] = dataset
	e.Context["missing_columns"] = missing
	return e
}

// NewParsingError creates a parsing-related error.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsSchemaError reports whether err is (or wraps) a schema error.
func IsSchemaError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrTypeSchema
}

// MissingColumns extracts the missing column names from a schema error,
// or nil when err is not one.
func MissingColumns(err error) []string {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != ErrTypeSchema {
		return nil
	}
	cols, _ := appErr.Context["missing_columns"].([]string)
	return cols
}
