package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewStorageError("failed to write output", cause)

	assert.Contains(t, err.Error(), "failed to write output")
	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &appErr)
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("vehicles", []string{"model", "year"})

	assert.True(t, IsSchemaError(err))
	assert.Equal(t, []string{"model", "year"}, MissingColumns(err))
	assert.Contains(t, err.Error(), "model, year")

	// Schema detection survives wrapping.
	wrapped := fmt.Errorf("load failed: %w", err)
	assert.True(t, IsSchemaError(wrapped))
	assert.Equal(t, []string{"model", "year"}, MissingColumns(wrapped))
}

func TestIsSchemaErrorNegative(t *testing.T) {
	assert.False(t, IsSchemaError(errors.New("plain")))
	assert.False(t, IsSchemaError(NewValidationError("bad input")))
	assert.Nil(t, MissingColumns(NewValidationError("bad input")))
}

func TestWithContext(t *testing.T) {
	err := NewParsingError("bad cell", nil).WithContext("row", 12)
	assert.Equal(t, 12, err.Context["row"])
}

func TestToAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "schema error maps to 400",
			err:        NewSchemaError("vehicles", []string{"year"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(ErrTypeSchema),
		},
		{
			name:       "validation error maps to 400",
			err:        NewValidationError("bad metric"),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(ErrTypeValidation),
		},
		{
			name:       "not found maps to 404",
			err:        NewNotFoundError("dataset"),
			wantStatus: http.StatusNotFound,
			wantCode:   string(ErrTypeNotFound),
		},
		{
			name:       "storage error maps to 500",
			err:        NewStorageError("disk full", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   string(ErrTypeStorage),
		},
		{
			name:       "plain error maps to 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ToAPIError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestToAPIErrorPassesThroughAPIError(t *testing.T) {
	orig := ErrValidationField("year_min", "must be an integer")
	assert.Same(t, orig, ToAPIError(orig))
}
