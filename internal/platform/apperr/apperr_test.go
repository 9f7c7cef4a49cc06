// Copyright (c) 2026 Cinelog. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/platform/apperr"
)

/*
TestConstructors verifies code, message, and status for each error kind.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *apperr.AppError
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{"not_found", apperr.NotFound("Movie"), "NOT_FOUND", http.StatusNotFound, "Movie not found"},
		{"unauthorized", apperr.Unauthorized("Access denied"), "UNAUTHORIZED", http.StatusUnauthorized, "Access denied"},
		{"forbidden", apperr.Forbidden("Owners only"), "FORBIDDEN", http.StatusForbidden, "Owners only"},
		{"conflict", apperr.Conflict("Already rated"), "CONFLICT", http.StatusConflict, "Already rated"},
		{"validation", apperr.ValidationError("Validation failed"), "VALIDATION_ERROR", http.StatusBadRequest, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

/*
TestInternal_HidesCause verifies the cause never reaches the client message.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := apperr.Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.NotContains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause, "cause stays reachable for logging")
}

/*
TestAs_TraversesWrapChain verifies extraction through fmt.Errorf wrapping.
*/
func TestAs_TraversesWrapChain(t *testing.T) {
	inner := apperr.NotFound("Report")
	wrapped := fmt.Errorf("admin_service_failed: %w", inner)

	require.True(t, apperr.IsAppError(wrapped))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.IsAppError(nil))
}

/*
TestValidationError_Details verifies field details are carried through.
*/
func TestValidationError_Details(t *testing.T) {
	err := apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "title", Message: "This field is required"},
		apperr.FieldError{Field: "value", Message: "Must be between 1 and 5"},
	)

	require.Len(t, err.Details, 2)
	assert.Equal(t, "title", err.Details[0].Field)
	assert.Equal(t, "value", err.Details[1].Field)
}
