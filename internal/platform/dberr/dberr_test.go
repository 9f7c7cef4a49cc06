// Copyright (c) 2026 Cinelog. All rights reserved.

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/dberr"
)

/*
TestWrap verifies the driver-error to AppError classification.
*/
func TestWrap(t *testing.T) {
	assert.Nil(t, dberr.Wrap(nil, "Movie"))

	notFound := apperr.As(dberr.Wrap(pgx.ErrNoRows, "Movie"))
	require.NotNil(t, notFound)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)
	assert.Equal(t, "Movie not found", notFound.Message)

	unique := &pgconn.PgError{Code: "23505"}
	conflict := apperr.As(dberr.Wrap(fmt.Errorf("insert: %w", unique), "Rating"))
	require.NotNil(t, conflict)
	assert.Equal(t, http.StatusConflict, conflict.HTTPStatus)

	internal := apperr.As(dberr.Wrap(errors.New("connection reset"), "Movie"))
	require.NotNil(t, internal)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
}

/*
TestIsUniqueViolation verifies SQLSTATE detection through wrap chains.
*/
func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("wrapped: %w", unique)))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain")))
	assert.False(t, dberr.IsUniqueViolation(nil))
}
