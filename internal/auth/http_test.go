// Copyright (c) 2026 Cinelog. All rights reserved.

package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/auth"
	"github.com/cinelog/cinelog/internal/platform/middleware"
	"github.com/cinelog/cinelog/internal/platform/sec"
)

// newTestRouter wires the auth routes behind the real Authenticate
// middleware, mirroring the production chain.
func newTestRouter(t *testing.T) (http.Handler, *auth.Service) {
	t.Helper()

	tokenService, err := sec.NewTokenService(
		"access-secret-for-tests",
		"refresh-secret-for-tests",
		15*time.Minute,
		7*24*time.Hour,
		"cinelog.app",
	)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(newMemoryUserRepository(), tokenService, logger)
	handler := auth.NewHandler(service, tokenService)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Mount("/", handler.Routes())
	return router, service
}

func postJSON(t *testing.T, router http.Handler, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRegisterEndpoint verifies the created session envelope and the
validation failure path.
*/
func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := postJSON(t, router, "/register", "",
		`{"email":"mia@cinelog.app","username":"mia","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Data struct {
			User struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
			Tokens struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "mia@cinelog.app", body.Data.User.Email)
	assert.Equal(t, "USER", body.Data.User.Role)
	assert.NotEmpty(t, body.Data.Tokens.AccessToken)
	assert.NotEmpty(t, body.Data.Tokens.RefreshToken)

	// The password hash must never appear in the response.
	assert.NotContains(t, recorder.Body.String(), "password")

	// Short password: 400 with a field detail.
	recorder = postJSON(t, router, "/register", "",
		`{"email":"nat@cinelog.app","username":"nat","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"password"`)
}

/*
TestLoginEndpoint verifies the 401 on wrong credentials.
*/
func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	postJSON(t, router, "/register", "",
		`{"email":"mia@cinelog.app","username":"mia","password":"hunter2hunter2"}`)

	recorder := postJSON(t, router, "/login", "",
		`{"email":"mia@cinelog.app","password":"hunter2hunter2"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = postJSON(t, router, "/login", "",
		`{"email":"mia@cinelog.app","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRefreshEndpoint verifies the rotation flow end to end over HTTP,
including the subject-mismatch denial.
*/
func TestRefreshEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	mia, err := service.Register(context.Background(), auth.RegisterInput{
		Email: "mia@cinelog.app", Username: "mia", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	nat, err := service.Register(context.Background(), auth.RegisterInput{
		Email: "nat@cinelog.app", Username: "nat", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	// No access token: the guard rejects before the handler runs.
	recorder := postJSON(t, router, "/refresh", "",
		`{"refresh_token":"`+mia.Tokens.RefreshToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Someone else's refresh token: denied.
	recorder = postJSON(t, router, "/refresh", mia.Tokens.AccessToken,
		`{"refresh_token":"`+nat.Tokens.RefreshToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Own refresh token: a fresh pair comes back.
	recorder = postJSON(t, router, "/refresh", mia.Tokens.AccessToken,
		`{"refresh_token":"`+mia.Tokens.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
			TokenType    string `json:"token_type"`
			ExpiresIn    int64  `json:"expires_in"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Bearer", body.Data.TokenType)
	assert.Equal(t, int64(900), body.Data.ExpiresIn)
	assert.NotEqual(t, mia.Tokens.RefreshToken, body.Data.RefreshToken)

	// The spent token cannot be replayed.
	recorder = postJSON(t, router, "/refresh", mia.Tokens.AccessToken,
		`{"refresh_token":"`+mia.Tokens.RefreshToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestLogoutEndpoint verifies the 204 and that it requires authentication.
*/
func TestLogoutEndpoint(t *testing.T) {
	router, service := newTestRouter(t)

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Email: "mia@cinelog.app", Username: "mia", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	recorder := postJSON(t, router, "/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = postJSON(t, router, "/logout", session.Tokens.AccessToken, "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
