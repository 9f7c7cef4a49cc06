// Copyright (c) 2026 Cinelog. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/auth"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/sec"
)

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*auth.User{}}
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) CreateWithRefreshToken(_ context.Context, user *auth.User, refreshTokenHash string) error {
	for _, existing := range repo.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
		if existing.Username == user.Username {
			return apperr.Conflict("Username is already taken")
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.RefreshTokenHash = &refreshTokenHash

	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *memoryUserRepository) RotateRefreshToken(_ context.Context, userID, refreshTokenHash string) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.RefreshTokenHash = &refreshTokenHash
	return nil
}

func (repo *memoryUserRepository) ClearRefreshToken(_ context.Context, userID string) error {
	if user, ok := repo.users[userID]; ok {
		user.RefreshTokenHash = nil
	}
	return nil
}

func newTestService(t *testing.T) (*auth.Service, *memoryUserRepository) {
	t.Helper()

	tokenService, err := sec.NewTokenService(
		"access-secret-for-tests",
		"refresh-secret-for-tests",
		15*time.Minute,
		7*24*time.Hour,
		"cinelog.app",
	)
	require.NoError(t, err)

	repo := newMemoryUserRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(repo, tokenService, logger), repo
}

func register(t *testing.T, service *auth.Service) *auth.Session {
	t.Helper()
	session, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "mia@cinelog.app",
		Username: "mia",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	return session
}

/*
TestRegister verifies the happy path: hashed credentials, USER role, and a
stored refresh grant.
*/
func TestRegister(t *testing.T) {
	service, repo := newTestService(t)

	session := register(t, service)

	require.NotNil(t, session.User)
	require.NotNil(t, session.Tokens)
	assert.Equal(t, sec.RoleUser, session.User.Role)
	assert.NotEmpty(t, session.Tokens.AccessToken)
	assert.NotEmpty(t, session.Tokens.RefreshToken)

	stored := repo.users[session.User.ID]
	require.NotNil(t, stored)

	// The plain-text password must never be persisted.
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("hunter2hunter2", stored.PasswordHash))

	// The stored grant is the digest of the issued refresh token.
	require.NotNil(t, stored.RefreshTokenHash)
	assert.True(t, sec.VerifyTokenHash(session.Tokens.RefreshToken, *stored.RefreshTokenHash))
}

/*
TestRegister_Duplicate verifies duplicate identities surface as Conflict.
*/
func TestRegister_Duplicate(t *testing.T) {
	service, _ := newTestService(t)
	register(t, service)

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "mia@cinelog.app",
		Username: "other",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Email:    "other@cinelog.app",
		Username: "mia",
		Password: "hunter2hunter2",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestLogin verifies credential checks and refresh-grant rotation on login.
*/
func TestLogin(t *testing.T) {
	service, repo := newTestService(t)
	registered := register(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "mia@cinelog.app",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)

	// Login rotates the stored grant to the new refresh token.
	stored := repo.users[session.User.ID]
	require.NotNil(t, stored.RefreshTokenHash)
	assert.True(t, sec.VerifyTokenHash(session.Tokens.RefreshToken, *stored.RefreshTokenHash))
	assert.False(t, sec.VerifyTokenHash(registered.Tokens.RefreshToken, *stored.RefreshTokenHash))
}

/*
TestLogin_InvalidCredentials verifies unknown email and wrong password are
indistinguishable to the caller.
*/
func TestLogin_InvalidCredentials(t *testing.T) {
	service, _ := newTestService(t)
	register(t, service)

	_, unknownErr := service.Login(context.Background(), auth.LoginInput{
		Email:    "nobody@cinelog.app",
		Password: "hunter2hunter2",
	})
	require.Error(t, unknownErr)

	_, wrongErr := service.Login(context.Background(), auth.LoginInput{
		Email:    "mia@cinelog.app",
		Password: "wrong-password",
	})
	require.Error(t, wrongErr)

	assert.Equal(t, "UNAUTHORIZED", apperr.As(unknownErr).Code)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(wrongErr).Code)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

/*
TestRefreshTokens_Rotation verifies a refresh token is single use.
*/
func TestRefreshTokens_Rotation(t *testing.T) {
	service, _ := newTestService(t)
	session := register(t, service)

	userID := session.User.ID
	original := session.Tokens.RefreshToken

	rotated, err := service.RefreshTokens(context.Background(), userID, original)
	require.NoError(t, err)
	assert.NotEqual(t, original, rotated.RefreshToken)

	// The first token was invalidated by the rotation.
	_, err = service.RefreshTokens(context.Background(), userID, original)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The rotated token still works.
	_, err = service.RefreshTokens(context.Background(), userID, rotated.RefreshToken)
	assert.NoError(t, err)
}

/*
TestRefreshTokens_AfterLogout verifies logout revokes the refresh grant.
*/
func TestRefreshTokens_AfterLogout(t *testing.T) {
	service, _ := newTestService(t)
	session := register(t, service)

	require.NoError(t, service.Logout(context.Background(), session.User.ID))

	_, err := service.RefreshTokens(context.Background(), session.User.ID, session.Tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// Logout is idempotent.
	assert.NoError(t, service.Logout(context.Background(), session.User.ID))
}

/*
TestRefreshTokens_UnknownUser verifies the generic denial for absent users.
*/
func TestRefreshTokens_UnknownUser(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.RefreshTokens(context.Background(), "no-such-user", "some-token")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
