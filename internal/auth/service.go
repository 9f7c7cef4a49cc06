// Copyright (c) 2026 Cinelog. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/sec"
	"github.com/cinelog/cinelog/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing and describing token pairs.
type TokenProvider interface {
	// GeneratePair signs an access+refresh token pair from the claim set
	// {subject = user id, email, role}.
	GeneratePair(ctx context.Context, userID, email, role string) (*sec.TokenPair, error)

	// AccessTTL returns the configured access token lifetime.
	AccessTTL() time.Duration
}

// Service implements the authentication use cases.
//
// Any change to hashing, registration, or rotation logic is security
// sensitive and needs a second pair of eyes.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(userRepo UserRepository, tokenProvider TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProvider,
		logger:         logger,
	}
}

// Session is a successfully established identity: the user plus a fresh
// token pair.
type Session struct {
	User   *User          `json:"user"`
	Tokens *sec.TokenPair `json:"tokens"`
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

/*
Register hashes the password, creates the account with role USER, issues a
token pair, and persists the refresh-token hash — all backed by a single
database transaction in the repository so a concurrent duplicate
registration cannot also succeed.

Returns apperr.Conflict when the email or username is taken.
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {

	// Never store plain-text passwords. Default bcrypt cost balances
	// security against CPU load during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	tokens, err := service.tokenProvider.GeneratePair(ctx, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Existence check + insert + token-hash write happen atomically here.
	if err := service.userRepository.CreateWithRefreshToken(ctx, user, sec.HashToken(tokens.RefreshToken)); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))

	return &Session{User: user, Tokens: tokens}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login verifies credentials and establishes a fresh session.

A missing user and a wrong password produce the same generic Unauthorized
error to prevent account enumeration. On success the new refresh-token hash
overwrites the stored one, invalidating any previously issued refresh token.
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// bcrypt comparison is constant-time, which blunts timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	tokens, err := service.tokenProvider.GeneratePair(ctx, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if err := service.userRepository.RotateRefreshToken(ctx, user.ID, sec.HashToken(tokens.RefreshToken)); err != nil {
		return nil, fmt.Errorf("auth_service_rotate_failed: %w", err)
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return &Session{User: user, Tokens: tokens}, nil
}

/*
Logout clears the stored refresh-token hash so the current refresh token can
never be used again. Idempotent: logging out twice succeeds.
*/
func (service *Service) Logout(ctx context.Context, userID string) error {
	if err := service.userRepository.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	service.logger.Info("user_logged_out", slog.String("user_id", userID))
	return nil
}

// # Session Rotation

/*
RefreshTokens implements refresh-token rotation.

The presented token must hash to the value stored on the user row; on
success a new pair is issued and its refresh hash overwrites the stored one,
so the presented token is single-use. Every failure mode returns the same
"Access denied" to avoid distinguishing revoked from never-issued tokens.
*/
func (service *Service) RefreshTokens(ctx context.Context, userID, presentedToken string) (*sec.TokenPair, error) {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Access denied")
	}

	// A logged-out user has no stored hash and therefore no refresh grant.
	if user.RefreshTokenHash == nil {
		return nil, apperr.Unauthorized("Access denied")
	}

	if !sec.VerifyTokenHash(presentedToken, *user.RefreshTokenHash) {
		return nil, apperr.Unauthorized("Access denied")
	}

	tokens, err := service.tokenProvider.GeneratePair(ctx, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Rotation: the old refresh token is invalidated by overwrite.
	if err := service.userRepository.RotateRefreshToken(ctx, user.ID, sec.HashToken(tokens.RefreshToken)); err != nil {
		return nil, fmt.Errorf("auth_service_rotate_failed: %w", err)
	}

	service.logger.Info("tokens_refreshed", slog.String("user_id", user.ID))

	return tokens, nil
}
