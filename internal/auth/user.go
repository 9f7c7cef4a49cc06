// Copyright (c) 2026 Cinelog. All rights reserved.

/*
Package auth implements the user identity and session lifecycle.

It defines the User entity and the register/login/logout/refresh flows,
including refresh-token rotation: a SHA-256 hash of the current refresh token
is persisted on the user row and overwritten on every login and refresh, so a
previously issued refresh token can never be replayed.
*/
package auth

import (
	"time"

	"github.com/cinelog/cinelog/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Cinelog platform.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`

	// RefreshTokenHash is the SHA-256 digest of the currently valid refresh
	// token, or nil when the user is logged out. Never serialized.
	RefreshTokenHash *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

// Field names used for validation and JSON payloads in the auth domain.
const (
	FieldEmail        = "email"
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldAccessToken  = "access_token"
	FieldRefreshToken = "refresh_token"
	FieldTokenType    = "token_type"
	FieldExpiresIn    = "expires_in"
	FieldMessage      = "message"
)
