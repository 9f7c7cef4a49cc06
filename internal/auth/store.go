// Copyright (c) 2026 Cinelog. All rights reserved.

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Multi-row consistency requirements live here: implementations must run
// CreateWithRefreshToken and RotateRefreshToken inside a single database
// transaction.
type UserRepository interface {

	// FindByID returns the account with the given ID, or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email, or apperr.NotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// CreateWithRefreshToken atomically checks email/username uniqueness,
	// inserts the user, and persists the refresh-token hash. A duplicate
	// email or username yields apperr.Conflict and no new row.
	CreateWithRefreshToken(ctx context.Context, user *User, refreshTokenHash string) error

	// RotateRefreshToken overwrites the stored refresh-token hash for the
	// user, invalidating whatever token was hashed there before. Returns
	// apperr.NotFound if the user does not exist.
	RotateRefreshToken(ctx context.Context, userID, refreshTokenHash string) error

	// ClearRefreshToken removes the stored refresh-token hash. Idempotent:
	// clearing an absent hash (or an unknown user) is not an error.
	ClearRefreshToken(ctx context.Context, userID string) error
}
