// Copyright (c) 2026 Cinelog. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/dberr"
)

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = "id, email, username, passwordhash, role, refreshtokenhash, createdat, updatedat"

// scanUser hydrates a User from a row carrying userColumns.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM account WHERE id = $1", userColumns)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

// FindByEmail retrieves a user record by their unique email address.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM account WHERE email = $1", userColumns)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
CreateWithRefreshToken registers a new account in a single transaction.

The duplicate check, the insert, and the refresh-token-hash write share one
transaction so that two concurrent registrations with the same identity
cannot both succeed. The unique indexes on email/username are the backstop
for the race the existence check cannot see.
*/
func (repository *PostgresUserRepository) CreateWithRefreshToken(ctx context.Context, user *User, refreshTokenHash string) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_begin_failed: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer transaction.Rollback(ctx)

	var emailTaken, usernameTaken bool
	err = transaction.QueryRow(ctx,
		`SELECT
			EXISTS (SELECT 1 FROM account WHERE email = $1),
			EXISTS (SELECT 1 FROM account WHERE username = $2)`,
		user.Email, user.Username,
	).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_duplicate_check_failed: %w", err)
	}

	if emailTaken {
		return apperr.Conflict("Email is already registered")
	}
	if usernameTaken {
		return apperr.Conflict("Username is already taken")
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.RefreshTokenHash = &refreshTokenHash

	_, err = transaction.Exec(ctx,
		`INSERT INTO account (id, email, username, passwordhash, role, refreshtokenhash, createdat, updatedat)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
		refreshTokenHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("User already exists")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_user_repo_commit_failed: %w", err)
	}

	return nil
}

/*
RotateRefreshToken overwrites the stored refresh-token hash inside a
read-then-write transaction, mirroring the login/refresh rotation contract.
*/
func (repository *PostgresUserRepository) RotateRefreshToken(ctx context.Context, userID, refreshTokenHash string) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	var id string
	err = transaction.QueryRow(ctx, "SELECT id FROM account WHERE id = $1 FOR UPDATE", userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("User")
		}
		return fmt.Errorf("postgres_user_repo_rotate_lookup_failed: %w", err)
	}

	_, err = transaction.Exec(ctx,
		"UPDATE account SET refreshtokenhash = $2, updatedat = $3 WHERE id = $1",
		userID, refreshTokenHash, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_rotate_failed: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_user_repo_commit_failed: %w", err)
	}

	return nil
}

// ClearRefreshToken nulls out the stored refresh-token hash. Idempotent.
func (repository *PostgresUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	_, err := repository.pool.Exec(ctx,
		"UPDATE account SET refreshtokenhash = NULL, updatedat = $2 WHERE id = $1",
		userID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_clear_token_failed: %w", err)
	}
	return nil
}
