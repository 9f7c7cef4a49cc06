// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

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

const movieColumns = "id, title, slug, description, releasedat, duration, genre, language, avgrating, totalrating, userid, createdat, updatedat"

// scanMovie hydrates a Movie from a row carrying movieColumns.
func scanMovie(row pgx.Row) (*Movie, error) {
	m := &Movie{}
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Slug,
		&m.Description,
		&m.ReleasedAt,
		&m.Duration,
		&m.Genre,
		&m.Language,
		&m.AvgRating,
		&m.TotalRating,
		&m.UserID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// # Movie Repository

// PostgresMovieRepository implements the MovieRepository interface using pgx.
type PostgresMovieRepository struct {
	pool *pgxpool.Pool
}

// NewMovieRepository creates a new PostgreSQL implementation of the MovieRepository.
func NewMovieRepository(pool *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{pool: pool}
}

// Create persists a new movie row.
func (repository *PostgresMovieRepository) Create(ctx context.Context, m *Movie) error {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := repository.pool.Exec(ctx,
		`INSERT INTO movie (id, title, slug, description, releasedat, duration, genre, language, avgrating, totalrating, userid, createdat, updatedat)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.ID,
		m.Title,
		m.Slug,
		m.Description,
		m.ReleasedAt,
		m.Duration,
		m.Genre,
		m.Language,
		m.AvgRating,
		m.TotalRating,
		m.UserID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_movie_repo_create_failed: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing movie.
func (repository *PostgresMovieRepository) Update(ctx context.Context, m *Movie) error {
	m.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx,
		`UPDATE movie
		 SET title = $2, slug = $3, description = $4, releasedat = $5, duration = $6, genre = $7, language = $8, updatedat = $9
		 WHERE id = $1`,
		m.ID,
		m.Title,
		m.Slug,
		m.Description,
		m.ReleasedAt,
		m.Duration,
		m.Genre,
		m.Language,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_movie_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Movie")
	}
	return nil
}

// FindByID retrieves a movie by primary key.
func (repository *PostgresMovieRepository) FindByID(ctx context.Context, id string) (*Movie, error) {
	query := fmt.Sprintf("SELECT %s FROM movie WHERE id = $1", movieColumns)

	m, err := scanMovie(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Movie")
		}
		return nil, fmt.Errorf("postgres_movie_repo_find_by_id_failed: %w", err)
	}
	return m, nil
}

/*
FindDetailByID returns the movie joined with its owner's username plus the
full list of individual rating values, ordered oldest first.

Two reads, no transaction: the detail view tolerates a rating landing between
the movie read and the values read.
*/
func (repository *PostgresMovieRepository) FindDetailByID(ctx context.Context, id string) (*Detail, error) {
	detail := &Detail{}

	err := repository.pool.QueryRow(ctx,
		`SELECT m.id, m.title, m.slug, m.description, m.releasedat, m.duration, m.genre, m.language,
		        m.avgrating, m.totalrating, m.userid, m.createdat, m.updatedat, a.username
		 FROM movie m
		 JOIN account a ON a.id = m.userid
		 WHERE m.id = $1`,
		id,
	).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Slug,
		&detail.Description,
		&detail.ReleasedAt,
		&detail.Duration,
		&detail.Genre,
		&detail.Language,
		&detail.AvgRating,
		&detail.TotalRating,
		&detail.UserID,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.OwnerUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Movie")
		}
		return nil, fmt.Errorf("postgres_movie_repo_find_detail_failed: %w", err)
	}

	values, err := ratingValues(ctx, repository.pool, id)
	if err != nil {
		return nil, err
	}
	detail.RatingValues = values

	return detail, nil
}

// ListAll returns the whole catalogue as listing summaries, newest first.
func (repository *PostgresMovieRepository) ListAll(ctx context.Context) ([]*Summary, error) {
	rows, err := repository.pool.Query(ctx,
		"SELECT id, title, slug, genre, avgrating, totalrating FROM movie ORDER BY createdat DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_failed: %w", err)
	}
	defer rows.Close()

	summaries := []*Summary{}
	for rows.Next() {
		s := &Summary{}
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Genre, &s.AvgRating, &s.TotalRating); err != nil {
			return nil, fmt.Errorf("postgres_movie_repo_list_scan_failed: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_rows_failed: %w", err)
	}

	return summaries, nil
}

// ratingValues reads every rating value for a movie, oldest first. querier
// accepts either the pool or an open transaction.
func ratingValues(ctx context.Context, querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, movieID string) ([]int, error) {
	rows, err := querier.Query(ctx,
		"SELECT value FROM rating WHERE movieid = $1 ORDER BY createdat ASC",
		movieID,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_rating_values_query_failed: %w", err)
	}
	defer rows.Close()

	values := []int{}
	for rows.Next() {
		var value int
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("postgres_rating_values_scan_failed: %w", err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_rating_values_rows_failed: %w", err)
	}

	return values, nil
}

// # Rating Repository

// PostgresRatingRepository implements the RatingRepository interface using pgx.
type PostgresRatingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository creates a new PostgreSQL implementation of the RatingRepository.
func NewRatingRepository(pool *pgxpool.Pool) *PostgresRatingRepository {
	return &PostgresRatingRepository{pool: pool}
}

/*
CreateAndRecompute inserts a rating and refreshes the movie's aggregate in
one transaction.

The movie row is locked first (SELECT ... FOR UPDATE), which both yields
NotFound for an absent movie and serializes concurrent raters of the same
movie so the read-recompute-write cycle cannot lose an update.
*/
func (repository *PostgresRatingRepository) CreateAndRecompute(ctx context.Context, r *Rating) (*RatedMovie, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres_rating_repo_begin_failed: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer transaction.Rollback(ctx)

	if err := lockMovieRow(ctx, transaction, r.MovieID); err != nil {
		return nil, err
	}

	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now

	_, err = transaction.Exec(ctx,
		`INSERT INTO rating (id, value, userid, movieid, createdat, updatedat)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Value, r.UserID, r.MovieID, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("You have already rated this movie")
		}
		return nil, fmt.Errorf("postgres_rating_repo_create_failed: %w", err)
	}

	m, err := recomputeAggregate(ctx, transaction, r.MovieID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres_rating_repo_commit_failed: %w", err)
	}

	return &RatedMovie{Rating: r, Movie: m}, nil
}

/*
UpdateAndRecompute changes the member's existing rating and refreshes the
movie's aggregate in one transaction. NotFound when the movie is absent or
the (user, movie) rating does not exist.
*/
func (repository *PostgresRatingRepository) UpdateAndRecompute(ctx context.Context, userID, movieID string, value int) (*RatedMovie, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres_rating_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	if err := lockMovieRow(ctx, transaction, movieID); err != nil {
		return nil, err
	}

	r := &Rating{UserID: userID, MovieID: movieID, Value: value, UpdatedAt: time.Now()}
	err = transaction.QueryRow(ctx,
		`UPDATE rating SET value = $3, updatedat = $4
		 WHERE userid = $1 AND movieid = $2
		 RETURNING id, createdat`,
		userID, movieID, value, r.UpdatedAt,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Rating")
		}
		return nil, fmt.Errorf("postgres_rating_repo_update_failed: %w", err)
	}

	m, err := recomputeAggregate(ctx, transaction, movieID)
	if err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres_rating_repo_commit_failed: %w", err)
	}

	return &RatedMovie{Rating: r, Movie: m}, nil
}

// lockMovieRow takes a row lock on the movie, returning apperr.NotFound if
// the movie does not exist.
func lockMovieRow(ctx context.Context, transaction pgx.Tx, movieID string) error {
	var id string
	err := transaction.QueryRow(ctx, "SELECT id FROM movie WHERE id = $1 FOR UPDATE", movieID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Movie")
		}
		return fmt.Errorf("postgres_rating_repo_lock_failed: %w", err)
	}
	return nil
}

/*
recomputeAggregate reads every rating value for the movie inside the open
transaction, derives mean and count via [Aggregate], writes both back, and
returns the updated movie. Callers must hold the movie row lock.
*/
func recomputeAggregate(ctx context.Context, transaction pgx.Tx, movieID string) (*Movie, error) {
	values, err := ratingValues(ctx, transaction, movieID)
	if err != nil {
		return nil, err
	}

	avg, count := Aggregate(values)

	_, err = transaction.Exec(ctx,
		"UPDATE movie SET avgrating = $2, totalrating = $3, updatedat = $4 WHERE id = $1",
		movieID, avg, count, time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_rating_repo_aggregate_write_failed: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM movie WHERE id = $1", movieColumns)
	m, err := scanMovie(transaction.QueryRow(ctx, query, movieID))
	if err != nil {
		return nil, fmt.Errorf("postgres_rating_repo_reload_failed: %w", err)
	}

	return m, nil
}

// # Report Repository

// PostgresReportRepository implements the ReportRepository interface using pgx.
type PostgresReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new PostgreSQL implementation of the ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{pool: pool}
}

// Create persists a new report row.
func (repository *PostgresReportRepository) Create(ctx context.Context, r *Report) error {
	r.CreatedAt = time.Now()

	_, err := repository.pool.Exec(ctx,
		`INSERT INTO report (id, reason, status, userid, movieid, createdat)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Reason, r.Status, r.UserID, r.MovieID, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_report_repo_create_failed: %w", err)
	}
	return nil
}
