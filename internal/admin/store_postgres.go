// Copyright (c) 2026 Cinelog. All rights reserved.

package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelog/cinelog/internal/movie"
	"github.com/cinelog/cinelog/internal/platform/apperr"
)

// PostgresReportRepository implements the ReportRepository interface using pgx.
type PostgresReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new PostgreSQL implementation of the ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{pool: pool}
}

// reportViewQuery joins report with its movie and reporter account.
const reportViewQuery = `
	SELECT r.id, r.reason, r.status, r.createdat,
	       m.id, m.title, m.avgrating, m.totalrating,
	       a.id, a.username
	FROM report r
	JOIN movie m ON m.id = r.movieid
	JOIN account a ON a.id = r.userid`

// scanReportView hydrates a ReportView from a row carrying reportViewQuery columns.
func scanReportView(row pgx.Row) (*ReportView, error) {
	view := &ReportView{}
	err := row.Scan(
		&view.ID,
		&view.Reason,
		&view.Status,
		&view.CreatedAt,
		&view.Movie.ID,
		&view.Movie.Title,
		&view.Movie.AvgRating,
		&view.Movie.TotalRating,
		&view.Reporter.ID,
		&view.Reporter.Username,
	)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ListReports returns the full moderation queue, newest first.
func (repository *PostgresReportRepository) ListReports(ctx context.Context) ([]*ReportView, error) {
	rows, err := repository.pool.Query(ctx, reportViewQuery+" ORDER BY r.createdat DESC")
	if err != nil {
		return nil, fmt.Errorf("postgres_report_repo_list_failed: %w", err)
	}
	defer rows.Close()

	views := []*ReportView{}
	for rows.Next() {
		view, err := scanReportView(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_report_repo_list_scan_failed: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_report_repo_list_rows_failed: %w", err)
	}

	return views, nil
}

// GetReport returns one joined report by primary key.
func (repository *PostgresReportRepository) GetReport(ctx context.Context, reportID string) (*ReportView, error) {
	view, err := scanReportView(repository.pool.QueryRow(ctx, reportViewQuery+" WHERE r.id = $1", reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Report")
		}
		return nil, fmt.Errorf("postgres_report_repo_get_failed: %w", err)
	}
	return view, nil
}

// UpdateStatus advances the report's moderation status and returns the
// refreshed view.
func (repository *PostgresReportRepository) UpdateStatus(ctx context.Context, reportID string, status movie.ReportStatus) (*ReportView, error) {
	tag, err := repository.pool.Exec(ctx,
		"UPDATE report SET status = $2 WHERE id = $1",
		reportID, status,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_report_repo_update_status_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("Report")
	}

	return repository.GetReport(ctx, reportID)
}

/*
DeleteReportedMovie resolves the report's movie and deletes it in one
transaction. The report row itself, every other report on the movie, and all
ratings disappear through the schema's ON DELETE CASCADE rules.
*/
func (repository *PostgresReportRepository) DeleteReportedMovie(ctx context.Context, reportID string) (string, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("postgres_report_repo_begin_failed: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer transaction.Rollback(ctx)

	var movieID string
	err = transaction.QueryRow(ctx, "SELECT movieid FROM report WHERE id = $1", reportID).Scan(&movieID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Report")
		}
		return "", fmt.Errorf("postgres_report_repo_lookup_failed: %w", err)
	}

	if _, err := transaction.Exec(ctx, "DELETE FROM movie WHERE id = $1", movieID); err != nil {
		return "", fmt.Errorf("postgres_report_repo_delete_movie_failed: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return "", fmt.Errorf("postgres_report_repo_commit_failed: %w", err)
	}

	return movieID, nil
}
