// Copyright (c) 2026 Cinelog. All rights reserved.

package admin

import (
	"context"

	"github.com/cinelog/cinelog/internal/movie"
)

// ReportRepository defines the moderation data access contract.
type ReportRepository interface {
	// ListReports returns every report joined with movie and reporter,
	// newest first.
	ListReports(ctx context.Context) ([]*ReportView, error)

	// GetReport returns one joined report, or apperr.NotFound.
	GetReport(ctx context.Context, reportID string) (*ReportView, error)

	// UpdateStatus sets the report's moderation status and returns the
	// updated view. Returns apperr.NotFound if the report is absent.
	UpdateStatus(ctx context.Context, reportID string, status movie.ReportStatus) (*ReportView, error)

	// DeleteReportedMovie removes the movie a report points at and returns
	// the deleted movie's ID. Ratings and reports on the movie (this one
	// included) go with it via schema-level cascades. Returns
	// apperr.NotFound if the report is absent.
	DeleteReportedMovie(ctx context.Context, reportID string) (string, error)
}
