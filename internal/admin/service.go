// Copyright (c) 2026 Cinelog. All rights reserved.

package admin

import (
	"context"
	"log/slog"

	"github.com/cinelog/cinelog/internal/movie"
)

// Service implements the moderation use cases.
type Service struct {
	reportRepository ReportRepository
	cache            movie.CatalogueCache
	logger           *slog.Logger
}

// NewService constructs a new admin [Service] with its dependencies.
func NewService(reportRepo ReportRepository, cache movie.CatalogueCache, logger *slog.Logger) *Service {
	return &Service{
		reportRepository: reportRepo,
		cache:            cache,
		logger:           logger,
	}
}

// ListReports returns the full moderation queue.
func (service *Service) ListReports(ctx context.Context) ([]*ReportView, error) {
	return service.reportRepository.ListReports(ctx)
}

// GetReport returns one report with its movie and reporter context.
func (service *Service) GetReport(ctx context.Context, reportID string) (*ReportView, error) {
	return service.reportRepository.GetReport(ctx, reportID)
}

// UpdateReportStatus sets the report's status. Status validity is enforced
// at the HTTP boundary; any transition between valid statuses is accepted.
func (service *Service) UpdateReportStatus(ctx context.Context, reportID string, status movie.ReportStatus) (*ReportView, error) {
	view, err := service.reportRepository.UpdateStatus(ctx, reportID, status)
	if err != nil {
		return nil, err
	}

	service.logger.Info("report_status_updated",
		slog.String("report_id", reportID),
		slog.String("status", string(status)),
	)

	return view, nil
}

/*
DeleteReportedMovie removes the movie the report points at, along with all
its ratings and reports (schema cascades), and drops the movie's cache
entries.

Destructive and irreversible, hence the Warn-level log entry.
*/
func (service *Service) DeleteReportedMovie(ctx context.Context, reportID string) error {
	movieID, err := service.reportRepository.DeleteReportedMovie(ctx, reportID)
	if err != nil {
		return err
	}

	service.cache.Invalidate(ctx, movieID)
	service.logger.Warn("reported_movie_deleted",
		slog.String("report_id", reportID),
		slog.String("movie_id", movieID),
	)

	return nil
}
