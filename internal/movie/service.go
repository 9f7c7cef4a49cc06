// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/pkg/slug"
	"github.com/cinelog/cinelog/pkg/uuid"
)

// # Contracts & Types

// CatalogueCache is the read-cache contract the service drives. [*Cache] is
// the Redis implementation.
type CatalogueCache interface {
	GetList(ctx context.Context) ([]*Summary, bool)
	SetList(ctx context.Context, summaries []*Summary)
	GetDetail(ctx context.Context, movieID string) (*Detail, bool)
	SetDetail(ctx context.Context, detail *Detail)
	Invalidate(ctx context.Context, movieIDs ...string)
}

// Service implements the catalogue use cases: movie CRUD, rating writes with
// aggregate recomputation, and abuse reports.
type Service struct {
	movieRepository  MovieRepository
	ratingRepository RatingRepository
	reportRepository ReportRepository
	cache            CatalogueCache
	logger           *slog.Logger
}

// NewService constructs a new movie [Service] with its dependencies.
func NewService(
	movieRepo MovieRepository,
	ratingRepo RatingRepository,
	reportRepo ReportRepository,
	cache CatalogueCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		movieRepository:  movieRepo,
		ratingRepository: ratingRepo,
		reportRepository: reportRepo,
		cache:            cache,
		logger:           logger,
	}
}

// MovieInput holds the writable fields of a movie, shared by create and
// update. ReleasedAt carries an ISO calendar date (YYYY-MM-DD), validated at
// the HTTP boundary and parsed here.
type MovieInput struct {
	Title       string
	Description string
	ReleasedAt  string
	Duration    int
	Genre       string
	Language    string
}

// releaseDateLayout is the accepted wire format for ReleasedAt.
const releaseDateLayout = "2006-01-02"

// # Movie CRUD

// CreateMovie adds a new catalogue entry owned by userID. The slug is
// derived from the title; aggregates start at zero.
func (service *Service) CreateMovie(ctx context.Context, userID string, input MovieInput) (*Movie, error) {
	releasedAt, err := time.Parse(releaseDateLayout, input.ReleasedAt)
	if err != nil {
		return nil, apperr.ValidationError("Invalid release date")
	}

	m := &Movie{
		ID:          uuid.New(),
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		ReleasedAt:  releasedAt,
		Duration:    input.Duration,
		Genre:       input.Genre,
		Language:    input.Language,
		UserID:      userID,
	}

	if err := service.movieRepository.Create(ctx, m); err != nil {
		return nil, err
	}

	service.cache.Invalidate(ctx, m.ID)
	service.logger.Info("movie_created", slog.String("movie_id", m.ID), slog.String("user_id", userID))

	return m, nil
}

/*
UpdateMovie replaces the mutable fields of an existing movie.

Only the owner may update: NotFound if the movie is absent, Forbidden if the
caller is not the owner. The slug is re-derived from the new title.
*/
func (service *Service) UpdateMovie(ctx context.Context, userID, movieID string, input MovieInput) (*Movie, error) {
	m, err := service.movieRepository.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if m.UserID != userID {
		return nil, apperr.Forbidden("You can only update your own movies")
	}

	releasedAt, err := time.Parse(releaseDateLayout, input.ReleasedAt)
	if err != nil {
		return nil, apperr.ValidationError("Invalid release date")
	}

	m.Title = input.Title
	m.Slug = slug.From(input.Title)
	m.Description = input.Description
	m.ReleasedAt = releasedAt
	m.Duration = input.Duration
	m.Genre = input.Genre
	m.Language = input.Language

	if err := service.movieRepository.Update(ctx, m); err != nil {
		return nil, err
	}

	service.cache.Invalidate(ctx, m.ID)
	service.logger.Info("movie_updated", slog.String("movie_id", m.ID), slog.String("user_id", userID))

	return m, nil
}

// GetMovieByID returns the detail view, served from the cache when warm.
func (service *Service) GetMovieByID(ctx context.Context, movieID string) (*Detail, error) {
	if detail, ok := service.cache.GetDetail(ctx, movieID); ok {
		return detail, nil
	}

	detail, err := service.movieRepository.FindDetailByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	service.cache.SetDetail(ctx, detail)
	return detail, nil
}

// GetAllMovies returns the full catalogue listing, served from the cache
// when warm.
func (service *Service) GetAllMovies(ctx context.Context) ([]*Summary, error) {
	if summaries, ok := service.cache.GetList(ctx); ok {
		return summaries, nil
	}

	summaries, err := service.movieRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	service.cache.SetList(ctx, summaries)
	return summaries, nil
}

// # Ratings

/*
CreateRating records the member's first rating for a movie and returns the
rating joined with the movie's recomputed aggregate.

NotFound if the movie is absent; Conflict if the member already rated it.
*/
func (service *Service) CreateRating(ctx context.Context, userID, movieID string, value int) (*RatedMovie, error) {
	rated, err := service.ratingRepository.CreateAndRecompute(ctx, &Rating{
		ID:      uuid.New(),
		Value:   value,
		UserID:  userID,
		MovieID: movieID,
	})
	if err != nil {
		return nil, err
	}

	service.cache.Invalidate(ctx, movieID)
	service.logger.Info("rating_created",
		slog.String("movie_id", movieID),
		slog.String("user_id", userID),
		slog.Int("value", value),
	)

	return rated, nil
}

/*
UpdateRating changes the member's existing rating for a movie and returns
the rating joined with the recomputed aggregate.

NotFound if the movie is absent or the member has not rated it yet.
*/
func (service *Service) UpdateRating(ctx context.Context, userID, movieID string, value int) (*RatedMovie, error) {
	rated, err := service.ratingRepository.UpdateAndRecompute(ctx, userID, movieID, value)
	if err != nil {
		return nil, err
	}

	service.cache.Invalidate(ctx, movieID)
	service.logger.Info("rating_updated",
		slog.String("movie_id", movieID),
		slog.String("user_id", userID),
		slog.Int("value", value),
	)

	return rated, nil
}

// # Reports

// ReportMovie files an abuse report with status PENDING. Duplicate reports
// are allowed. NotFound if the movie is absent.
func (service *Service) ReportMovie(ctx context.Context, userID, movieID, reason string) (*Report, error) {
	if _, err := service.movieRepository.FindByID(ctx, movieID); err != nil {
		return nil, err
	}

	report := &Report{
		ID:      uuid.New(),
		Reason:  reason,
		Status:  ReportStatusPending,
		UserID:  userID,
		MovieID: movieID,
	}

	if err := service.reportRepository.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("movie_service_report_failed: %w", err)
	}

	service.logger.Info("movie_reported", slog.String("movie_id", movieID), slog.String("user_id", userID))

	return report, nil
}
