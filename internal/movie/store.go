// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import "context"

// MovieRepository defines the data access contract for movies.
//
// # Architecture
//
// The interface lives in the domain package because the service layer (the
// consumer) defines what it needs; the pgx implementation sits alongside in
// store_postgres.go.
type MovieRepository interface {
	// Create persists a new movie. The caller generates ID and Slug first.
	Create(ctx context.Context, m *Movie) error

	// Update persists changes to an existing movie's mutable fields.
	// Returns apperr.NotFound if the movie is absent.
	Update(ctx context.Context, m *Movie) error

	// FindByID returns the movie with the given ID, or apperr.NotFound.
	FindByID(ctx context.Context, id string) (*Movie, error)

	// FindDetailByID returns the movie joined with its owner's username and
	// every individual rating value, or apperr.NotFound.
	FindDetailByID(ctx context.Context, id string) (*Detail, error)

	// ListAll returns the full catalogue as listing summaries, newest first.
	ListAll(ctx context.Context) ([]*Summary, error)
}

// RatingRepository defines the data access contract for ratings.
//
// # Consistency
//
// Both write methods must run the rating write AND the movie aggregate
// recomputation inside a single transaction that locks the movie row, so
// concurrent raters serialize and no aggregate update is lost.
type RatingRepository interface {
	// CreateAndRecompute inserts the rating, recomputes the movie's
	// avg/total aggregate, and returns the joined result.
	//
	// Returns apperr.NotFound if the movie is absent and apperr.Conflict if
	// the member already rated this movie.
	CreateAndRecompute(ctx context.Context, r *Rating) (*RatedMovie, error)

	// UpdateAndRecompute changes the value of the member's existing rating
	// for the movie, recomputes the aggregate, and returns the joined
	// result.
	//
	// Returns apperr.NotFound if the movie is absent or the member has not
	// rated it yet.
	UpdateAndRecompute(ctx context.Context, userID, movieID string, value int) (*RatedMovie, error)
}

// ReportRepository defines the data access contract for abuse reports.
type ReportRepository interface {
	// Create persists a new report. The caller verifies the movie exists.
	Create(ctx context.Context, r *Report) error
}
