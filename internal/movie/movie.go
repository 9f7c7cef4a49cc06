// Copyright (c) 2026 Cinelog. All rights reserved.

/*
Package movie implements the catalogue core: movies, member ratings, and
abuse reports.

# Aggregates

A Movie carries two derived metrics, AvgRating and TotalRating, which are
recomputed from the rating table inside the same transaction as every rating
write. Handlers never write these fields directly.
*/
package movie

import "time"

// Movie is the central aggregate of the Cinelog catalogue.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"` // URL-safe identifier derived from the title.
	Description string    `json:"description"`
	ReleasedAt  time.Time `json:"released_at"`
	Duration    int       `json:"duration"` // Runtime in minutes.
	Genre       string    `json:"genre"`
	Language    string    `json:"language"`

	// # Derived Metrics
	//
	// Updated only by the rating aggregation routine, never by direct writes.
	AvgRating   float64 `json:"avg_rating"`
	TotalRating int     `json:"total_rating"`

	UserID    string    `json:"user_id"` // Owning member; only the owner may edit.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating is one member's score for one movie. The (UserID, MovieID) pair is
// unique: a member rates a movie once and then updates that rating.
type Rating struct {
	ID        string    `json:"id"`
	Value     int       `json:"value"` // Whole stars, 1 to 5.
	UserID    string    `json:"user_id"`
	MovieID   string    `json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReportStatus tracks where an abuse report sits in the moderation queue.
type ReportStatus string

const (
	// ReportStatusPending is the initial status of every new report.
	ReportStatusPending ReportStatus = "PENDING"
	// ReportStatusReviewed indicates a moderator has looked at the report.
	ReportStatusReviewed ReportStatus = "REVIEWED"
	// ReportStatusResolved indicates action was taken.
	ReportStatusResolved ReportStatus = "RESOLVED"
	// ReportStatusDismissed indicates the report was judged invalid.
	ReportStatusDismissed ReportStatus = "DISMISSED"
)

// IsValid reports whether s is a recognised [ReportStatus] value.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed,
		ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// ReportStatusValues lists every accepted status, in queue order.
func ReportStatusValues() []string {
	return []string{
		string(ReportStatusPending),
		string(ReportStatusReviewed),
		string(ReportStatusResolved),
		string(ReportStatusDismissed),
	}
}

// Report is a member's complaint about a movie entry. Duplicate reports from
// the same member are allowed.
type Report struct {
	ID        string       `json:"id"`
	Reason    string       `json:"reason"`
	Status    ReportStatus `json:"status"`
	UserID    string       `json:"user_id"`
	MovieID   string       `json:"movie_id"`
	CreatedAt time.Time    `json:"created_at"`
}

// # Projections

// Summary is the reduced shape served by the catalogue listing.
type Summary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Genre       string  `json:"genre"`
	AvgRating   float64 `json:"avg_rating"`
	TotalRating int     `json:"total_rating"`
}

// Detail is the full shape served by the single-movie endpoint: the movie
// plus its owner's username and every individual rating value.
type Detail struct {
	Movie
	OwnerUsername string `json:"owner_username"`
	RatingValues  []int  `json:"rating_values"`
}

// RatedMovie is the result of a rating write: the stored rating joined with
// the movie's freshly recomputed aggregate.
type RatedMovie struct {
	Rating *Rating `json:"rating"`
	Movie  *Movie  `json:"movie"`
}

// # Aggregation

// RatingValueMin and RatingValueMax bound the accepted star range.
const (
	RatingValueMin = 1
	RatingValueMax = 5
)

// Aggregate computes the arithmetic mean and count of a set of rating
// values. An empty set yields (0, 0), which is also the state of a movie
// that has never been rated.
func Aggregate(values []int) (avg float64, count int) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0
	for _, value := range values {
		sum += value
	}
	return float64(sum) / float64(len(values)), len(values)
}

// # Field Identifiers

// Field names used for validation and JSON payloads in the movie domain.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldReleasedAt  = "released_at"
	FieldDuration    = "duration"
	FieldGenre       = "genre"
	FieldLanguage    = "language"
	FieldValue       = "value"
	FieldReason      = "reason"
)
