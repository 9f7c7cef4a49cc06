// Copyright (c) 2026 Cinelog. All rights reserved.

/*
Package admin implements the moderation surface: reviewing abuse reports,
advancing their status, and removing reported movies.

Every operation in this package sits behind the ADMIN role guard at the
routing layer.
*/
package admin

import (
	"time"

	"github.com/cinelog/cinelog/internal/movie"
)

// MovieRef is the reduced movie shape embedded in report views.
type MovieRef struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	AvgRating   float64 `json:"avg_rating"`
	TotalRating int     `json:"total_rating"`
}

// ReporterRef identifies the member who filed a report.
type ReporterRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ReportView is a report joined with its movie and reporter, the shape the
// moderation endpoints serve.
type ReportView struct {
	ID        string             `json:"id"`
	Reason    string             `json:"reason"`
	Status    movie.ReportStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	Movie     MovieRef           `json:"movie"`
	Reporter  ReporterRef        `json:"reporter"`
}

// Field names used for validation in the admin domain.
const (
	FieldStatus = "status"
)
