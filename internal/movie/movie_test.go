// Copyright (c) 2026 Cinelog. All rights reserved.

package movie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinelog/cinelog/internal/movie"
)

/*
TestAggregate verifies the mean/count derivation used by every rating write.
*/
func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		values    []int
		wantAvg   float64
		wantCount int
	}{
		{"empty_is_zero", nil, 0, 0},
		{"single", []int{4}, 4, 1},
		{"two_values", []int{3, 5}, 4, 2},
		{"three_values", []int{3, 5, 4}, 4, 3},
		{"fractional_mean", []int{2, 5}, 3.5, 2},
		{"all_minimum", []int{1, 1, 1}, 1, 3},
		{"all_maximum", []int{5, 5, 5, 5}, 5, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := movie.Aggregate(tt.values)
			assert.InDelta(t, tt.wantAvg, avg, 1e-9)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

/*
TestReportStatus_IsValid checks the moderation status enum.
*/
func TestReportStatus_IsValid(t *testing.T) {
	for _, status := range movie.ReportStatusValues() {
		assert.True(t, movie.ReportStatus(status).IsValid())
	}

	assert.False(t, movie.ReportStatus("pending").IsValid(), "statuses are uppercase")
	assert.False(t, movie.ReportStatus("ARCHIVED").IsValid())
	assert.False(t, movie.ReportStatus("").IsValid())
}
