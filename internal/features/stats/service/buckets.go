package service

import (
	"time"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/features/stats/models"
)

// Granularity selects the bucket width of a trend series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// SeriesLength is the fixed number of buckets in every series.
const SeriesLength = 7

// ParseGranularity accepts the request parameter, defaulting to daily.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "", string(Daily):
		return Daily, nil
	case string(Weekly):
		return Weekly, nil
	case string(Monthly):
		return Monthly, nil
	default:
		return "", apperr.Newf(apperr.CodeInvalidRequest, "unknown granularity %q", s)
	}
}

// BucketStarts returns the UTC start instants of the 7 buckets ending at
// the period containing now, oldest first. Boundaries align to the UTC day,
// the ISO week (Monday) or the calendar month.
func BucketStarts(now time.Time, g Granularity) []time.Time {
	current := truncate(now.UTC(), g)
	starts := make([]time.Time, SeriesLength)
	for i := 0; i < SeriesLength; i++ {
		starts[i] = step(current, i-SeriesLength+1, g)
	}
	return starts
}

// FillBuckets shapes raw per-bucket counts into the fixed series, zero
// filling periods with no data.
func FillBuckets(starts []time.Time, counts map[time.Time]int64, g Granularity) []models.Bucket {
	buckets := make([]models.Bucket, len(starts))
	for i, start := range starts {
		buckets[i] = models.Bucket{Period: Label(start, g), Count: counts[start]}
	}
	return buckets
}

// Label renders a bucket start for the chart axis.
func Label(start time.Time, g Granularity) string {
	if g == Monthly {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

func truncate(t time.Time, g Granularity) time.Time {
	switch g {
	case Weekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		// Monday-based offset; Go's week starts on Sunday.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func step(t time.Time, n int, g Granularity) time.Time {
	switch g {
	case Weekly:
		return t.AddDate(0, 0, 7*n)
	case Monthly:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}
