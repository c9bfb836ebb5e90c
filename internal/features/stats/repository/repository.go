package repository

import (
	"context"
	"time"

	"neoguard-console-backend/internal/features/stats/models"
)

// LogKind selects which log table count_logs_by_period aggregates.
type LogKind string

const (
	KindMessage LogKind = "message"
	KindBan     LogKind = "ban"
)

// Repository provides the aggregate reads behind get-stats.
type Repository interface {
	Counts(ctx context.Context, chatID int64) (models.Counts, error)
	// SeriesCounts returns per-bucket counts from the stored aggregation
	// procedure, keyed by bucket start (UTC).
	SeriesCounts(ctx context.Context, chatID int64, kind LogKind, granularity string, from time.Time) (map[time.Time]int64, error)
}
