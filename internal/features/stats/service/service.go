package service

import (
	"context"
	"time"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/features/stats/models"
	"neoguard-console-backend/internal/features/stats/repository"
)

// StatsService assembles the dashboard overview.
type StatsService interface {
	GetStats(ctx context.Context, chatID int64, granularity string) (*models.Overview, error)
}

type statsService struct {
	repo repository.Repository
	now  func() time.Time
}

func NewStatsService(repo repository.Repository) StatsService {
	return &statsService{repo: repo, now: time.Now}
}

func (s *statsService) GetStats(ctx context.Context, chatID int64, granularity string) (*models.Overview, error) {
	if chatID == 0 {
		return nil, apperr.New(apperr.CodeInvalidRequest, "chatId is required")
	}
	g, err := ParseGranularity(granularity)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.Counts(ctx, chatID)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load counts")
	}

	starts := BucketStarts(s.now(), g)
	from := starts[0]

	banCounts, err := s.repo.SeriesCounts(ctx, chatID, repository.KindBan, string(g), from)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load ban series")
	}
	messageCounts, err := s.repo.SeriesCounts(ctx, chatID, repository.KindMessage, string(g), from)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeUpstream, "failed to load message series")
	}

	return &models.Overview{
		ChatID:          chatID,
		Granularity:     string(g),
		Counts:          counts,
		BanActivity:     FillBuckets(starts, banCounts, g),
		MessageActivity: FillBuckets(starts, messageCounts, g),
	}, nil
}
