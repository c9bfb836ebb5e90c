package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoguard-console-backend/internal/common/apperr"
	"neoguard-console-backend/internal/features/stats/models"
	"neoguard-console-backend/internal/features/stats/repository"
)

type fakeStatsRepo struct {
	counts models.Counts
	series map[repository.LogKind]map[time.Time]int64
}

func (r *fakeStatsRepo) Counts(context.Context, int64) (models.Counts, error) {
	return r.counts, nil
}

func (r *fakeStatsRepo) SeriesCounts(_ context.Context, _ int64, kind repository.LogKind, _ string, _ time.Time) (map[time.Time]int64, error) {
	return r.series[kind], nil
}

func TestGetStatsAlwaysSevenBuckets(t *testing.T) {
	svc := &statsService{
		repo: &fakeStatsRepo{counts: models.Counts{MessagesScanned: 12, BlacklistSize: 3}},
		now:  func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) },
	}

	for _, granularity := range []string{"", "daily", "weekly", "monthly"} {
		overview, err := svc.GetStats(context.Background(), 555, granularity)
		require.NoError(t, err, granularity)
		assert.Len(t, overview.BanActivity, SeriesLength, granularity)
		assert.Len(t, overview.MessageActivity, SeriesLength, granularity)
	}
}

func TestGetStatsMapsSeries(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	svc := &statsService{
		repo: &fakeStatsRepo{
			series: map[repository.LogKind]map[time.Time]int64{
				repository.KindBan:     {today: 2},
				repository.KindMessage: {today: 9},
			},
		},
		now: func() time.Time { return now },
	}

	overview, err := svc.GetStats(context.Background(), 555, "daily")
	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.BanActivity[6].Count)
	assert.Equal(t, int64(9), overview.MessageActivity[6].Count)
	assert.Equal(t, int64(0), overview.BanActivity[0].Count)
}

func TestGetStatsValidatesInput(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{})

	_, err := svc.GetStats(context.Background(), 0, "daily")
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))

	_, err = svc.GetStats(context.Background(), 1, "yearly")
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}
