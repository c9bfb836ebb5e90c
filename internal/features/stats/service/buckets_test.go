package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neoguard-console-backend/internal/common/apperr"
)

func TestParseGranularity(t *testing.T) {
	for _, input := range []string{"", "daily", "weekly", "monthly"} {
		_, err := ParseGranularity(input)
		assert.NoError(t, err, input)
	}

	_, err := ParseGranularity("hourly")
	assert.Equal(t, apperr.CodeInvalidRequest, apperr.CodeOf(err))
}

func TestBucketStartsDaily(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	starts := BucketStarts(now, Daily)

	require.Len(t, starts, 7)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), starts[0])
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), starts[6])
}

func TestBucketStartsWeeklyAlignsToMonday(t *testing.T) {
	// 2024-03-15 is a Friday; its ISO week starts Monday 2024-03-11.
	now := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)
	starts := BucketStarts(now, Weekly)

	require.Len(t, starts, 7)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), starts[6])
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), starts[0])
	for _, start := range starts {
		assert.Equal(t, time.Monday, start.Weekday())
	}
}

func TestBucketStartsWeeklyOnSunday(t *testing.T) {
	// Sunday still belongs to the week starting the previous Monday.
	now := time.Date(2024, 3, 17, 23, 59, 0, 0, time.UTC)
	starts := BucketStarts(now, Weekly)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), starts[6])
}

func TestBucketStartsMonthly(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	starts := BucketStarts(now, Monthly)

	require.Len(t, starts, 7)
	assert.Equal(t, time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), starts[0])
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), starts[6])
}

func TestBucketStartsNonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:00 on the 16th in UTC+5 is still the 15th in UTC.
	now := time.Date(2024, 3, 16, 2, 0, 0, 0, loc)
	starts := BucketStarts(now, Daily)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), starts[6])
}

func TestFillBucketsZeroFills(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	starts := BucketStarts(now, Daily)

	counts := map[time.Time]int64{
		time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC): 4,
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC): 1,
	}
	buckets := FillBuckets(starts, counts, Daily)

	require.Len(t, buckets, SeriesLength)
	assert.Equal(t, "2024-03-09", buckets[0].Period)
	assert.Equal(t, int64(0), buckets[0].Count)
	assert.Equal(t, int64(4), buckets[3].Count)
	assert.Equal(t, int64(1), buckets[6].Count)
}

func TestFillBucketsEmptyData(t *testing.T) {
	starts := BucketStarts(time.Now(), Monthly)
	buckets := FillBuckets(starts, nil, Monthly)

	require.Len(t, buckets, SeriesLength)
	for _, bucket := range buckets {
		assert.Equal(t, int64(0), bucket.Count)
	}
}

func TestMonthlyLabels(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03", Label(start, Monthly))
	assert.Equal(t, "2024-03-01", Label(start, Weekly))
}
