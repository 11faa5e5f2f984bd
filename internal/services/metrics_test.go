package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/requestdata"
	"github.com/paceline/paceline-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return log
}

func metricDay(offset int) time.Time {
	base := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

type fakeDailyMetricRepo struct {
	latest *types.DailyMetric
}

func (f *fakeDailyMetricRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyMetric) error {
	return nil
}

func (f *fakeDailyMetricRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyMetric, error) {
	return nil, nil
}

func (f *fakeDailyMetricRepo) GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyMetric, error) {
	return nil, nil
}

func (f *fakeDailyMetricRepo) GetLatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyMetric, error) {
	return f.latest, nil
}

func (f *fakeDailyMetricRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	return nil
}

type fakeMetricsCache struct {
	stored      *types.DailyMetric
	invalidated int
}

func (f *fakeMetricsCache) SetLatest(ctx context.Context, metric *types.DailyMetric) error {
	f.stored = metric
	return nil
}

func (f *fakeMetricsCache) GetLatest(ctx context.Context, userID uuid.UUID) (*types.DailyMetric, error) {
	return f.stored, nil
}

func (f *fakeMetricsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	f.stored = nil
	f.invalidated++
	return nil
}

func (f *fakeMetricsCache) Close() error { return nil }

func TestRefreshLatestCacheDropsKeyOnHistoricalRecompute(t *testing.T) {
	userID := uuid.New()
	newest := &types.DailyMetric{UserID: userID, Date: metricDay(0), ReadinessScore: 72}
	repo := &fakeDailyMetricRepo{latest: newest}
	cache := &fakeMetricsCache{stored: newest}
	ms := &metricsService{log: newTestLogger(t), metricRepo: repo, cache: cache}
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})

	// Recomputing a ten-day-old row must not stamp it as latest.
	old := &types.DailyMetric{UserID: userID, Date: metricDay(-10), ReadinessScore: 31}
	ms.refreshLatestCache(ctx, userID, old)
	if cache.invalidated != 1 {
		t.Fatalf("invalidated %d times, want 1", cache.invalidated)
	}
	if cache.stored != nil {
		t.Fatalf("cache still holds a row dated %v", cache.stored.Date)
	}

	// The next read repopulates from the store with the true newest row.
	got, err := ms.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if got == nil || !got.Date.Equal(metricDay(0)) {
		t.Fatalf("latest = %+v, want row dated %v", got, metricDay(0))
	}
	if cache.stored == nil || !cache.stored.Date.Equal(metricDay(0)) {
		t.Fatalf("cache not backfilled with the newest row")
	}
}

func TestRefreshLatestCacheStampsNewestDay(t *testing.T) {
	userID := uuid.New()
	newest := &types.DailyMetric{UserID: userID, Date: metricDay(0), RampRate: 22.4}
	repo := &fakeDailyMetricRepo{latest: newest}
	cache := &fakeMetricsCache{}
	ms := &metricsService{log: newTestLogger(t), metricRepo: repo, cache: cache}
	ctx := context.Background()

	ms.refreshLatestCache(ctx, userID, newest)
	if cache.stored == nil || !cache.stored.Date.Equal(metricDay(0)) {
		t.Fatalf("recomputing today's row must refresh the cache")
	}
	if cache.stored.RampDisplay != "+22%" {
		t.Fatalf("ramp display = %q, want %q", cache.stored.RampDisplay, "+22%")
	}

	// After a range backfill the settle call carries no single row and
	// resolves the newest one itself.
	cache.stored = nil
	ms.refreshLatestCache(ctx, userID, nil)
	if cache.stored == nil || !cache.stored.Date.Equal(metricDay(0)) {
		t.Fatalf("settle call must cache the stored newest row")
	}
}

func TestBackfillChunksKeepSeedsInEarlierChunks(t *testing.T) {
	var days []time.Time
	for i := 0; i < 70; i++ {
		days = append(days, metricDay(i-69))
	}

	chunks := backfillChunks(days)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	if len(chunks[0]) != signalWindowDays || len(chunks[1]) != signalWindowDays || len(chunks[2]) != 14 {
		t.Fatalf("chunk sizes = %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	seen := 0
	prev := days[0].AddDate(0, 0, -1)
	for _, chunk := range chunks {
		chunkStart := chunk[0]
		for _, d := range chunk {
			if !d.After(prev) {
				t.Fatalf("day %v out of order after %v", d, prev)
			}
			prev = d
			seen++
			// The smoothing seed for d is read from d-28; it must never
			// sit in the same chunk, or scheduling would decide whether
			// the seed row is the old or the recomputed one.
			seed := d.AddDate(0, 0, -signalWindowDays)
			if !seed.Before(chunkStart) {
				t.Fatalf("seed %v for day %v lands inside its own chunk", seed, d)
			}
		}
	}
	if seen != len(days) {
		t.Fatalf("chunks cover %d days, want %d", seen, len(days))
	}
}

func TestGetRangeSetsRampDisplay(t *testing.T) {
	row := &types.DailyMetric{RampRate: -12.6}
	if got := presentMetric(row); got.RampDisplay != "-13%" {
		t.Fatalf("ramp display = %q, want %q", got.RampDisplay, "-13%")
	}
	if got := presentMetric(&types.DailyMetric{RampRate: 2500}); got.RampDisplay != "+999%" {
		t.Fatalf("ramp display = %q, want clamp at %q", got.RampDisplay, "+999%")
	}
}
