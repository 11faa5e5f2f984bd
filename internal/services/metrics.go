package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/clients/redis"
	"github.com/paceline/paceline-backend/internal/engine"
	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/repos"
	"github.com/paceline/paceline-backend/internal/requestdata"
	"github.com/paceline/paceline-backend/internal/types"
)

// signalWindowDays is how far back the recompute reads raw signals. Covers
// the 14-day compliance window and leaves four weeks of load for the
// CTL/ATL trend.
const signalWindowDays = 28

// recomputeParallelism bounds concurrent per-day recomputes in a range run.
const recomputeParallelism = 4

type MetricsService interface {
	RecomputeForDate(ctx context.Context, date time.Time) (*types.DailyMetric, error)
	RecomputeRange(ctx context.Context, from, to time.Time) error
	GetRange(ctx context.Context, from, to time.Time) ([]*types.DailyMetric, error)
	GetLatest(ctx context.Context) (*types.DailyMetric, error)
}

type metricsService struct {
	db             *gorm.DB
	log            *logger.Logger
	cfg            engine.Config
	workoutRepo    repos.WorkoutRepo
	checkInRepo    repos.CheckInRepo
	metricRepo     repos.DailyMetricRepo
	checkInService CheckInService
	cache          redis.MetricsCache
}

func NewMetricsService(
	db *gorm.DB,
	log *logger.Logger,
	cfg engine.Config,
	workoutRepo repos.WorkoutRepo,
	checkInRepo repos.CheckInRepo,
	metricRepo repos.DailyMetricRepo,
	checkInService CheckInService,
	cache redis.MetricsCache,
) MetricsService {
	serviceLog := log.With("service", "MetricsService")
	return &metricsService{
		db:             db,
		log:            serviceLog,
		cfg:            cfg,
		workoutRepo:    workoutRepo,
		checkInRepo:    checkInRepo,
		metricRepo:     metricRepo,
		checkInService: checkInService,
		cache:          cache,
	}
}

func workoutEngineInputs(rows []*types.Workout) []engine.WorkoutInput {
	inputs := make([]engine.WorkoutInput, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		inputs = append(inputs, engine.WorkoutInput{
			Date:            row.Date,
			Planned:         row.Planned,
			Completed:       row.Completed,
			DurationMinutes: row.DurationMinutes,
			TSS:             row.TSS,
			Discipline:      row.Discipline,
			Intensity:       row.Intensity,
		})
	}
	return inputs
}

func presentMetric(m *types.DailyMetric) *types.DailyMetric {
	if m != nil {
		m.RampDisplay = engine.DisplayRampRate(m.RampRate)
	}
	return m
}

// RecomputeForDate reads the raw signal window, runs every scorer and
// upserts the day's DailyMetric in one transaction. Pure functions on a
// fixed snapshot, so re-running the same day converges to the same row.
func (ms *metricsService) RecomputeForDate(ctx context.Context, date time.Time) (*types.DailyMetric, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	metric, err := ms.recomputeForUser(ctx, rd.UserID, date)
	if err != nil {
		return nil, err
	}
	ms.refreshLatestCache(ctx, rd.UserID, metric)
	return metric, nil
}

// refreshLatestCache keeps the redis "latest" key honest after a recompute.
// The key may only ever hold the user's newest stored row: a recompute of a
// historical day drops the key instead of stamping an old row over it, and
// the next GetLatest repopulates from postgres. Cache errors are logged and
// swallowed; the database stays the source of truth.
func (ms *metricsService) refreshLatestCache(ctx context.Context, userID uuid.UUID, recomputed *types.DailyMetric) {
	if ms.cache == nil {
		return
	}
	latest, err := ms.metricRepo.GetLatestByUser(ctx, nil, userID)
	if err != nil {
		ms.log.Warn("Failed to resolve latest metric for cache refresh", "error", err)
		return
	}
	if latest == nil {
		return
	}
	if recomputed != nil && recomputed.Date.Before(latest.Date) {
		if cErr := ms.cache.Invalidate(ctx, userID); cErr != nil {
			ms.log.Warn("Failed to invalidate metrics cache", "error", cErr)
		}
		return
	}
	if cErr := ms.cache.SetLatest(ctx, presentMetric(latest)); cErr != nil {
		ms.log.Warn("Failed to cache latest metric", "error", cErr)
	}
}

func (ms *metricsService) recomputeForUser(ctx context.Context, userID uuid.UUID, date time.Time) (*types.DailyMetric, error) {
	day := date.UTC().Truncate(24 * time.Hour)
	windowStart := day.AddDate(0, 0, -(signalWindowDays - 1))

	workoutRows, err := ms.workoutRepo.GetByUserAndDateRange(ctx, nil, userID, windowStart, day)
	if err != nil {
		return nil, fmt.Errorf("Failed to load workouts: %w", err)
	}
	checkInRows, err := ms.checkInRepo.GetByUserAndDateRange(ctx, nil, userID, windowStart, day)
	if err != nil {
		return nil, fmt.Errorf("Failed to load check-ins: %w", err)
	}
	// Seed the smoothing from the day before the signal window so an old
	// fitness base carries forward instead of resetting to zero.
	seed, err := ms.metricRepo.GetByUserAndDate(ctx, nil, userID, windowStart.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("Failed to load prior metric: %w", err)
	}

	workouts := workoutEngineInputs(workoutRows)
	checkIns := ms.checkInService.EngineInputs(checkInRows)

	var today *engine.CheckInInput
	for i := range checkIns {
		if checkIns[i].Date.UTC().Truncate(24*time.Hour).Equal(day) {
			today = &checkIns[i]
		}
	}

	currentWeek, previousWeek := engine.SplitWeekWindows(workouts, day)
	load := engine.AggregateLoad(ms.cfg, currentWeek, previousWeek)

	initial := engine.FitnessState{}
	if seed != nil {
		initial = engine.FitnessState{CTL: seed.CTL, ATL: seed.ATL, TSB: seed.TSB}
	}
	trend := engine.FitnessTrend(ms.cfg, initial, workouts, windowStart, day)
	fitness := initial
	if len(trend) > 0 {
		last := trend[len(trend)-1]
		fitness = engine.FitnessState{CTL: last.CTL, ATL: last.ATL, TSB: last.TSB}
	}

	readiness := engine.ScoreReadiness(ms.cfg, today, &fitness)
	fatigue := engine.ClassifyFatigue(ms.cfg, engine.DeriveFatigueSignals(today, workouts, checkIns, day))
	compliance := engine.TrackCompliance(ms.cfg, workouts, day)

	var history []engine.CheckInInput
	weekStart := day.AddDate(0, 0, -6)
	for _, ci := range checkIns {
		if !ci.Date.Before(weekStart) {
			history = append(history, ci)
		}
	}
	burnout := engine.ScoreBurnout(ms.cfg, engine.BurnoutInput{
		Today:            today,
		History:          history,
		FatigueType:      fatigue.Type,
		ComplianceStatus: compliance.Status,
		ReadinessScore:   &readiness.Score,
	})

	factorsJSON, err := json.Marshal(readiness.Factors)
	if err != nil {
		return nil, fmt.Errorf("Failed to encode readiness factors: %w", err)
	}
	driversJSON, err := json.Marshal(burnout.Drivers)
	if err != nil {
		return nil, fmt.Errorf("Failed to encode burnout drivers: %w", err)
	}

	metric := &types.DailyMetric{
		UserID:              userID,
		Date:                day,
		ReadinessScore:      readiness.Score,
		ReadinessStatus:     readiness.Status,
		ReadinessConfidence: readiness.Confidence,
		ReadinessFactors:    datatypes.JSON(factorsJSON),
		FatigueType:         fatigue.Type,
		ComplianceScore:     compliance.CompletionRate,
		ComplianceStatus:    compliance.Status,
		PlannedCount:        compliance.Planned,
		CompletedCount:      compliance.Completed,
		ComplianceStreak:    compliance.Streak,
		BurnoutRisk:         burnout.Risk,
		BurnoutStatus:       burnout.Status,
		BurnoutDrivers:      datatypes.JSON(driversJSON),
		WeeklyLoad:          load.CurrentWeekLoad,
		RampRate:            load.RampRatePercent,
		RampStatus:          load.RampStatus,
		CTL:                 fitness.CTL,
		ATL:                 fitness.ATL,
		TSB:                 fitness.TSB,
	}

	if err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ms.metricRepo.Upsert(ctx, tx, metric)
	}); err != nil {
		return nil, fmt.Errorf("Failed to store daily metric: %w", err)
	}
	return presentMetric(metric), nil
}

// backfillChunks splits an ascending day list into windows no longer than the
// signal window. A day's smoothing seed is read from signalWindowDays before
// it, so every seed lands in a chunk that has already finished and a backfill
// persists the same CTL/ATL chain regardless of goroutine scheduling.
func backfillChunks(days []time.Time) [][]time.Time {
	var chunks [][]time.Time
	for len(days) > 0 {
		n := signalWindowDays
		if len(days) < n {
			n = len(days)
		}
		chunks = append(chunks, days[:n])
		days = days[n:]
	}
	return chunks
}

func (ms *metricsService) RecomputeRange(ctx context.Context, from, to time.Time) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("No request data found in context")
	}
	start := from.UTC().Truncate(24 * time.Hour)
	end := to.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return fmt.Errorf("range end before start")
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	// Chunks run in date order; only days inside one chunk run concurrently.
	for _, chunk := range backfillChunks(days) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(recomputeParallelism)
		for _, d := range chunk {
			day := d
			g.Go(func() error {
				_, err := ms.recomputeForUser(gctx, rd.UserID, day)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	ms.refreshLatestCache(ctx, rd.UserID, nil)
	return nil
}

func (ms *metricsService) GetRange(ctx context.Context, from, to time.Time) ([]*types.DailyMetric, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	if to.Before(from) {
		return nil, fmt.Errorf("range end before start")
	}
	rows, err := ms.metricRepo.GetByUserAndDateRange(ctx, nil, rd.UserID, from, to)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		presentMetric(row)
	}
	return rows, nil
}

func (ms *metricsService) GetLatest(ctx context.Context) (*types.DailyMetric, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}

	if ms.cache != nil {
		cached, cErr := ms.cache.GetLatest(ctx, rd.UserID)
		if cErr != nil {
			ms.log.Warn("Metrics cache read failed, falling back to postgres", "error", cErr)
		}
		if cached != nil {
			return presentMetric(cached), nil
		}
	}

	metric, err := ms.metricRepo.GetLatestByUser(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load latest metric: %w", err)
	}
	if metric == nil {
		return nil, nil
	}
	presentMetric(metric)
	if ms.cache != nil {
		if cErr := ms.cache.SetLatest(ctx, metric); cErr != nil {
			ms.log.Warn("Failed to backfill metrics cache", "error", cErr)
		}
	}
	return metric, nil
}
