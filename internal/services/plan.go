package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/engine"
	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/repos"
	"github.com/paceline/paceline-backend/internal/requestdata"
	"github.com/paceline/paceline-backend/internal/types"
)

type PlanService interface {
	// CheckWeek validates the planned week starting at weekStart. Read-only.
	CheckWeek(ctx context.Context, weekStart time.Time) (*engine.GuardrailResult, error)
	// ApplyDeload replaces the week's uncompleted planned sessions with a
	// reduced version of themselves. Destructive, explicit opt-in.
	ApplyDeload(ctx context.Context, weekStart time.Time, reduction float64) ([]*types.Workout, error)
	// ApplyRecoveryMicrocycle swaps the whole planned week for the fixed
	// recovery template. Destructive, explicit opt-in.
	ApplyRecoveryMicrocycle(ctx context.Context, weekStart time.Time, discipline string) ([]*types.Workout, error)
}

type planService struct {
	db          *gorm.DB
	log         *logger.Logger
	cfg         engine.Config
	workoutRepo repos.WorkoutRepo
}

func NewPlanService(db *gorm.DB, log *logger.Logger, cfg engine.Config, workoutRepo repos.WorkoutRepo) PlanService {
	serviceLog := log.With("service", "PlanService")
	return &planService{db: db, log: serviceLog, cfg: cfg, workoutRepo: workoutRepo}
}

func plannedSessions(rows []*types.Workout) []engine.PlannedSession {
	sessions := make([]engine.PlannedSession, 0, len(rows))
	for _, row := range rows {
		if row == nil || row.Completed {
			continue
		}
		sessions = append(sessions, engine.PlannedSession{
			Date:            row.Date,
			Discipline:      row.Discipline,
			DurationMinutes: row.DurationMinutes,
			Intensity:       row.Intensity,
			Title:           row.Title,
			TSS:             row.TSS,
		})
	}
	return sessions
}

func sessionRows(userID uuid.UUID, sessions []engine.PlannedSession) []*types.Workout {
	rows := make([]*types.Workout, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, &types.Workout{
			ID:              uuid.New(),
			UserID:          userID,
			Date:            s.Date,
			Planned:         true,
			DurationMinutes: s.DurationMinutes,
			TSS:             s.TSS,
			Discipline:      s.Discipline,
			Intensity:       s.Intensity,
			Title:           s.Title,
		})
	}
	return rows
}

func (ps *planService) weekBounds(weekStart time.Time) (time.Time, time.Time) {
	start := weekStart.UTC().Truncate(24 * time.Hour)
	return start, start.AddDate(0, 0, 6)
}

func (ps *planService) CheckWeek(ctx context.Context, weekStart time.Time) (*engine.GuardrailResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	start, end := ps.weekBounds(weekStart)

	plannedRows, err := ps.workoutRepo.GetPlannedByUserAndDateRange(ctx, nil, rd.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("Failed to load planned week: %w", err)
	}
	previousRows, err := ps.workoutRepo.GetByUserAndDateRange(ctx, nil, rd.UserID, start.AddDate(0, 0, -7), start.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("Failed to load previous week: %w", err)
	}

	previousInputs := workoutEngineInputs(previousRows)
	previousLoad := 0.0
	for _, w := range previousInputs {
		if w.Completed {
			previousLoad += engine.EffectiveTSS(w.DurationMinutes, w.TSS, w.Intensity)
		}
	}

	result := engine.CheckGuardrails(ps.cfg,
		plannedSessions(plannedRows),
		previousLoad,
		engine.RecentCompletedIntensities(previousInputs))
	return &result, nil
}

func (ps *planService) ApplyDeload(ctx context.Context, weekStart time.Time, reduction float64) ([]*types.Workout, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	start, end := ps.weekBounds(weekStart)

	plannedRows, err := ps.workoutRepo.GetPlannedByUserAndDateRange(ctx, nil, rd.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("Failed to load planned week: %w", err)
	}
	sessions := plannedSessions(plannedRows)
	if len(sessions) == 0 {
		return nil, fmt.Errorf("No planned sessions to deload in that week")
	}

	rows := sessionRows(rd.UserID, engine.DeloadWeek(sessions, reduction))
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ps.workoutRepo.ReplacePlannedInRange(ctx, tx, rd.UserID, start, end, rows)
	}); err != nil {
		return nil, fmt.Errorf("Failed to apply deload: %w", err)
	}
	ps.log.Info("Applied deload week", "week_start", start.Format("2006-01-02"), "sessions", len(rows))
	return rows, nil
}

func (ps *planService) ApplyRecoveryMicrocycle(ctx context.Context, weekStart time.Time, discipline string) ([]*types.Workout, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	start, end := ps.weekBounds(weekStart)

	rows := sessionRows(rd.UserID, engine.BuildRecoveryMicrocycle(start, discipline))
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ps.workoutRepo.ReplacePlannedInRange(ctx, tx, rd.UserID, start, end, rows)
	}); err != nil {
		return nil, fmt.Errorf("Failed to apply recovery microcycle: %w", err)
	}
	ps.log.Info("Applied recovery microcycle", "week_start", start.Format("2006-01-02"), "discipline", discipline)
	return rows, nil
}
