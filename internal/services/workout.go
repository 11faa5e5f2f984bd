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

type CreateWorkoutInput struct {
	Date            time.Time `json:"date"`
	Planned         bool      `json:"planned"`
	Completed       bool      `json:"completed"`
	DurationMinutes int       `json:"duration_minutes"`
	TSS             *float64  `json:"tss,omitempty"`
	Discipline      string    `json:"discipline"`
	Intensity       string    `json:"intensity"`
	Title           string    `json:"title"`
}

type WorkoutService interface {
	Create(ctx context.Context, input CreateWorkoutInput) (*types.Workout, error)
	GetRange(ctx context.Context, from, to time.Time) ([]*types.Workout, error)
	MarkCompleted(ctx context.Context, workoutID uuid.UUID, tss *float64, durationMinutes int) error
	Delete(ctx context.Context, workoutID uuid.UUID) error
}

type workoutService struct {
	db          *gorm.DB
	log         *logger.Logger
	workoutRepo repos.WorkoutRepo
}

func NewWorkoutService(db *gorm.DB, log *logger.Logger, workoutRepo repos.WorkoutRepo) WorkoutService {
	serviceLog := log.With("service", "WorkoutService")
	return &workoutService{db: db, log: serviceLog, workoutRepo: workoutRepo}
}

func (ws *workoutService) Create(ctx context.Context, input CreateWorkoutInput) (*types.Workout, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}

	if input.Date.IsZero() {
		return nil, fmt.Errorf("workout date required")
	}
	if input.DurationMinutes < 0 {
		return nil, fmt.Errorf("duration must not be negative")
	}
	if input.TSS != nil && *input.TSS < 0 {
		return nil, fmt.Errorf("tss must not be negative")
	}
	switch input.Intensity {
	case engine.IntensityEasy, engine.IntensityModerate, engine.IntensityHard:
	case "":
		input.Intensity = engine.IntensityModerate
	default:
		return nil, fmt.Errorf("unknown intensity %q", input.Intensity)
	}
	if !input.Planned && !input.Completed {
		return nil, fmt.Errorf("workout must be planned, completed or both")
	}

	workout := &types.Workout{
		ID:              uuid.New(),
		UserID:          rd.UserID,
		Date:            input.Date.UTC().Truncate(24 * time.Hour),
		Planned:         input.Planned,
		Completed:       input.Completed,
		DurationMinutes: input.DurationMinutes,
		TSS:             input.TSS,
		Discipline:      input.Discipline,
		Intensity:       input.Intensity,
		Title:           input.Title,
	}
	if _, err := ws.workoutRepo.Create(ctx, nil, []*types.Workout{workout}); err != nil {
		return nil, fmt.Errorf("Failed to create workout: %w", err)
	}
	return workout, nil
}

func (ws *workoutService) GetRange(ctx context.Context, from, to time.Time) ([]*types.Workout, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	if to.Before(from) {
		return nil, fmt.Errorf("range end before start")
	}
	return ws.workoutRepo.GetByUserAndDateRange(ctx, nil, rd.UserID, from, to)
}

func (ws *workoutService) MarkCompleted(ctx context.Context, workoutID uuid.UUID, tss *float64, durationMinutes int) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("No request data found in context")
	}
	if tss != nil && *tss < 0 {
		return fmt.Errorf("tss must not be negative")
	}

	workouts, err := ws.workoutRepo.GetByIDs(ctx, nil, []uuid.UUID{workoutID})
	if err != nil {
		return fmt.Errorf("Failed to load workout: %w", err)
	}
	if len(workouts) == 0 || workouts[0].UserID != rd.UserID {
		return fmt.Errorf("Workout not found")
	}
	return ws.workoutRepo.MarkCompleted(ctx, nil, workoutID, tss, durationMinutes)
}

func (ws *workoutService) Delete(ctx context.Context, workoutID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("No request data found in context")
	}

	workouts, err := ws.workoutRepo.GetByIDs(ctx, nil, []uuid.UUID{workoutID})
	if err != nil {
		return fmt.Errorf("Failed to load workout: %w", err)
	}
	if len(workouts) == 0 || workouts[0].UserID != rd.UserID {
		return fmt.Errorf("Workout not found")
	}
	return ws.workoutRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{workoutID})
}
