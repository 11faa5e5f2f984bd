package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/types"
)

type WorkoutRepo interface {
	Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, workoutIDs []uuid.UUID) ([]*types.Workout, error)
	GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error)
	GetPlannedByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID, tss *float64, durationMinutes int) error
	ReplacePlannedInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time, workouts []*types.Workout) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, workoutIDs []uuid.UUID) error
}

type workoutRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkoutRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutRepo {
	repoLog := baseLog.With("repo", "WorkoutRepo")
	return &workoutRepo{db: db, log: repoLog}
}

func (wr *workoutRepo) Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if len(workouts) == 0 {
		return []*types.Workout{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&workouts).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (wr *workoutRepo) GetByIDs(ctx context.Context, tx *gorm.DB, workoutIDs []uuid.UUID) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.Workout
	if len(workoutIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", workoutIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workoutRepo) GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.Workout
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workoutRepo) GetPlannedByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.Workout
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND planned = true AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workoutRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID, tss *float64, durationMinutes int) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if workoutID == uuid.Nil {
		return nil
	}

	updates := map[string]interface{}{"completed": true}
	if tss != nil {
		updates["tss"] = *tss
	}
	if durationMinutes > 0 {
		updates["duration_minutes"] = durationMinutes
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Workout{}).
		Where("id = ?", workoutID).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}

// ReplacePlannedInRange swaps the uncompleted planned sessions in a date
// range for a new set. Completed sessions are history and stay untouched.
func (wr *workoutRepo) ReplacePlannedInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time, workouts []*types.Workout) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if userID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND planned = true AND completed = false AND date >= ? AND date <= ?", userID, from, to).
		Delete(&types.Workout{}).Error; err != nil {
		return err
	}

	if len(workouts) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).Create(&workouts).Error; err != nil {
		return err
	}
	return nil
}

func (wr *workoutRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, workoutIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if len(workoutIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", workoutIDs).
		Delete(&types.Workout{}).Error; err != nil {
		return err
	}
	return nil
}
