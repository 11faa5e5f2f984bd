package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/types"
)

type CheckInRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyCheckIn) error
	GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyCheckIn, error)
	GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyCheckIn, error)
	UpdateVisibility(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, visibility string) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type checkInRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCheckInRepo(db *gorm.DB, baseLog *logger.Logger) CheckInRepo {
	repoLog := baseLog.With("repo", "CheckInRepo")
	return &checkInRepo{db: db, log: repoLog}
}

func (cr *checkInRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyCheckIn) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if row == nil {
		return nil
	}

	// Upsert by unique user_id + date
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", row.UserID, row.Date).
		Assign(row).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}

func (cr *checkInRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyCheckIn, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if userID == uuid.Nil {
		return nil, nil
	}

	var result types.DailyCheckIn
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *checkInRepo) GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyCheckIn, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.DailyCheckIn
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

func (cr *checkInRepo) UpdateVisibility(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, visibility string) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if userID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.DailyCheckIn{}).
		Where("user_id = ? AND date = ?", userID, date).
		Update("visibility", visibility).Error; err != nil {
		return err
	}
	return nil
}

func (cr *checkInRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", ids).
		Delete(&types.DailyCheckIn{}).Error; err != nil {
		return err
	}
	return nil
}
