package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/types"
)

type DailyMetricRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyMetric) error
	GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyMetric, error)
	GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyMetric, error)
	GetLatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyMetric, error)
	FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type dailyMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyMetricRepo(db *gorm.DB, baseLog *logger.Logger) DailyMetricRepo {
	repoLog := baseLog.With("repo", "DailyMetricRepo")
	return &dailyMetricRepo{db: db, log: repoLog}
}

func (dr *dailyMetricRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.DailyMetric) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
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

func (dr *dailyMetricRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if userID == uuid.Nil {
		return nil, nil
	}

	var result types.DailyMetric
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

func (dr *dailyMetricRepo) GetByUserAndDateRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.DailyMetric
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

func (dr *dailyMetricRepo) GetLatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.DailyMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if userID == uuid.Nil {
		return nil, nil
	}

	var result types.DailyMetric
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *dailyMetricRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(userIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("user_id IN ?", userIDs).
		Delete(&types.DailyMetric{}).Error; err != nil {
		return err
	}
	return nil
}
