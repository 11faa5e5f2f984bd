package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/types"
)

type ScenarioRepo interface {
	Create(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Scenario, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Scenario, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error
}

type scenarioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScenarioRepo(db *gorm.DB, baseLog *logger.Logger) ScenarioRepo {
	repoLog := baseLog.With("repo", "ScenarioRepo")
	return &scenarioRepo{db: db, log: repoLog}
}

func (sr *scenarioRepo) Create(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(scenarios) == 0 {
		return []*types.Scenario{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (sr *scenarioRepo) GetByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Scenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Scenario
	if len(scenarioIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", scenarioIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *scenarioRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Scenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Scenario
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *scenarioRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(scenarioIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", scenarioIDs).
		Delete(&types.Scenario{}).Error; err != nil {
		return err
	}
	return nil
}
