package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/types"
)

type SimulationResultRepo interface {
	ReplaceForScenario(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID, rows []*types.WeeklySimulationResult) error
	GetByScenarioID(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) ([]*types.WeeklySimulationResult, error)
	FullDeleteByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error
}

type simulationResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSimulationResultRepo(db *gorm.DB, baseLog *logger.Logger) SimulationResultRepo {
	repoLog := baseLog.With("repo", "SimulationResultRepo")
	return &simulationResultRepo{db: db, log: repoLog}
}

// ReplaceForScenario deletes every stored week for the scenario and inserts
// the new trace. Re-running a scenario never leaves stale weeks behind, even
// when the new run is shorter.
func (rr *simulationResultRepo) ReplaceForScenario(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID, rows []*types.WeeklySimulationResult) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if scenarioID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("scenario_id = ?", scenarioID).
		Delete(&types.WeeklySimulationResult{}).Error; err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	return nil
}

func (rr *simulationResultRepo) GetByScenarioID(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) ([]*types.WeeklySimulationResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.WeeklySimulationResult
	if scenarioID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("scenario_id = ?", scenarioID).
		Order("week_index ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *simulationResultRepo) FullDeleteByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(scenarioIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("scenario_id IN ?", scenarioIDs).
		Delete(&types.WeeklySimulationResult{}).Error; err != nil {
		return err
	}
	return nil
}
