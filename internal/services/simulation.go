package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/paceline/paceline-backend/internal/engine"
	"github.com/paceline/paceline-backend/internal/logger"
	"github.com/paceline/paceline-backend/internal/repos"
	"github.com/paceline/paceline-backend/internal/requestdata"
	"github.com/paceline/paceline-backend/internal/types"
)

// baselineWindowDays is how far back RunScenario looks for real metrics to
// seed the simulation baseline.
const baselineWindowDays = 28

type CreateScenarioInput struct {
	Name               string  `json:"name"`
	DurationWeeks      int     `json:"duration_weeks"`
	WeeklyTSS          float64 `json:"weekly_tss"`
	VolumeDeltaPercent float64 `json:"volume_delta_percent"`
	IntensityShift     int     `json:"intensity_shift"`
	IdentityMode       string  `json:"identity_mode"`
}

type ScenarioRunOutput struct {
	Scenario *types.Scenario                 `json:"scenario"`
	Weeks    []*types.WeeklySimulationResult `json:"weeks"`
	Summary  engine.SimulationSummary        `json:"summary"`
}

type SimulationService interface {
	CreateScenario(ctx context.Context, input CreateScenarioInput) (*types.Scenario, error)
	ListScenarios(ctx context.Context) ([]*types.Scenario, error)
	RunScenario(ctx context.Context, scenarioID uuid.UUID) (*ScenarioRunOutput, error)
	GetResults(ctx context.Context, scenarioID uuid.UUID) ([]*types.WeeklySimulationResult, error)
	DeleteScenario(ctx context.Context, scenarioID uuid.UUID) error
}

type simulationService struct {
	db           *gorm.DB
	log          *logger.Logger
	cfg          engine.Config
	scenarioRepo repos.ScenarioRepo
	resultRepo   repos.SimulationResultRepo
	metricRepo   repos.DailyMetricRepo
}

func NewSimulationService(
	db *gorm.DB,
	log *logger.Logger,
	cfg engine.Config,
	scenarioRepo repos.ScenarioRepo,
	resultRepo repos.SimulationResultRepo,
	metricRepo repos.DailyMetricRepo,
) SimulationService {
	serviceLog := log.With("service", "SimulationService")
	return &simulationService{
		db:           db,
		log:          serviceLog,
		cfg:          cfg,
		scenarioRepo: scenarioRepo,
		resultRepo:   resultRepo,
		metricRepo:   metricRepo,
	}
}

func (ss *simulationService) CreateScenario(ctx context.Context, input CreateScenarioInput) (*types.Scenario, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}

	if input.DurationWeeks < ss.cfg.SimMinWeeks || input.DurationWeeks > ss.cfg.SimMaxWeeks {
		return nil, fmt.Errorf("scenario duration must be between %d and %d weeks", ss.cfg.SimMinWeeks, ss.cfg.SimMaxWeeks)
	}
	if input.WeeklyTSS < 0 {
		return nil, fmt.Errorf("weekly tss must not be negative")
	}
	if input.Name == "" {
		return nil, fmt.Errorf("scenario name required")
	}
	switch input.IdentityMode {
	case IdentityModeCompetitive, IdentityModeBalanced, IdentityModeLongevity:
	case "":
		input.IdentityMode = IdentityModeCompetitive
	default:
		return nil, fmt.Errorf("unknown identity mode %q", input.IdentityMode)
	}

	scenario := &types.Scenario{
		ID:                 uuid.New(),
		UserID:             rd.UserID,
		Name:               input.Name,
		DurationWeeks:      input.DurationWeeks,
		WeeklyTSS:          input.WeeklyTSS,
		VolumeDeltaPercent: input.VolumeDeltaPercent,
		IntensityShift:     input.IntensityShift,
		IdentityMode:       input.IdentityMode,
	}
	if _, err := ss.scenarioRepo.Create(ctx, nil, []*types.Scenario{scenario}); err != nil {
		return nil, fmt.Errorf("Failed to create scenario: %w", err)
	}
	return scenario, nil
}

func (ss *simulationService) ListScenarios(ctx context.Context) ([]*types.Scenario, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	return ss.scenarioRepo.GetByUserID(ctx, nil, rd.UserID)
}

// baselineFromHistory averages the user's recent DailyMetrics into a
// simulation starting point. Without any history the config default is
// used, so new users can still explore scenarios.
func (ss *simulationService) baselineFromHistory(ctx context.Context, userID uuid.UUID) (engine.Baseline, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	metrics, err := ss.metricRepo.GetByUserAndDateRange(ctx, nil, userID, now.AddDate(0, 0, -(baselineWindowDays-1)), now)
	if err != nil {
		return engine.Baseline{}, fmt.Errorf("Failed to load metric history: %w", err)
	}
	if len(metrics) == 0 {
		return ss.cfg.DefaultBaseline, nil
	}

	var readinessSum, burnoutSum float64
	for _, m := range metrics {
		readinessSum += m.ReadinessScore
		burnoutSum += m.BurnoutRisk
	}
	latest := metrics[len(metrics)-1]
	n := float64(len(metrics))
	return engine.Baseline{
		CTL:         latest.CTL,
		ATL:         latest.ATL,
		TSB:         latest.TSB,
		Readiness:   readinessSum / n,
		BurnoutRisk: burnoutSum / n,
	}, nil
}

func (ss *simulationService) loadOwnedScenario(ctx context.Context, scenarioID uuid.UUID) (*types.Scenario, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	scenarios, err := ss.scenarioRepo.GetByIDs(ctx, nil, []uuid.UUID{scenarioID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load scenario: %w", err)
	}
	if len(scenarios) == 0 || scenarios[0].UserID != rd.UserID {
		return nil, fmt.Errorf("Scenario not found")
	}
	return scenarios[0], nil
}

func (ss *simulationService) RunScenario(ctx context.Context, scenarioID uuid.UUID) (*ScenarioRunOutput, error) {
	scenario, err := ss.loadOwnedScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	baseline, err := ss.baselineFromHistory(ctx, scenario.UserID)
	if err != nil {
		return nil, err
	}
	baseline.IdentityMode = scenario.IdentityMode

	result, err := engine.Simulate(ss.cfg, baseline, engine.ScenarioParams{
		Name:               scenario.Name,
		DurationWeeks:      scenario.DurationWeeks,
		WeeklyTSS:          scenario.WeeklyTSS,
		VolumeDeltaPercent: scenario.VolumeDeltaPercent,
		IntensityShift:     scenario.IntensityShift,
		IdentityMode:       scenario.IdentityMode,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]*types.WeeklySimulationResult, 0, len(result.Weeks))
	for _, week := range result.Weeks {
		insightsJSON, mErr := json.Marshal(week.Insights)
		if mErr != nil {
			return nil, fmt.Errorf("Failed to encode insights: %w", mErr)
		}
		warningsJSON, mErr := json.Marshal(week.Warnings)
		if mErr != nil {
			return nil, fmt.Errorf("Failed to encode warnings: %w", mErr)
		}
		rows = append(rows, &types.WeeklySimulationResult{
			ID:                    uuid.New(),
			ScenarioID:            scenario.ID,
			WeekIndex:             week.WeekIndex,
			SimulatedCTL:          week.CTL,
			SimulatedATL:          week.ATL,
			SimulatedTSB:          week.TSB,
			SimulatedReadinessAvg: week.ReadinessAvg,
			SimulatedBurnoutRisk:  week.BurnoutRisk,
			WeeklyTSS:             week.WeeklyTSS,
			Insights:              datatypes.JSON(insightsJSON),
			Warnings:              datatypes.JSON(warningsJSON),
		})
	}

	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ss.resultRepo.ReplaceForScenario(ctx, tx, scenario.ID, rows)
	}); err != nil {
		return nil, fmt.Errorf("Failed to store simulation results: %w", err)
	}

	return &ScenarioRunOutput{
		Scenario: scenario,
		Weeks:    rows,
		Summary:  result.Summary,
	}, nil
}

func (ss *simulationService) GetResults(ctx context.Context, scenarioID uuid.UUID) ([]*types.WeeklySimulationResult, error) {
	if _, err := ss.loadOwnedScenario(ctx, scenarioID); err != nil {
		return nil, err
	}
	return ss.resultRepo.GetByScenarioID(ctx, nil, scenarioID)
}

func (ss *simulationService) DeleteScenario(ctx context.Context, scenarioID uuid.UUID) error {
	if _, err := ss.loadOwnedScenario(ctx, scenarioID); err != nil {
		return err
	}
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.resultRepo.FullDeleteByScenarioIDs(ctx, tx, []uuid.UUID{scenarioID}); err != nil {
			return fmt.Errorf("Failed to delete simulation results: %w", err)
		}
		if err := ss.scenarioRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{scenarioID}); err != nil {
			return fmt.Errorf("Failed to delete scenario: %w", err)
		}
		return nil
	})
}
