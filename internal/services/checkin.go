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

type UpsertCheckInInput struct {
	Date            time.Time `json:"date"`
	SleepHours      *float64  `json:"sleep_hours,omitempty"`
	SleepQuality    *int      `json:"sleep_quality,omitempty"`
	Mood            *int      `json:"mood,omitempty"`
	Energy          *int      `json:"energy,omitempty"`
	Stress          *int      `json:"stress,omitempty"`
	Soreness        *int      `json:"soreness,omitempty"`
	Motivation      *int      `json:"motivation,omitempty"`
	MentalReadiness *int      `json:"mental_readiness,omitempty"`
	PhysicalFatigue *int      `json:"physical_fatigue,omitempty"`
	Notes           string    `json:"notes"`
	Visibility      string    `json:"visibility"`
}

type CheckInService interface {
	Upsert(ctx context.Context, input UpsertCheckInInput) (*types.DailyCheckIn, error)
	GetRange(ctx context.Context, from, to time.Time) ([]*types.DailyCheckIn, error)
	UpdateVisibility(ctx context.Context, date time.Time, visibility string) error
	// EngineInputs converts stored rows to engine signals with the privacy
	// gate applied: HIDDEN rows are dropped and notes never cross.
	EngineInputs(rows []*types.DailyCheckIn) []engine.CheckInInput
}

type checkInService struct {
	db          *gorm.DB
	log         *logger.Logger
	checkInRepo repos.CheckInRepo
}

func NewCheckInService(db *gorm.DB, log *logger.Logger, checkInRepo repos.CheckInRepo) CheckInService {
	serviceLog := log.With("service", "CheckInService")
	return &checkInService{db: db, log: serviceLog, checkInRepo: checkInRepo}
}

func validScale(vals ...*int) error {
	for _, v := range vals {
		if v != nil && (*v < 1 || *v > 5) {
			return fmt.Errorf("scale fields must be between 1 and 5")
		}
	}
	return nil
}

func (cs *checkInService) Upsert(ctx context.Context, input UpsertCheckInInput) (*types.DailyCheckIn, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}

	if input.Date.IsZero() {
		return nil, fmt.Errorf("check-in date required")
	}
	if err := validScale(input.SleepQuality, input.Mood, input.Energy, input.Stress,
		input.Soreness, input.Motivation, input.MentalReadiness, input.PhysicalFatigue); err != nil {
		return nil, err
	}
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
		return nil, fmt.Errorf("sleep hours must be between 0 and 24")
	}
	switch input.Visibility {
	case types.VisibilityFullAccess, types.VisibilityMetricsOnly, types.VisibilityHidden:
	case "":
		input.Visibility = types.VisibilityFullAccess
	default:
		return nil, fmt.Errorf("unknown visibility %q", input.Visibility)
	}

	row := &types.DailyCheckIn{
		UserID:          rd.UserID,
		Date:            input.Date.UTC().Truncate(24 * time.Hour),
		SleepHours:      input.SleepHours,
		SleepQuality:    input.SleepQuality,
		Mood:            input.Mood,
		Energy:          input.Energy,
		Stress:          input.Stress,
		Soreness:        input.Soreness,
		Motivation:      input.Motivation,
		MentalReadiness: input.MentalReadiness,
		PhysicalFatigue: input.PhysicalFatigue,
		Notes:           input.Notes,
		Visibility:      input.Visibility,
	}
	if err := cs.checkInRepo.Upsert(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("Failed to upsert check-in: %w", err)
	}
	return row, nil
}

func (cs *checkInService) GetRange(ctx context.Context, from, to time.Time) ([]*types.DailyCheckIn, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("No request data found in context")
	}
	if to.Before(from) {
		return nil, fmt.Errorf("range end before start")
	}
	return cs.checkInRepo.GetByUserAndDateRange(ctx, nil, rd.UserID, from, to)
}

func (cs *checkInService) UpdateVisibility(ctx context.Context, date time.Time, visibility string) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("No request data found in context")
	}
	switch visibility {
	case types.VisibilityFullAccess, types.VisibilityMetricsOnly, types.VisibilityHidden:
	default:
		return fmt.Errorf("unknown visibility %q", visibility)
	}
	return cs.checkInRepo.UpdateVisibility(ctx, nil, rd.UserID, date.UTC().Truncate(24*time.Hour), visibility)
}

func (cs *checkInService) EngineInputs(rows []*types.DailyCheckIn) []engine.CheckInInput {
	inputs := make([]engine.CheckInInput, 0, len(rows))
	for _, row := range rows {
		if row == nil || row.Visibility == types.VisibilityHidden {
			continue
		}
		inputs = append(inputs, engine.CheckInInput{
			Date:            row.Date,
			SleepHours:      row.SleepHours,
			SleepQuality:    row.SleepQuality,
			Mood:            row.Mood,
			Energy:          row.Energy,
			Stress:          row.Stress,
			Soreness:        row.Soreness,
			Motivation:      row.Motivation,
			MentalReadiness: row.MentalReadiness,
			PhysicalFatigue: row.PhysicalFatigue,
		})
	}
	return inputs
}
