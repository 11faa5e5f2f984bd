package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/paceline/paceline-backend/internal/types"
)

func iptr(v int) *int { return &v }

func TestEngineInputsDropsHiddenCheckIns(t *testing.T) {
	cs := &checkInService{}
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := []*types.DailyCheckIn{
		{UserID: uuid.New(), Date: date, Mood: iptr(4), Visibility: types.VisibilityFullAccess},
		{UserID: uuid.New(), Date: date.AddDate(0, 0, 1), Mood: iptr(2), Visibility: types.VisibilityHidden},
		{UserID: uuid.New(), Date: date.AddDate(0, 0, 2), Mood: iptr(3), Visibility: types.VisibilityMetricsOnly},
		nil,
	}

	inputs := cs.EngineInputs(rows)
	if len(inputs) != 2 {
		t.Fatalf("expected hidden and nil rows dropped, got %d inputs", len(inputs))
	}
	for _, in := range inputs {
		if in.Mood != nil && *in.Mood == 2 {
			t.Fatalf("hidden check-in leaked into engine inputs")
		}
	}
}

func TestEngineInputsCarriesNumericSignalsOnly(t *testing.T) {
	cs := &checkInService{}
	hours := 7.5
	row := &types.DailyCheckIn{
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SleepHours:   &hours,
		SleepQuality: iptr(4),
		Mood:         iptr(3),
		Notes:        "rough day at work, coach please ignore",
		Visibility:   types.VisibilityMetricsOnly,
	}

	inputs := cs.EngineInputs([]*types.DailyCheckIn{row})
	if len(inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(inputs))
	}
	in := inputs[0]
	if in.SleepHours == nil || *in.SleepHours != 7.5 {
		t.Fatalf("sleep hours not carried: %+v", in)
	}
	if in.Mood == nil || *in.Mood != 3 {
		t.Fatalf("mood not carried: %+v", in)
	}
}

func TestWorkoutEngineInputs(t *testing.T) {
	tss := 85.0
	rows := []*types.Workout{
		{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Planned: true, Completed: true, TSS: &tss, Intensity: "hard", DurationMinutes: 60},
		nil,
	}
	inputs := workoutEngineInputs(rows)
	if len(inputs) != 1 {
		t.Fatalf("expected nil rows dropped, got %d", len(inputs))
	}
	if !inputs[0].Completed || inputs[0].TSS == nil || *inputs[0].TSS != 85 {
		t.Fatalf("workout fields not carried: %+v", inputs[0])
	}
}
