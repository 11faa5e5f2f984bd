package engine

import (
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }

func day(offset int) time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func completedWorkout(offset int, tss float64) WorkoutInput {
	return WorkoutInput{
		Date:      day(offset),
		Planned:   true,
		Completed: true,
		TSS:       fptr(tss),
		Intensity: IntensityModerate,
	}
}

func TestAggregateLoadRampStatuses(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name       string
		current    float64
		previous   float64
		wantRamp   float64
		wantStatus string
	}{
		{name: "steady", current: 200, previous: 200, wantRamp: 0, wantStatus: RampStable},
		{name: "small_bump", current: 210, previous: 200, wantRamp: 5, wantStatus: RampStable},
		{name: "rising", current: 240, previous: 200, wantRamp: 20, wantStatus: RampRising},
		{name: "spiking", current: 300, previous: 200, wantRamp: 50, wantStatus: RampSpiking},
		{name: "backing_off", current: 100, previous: 200, wantRamp: -50, wantStatus: RampStable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AggregateLoad(cfg,
				[]WorkoutInput{completedWorkout(0, tc.current)},
				[]WorkoutInput{completedWorkout(-7, tc.previous)})
			if got.RampRatePercent != tc.wantRamp {
				t.Fatalf("ramp=%v, want %v", got.RampRatePercent, tc.wantRamp)
			}
			if got.RampStatus != tc.wantStatus {
				t.Fatalf("status=%q, want %q", got.RampStatus, tc.wantStatus)
			}
		})
	}
}

func TestAggregateLoadZeroPreviousWeek(t *testing.T) {
	cfg := DefaultConfig()
	got := AggregateLoad(cfg, []WorkoutInput{completedWorkout(0, 250)}, nil)

	if got.RampRatePercent != 0 {
		t.Fatalf("ramp with empty previous week = %v, want 0", got.RampRatePercent)
	}
	if got.RampStatus != RampStable {
		t.Fatalf("status with empty previous week = %q, want %q", got.RampStatus, RampStable)
	}
	if got.CurrentWeekLoad != 250 {
		t.Fatalf("current load = %v, want 250", got.CurrentWeekLoad)
	}
}

func TestAggregateLoadEmptyWindows(t *testing.T) {
	cfg := DefaultConfig()
	got := AggregateLoad(cfg, nil, nil)
	if got.CurrentWeekLoad != 0 || got.PreviousWeekLoad != 0 {
		t.Fatalf("empty windows should yield zero loads, got %+v", got)
	}
	if got.RampStatus != RampStable {
		t.Fatalf("empty windows status = %q, want %q", got.RampStatus, RampStable)
	}
}

func TestAggregateLoadIgnoresIncomplete(t *testing.T) {
	cfg := DefaultConfig()
	planned := WorkoutInput{Date: day(0), Planned: true, Completed: false, TSS: fptr(400)}
	got := AggregateLoad(cfg, []WorkoutInput{planned, completedWorkout(-1, 100)}, nil)
	if got.CurrentWeekLoad != 100 {
		t.Fatalf("planned-only sessions must not count, got load %v", got.CurrentWeekLoad)
	}
}

func TestEffectiveTSSFallback(t *testing.T) {
	if got := EffectiveTSS(60, fptr(85), IntensityEasy); got != 85 {
		t.Fatalf("stored TSS should win, got %v", got)
	}
	if got := EffectiveTSS(60, nil, IntensityHard); got != 72 {
		t.Fatalf("hard 60min estimate = %v, want 72", got)
	}
	if got := EffectiveTSS(60, nil, "unknown"); got != 48 {
		t.Fatalf("unknown intensity should fall back to moderate, got %v", got)
	}
}

func TestFitnessTrendDecaysOnRestDays(t *testing.T) {
	cfg := DefaultConfig()
	initial := FitnessState{CTL: 100, ATL: 100}

	points := FitnessTrend(cfg, initial, nil, day(0), day(6))
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].CTL >= points[i-1].CTL {
			t.Fatalf("CTL should decay across rest days: %v then %v", points[i-1].CTL, points[i].CTL)
		}
	}
	// ATL decays faster than CTL, so TSB rises toward freshness.
	if points[6].TSB <= points[0].TSB {
		t.Fatalf("TSB should rise during rest, got %v -> %v", points[0].TSB, points[6].TSB)
	}
}

func TestFitnessTrendRespondsToLoad(t *testing.T) {
	cfg := DefaultConfig()
	var workouts []WorkoutInput
	for i := 0; i < 7; i++ {
		workouts = append(workouts, completedWorkout(i, 50))
	}
	points := FitnessTrend(cfg, FitnessState{CTL: 40, ATL: 40}, workouts, day(0), day(6))
	for i := 1; i < len(points); i++ {
		if points[i].CTL <= points[i-1].CTL {
			t.Fatalf("CTL should rise under steady load above baseline")
		}
	}
}

func TestSplitWeekWindows(t *testing.T) {
	workouts := []WorkoutInput{
		completedWorkout(0, 10),   // current, window end
		completedWorkout(-6, 20),  // current, boundary
		completedWorkout(-7, 30),  // previous
		completedWorkout(-13, 40), // previous, boundary
		completedWorkout(-14, 50), // outside both
		completedWorkout(1, 60),   // future, ignored
	}
	current, previous := SplitWeekWindows(workouts, day(0))
	if len(current) != 2 {
		t.Fatalf("current window size = %d, want 2", len(current))
	}
	if len(previous) != 2 {
		t.Fatalf("previous window size = %d, want 2", len(previous))
	}
}
