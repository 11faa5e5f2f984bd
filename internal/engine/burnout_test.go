package engine

import (
	"strings"
	"testing"
	"time"
)

func TestScoreBurnoutLowReadinessDriverReportsConfiguredThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BurnoutLowReadinessMax = 55

	readiness := 50.0
	res := ScoreBurnout(cfg, BurnoutInput{ReadinessScore: &readiness})

	found := false
	for _, d := range res.Drivers {
		if d.Name != "low_readiness" {
			continue
		}
		found = true
		if !strings.Contains(d.Description, "55") {
			t.Fatalf("description %q does not carry the configured threshold", d.Description)
		}
	}
	if !found {
		t.Fatalf("readiness 50 under a threshold of 55 must trigger the low_readiness driver")
	}
}

func TestScoreBurnoutHighWithPersistentSignals(t *testing.T) {
	cfg := DefaultConfig()

	today := &CheckInInput{
		Date:         day(0),
		Mood:         iptr(1),
		Stress:       iptr(5),
		SleepQuality: iptr(1),
	}
	var history []CheckInInput
	for i := 0; i < 3; i++ {
		history = append(history, CheckInInput{
			Date:         day(-i),
			Mood:         iptr(1),
			Stress:       iptr(5),
			SleepQuality: iptr(1),
		})
	}

	got := ScoreBurnout(cfg, BurnoutInput{Today: today, History: history})

	if got.Status != BurnoutHigh {
		t.Fatalf("status = %q, want %q (risk %v, drivers %v)", got.Status, BurnoutHigh, got.Risk, got.Drivers)
	}
	// low mood 25 + high stress 15 + poor sleep 15 + persistent mood 20 + persistent sleep 15
	if got.Risk != 90 {
		t.Fatalf("risk = %v, want 90", got.Risk)
	}
	wantActions := map[string]bool{ActionSimplifyWeek: false, ActionRecoveryMicrocycle: false}
	for _, a := range got.SuggestedActions {
		wantActions[a] = true
	}
	for action, seen := range wantActions {
		if !seen {
			t.Fatalf("HIGH status must suggest %q, got %v", action, got.SuggestedActions)
		}
	}
	if len(got.Drivers) > 4 {
		t.Fatalf("drivers must be truncated to 4, got %d", len(got.Drivers))
	}
	for i := 1; i < len(got.Drivers); i++ {
		if got.Drivers[i].Weight > got.Drivers[i-1].Weight {
			t.Fatalf("drivers must be sorted by weight descending")
		}
	}
}

func TestScoreBurnoutMonotonic(t *testing.T) {
	cfg := DefaultConfig()

	// Each step adds one more triggered driver to the previous input.
	steps := []BurnoutInput{
		{},
		{Today: &CheckInInput{Mood: iptr(2)}},
		{Today: &CheckInInput{Mood: iptr(2), Stress: iptr(4)}},
		{Today: &CheckInInput{Mood: iptr(2), Stress: iptr(4), SleepQuality: iptr(2)}},
		{Today: &CheckInInput{Mood: iptr(2), Stress: iptr(4), SleepQuality: iptr(2), Soreness: iptr(4)}},
		{
			Today:       &CheckInInput{Mood: iptr(2), Stress: iptr(4), SleepQuality: iptr(2), Soreness: iptr(4)},
			FatigueType: FatigueCNS,
		},
		{
			Today:            &CheckInInput{Mood: iptr(2), Stress: iptr(4), SleepQuality: iptr(2), Soreness: iptr(4)},
			FatigueType:      FatigueCNS,
			ComplianceStatus: ComplianceFragile,
		},
		{
			Today:            &CheckInInput{Mood: iptr(2), Stress: iptr(4), SleepQuality: iptr(2), Soreness: iptr(4)},
			FatigueType:      FatigueCNS,
			ComplianceStatus: ComplianceFragile,
			ReadinessScore:   fptr(30),
		},
	}

	prev := -1.0
	for i, in := range steps {
		got := ScoreBurnout(cfg, in)
		if got.Risk < prev {
			t.Fatalf("step %d: adding a driver lowered risk from %v to %v", i, prev, got.Risk)
		}
		if got.Risk < 0 || got.Risk > 100 {
			t.Fatalf("step %d: risk out of bounds: %v", i, got.Risk)
		}
		prev = got.Risk
	}
}

func TestScoreBurnoutClampAndTierFromUncappedTotal(t *testing.T) {
	cfg := DefaultConfig()

	today := &CheckInInput{
		Date:         day(0),
		Mood:         iptr(1),
		Stress:       iptr(5),
		SleepQuality: iptr(1),
		Soreness:     iptr(5),
	}
	var history []CheckInInput
	for i := 0; i < 5; i++ {
		history = append(history, CheckInInput{
			Date:         day(-i),
			Mood:         iptr(1),
			SleepQuality: iptr(1),
			Soreness:     iptr(5),
		})
	}
	rdy := 20.0
	got := ScoreBurnout(cfg, BurnoutInput{
		Today:            today,
		History:          history,
		FatigueType:      FatiguePsychological,
		ComplianceStatus: ComplianceFragile,
		ReadinessScore:   &rdy,
	})
	if got.Risk != 100 {
		t.Fatalf("risk must clamp to 100, got %v", got.Risk)
	}
	if got.Status != BurnoutHigh {
		t.Fatalf("status = %q, want %q", got.Status, BurnoutHigh)
	}
}

func TestScoreBurnoutTiers(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name        string
		in          BurnoutInput
		wantStatus  string
		wantActions int
	}{
		{
			name:        "low_clean_day",
			in:          BurnoutInput{Today: &CheckInInput{Mood: iptr(4), Stress: iptr(2), SleepQuality: iptr(4)}},
			wantStatus:  BurnoutLow,
			wantActions: 0,
		},
		{
			name:        "moderate_single_strain",
			in:          BurnoutInput{Today: &CheckInInput{Mood: iptr(3), Stress: iptr(4), SleepQuality: iptr(4)}, ComplianceStatus: ComplianceSlipping},
			wantStatus:  BurnoutModerate,
			wantActions: 1,
		},
		{
			name:        "high_acute_day",
			in:          BurnoutInput{Today: &CheckInInput{Mood: iptr(1), Stress: iptr(5), SleepQuality: iptr(1)}},
			wantStatus:  BurnoutHigh,
			wantActions: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreBurnout(cfg, tc.in)
			if got.Status != tc.wantStatus {
				t.Fatalf("status = %q, want %q (risk %v)", got.Status, tc.wantStatus, got.Risk)
			}
			if len(got.SuggestedActions) != tc.wantActions {
				t.Fatalf("actions = %v, want %d of them", got.SuggestedActions, tc.wantActions)
			}
		})
	}
}

func TestScoreBurnoutRecommendationFollowsTopDriver(t *testing.T) {
	cfg := DefaultConfig()

	moodDriven := ScoreBurnout(cfg, BurnoutInput{
		Today: &CheckInInput{Mood: iptr(1), Stress: iptr(4), SleepQuality: iptr(2)},
	})
	if moodDriven.Status != BurnoutHigh {
		t.Fatalf("setup: expected HIGH, got %q", moodDriven.Status)
	}
	if moodDriven.Recommendation != burnoutRecommendations[BurnoutHigh][driverCategoryMood] {
		t.Fatalf("mood-led HIGH should use the mood recommendation, got %q", moodDriven.Recommendation)
	}

	low := ScoreBurnout(cfg, BurnoutInput{})
	if low.Recommendation != burnoutLowDefault {
		t.Fatalf("LOW recommendation = %q, want %q", low.Recommendation, burnoutLowDefault)
	}
}

func TestSimplifySessions(t *testing.T) {
	sessions := []PlannedSession{
		{DurationMinutes: 60, Intensity: IntensityHard, TSS: fptr(90)},
		{DurationMinutes: 40, Intensity: IntensityModerate},
		{DurationMinutes: 30, Intensity: IntensityEasy},
	}
	got := SimplifySessions(sessions)

	if got[0].DurationMinutes != 42 || got[0].Intensity != IntensityModerate {
		t.Fatalf("hard session not simplified: %+v", got[0])
	}
	if got[1].Intensity != IntensityEasy {
		t.Fatalf("moderate session should drop to easy, got %q", got[1].Intensity)
	}
	if got[2].Intensity != IntensityEasy {
		t.Fatalf("easy session stays easy, got %q", got[2].Intensity)
	}
	if got[0].TSS != nil {
		t.Fatalf("stored TSS must be cleared so it gets re-estimated")
	}
	// The input must not be mutated.
	if sessions[0].DurationMinutes != 60 || sessions[0].Intensity != IntensityHard {
		t.Fatalf("SimplifySessions mutated its input: %+v", sessions[0])
	}
}

func TestBuildRecoveryMicrocycle(t *testing.T) {
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday

	got := BuildRecoveryMicrocycle(weekStart, "ride")
	if len(got) != 5 {
		t.Fatalf("expected 3 easy sessions + 2 mobility days, got %d", len(got))
	}

	easyDays := map[int]bool{}
	for _, s := range got {
		offset := int(s.Date.Sub(weekStart).Hours() / 24)
		if s.Discipline == "ride" {
			if s.Intensity != IntensityEasy {
				t.Fatalf("recovery session must be easy, got %q", s.Intensity)
			}
			easyDays[offset] = true
		}
	}
	for _, want := range []int{0, 2, 4} {
		if !easyDays[want] {
			t.Fatalf("expected an easy session on week day %d, got %v", want, easyDays)
		}
	}

	// Unknown disciplines fall back to the run template.
	fallback := BuildRecoveryMicrocycle(weekStart, "rowing")
	if fallback[0].DurationMinutes != 30 {
		t.Fatalf("fallback template duration = %d, want 30", fallback[0].DurationMinutes)
	}
}
