package engine

import (
	"testing"
)

func plannedWorkout(offset int, completed bool) WorkoutInput {
	return WorkoutInput{
		Date:      day(offset),
		Planned:   true,
		Completed: completed,
		Intensity: IntensityModerate,
	}
}

func TestTrackCompliancePerfectWindow(t *testing.T) {
	cfg := DefaultConfig()

	// Five planned sessions on five consecutive days, all completed.
	var workouts []WorkoutInput
	for i := 0; i < 5; i++ {
		workouts = append(workouts, plannedWorkout(-i, true))
	}

	got := TrackCompliance(cfg, workouts, day(0))
	if got.CompletionRate != 100 {
		t.Fatalf("completion rate = %v, want 100", got.CompletionRate)
	}
	if got.Streak != 5 {
		t.Fatalf("streak = %d, want 5", got.Streak)
	}
	if got.Status != ComplianceStrong {
		t.Fatalf("status = %q, want %q", got.Status, ComplianceStrong)
	}
}

func TestTrackComplianceZeroPlanned(t *testing.T) {
	cfg := DefaultConfig()
	got := TrackCompliance(cfg, nil, day(0))
	if got.CompletionRate != 100 {
		t.Fatalf("no planned sessions must not divide by zero, rate = %v", got.CompletionRate)
	}
	if got.Streak != 0 {
		t.Fatalf("streak with no plan = %d, want 0", got.Streak)
	}
}

func TestTrackComplianceRestDaysKeepStreak(t *testing.T) {
	cfg := DefaultConfig()

	// Compliant days at offsets 0, -2, -4; nothing planned between them.
	workouts := []WorkoutInput{
		plannedWorkout(0, true),
		plannedWorkout(-2, true),
		plannedWorkout(-4, true),
	}
	got := TrackCompliance(cfg, workouts, day(0))
	if got.Streak != 3 {
		t.Fatalf("rest days must not break the streak, got %d, want 3", got.Streak)
	}
}

func TestTrackComplianceMissedSessionBreaksStreak(t *testing.T) {
	cfg := DefaultConfig()

	workouts := []WorkoutInput{
		plannedWorkout(0, true),
		plannedWorkout(-1, true),
		plannedWorkout(-2, false), // planned but skipped
		plannedWorkout(-3, true),
	}
	got := TrackCompliance(cfg, workouts, day(0))
	if got.Streak != 2 {
		t.Fatalf("streak should stop at the missed day, got %d, want 2", got.Streak)
	}
	if got.CompletionRate != 75 {
		t.Fatalf("rate = %v, want 75", got.CompletionRate)
	}
	if got.Status != ComplianceSlipping {
		t.Fatalf("status = %q, want %q", got.Status, ComplianceSlipping)
	}
}

func TestTrackComplianceFragile(t *testing.T) {
	cfg := DefaultConfig()

	workouts := []WorkoutInput{
		plannedWorkout(0, false),
		plannedWorkout(-1, false),
		plannedWorkout(-2, true),
		plannedWorkout(-3, false),
	}
	got := TrackCompliance(cfg, workouts, day(0))
	if got.Status != ComplianceFragile {
		t.Fatalf("status = %q, want %q", got.Status, ComplianceFragile)
	}
	if got.Streak != 0 {
		t.Fatalf("streak = %d, want 0", got.Streak)
	}
	if len(got.Reasons) == 0 {
		t.Fatalf("fragile status must carry reasons")
	}
}

func TestTrackComplianceIgnoresOutsideWindow(t *testing.T) {
	cfg := DefaultConfig()
	workouts := []WorkoutInput{
		plannedWorkout(0, true),
		plannedWorkout(-14, false), // outside the 14-day window
	}
	got := TrackCompliance(cfg, workouts, day(0))
	if got.Planned != 1 {
		t.Fatalf("planned = %d, want 1", got.Planned)
	}
	if got.CompletionRate != 100 {
		t.Fatalf("rate = %v, want 100", got.CompletionRate)
	}
}
