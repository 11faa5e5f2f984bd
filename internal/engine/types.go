package engine

import "time"

// Intensity tiers, ordered easy < moderate < hard.
const (
	IntensityEasy     = "easy"
	IntensityModerate = "moderate"
	IntensityHard     = "hard"
)

// WorkoutInput is the engine-side view of a logged or planned session. Only
// numeric and categorical fields cross the boundary; no free text.
type WorkoutInput struct {
	Date            time.Time
	Planned         bool
	Completed       bool
	DurationMinutes int
	TSS             *float64
	Discipline      string
	Intensity       string
}

// CheckInInput is the numeric slice of a daily check-in. Nil pointers mean
// the athlete did not report that signal; scorers degrade confidence instead
// of failing.
type CheckInInput struct {
	Date            time.Time
	SleepHours      *float64
	SleepQuality    *int
	Mood            *int
	Energy          *int
	Stress          *int
	Soreness        *int
	Motivation      *int
	MentalReadiness *int
	PhysicalFatigue *int
}

// PlannedSession is a proposed future session, the unit the guardrail
// checker and the plan transforms operate on.
type PlannedSession struct {
	Date            time.Time
	Discipline      string
	DurationMinutes int
	Intensity       string
	Title           string
	TSS             *float64
}

// FitnessState is a CTL/ATL/TSB triple on the weekly-equivalent load scale.
type FitnessState struct {
	CTL float64
	ATL float64
	TSB float64
}

// tssPerMinute estimates load for sessions logged without a stress score.
var tssPerMinute = map[string]float64{
	IntensityEasy:     0.5,
	IntensityModerate: 0.8,
	IntensityHard:     1.2,
}

// EffectiveTSS returns the stored TSS, or a duration-and-intensity estimate
// when none was recorded.
func EffectiveTSS(durationMinutes int, tss *float64, intensity string) float64 {
	if tss != nil && *tss > 0 {
		return *tss
	}
	perMin, ok := tssPerMinute[intensity]
	if !ok {
		perMin = tssPerMinute[IntensityModerate]
	}
	return float64(durationMinutes) * perMin
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	if v >= 0 {
		return float64(int64(v*10+0.5)) / 10
	}
	return float64(int64(v*10-0.5)) / 10
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
