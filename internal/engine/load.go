package engine

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Ramp statuses.
const (
	RampStable  = "stable"
	RampRising  = "rising"
	RampSpiking = "spiking"
)

// LoadSummary is the weekly load view for one athlete: completed load in the
// current and previous 7-day windows and the week-over-week ramp.
type LoadSummary struct {
	CurrentWeekLoad  float64
	PreviousWeekLoad float64
	RampRatePercent  float64
	RampStatus       string
}

// AggregateLoad sums completed TSS over the two windows and derives the ramp
// rate. A previous week with zero load yields a zero ramp and a stable
// status rather than a division blow-up.
func AggregateLoad(cfg Config, currentWeek, previousWeek []WorkoutInput) LoadSummary {
	current := sumCompletedTSS(currentWeek)
	previous := sumCompletedTSS(previousWeek)

	var ramp float64
	if previous > 0 {
		ramp = (current - previous) / previous * 100
	}

	return LoadSummary{
		CurrentWeekLoad:  round1(current),
		PreviousWeekLoad: round1(previous),
		RampRatePercent:  round1(ramp),
		RampStatus:       rampStatus(cfg, ramp),
	}
}

func rampStatus(cfg Config, rampPercent float64) string {
	switch {
	case rampPercent > cfg.RampSpikingMinPercent:
		return RampSpiking
	case rampPercent >= cfg.RampStableMaxPercent:
		return RampRising
	default:
		return RampStable
	}
}

func sumCompletedTSS(workouts []WorkoutInput) float64 {
	var total float64
	for _, w := range workouts {
		if !w.Completed {
			continue
		}
		total += EffectiveTSS(w.DurationMinutes, w.TSS, w.Intensity)
	}
	return total
}

// FitnessPoint is one day of the CTL/ATL/TSB trend.
type FitnessPoint struct {
	Date time.Time
	CTL  float64
	ATL  float64
	TSB  float64
}

// FitnessTrend rolls completed workouts into a day-by-day CTL/ATL/TSB series
// by exponential smoothing, starting from an initial state. Days without
// training count as zero-load days so the averages decay. CTL and ATL track
// the weekly-equivalent load (daily TSS x 7) so a steady 300 TSS week pulls
// both toward 300.
func FitnessTrend(cfg Config, initial FitnessState, workouts []WorkoutInput, start, end time.Time) []FitnessPoint {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil
	}

	loadByDay := make(map[string]float64)
	for _, w := range workouts {
		if !w.Completed {
			continue
		}
		loadByDay[dayKey(w.Date)] += EffectiveTSS(w.DurationMinutes, w.TSS, w.Intensity)
	}

	ctlAlpha := 1 - math.Exp(-1/cfg.CTLDays)
	atlAlpha := 1 - math.Exp(-1/cfg.ATLDays)

	ctl, atl := initial.CTL, initial.ATL
	var points []FitnessPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weeklyEquivalent := loadByDay[dayKey(d)] * 7
		ctl += (weeklyEquivalent - ctl) * ctlAlpha
		atl += (weeklyEquivalent - atl) * atlAlpha
		points = append(points, FitnessPoint{
			Date: d,
			CTL:  round1(ctl),
			ATL:  round1(atl),
			TSB:  round1(ctl - atl),
		})
	}
	return points
}

// AdvanceFitnessWeek applies one simulated week of load to a fitness state.
// Used by the simulator; the same smoothing constants as FitnessTrend, one
// step per week.
func AdvanceFitnessWeek(cfg Config, state FitnessState, weeklyTSS float64) FitnessState {
	ctlAlpha := 1 - math.Exp(-7/cfg.CTLDays)
	atlAlpha := 1 - math.Exp(-7/cfg.ATLDays)

	ctl := state.CTL + (weeklyTSS-state.CTL)*ctlAlpha
	atl := state.ATL + (weeklyTSS-state.ATL)*atlAlpha
	return FitnessState{
		CTL: round1(ctl),
		ATL: round1(atl),
		TSB: round1(ctl - atl),
	}
}

// SplitWeekWindows partitions workouts into the 7 days ending at windowEnd
// (inclusive) and the 7 days before that.
func SplitWeekWindows(workouts []WorkoutInput, windowEnd time.Time) (currentWeek, previousWeek []WorkoutInput) {
	endDay := windowEnd.UTC().Truncate(24 * time.Hour)
	currentStart := endDay.AddDate(0, 0, -6)
	previousStart := endDay.AddDate(0, 0, -13)

	for _, w := range workouts {
		day := w.Date.UTC().Truncate(24 * time.Hour)
		switch {
		case day.After(endDay):
			continue
		case !day.Before(currentStart):
			currentWeek = append(currentWeek, w)
		case !day.Before(previousStart):
			previousWeek = append(previousWeek, w)
		}
	}
	return currentWeek, previousWeek
}

// RecentCompletedIntensities returns the intensity tiers of completed
// sessions in date order, most recent last.
func RecentCompletedIntensities(workouts []WorkoutInput) []string {
	completed := make([]WorkoutInput, 0, len(workouts))
	for _, w := range workouts {
		if w.Completed {
			completed = append(completed, w)
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].Date.Before(completed[j].Date)
	})
	out := make([]string, 0, len(completed))
	for _, w := range completed {
		out = append(out, w.Intensity)
	}
	return out
}

// DisplayRampRate clamps the signed ramp percentage for presentation.
func DisplayRampRate(rampPercent float64) string {
	clamped := clamp(rampPercent, -999, 999)
	return fmt.Sprintf("%+.0f%%", clamped)
}
