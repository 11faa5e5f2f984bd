package engine

import (
	"fmt"
	"math"
	"time"
)

// Simulation summary recommendations.
const (
	SimRecommendationSafe     = "safe"
	SimRecommendationModerate = "moderate_risk"
	SimRecommendationHigh     = "high_risk"
)

// ScenarioParams describes a hypothetical plan: a weekly load target, a
// compounding week-over-week volume ramp, an intensity bias and the identity
// mode the scenario runs under.
type ScenarioParams struct {
	Name               string
	DurationWeeks      int
	WeeklyTSS          float64
	VolumeDeltaPercent float64
	IntensityShift     int
	IdentityMode       string
}

// SimulatedWeek is one step of the projection.
type SimulatedWeek struct {
	WeekIndex    int
	CTL          float64
	ATL          float64
	TSB          float64
	ReadinessAvg float64
	BurnoutRisk  float64
	WeeklyTSS    float64
	Insights     []string
	Warnings     []GuardrailWarning
}

type SimulationSummary struct {
	CTLDelta        float64
	PeakBurnoutRisk float64
	TotalWarnings   int
	Recommendation  string
}

type SimulationResult struct {
	Weeks   []SimulatedWeek
	Summary SimulationSummary
}

// Simulate projects the baseline state forward week by week under the
// scenario's parameters. Week n+1 is derived entirely from week n's
// simulated output, never from stored history. No randomness anywhere, so a
// fixed (baseline, params) pair always reproduces the same trace.
func Simulate(cfg Config, baseline Baseline, params ScenarioParams) (SimulationResult, error) {
	if params.DurationWeeks < cfg.SimMinWeeks || params.DurationWeeks > cfg.SimMaxWeeks {
		return SimulationResult{}, fmt.Errorf("scenario duration must be between %d and %d weeks, got %d",
			cfg.SimMinWeeks, cfg.SimMaxWeeks, params.DurationWeeks)
	}

	baseTSS := params.WeeklyTSS
	if baseTSS <= 0 {
		// No explicit target: hold the baseline's recent load steady.
		baseTSS = baseline.ATL
	}

	state := FitnessState{CTL: baseline.CTL, ATL: baseline.ATL, TSB: baseline.TSB}
	previousWeekTSS := baseline.ATL

	weeks := make([]SimulatedWeek, 0, params.DurationWeeks)
	peakRisk := baseline.BurnoutRisk
	totalWarnings := 0

	for i := 0; i < params.DurationWeeks; i++ {
		weekTSS := baseTSS * math.Pow(1+params.VolumeDeltaPercent/100, float64(i))
		if weekTSS < 0 {
			weekTSS = 0
		}
		weekTSS = round1(weekTSS)

		prevState := state
		state = AdvanceFitnessWeek(cfg, state, weekTSS)

		synthetic := syntheticCheckIn(state)
		readiness := ScoreReadiness(cfg, synthetic, &state)
		burnout := ScoreBurnout(cfg, BurnoutInput{
			Today:            synthetic,
			History:          syntheticHistory(synthetic, state),
			FatigueType:      syntheticFatigueType(state),
			ComplianceStatus: ComplianceStrong,
			ReadinessScore:   &readiness.Score,
		})

		guardrail := CheckGuardrails(cfg,
			syntheticWeekPlan(weekTSS, params.IntensityShift, i),
			previousWeekTSS,
			syntheticRecentIntensities(params.IntensityShift))

		week := SimulatedWeek{
			WeekIndex:    i,
			CTL:          state.CTL,
			ATL:          state.ATL,
			TSB:          state.TSB,
			ReadinessAvg: readiness.Score,
			BurnoutRisk:  burnout.Risk,
			WeeklyTSS:    weekTSS,
			Insights:     weekInsights(prevState, state, readiness, burnout),
			Warnings:     guardrail.Warnings,
		}
		weeks = append(weeks, week)

		if burnout.Risk > peakRisk {
			peakRisk = burnout.Risk
		}
		totalWarnings += len(guardrail.Warnings)
		previousWeekTSS = weekTSS
	}

	last := weeks[len(weeks)-1]
	return SimulationResult{
		Weeks: weeks,
		Summary: SimulationSummary{
			CTLDelta:        round1(last.CTL - baseline.CTL),
			PeakBurnoutRisk: round1(peakRisk),
			TotalWarnings:   totalWarnings,
			Recommendation:  simRecommendation(cfg, peakRisk, totalWarnings),
		},
	}, nil
}

func simRecommendation(cfg Config, peakRisk float64, totalWarnings int) string {
	switch {
	case peakRisk >= cfg.SimHighPeakRiskMin || totalWarnings >= cfg.SimHighMinWarnings:
		return SimRecommendationHigh
	case peakRisk < cfg.SimSafePeakRiskMax && totalWarnings <= cfg.SimSafeMaxWarnings:
		return SimRecommendationSafe
	default:
		return SimRecommendationModerate
	}
}

// syntheticCheckIn derives diary-shaped signals from the simulated load
// state so the readiness and burnout weighting logic can be reused without
// real diary entries. Sleep is left unreported; simulation knows nothing
// about it.
func syntheticCheckIn(state FitnessState) *CheckInInput {
	energy := clampInt(3+int(math.Round(state.TSB/15)), 1, 5)
	soreness := clampInt(3+int(math.Round(-state.TSB/20)), 1, 5)
	mood := 3
	if state.TSB < -25 {
		mood = 2
	}
	stress := 3
	return &CheckInInput{
		Mood:     &mood,
		Energy:   &energy,
		Stress:   &stress,
		Soreness: &soreness,
	}
}

// syntheticHistory replicates the synthetic day across the persistence
// window once the state is deep enough into fatigue that the pattern would
// plausibly have held all week.
func syntheticHistory(today *CheckInInput, state FitnessState) []CheckInInput {
	if today == nil || state.TSB >= -25 {
		return nil
	}
	history := make([]CheckInInput, persistenceMinDays)
	for i := range history {
		ci := *today
		ci.Date = time.Date(2000, 1, 1+i, 0, 0, 0, 0, time.UTC)
		history[i] = ci
	}
	return history
}

func syntheticFatigueType(state FitnessState) string {
	switch {
	case state.TSB < -25:
		return FatigueCNS
	case state.TSB < -10:
		return FatigueMuscular
	default:
		return FatigueNone
	}
}

// syntheticWeekPlan spreads the weekly load over four sessions so the
// guardrail pass has a concrete plan shape to validate.
func syntheticWeekPlan(weekTSS float64, intensityShift, weekIndex int) []PlannedSession {
	base := time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, weekIndex*7)
	perSession := weekTSS / 4

	intensities := []string{IntensityModerate, IntensityEasy, IntensityHard, IntensityEasy}
	switch {
	case intensityShift > 0:
		intensities = []string{IntensityHard, IntensityHard, IntensityModerate, IntensityEasy}
	case intensityShift < 0:
		intensities = []string{IntensityEasy, IntensityEasy, IntensityModerate, IntensityEasy}
	}

	days := []int{0, 1, 3, 5}
	sessions := make([]PlannedSession, 0, 4)
	for i := 0; i < 4; i++ {
		tss := perSession
		sessions = append(sessions, PlannedSession{
			Date:      base.AddDate(0, 0, days[i]),
			Intensity: intensities[i],
			TSS:       &tss,
		})
	}
	return sessions
}

func syntheticRecentIntensities(intensityShift int) []string {
	if intensityShift > 0 {
		return []string{IntensityModerate, IntensityHard}
	}
	return []string{IntensityModerate, IntensityEasy}
}

func weekInsights(prev, cur FitnessState, readiness ReadinessResult, burnout BurnoutResult) []string {
	var insights []string
	if cur.CTL > prev.CTL {
		insights = append(insights, fmt.Sprintf("fitness building: CTL %.1f -> %.1f", prev.CTL, cur.CTL))
	} else if cur.CTL < prev.CTL {
		insights = append(insights, fmt.Sprintf("fitness fading: CTL %.1f -> %.1f", prev.CTL, cur.CTL))
	}
	if cur.TSB < -20 {
		insights = append(insights, fmt.Sprintf("deep fatigue: TSB at %.1f", cur.TSB))
	} else if cur.TSB > 10 {
		insights = append(insights, "fresh: positive training stress balance")
	}
	if readiness.Status == ReadinessCaution {
		insights = append(insights, "projected readiness drops into caution")
	}
	if burnout.Status != BurnoutLow {
		insights = append(insights, fmt.Sprintf("burnout risk %s at %.0f", burnout.Status, burnout.Risk))
	}
	return insights
}
