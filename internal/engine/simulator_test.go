package engine

import (
	"reflect"
	"testing"
)

func TestSimulateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	baseline := Baseline{CTL: 50, ATL: 40, TSB: 10}
	params := ScenarioParams{Name: "build block", DurationWeeks: 4, WeeklyTSS: 300}

	a, err := Simulate(cfg, baseline, params)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	b, err := Simulate(cfg, baseline, params)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same scenario produced different traces:\n%+v\n%+v", a, b)
	}
}

func TestSimulateBuildBlock(t *testing.T) {
	cfg := DefaultConfig()
	baseline := Baseline{CTL: 50, ATL: 40, TSB: 10}
	params := ScenarioParams{DurationWeeks: 4, WeeklyTSS: 300}

	got, err := Simulate(cfg, baseline, params)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(got.Weeks) != 4 {
		t.Fatalf("weeks = %d, want 4", len(got.Weeks))
	}

	// A steady 300 TSS against a 50 CTL baseline builds fitness every week.
	prevCTL := baseline.CTL
	for _, w := range got.Weeks {
		if w.CTL <= prevCTL {
			t.Fatalf("week %d: CTL %v did not rise past %v", w.WeekIndex, w.CTL, prevCTL)
		}
		if w.CTL > params.WeeklyTSS {
			t.Fatalf("week %d: CTL %v overshot the load target", w.WeekIndex, w.CTL)
		}
		if w.TSB < -300 || w.TSB > 100 {
			t.Fatalf("week %d: TSB %v out of plausible range", w.WeekIndex, w.TSB)
		}
		if w.WeeklyTSS != 300 {
			t.Fatalf("week %d: weekly TSS = %v, want 300", w.WeekIndex, w.WeeklyTSS)
		}
		prevCTL = w.CTL
	}

	// Six-fold load jump: the projection must flag it, not smooth over it.
	if got.Summary.PeakBurnoutRisk < cfg.SimHighPeakRiskMin {
		t.Fatalf("peak burnout risk = %v, want >= %v", got.Summary.PeakBurnoutRisk, cfg.SimHighPeakRiskMin)
	}
	if got.Summary.Recommendation != SimRecommendationHigh {
		t.Fatalf("recommendation = %q, want %q", got.Summary.Recommendation, SimRecommendationHigh)
	}
	if got.Summary.CTLDelta <= 0 {
		t.Fatalf("CTL delta = %v, want positive", got.Summary.CTLDelta)
	}
	if got.Summary.TotalWarnings == 0 {
		t.Fatalf("a 650%% week-one ramp must produce at least one warning")
	}
}

func TestSimulateSteadyStateIsSafe(t *testing.T) {
	cfg := DefaultConfig()
	baseline := Baseline{CTL: 50, ATL: 50, TSB: 0}

	// No explicit target: the scenario holds the recent load steady.
	got, err := Simulate(cfg, baseline, ScenarioParams{DurationWeeks: 6})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for _, w := range got.Weeks {
		if w.WeeklyTSS != 50 {
			t.Fatalf("week %d: weekly TSS = %v, want the baseline ATL of 50", w.WeekIndex, w.WeeklyTSS)
		}
	}
	if got.Summary.Recommendation != SimRecommendationSafe {
		t.Fatalf("steady load recommendation = %q, want %q (peak %v, warnings %d)",
			got.Summary.Recommendation, SimRecommendationSafe,
			got.Summary.PeakBurnoutRisk, got.Summary.TotalWarnings)
	}
}

func TestSimulateVolumeDeltaCompounds(t *testing.T) {
	cfg := DefaultConfig()
	baseline := Baseline{CTL: 100, ATL: 100}

	got, err := Simulate(cfg, baseline, ScenarioParams{
		DurationWeeks:      3,
		WeeklyTSS:          100,
		VolumeDeltaPercent: 10,
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	want := []float64{100, 110, 121}
	for i, w := range got.Weeks {
		if w.WeeklyTSS != want[i] {
			t.Fatalf("week %d TSS = %v, want %v", i, w.WeeklyTSS, want[i])
		}
	}
}

func TestSimulateNegativeDeltaFloorsAtZero(t *testing.T) {
	cfg := DefaultConfig()
	got, err := Simulate(cfg, Baseline{CTL: 80, ATL: 80}, ScenarioParams{
		DurationWeeks:      4,
		WeeklyTSS:          100,
		VolumeDeltaPercent: -50,
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for i := 1; i < len(got.Weeks); i++ {
		if got.Weeks[i].WeeklyTSS > got.Weeks[i-1].WeeklyTSS {
			t.Fatalf("taper must not raise weekly TSS: %v then %v",
				got.Weeks[i-1].WeeklyTSS, got.Weeks[i].WeeklyTSS)
		}
		if got.Weeks[i].WeeklyTSS < 0 {
			t.Fatalf("weekly TSS must not go negative: %v", got.Weeks[i].WeeklyTSS)
		}
	}
}

func TestSimulateDurationBounds(t *testing.T) {
	cfg := DefaultConfig()
	baseline := cfg.DefaultBaseline

	for _, weeks := range []int{0, 1, 13} {
		if _, err := Simulate(cfg, baseline, ScenarioParams{DurationWeeks: weeks, WeeklyTSS: 200}); err == nil {
			t.Fatalf("duration %d weeks must be rejected", weeks)
		}
	}
	for _, weeks := range []int{2, 12} {
		if _, err := Simulate(cfg, baseline, ScenarioParams{DurationWeeks: weeks, WeeklyTSS: 200}); err != nil {
			t.Fatalf("duration %d weeks must be accepted, got %v", weeks, err)
		}
	}
}

func TestSimulateIntensityShiftTripsHardPairs(t *testing.T) {
	cfg := DefaultConfig()
	baseline := Baseline{CTL: 200, ATL: 200}

	hot, err := Simulate(cfg, baseline, ScenarioParams{
		DurationWeeks:  3,
		WeeklyTSS:      200,
		IntensityShift: 2,
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	found := false
	for _, w := range hot.Weeks {
		if hasWarning(w.Warnings, WarnBackToBackHard) {
			found = true
		}
	}
	if !found {
		t.Fatalf("intensity-shifted plan should trip back-to-back hard warnings")
	}

	cool, err := Simulate(cfg, baseline, ScenarioParams{
		DurationWeeks:  3,
		WeeklyTSS:      200,
		IntensityShift: -2,
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for _, w := range cool.Weeks {
		if hasWarning(w.Warnings, WarnBackToBackHard) {
			t.Fatalf("easy-shifted plan must not pair hard days, got %v", w.Warnings)
		}
	}
}
