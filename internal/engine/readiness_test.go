package engine

import (
	"reflect"
	"testing"
)

func fullCheckIn() *CheckInInput {
	return &CheckInInput{
		SleepHours:   fptr(8),
		SleepQuality: iptr(4),
		Mood:         iptr(4),
		Energy:       iptr(4),
		Stress:       iptr(2),
		Soreness:     iptr(2),
	}
}

func TestScoreReadinessBounds(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name    string
		checkIn *CheckInInput
		fitness *FitnessState
	}{
		{name: "everything_bad", checkIn: &CheckInInput{
			SleepHours:   fptr(3),
			SleepQuality: iptr(1),
			Mood:         iptr(1),
			Energy:       iptr(1),
			Stress:       iptr(5),
			Soreness:     iptr(5),
		}, fitness: &FitnessState{TSB: -40}},
		{name: "everything_good", checkIn: fullCheckIn(), fitness: &FitnessState{TSB: 15}},
		{name: "no_inputs", checkIn: nil, fitness: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreReadiness(cfg, tc.checkIn, tc.fitness)
			if got.Score < 0 || got.Score > 100 {
				t.Fatalf("score out of bounds: %v", got.Score)
			}
		})
	}
}

func TestScoreReadinessDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := ScoreReadiness(cfg, fullCheckIn(), &FitnessState{CTL: 50, ATL: 40, TSB: 10})
	b := ScoreReadiness(cfg, fullCheckIn(), &FitnessState{CTL: 50, ATL: 40, TSB: 10})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same inputs produced different results:\n%+v\n%+v", a, b)
	}
}

func TestScoreReadinessMissingInputsDegradeConfidence(t *testing.T) {
	cfg := DefaultConfig()

	full := ScoreReadiness(cfg, fullCheckIn(), &FitnessState{TSB: 0})
	if full.Confidence != ConfidenceHigh {
		t.Fatalf("full inputs confidence = %q, want %q", full.Confidence, ConfidenceHigh)
	}

	partial := ScoreReadiness(cfg, &CheckInInput{Mood: iptr(4), Energy: iptr(3), Stress: iptr(2)}, nil)
	if partial.Confidence != ConfidenceMedium {
		t.Fatalf("partial inputs confidence = %q, want %q", partial.Confidence, ConfidenceMedium)
	}

	sparse := ScoreReadiness(cfg, &CheckInInput{Mood: iptr(4)}, nil)
	if sparse.Confidence != ConfidenceLow {
		t.Fatalf("sparse inputs confidence = %q, want %q", sparse.Confidence, ConfidenceLow)
	}
	if len(sparse.Factors) != 1 {
		t.Fatalf("absent inputs must be omitted from factors, got %d", len(sparse.Factors))
	}
}

func TestScoreReadinessStatusTiers(t *testing.T) {
	cfg := DefaultConfig()

	bad := ScoreReadiness(cfg, &CheckInInput{
		Mood:         iptr(1),
		Energy:       iptr(1),
		SleepHours:   fptr(4),
		SleepQuality: iptr(1),
		Stress:       iptr(5),
		Soreness:     iptr(5),
	}, &FitnessState{TSB: -30})
	if bad.Status != ReadinessCaution {
		t.Fatalf("depleted inputs status = %q, want %q", bad.Status, ReadinessCaution)
	}

	good := ScoreReadiness(cfg, &CheckInInput{
		Mood:         iptr(5),
		Energy:       iptr(5),
		SleepHours:   fptr(8.5),
		SleepQuality: iptr(5),
		Stress:       iptr(1),
		Soreness:     iptr(1),
	}, &FitnessState{TSB: 15})
	if good.Status != ReadinessStrong {
		t.Fatalf("fresh inputs status = %q, want %q", good.Status, ReadinessStrong)
	}
}

func TestScoreReadinessFactorContributionsSum(t *testing.T) {
	cfg := DefaultConfig()
	got := ScoreReadiness(cfg, fullCheckIn(), &FitnessState{TSB: 15})

	sum := float64(readinessBase)
	for _, f := range got.Factors {
		sum += f.Contribution
	}
	if round1(clamp(sum, 0, 100)) != got.Score {
		t.Fatalf("factor contributions (%v) do not reconstruct the score (%v)", sum, got.Score)
	}
}
