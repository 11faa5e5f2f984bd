package engine

import (
	"strings"
	"testing"
)

func TestClassifyFatigueLadder(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name string
		sig  FatigueSignals
		want string
	}{
		{
			name: "cns_from_density_and_energy",
			sig: FatigueSignals{
				CheckIn:            &CheckInInput{Energy: iptr(2), Soreness: iptr(5)},
				HighIntensityCount: 3,
				LowEnergyDays:      3,
			},
			want: FatigueCNS,
		},
		{
			name: "cns_from_long_streak",
			sig: FatigueSignals{
				CheckIn:                 &CheckInInput{Energy: iptr(1)},
				ConsecutiveTrainingDays: 6,
			},
			want: FatigueCNS,
		},
		{
			name: "psychological_outranks_soreness",
			sig: FatigueSignals{
				CheckIn: &CheckInInput{Mood: iptr(1), Stress: iptr(5), Soreness: iptr(5)},
			},
			want: FatiguePsychological,
		},
		{
			name: "psychological_from_motivation",
			sig: FatigueSignals{
				CheckIn: &CheckInInput{Motivation: iptr(1), MentalReadiness: iptr(2)},
			},
			want: FatiguePsychological,
		},
		{
			name: "muscular_from_soreness",
			sig: FatigueSignals{
				CheckIn: &CheckInInput{Soreness: iptr(4), Mood: iptr(4)},
			},
			want: FatigueMuscular,
		},
		{
			name: "muscular_from_accumulation",
			sig: FatigueSignals{
				CheckIn:                 &CheckInInput{PhysicalFatigue: iptr(4)},
				ConsecutiveTrainingDays: 3,
			},
			want: FatigueMuscular,
		},
		{
			name: "none_when_fresh",
			sig: FatigueSignals{
				CheckIn: &CheckInInput{Mood: iptr(4), Energy: iptr(4), Soreness: iptr(2)},
			},
			want: FatigueNone,
		},
		{
			name: "none_without_checkin",
			sig:  FatigueSignals{},
			want: FatigueNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyFatigue(cfg, tc.sig)
			if got.Type != tc.want {
				t.Fatalf("type=%q, want %q (reasons: %v)", got.Type, tc.want, got.Reasons)
			}
			if got.Recommendation == "" {
				t.Fatalf("recommendation must never be empty")
			}
			if tc.want != FatigueNone && len(got.Reasons) == 0 {
				t.Fatalf("non-none classification must carry reasons")
			}
		})
	}
}

func TestClassifyFatigueThresholdsFollowConfig(t *testing.T) {
	density := FatigueSignals{
		CheckIn:            &CheckInInput{Energy: iptr(2)},
		HighIntensityCount: 3,
		LowEnergyDays:      3,
	}
	if got := ClassifyFatigue(DefaultConfig(), density); got.Type != FatigueCNS {
		t.Fatalf("default thresholds: type=%q, want %q", got.Type, FatigueCNS)
	}
	strict := DefaultConfig()
	strict.FatigueHighIntensityMin = 5
	if got := ClassifyFatigue(strict, density); got.Type == FatigueCNS {
		t.Fatalf("3 hard sessions must not read as cns once the bar is 5")
	}

	streak := FatigueSignals{
		CheckIn:                 &CheckInInput{Energy: iptr(1)},
		ConsecutiveTrainingDays: 4,
	}
	if got := ClassifyFatigue(DefaultConfig(), streak); got.Type == FatigueCNS {
		t.Fatalf("a 4-day streak must not read as cns at the default threshold")
	}
	relaxed := DefaultConfig()
	relaxed.FatigueConsecutiveDaysMin = 4
	got := ClassifyFatigue(relaxed, streak)
	if got.Type != FatigueCNS {
		t.Fatalf("lowered streak threshold: type=%q, want %q", got.Type, FatigueCNS)
	}
	if len(got.Reasons) == 0 || !strings.Contains(got.Reasons[0], "4+") {
		t.Fatalf("streak reason %v does not carry the configured threshold", got.Reasons)
	}
}

func TestDeriveFatigueSignals(t *testing.T) {
	var workouts []WorkoutInput
	// Four consecutive training days ending at the window end, three hard.
	for i := 0; i < 4; i++ {
		w := completedWorkout(-i, 80)
		if i < 3 {
			w.Intensity = IntensityHard
		}
		workouts = append(workouts, w)
	}
	// A hard session outside the 7-day window must not count.
	old := completedWorkout(-10, 80)
	old.Intensity = IntensityHard
	workouts = append(workouts, old)

	var checkIns []CheckInInput
	for i := 0; i < 3; i++ {
		checkIns = append(checkIns, CheckInInput{Date: day(-i), Energy: iptr(2)})
	}

	sig := DeriveFatigueSignals(nil, workouts, checkIns, day(0))
	if sig.HighIntensityCount != 3 {
		t.Fatalf("high intensity count = %d, want 3", sig.HighIntensityCount)
	}
	if sig.ConsecutiveTrainingDays != 4 {
		t.Fatalf("consecutive days = %d, want 4", sig.ConsecutiveTrainingDays)
	}
	if sig.LowEnergyDays != 3 {
		t.Fatalf("low energy days = %d, want 3", sig.LowEnergyDays)
	}
}
