package engine

import (
	"fmt"
	"sort"
	"time"
)

// Fatigue types, most severe explanatory pattern first in the ladder.
const (
	FatigueNone          = "none"
	FatigueMuscular      = "muscular"
	FatigueCNS           = "cns"
	FatiguePsychological = "psychological"
)

// FatigueSignals bundles the diary snapshot with derived training-density
// counts for the classifier.
type FatigueSignals struct {
	CheckIn                 *CheckInInput
	HighIntensityCount      int // completed hard sessions in the last 7 days
	ConsecutiveTrainingDays int
	LowEnergyDays           int // days with energy <= 2 in the last 7
}

type FatigueResult struct {
	Type           string
	Reasons        []string
	Recommendation string
}

// ClassifyFatigue walks a fixed-priority threshold ladder: CNS, then
// psychological, then muscular. Ties go to the more severe pattern, so
// systemic signals out-rank isolated soreness.
func ClassifyFatigue(cfg Config, sig FatigueSignals) FatigueResult {
	var (
		mood, stress, soreness, energy, motivation, mental, physical *int
	)
	if sig.CheckIn != nil {
		mood = sig.CheckIn.Mood
		stress = sig.CheckIn.Stress
		soreness = sig.CheckIn.Soreness
		energy = sig.CheckIn.Energy
		motivation = sig.CheckIn.Motivation
		mental = sig.CheckIn.MentalReadiness
		physical = sig.CheckIn.PhysicalFatigue
	}

	// CNS: systemic depletion under sustained intensity.
	var cnsReasons []string
	if sig.LowEnergyDays >= cfg.FatigueLowEnergyDaysMin && sig.HighIntensityCount >= cfg.FatigueHighIntensityMin {
		cnsReasons = append(cnsReasons,
			"persistent low energy across the last week",
			"several high-intensity sessions in the last 7 days")
	}
	if sig.ConsecutiveTrainingDays >= cfg.FatigueConsecutiveDaysMin && intAtMost(energy, 2) {
		cnsReasons = append(cnsReasons,
			fmt.Sprintf("%d+ consecutive training days with low energy today", cfg.FatigueConsecutiveDaysMin))
	}
	if len(cnsReasons) > 0 {
		return FatigueResult{
			Type:           FatigueCNS,
			Reasons:        cnsReasons,
			Recommendation: "Take 2-3 genuinely easy days; no intensity until energy returns.",
		}
	}

	// Psychological: mood/stress/motivation pattern.
	var psychReasons []string
	if intAtMost(mood, 2) && intAtLeast(stress, 4) {
		psychReasons = append(psychReasons, "low mood combined with high stress today")
	}
	if intAtMost(motivation, 2) && intAtMost(mental, 2) {
		psychReasons = append(psychReasons, "motivation and mental readiness both low")
	}
	if len(psychReasons) > 0 {
		return FatigueResult{
			Type:           FatiguePsychological,
			Reasons:        psychReasons,
			Recommendation: "Swap structured work for something you enjoy; protect sleep and downtime.",
		}
	}

	// Muscular: local soreness or accumulated physical fatigue.
	var muscleReasons []string
	if intAtLeast(soreness, 4) {
		muscleReasons = append(muscleReasons, "high soreness reported today")
	}
	if intAtLeast(physical, 4) && sig.ConsecutiveTrainingDays >= cfg.FatigueBuildupDaysMin {
		muscleReasons = append(muscleReasons, "physical fatigue building over consecutive training days")
	}
	if len(muscleReasons) > 0 {
		return FatigueResult{
			Type:           FatigueMuscular,
			Reasons:        muscleReasons,
			Recommendation: "Keep today easy or off; mobility work and an early night.",
		}
	}

	return FatigueResult{
		Type:           FatigueNone,
		Reasons:        nil,
		Recommendation: "No notable fatigue pattern; train as planned.",
	}
}

// DeriveFatigueSignals computes the classifier's density counts from the raw
// 7-day windows ending at day (inclusive).
func DeriveFatigueSignals(today *CheckInInput, workouts []WorkoutInput, checkIns []CheckInInput, day time.Time) FatigueSignals {
	endDay := day.UTC().Truncate(24 * time.Hour)
	windowStart := endDay.AddDate(0, 0, -6)

	highIntensity := 0
	trainedDays := make(map[string]bool)
	for _, w := range workouts {
		if !w.Completed {
			continue
		}
		d := w.Date.UTC().Truncate(24 * time.Hour)
		if d.After(endDay) {
			continue
		}
		trainedDays[dayKey(d)] = true
		if !d.Before(windowStart) && w.Intensity == IntensityHard {
			highIntensity++
		}
	}

	consecutive := 0
	for d := endDay; trainedDays[dayKey(d)]; d = d.AddDate(0, 0, -1) {
		consecutive++
	}

	lowEnergy := 0
	sorted := append([]CheckInInput(nil), checkIns...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	for _, ci := range sorted {
		d := ci.Date.UTC().Truncate(24 * time.Hour)
		if d.After(endDay) || d.Before(windowStart) {
			continue
		}
		if ci.Energy != nil && *ci.Energy <= 2 {
			lowEnergy++
		}
	}

	return FatigueSignals{
		CheckIn:                 today,
		HighIntensityCount:      highIntensity,
		ConsecutiveTrainingDays: consecutive,
		LowEnergyDays:           lowEnergy,
	}
}

func intAtMost(v *int, max int) bool {
	return v != nil && *v <= max
}

func intAtLeast(v *int, min int) bool {
	return v != nil && *v >= min
}
