package engine

import (
	"fmt"
	"sort"
	"time"
)

// Guardrail warning types.
const (
	WarnRampRateExceeded  = "ramp_rate_exceeded"
	WarnBackToBackHard    = "back_to_back_hard"
	WarnInsufficientRest  = "insufficient_rest"
	WarnNoPlannedSessions = "no_planned_sessions"
)

type GuardrailWarning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type GuardrailResult struct {
	RiskScore       float64
	Warnings        []GuardrailWarning
	PlannedLoad     float64
	RampRatePercent float64
}

// Guardrail risk contributions per violation.
const (
	riskRampSpiking      = 40
	riskRampRising       = 15
	riskBackToBackHard   = 20
	riskInsufficientRest = 20
)

// minRestDaysPerWeek is the floor the rest-day guardrail enforces.
const minRestDaysPerWeek = 1

// CheckGuardrails validates a proposed week of planned sessions against the
// previous week's completed load and the recent intensity pattern. Pure
// validation: it never mutates the plan; callers decide whether to deload.
func CheckGuardrails(cfg Config, planned []PlannedSession, previousWeekLoad float64, recentIntensities []string) GuardrailResult {
	var warnings []GuardrailWarning
	var risk float64

	plannedLoad := 0.0
	for _, s := range planned {
		plannedLoad += EffectiveTSS(s.DurationMinutes, s.TSS, s.Intensity)
	}

	if len(planned) == 0 {
		warnings = append(warnings, GuardrailWarning{
			Type:    WarnNoPlannedSessions,
			Message: "the proposed week has no planned sessions",
		})
		return GuardrailResult{RiskScore: 0, Warnings: warnings}
	}

	var ramp float64
	if previousWeekLoad > 0 {
		ramp = (plannedLoad - previousWeekLoad) / previousWeekLoad * 100
	}
	switch {
	case previousWeekLoad > 0 && ramp > cfg.RampSpikingMinPercent:
		risk += riskRampSpiking
		warnings = append(warnings, GuardrailWarning{
			Type: WarnRampRateExceeded,
			Message: fmt.Sprintf("planned load %.0f TSS is a %.0f%% jump on last week's %.0f TSS (limit %.0f%%)",
				plannedLoad, ramp, previousWeekLoad, cfg.RampSpikingMinPercent),
		})
	case previousWeekLoad > 0 && ramp >= cfg.RampStableMaxPercent:
		risk += riskRampRising
	}

	ordered := append([]PlannedSession(nil), planned...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	backToBack := 0
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		gapDays := int(cur.Date.UTC().Truncate(24*time.Hour).Sub(prev.Date.UTC().Truncate(24*time.Hour)).Hours() / 24)
		if gapDays == 1 && prev.Intensity == IntensityHard && cur.Intensity == IntensityHard {
			backToBack++
		}
	}
	// A hard opener right after a hard final session last week counts too.
	if len(recentIntensities) > 0 &&
		recentIntensities[len(recentIntensities)-1] == IntensityHard &&
		ordered[0].Intensity == IntensityHard {
		backToBack++
	}
	if backToBack > 0 {
		risk += float64(backToBack) * riskBackToBackHard
		warnings = append(warnings, GuardrailWarning{
			Type:    WarnBackToBackHard,
			Message: fmt.Sprintf("%d pair(s) of hard sessions on consecutive days", backToBack),
		})
	}

	sessionDays := make(map[string]bool)
	for _, s := range ordered {
		sessionDays[dayKey(s.Date)] = true
	}
	restDays := 7 - len(sessionDays)
	if restDays < minRestDaysPerWeek {
		risk += riskInsufficientRest
		warnings = append(warnings, GuardrailWarning{
			Type:    WarnInsufficientRest,
			Message: "fewer than one full rest day in the proposed week",
		})
	}

	return GuardrailResult{
		RiskScore:       clamp(risk, 0, 100),
		Warnings:        warnings,
		PlannedLoad:     round1(plannedLoad),
		RampRatePercent: round1(ramp),
	}
}

// DeloadWeek reduces a planned week's volume by the given fraction and drops
// every session's intensity one tier. Pure transform; callers opt in.
func DeloadWeek(sessions []PlannedSession, reduction float64) []PlannedSession {
	reduction = clamp(reduction, 0, 0.6)
	out := make([]PlannedSession, 0, len(sessions))
	for _, s := range sessions {
		s.DurationMinutes = int(float64(s.DurationMinutes) * (1 - reduction))
		s.Intensity = easeIntensity(s.Intensity)
		s.TSS = nil
		out = append(out, s)
	}
	return out
}
