package engine

import (
	"fmt"
	"time"
)

// Compliance status tiers.
const (
	ComplianceStrong   = "strong"
	ComplianceSlipping = "slipping"
	ComplianceFragile  = "fragile"
)

type ComplianceResult struct {
	CompletionRate float64 // percent of planned sessions completed
	Planned        int
	Completed      int
	Streak         int
	Status         string
	Reasons        []string
}

// complianceWindowDays is the rolling window the tracker looks back over.
const complianceWindowDays = 14

// TrackCompliance compares planned vs completed sessions over the 14 days
// ending at windowEnd. A day with nothing planned neither breaks nor extends
// the streak; a day with a planned-but-incomplete session breaks it.
func TrackCompliance(cfg Config, workouts []WorkoutInput, windowEnd time.Time) ComplianceResult {
	endDay := windowEnd.UTC().Truncate(24 * time.Hour)
	windowStart := endDay.AddDate(0, 0, -(complianceWindowDays - 1))

	type dayTally struct {
		planned   int
		completed int
	}
	days := make(map[string]*dayTally)
	planned, completed := 0, 0

	for _, w := range workouts {
		if !w.Planned {
			continue
		}
		d := w.Date.UTC().Truncate(24 * time.Hour)
		if d.After(endDay) || d.Before(windowStart) {
			continue
		}
		key := dayKey(d)
		if days[key] == nil {
			days[key] = &dayTally{}
		}
		days[key].planned++
		planned++
		if w.Completed {
			days[key].completed++
			completed++
		}
	}

	rate := 100.0
	if planned > 0 {
		rate = float64(completed) / float64(planned) * 100
	}

	streak := 0
	for d := endDay; !d.Before(windowStart); d = d.AddDate(0, 0, -1) {
		tally := days[dayKey(d)]
		if tally == nil || tally.planned == 0 {
			continue
		}
		if tally.completed < tally.planned {
			break
		}
		streak++
	}

	status := complianceStatus(cfg, rate)
	return ComplianceResult{
		CompletionRate: round1(rate),
		Planned:        planned,
		Completed:      completed,
		Streak:         streak,
		Status:         status,
		Reasons:        complianceReasons(planned, completed, streak, status),
	}
}

func complianceStatus(cfg Config, rate float64) string {
	switch {
	case rate >= cfg.ComplianceStrongMin:
		return ComplianceStrong
	case rate >= cfg.ComplianceSlippingMin:
		return ComplianceSlipping
	default:
		return ComplianceFragile
	}
}

func complianceReasons(planned, completed, streak int, status string) []string {
	var reasons []string
	if planned == 0 {
		return []string{"no sessions planned in the last 14 days"}
	}
	missed := planned - completed
	if missed > 0 {
		reasons = append(reasons, fmt.Sprintf("%d of %d planned sessions missed", missed, planned))
	} else {
		reasons = append(reasons, fmt.Sprintf("all %d planned sessions completed", planned))
	}
	if streak >= 5 {
		reasons = append(reasons, fmt.Sprintf("%d-day compliance streak", streak))
	}
	if status == ComplianceFragile {
		reasons = append(reasons, "completion rate well below target")
	}
	if len(reasons) > 4 {
		reasons = reasons[:4]
	}
	return reasons
}
