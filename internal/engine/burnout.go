package engine

import (
	"fmt"
	"sort"
	"time"
)

// Burnout status tiers.
const (
	BurnoutLow      = "LOW"
	BurnoutModerate = "MODERATE"
	BurnoutHigh     = "HIGH"
)

// Suggested actions. Both are explicit commands the caller must opt into;
// scoring never applies them.
const (
	ActionSimplifyWeek       = "simplify_week"
	ActionRecoveryMicrocycle = "recovery_microcycle"
)

// Driver categories select the recommendation wording.
const (
	driverCategoryMood     = "mood"
	driverCategorySleep    = "sleep"
	driverCategoryStress   = "stress"
	driverCategoryPhysical = "physical"
	driverCategoryTraining = "training"
)

// Fixed point weights for each driver. The tier cut lines live in Config;
// the weights themselves are part of the scoring contract.
const (
	weightLowMoodToday        = 25
	weightModerateMoodToday   = 10
	weightPersistentLowMood   = 20
	weightHighStressToday     = 15
	weightPoorSleepToday      = 15
	weightPersistentPoorSleep = 15
	weightHighSorenessToday   = 10
	weightPersistentSoreness  = 10
	weightCNSOrPsychFatigue   = 20
	weightFragileCompliance   = 15
	weightSlippingCompliance  = 8
	weightLowReadiness        = 10
)

// persistenceMinDays is how many of the last 7 days a signal must fire to
// count as persistent.
const persistenceMinDays = 3

type BurnoutDriver struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

type BurnoutInput struct {
	Today            *CheckInInput
	History          []CheckInInput // last 7 days, today included
	FatigueType      string
	ComplianceStatus string
	ReadinessScore   *float64
}

type BurnoutResult struct {
	Risk             float64
	Status           string
	Drivers          []BurnoutDriver // top 4 by weight
	Recommendation   string
	SuggestedActions []string
}

// ScoreBurnout adds a fixed point value for every triggered driver. The
// uncapped sum determines the tier; the reported risk is clamped to 100.
// Adding a driver can never lower the total, so the score is monotonic.
func ScoreBurnout(cfg Config, in BurnoutInput) BurnoutResult {
	var drivers []BurnoutDriver
	add := func(name string, weight float64, description, category string) {
		drivers = append(drivers, BurnoutDriver{
			Name:        name,
			Weight:      weight,
			Description: description,
			Category:    category,
		})
	}

	if in.Today != nil {
		switch {
		case intAtMost(in.Today.Mood, 2):
			add("low_mood", weightLowMoodToday, "mood at 2/5 or below today", driverCategoryMood)
		case intAtMost(in.Today.Mood, 3):
			add("moderate_mood", weightModerateMoodToday, "mood at 3/5 today", driverCategoryMood)
		}
		if intAtLeast(in.Today.Stress, 4) {
			add("high_stress", weightHighStressToday, "stress at 4/5 or above today", driverCategoryStress)
		}
		if intAtMost(in.Today.SleepQuality, 2) {
			add("poor_sleep", weightPoorSleepToday, "sleep quality at 2/5 or below today", driverCategorySleep)
		}
		if intAtLeast(in.Today.Soreness, 4) {
			add("high_soreness", weightHighSorenessToday, "soreness at 4/5 or above today", driverCategoryPhysical)
		}
	}

	if countDays(in.History, func(ci CheckInInput) bool { return intAtMost(ci.Mood, 2) }) >= persistenceMinDays {
		add("persistent_low_mood", weightPersistentLowMood, "low mood on 3+ of the last 7 days", driverCategoryMood)
	}
	if countDays(in.History, func(ci CheckInInput) bool { return intAtMost(ci.SleepQuality, 2) }) >= persistenceMinDays {
		add("persistent_poor_sleep", weightPersistentPoorSleep, "poor sleep on 3+ of the last 7 days", driverCategorySleep)
	}
	if countDays(in.History, func(ci CheckInInput) bool { return intAtLeast(ci.Soreness, 4) }) >= persistenceMinDays {
		add("persistent_soreness", weightPersistentSoreness, "high soreness on 3+ of the last 7 days", driverCategoryPhysical)
	}

	if in.FatigueType == FatigueCNS || in.FatigueType == FatiguePsychological {
		add("systemic_fatigue", weightCNSOrPsychFatigue, "CNS or psychological fatigue pattern detected", driverCategoryPhysical)
	}
	switch in.ComplianceStatus {
	case ComplianceFragile:
		add("fragile_compliance", weightFragileCompliance, "plan compliance has become fragile", driverCategoryTraining)
	case ComplianceSlipping:
		add("slipping_compliance", weightSlippingCompliance, "plan compliance is slipping", driverCategoryTraining)
	}
	if in.ReadinessScore != nil && *in.ReadinessScore < cfg.BurnoutLowReadinessMax {
		add("low_readiness", weightLowReadiness,
			fmt.Sprintf("readiness score below %.0f", cfg.BurnoutLowReadinessMax), driverCategoryTraining)
	}

	var total float64
	for _, d := range drivers {
		total += d.Weight
	}

	status := burnoutStatus(cfg, total)
	sort.SliceStable(drivers, func(i, j int) bool { return drivers[i].Weight > drivers[j].Weight })
	top := drivers
	if len(top) > 4 {
		top = top[:4]
	}

	topCategory := ""
	if len(top) > 0 {
		topCategory = top[0].Category
	}

	return BurnoutResult{
		Risk:             clamp(total, 0, 100),
		Status:           status,
		Drivers:          top,
		Recommendation:   burnoutRecommendation(status, topCategory),
		SuggestedActions: suggestedActions(status),
	}
}

func burnoutStatus(cfg Config, total float64) string {
	switch {
	case total >= cfg.BurnoutHighMin:
		return BurnoutHigh
	case total >= cfg.BurnoutModerateMin:
		return BurnoutModerate
	default:
		return BurnoutLow
	}
}

// burnoutRecommendations is a (status, top-driver category) lookup so the
// scoring output stays free of presentation branching.
var burnoutRecommendations = map[string]map[string]string{
	BurnoutHigh: {
		driverCategoryMood:     "Take a full recovery break this week and reconnect with why you train.",
		driverCategorySleep:    "Prioritize rest above everything; training waits until sleep recovers.",
		driverCategoryStress:   "Cut training to the minimum and reduce outside stressors where you can.",
		driverCategoryPhysical: "Back off hard: a recovery week now prevents a forced one later.",
		driverCategoryTraining: "Reset the plan to something you can actually hit, then rebuild.",
	},
	BurnoutModerate: {
		driverCategoryMood:     "Keep sessions short and enjoyable until mood lifts.",
		driverCategorySleep:    "Trim evening sessions and bank extra sleep this week.",
		driverCategoryStress:   "Keep sessions light while life stress is high.",
		driverCategoryPhysical: "Swap intensity for easy volume for a few days.",
		driverCategoryTraining: "Simplify the week so compliance becomes easy again.",
	},
}

const (
	burnoutHighDefault     = "Step back from structured training and recover fully."
	burnoutModerateDefault = "Ease off this week and watch the trend."
	burnoutLowDefault      = "Risk is low; stay the course."
)

func burnoutRecommendation(status, topCategory string) string {
	switch status {
	case BurnoutHigh:
		if msg, ok := burnoutRecommendations[BurnoutHigh][topCategory]; ok {
			return msg
		}
		return burnoutHighDefault
	case BurnoutModerate:
		if msg, ok := burnoutRecommendations[BurnoutModerate][topCategory]; ok {
			return msg
		}
		return burnoutModerateDefault
	default:
		return burnoutLowDefault
	}
}

func suggestedActions(status string) []string {
	switch status {
	case BurnoutHigh:
		return []string{ActionSimplifyWeek, ActionRecoveryMicrocycle}
	case BurnoutModerate:
		return []string{ActionSimplifyWeek}
	default:
		return nil
	}
}

func countDays(history []CheckInInput, match func(CheckInInput) bool) int {
	seen := make(map[string]bool)
	n := 0
	for _, ci := range history {
		key := dayKey(ci.Date)
		if seen[key] {
			continue
		}
		if match(ci) {
			seen[key] = true
			n++
		}
	}
	return n
}

// SimplifySessions is the "simplify" transform: cut duration by roughly 30%
// and drop intensity one tier. Pure; the caller persists the result.
func SimplifySessions(sessions []PlannedSession) []PlannedSession {
	out := make([]PlannedSession, 0, len(sessions))
	for _, s := range sessions {
		s.DurationMinutes = int(float64(s.DurationMinutes) * 0.7)
		s.Intensity = easeIntensity(s.Intensity)
		s.TSS = nil // re-estimated from the reduced duration and intensity
		out = append(out, s)
	}
	return out
}

func easeIntensity(intensity string) string {
	switch intensity {
	case IntensityHard:
		return IntensityModerate
	default:
		return IntensityEasy
	}
}

// recoveryTemplates maps a discipline to its easy-session prescription.
var recoveryTemplates = map[string]struct {
	title    string
	duration int
}{
	"run":  {"Easy recovery run", 30},
	"ride": {"Easy recovery spin", 40},
	"swim": {"Easy technique swim", 30},
}

// recoverySessionDays are the week offsets that carry an easy session; the
// remaining days get mobility or rest.
var recoverySessionDays = []int{0, 2, 4}

// BuildRecoveryMicrocycle produces the fixed recovery-week template: three
// easy sport-specific sessions on week days 0, 2 and 4 plus mobility on the
// days between. It replaces whatever was planned; persisting it is a
// destructive, opt-in command.
func BuildRecoveryMicrocycle(weekStart time.Time, discipline string) []PlannedSession {
	tmpl, ok := recoveryTemplates[discipline]
	if !ok {
		tmpl = recoveryTemplates["run"]
	}
	start := weekStart.UTC().Truncate(24 * time.Hour)

	var sessions []PlannedSession
	for _, offset := range recoverySessionDays {
		sessions = append(sessions, PlannedSession{
			Date:            start.AddDate(0, 0, offset),
			Discipline:      discipline,
			DurationMinutes: tmpl.duration,
			Intensity:       IntensityEasy,
			Title:           tmpl.title,
		})
	}
	for _, offset := range []int{1, 3} {
		sessions = append(sessions, PlannedSession{
			Date:            start.AddDate(0, 0, offset),
			Discipline:      "mobility",
			DurationMinutes: 20,
			Intensity:       IntensityEasy,
			Title:           "Mobility and stretching",
		})
	}
	return sessions
}
