package engine

import "fmt"

// Readiness status tiers.
const (
	ReadinessCaution = "caution"
	ReadinessReady   = "ready"
	ReadinessStrong  = "strong"
)

// Confidence tiers, driven by how many expected inputs were present.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// ReadinessFactor is one named, signed contribution to the readiness score.
type ReadinessFactor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Description  string  `json:"description"`
}

type ReadinessResult struct {
	Score      float64
	Status     string
	Confidence string
	Factors    []ReadinessFactor
}

const readinessBase = 50

// readinessExpectedInputs is the denominator for confidence: mood, energy,
// sleep hours, sleep quality, stress, soreness, TSB.
const readinessExpectedInputs = 7

// ScoreReadiness combines diary signals and the load state into a 0-100
// score. Missing inputs contribute nothing and are omitted from the factor
// list; they only lower confidence. Deterministic for fixed inputs.
func ScoreReadiness(cfg Config, checkIn *CheckInInput, fitness *FitnessState) ReadinessResult {
	score := float64(readinessBase)
	var factors []ReadinessFactor
	present := 0

	addFactor := func(name string, contribution float64, description string) {
		present++
		score += contribution
		factors = append(factors, ReadinessFactor{
			Name:         name,
			Contribution: round1(contribution),
			Description:  description,
		})
	}

	if checkIn != nil {
		if checkIn.Mood != nil {
			m := clampInt(*checkIn.Mood, 1, 5)
			addFactor("mood", float64(m-3)*6, describeScale("mood", m))
		}
		if checkIn.Energy != nil {
			e := clampInt(*checkIn.Energy, 1, 5)
			addFactor("energy", float64(e-3)*6, describeScale("energy", e))
		}
		if checkIn.SleepHours != nil {
			h := *checkIn.SleepHours
			var c float64
			switch {
			case h >= 8:
				c = 8
			case h >= 7:
				c = 4
			case h >= 6:
				c = 0
			case h >= 5:
				c = -10
			default:
				c = -15
			}
			addFactor("sleep_duration", c, fmt.Sprintf("%.1f hours of sleep", h))
		}
		if checkIn.SleepQuality != nil {
			q := clampInt(*checkIn.SleepQuality, 1, 5)
			addFactor("sleep_quality", float64(q-3)*5, describeScale("sleep quality", q))
		}
		if checkIn.Stress != nil {
			s := clampInt(*checkIn.Stress, 1, 5)
			addFactor("stress", float64(3-s)*5, describeScale("stress", s))
		}
		if checkIn.Soreness != nil {
			s := clampInt(*checkIn.Soreness, 1, 5)
			addFactor("soreness", float64(3-s)*4, describeScale("soreness", s))
		}
	}

	if fitness != nil {
		var c float64
		switch {
		case fitness.TSB > 10:
			c = 8
		case fitness.TSB < -20:
			c = -15
		case fitness.TSB < -10:
			c = -8
		}
		addFactor("training_stress_balance", c, fmt.Sprintf("TSB at %.1f", fitness.TSB))
	}

	score = clamp(score, 0, 100)
	return ReadinessResult{
		Score:      round1(score),
		Status:     readinessStatus(cfg, score),
		Confidence: readinessConfidence(present),
		Factors:    factors,
	}
}

func readinessStatus(cfg Config, score float64) string {
	switch {
	case score < cfg.ReadinessCautionMax:
		return ReadinessCaution
	case score < cfg.ReadinessReadyMax:
		return ReadinessReady
	default:
		return ReadinessStrong
	}
}

func readinessConfidence(present int) string {
	switch {
	case present >= readinessExpectedInputs-1:
		return ConfidenceHigh
	case present >= 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func describeScale(name string, value int) string {
	var level string
	switch {
	case value <= 1:
		level = "very low"
	case value == 2:
		level = "low"
	case value == 3:
		level = "moderate"
	case value == 4:
		level = "high"
	default:
		level = "very high"
	}
	return fmt.Sprintf("%s reported as %s (%d/5)", name, level, value)
}
