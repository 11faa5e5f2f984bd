package engine

// Config carries the tunable thresholds for every scoring function. The cut
// lines are product-tunable, injected from main rather than hard-coded at
// call sites so tests can exercise boundary values.
type Config struct {
	// Ramp-rate bands, in signed percent week over week.
	RampStableMaxPercent  float64
	RampSpikingMinPercent float64

	// Readiness status tiers.
	ReadinessCautionMax float64
	ReadinessReadyMax   float64

	// Compliance status tiers, in percent.
	ComplianceStrongMin   float64
	ComplianceSlippingMin float64

	// Burnout risk tiers.
	BurnoutModerateMin float64
	BurnoutHighMin     float64

	// Readiness below this contributes a burnout driver.
	BurnoutLowReadinessMax float64

	// Fatigue ladder density thresholds over the trailing 7-day window.
	FatigueHighIntensityMin   int // hard sessions feeding the CNS pattern
	FatigueLowEnergyDaysMin   int // low-energy days feeding the CNS pattern
	FatigueConsecutiveDaysMin int // training-day streak for the CNS pattern
	FatigueBuildupDaysMin     int // training-day streak for the muscular pattern

	// Exponential smoothing time constants, in days.
	CTLDays float64
	ATLDays float64

	// Simulation duration bounds, in weeks.
	SimMinWeeks int
	SimMaxWeeks int

	// Simulation summary cut lines.
	SimSafePeakRiskMax float64
	SimSafeMaxWarnings int
	SimHighPeakRiskMin float64
	SimHighMinWarnings int

	// Baseline used when no history exists.
	DefaultBaseline Baseline
}

// Baseline is the simulator's initial state, pulled from recent real data or
// defaulted when the user has no history.
type Baseline struct {
	CTL          float64
	ATL          float64
	TSB          float64
	Readiness    float64
	BurnoutRisk  float64
	IdentityMode string
}

func DefaultConfig() Config {
	return Config{
		RampStableMaxPercent:   10,
		RampSpikingMinPercent:  30,
		ReadinessCautionMax:    40,
		ReadinessReadyMax:      70,
		ComplianceStrongMin:    80,
		ComplianceSlippingMin:  50,
		BurnoutModerateMin:     30,
		BurnoutHighMin:         50,
		BurnoutLowReadinessMax: 40,

		FatigueHighIntensityMin:   3,
		FatigueLowEnergyDaysMin:   3,
		FatigueConsecutiveDaysMin: 6,
		FatigueBuildupDaysMin:     3,
		CTLDays:                42,
		ATLDays:                7,
		SimMinWeeks:            2,
		SimMaxWeeks:            12,
		SimSafePeakRiskMax:     40,
		SimSafeMaxWarnings:     2,
		SimHighPeakRiskMin:     60,
		SimHighMinWarnings:     8,
		DefaultBaseline: Baseline{
			CTL:          50,
			ATL:          40,
			TSB:          10,
			Readiness:    65,
			BurnoutRisk:  20,
			IdentityMode: "competitive",
		},
	}
}
