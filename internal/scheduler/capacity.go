package scheduler

type CapacityBand string

const (
	BandFullAcceleration  CapacityBand = "full_acceleration"
	BandBalancedRecovery  CapacityBand = "balanced_recovery"
	BandCriticalStabilize CapacityBand = "critical_stabilize"
	BandEmergencyHalt     CapacityBand = "emergency_halt"
)

const (
	StrategyFullAcceleration  = "Full Acceleration: Tackle high-weight, hard tasks."
	StrategyBalancedRecovery  = "Balanced Recovery: Mix of hard and easy tasks."
	StrategyCriticalStabilize = "Critical Stabilize: Only high-urgency tasks or quick wins."
	StrategyEmergencyHalt     = "Emergency Halt: Just one small task to maintain habit."
)

type CapacityResult struct {
	Band         CapacityBand
	Factor       float64
	Strategy     string
	AllowedHours float64
}

// Capacity maps a stress level and the hours a student reported into the
// hours the plan may fill. Bands are inclusive and checked top-down.
// availableHours is trusted to be within 0-24.
func Capacity(stressLevel int, availableHours float64) CapacityResult {
	var r CapacityResult
	switch {
	case stressLevel <= 3:
		r = CapacityResult{Band: BandFullAcceleration, Factor: 1.0, Strategy: StrategyFullAcceleration}
	case stressLevel <= 6:
		r = CapacityResult{Band: BandBalancedRecovery, Factor: 0.8, Strategy: StrategyBalancedRecovery}
	case stressLevel <= 8:
		r = CapacityResult{Band: BandCriticalStabilize, Factor: 0.5, Strategy: StrategyCriticalStabilize}
	default:
		r = CapacityResult{Band: BandEmergencyHalt, Factor: 0.2, Strategy: StrategyEmergencyHalt}
	}
	r.AllowedHours = availableHours * r.Factor
	return r
}
