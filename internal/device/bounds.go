package device

import "anti_bark/internal/models"

const (
	MinFrequencyFloorKHz   uint32 = 15
	MaxFrequencyCeilingKHz uint32 = 65
	FrequencyStepKHz       uint32 = 5

	MinTimeIntervalSeconds     uint32 = 1
	DefaultIntervalCeilingSecs uint32 = 30

	// HumanTestToneHz is the audible liveness cue.
	HumanTestToneHz uint32 = 440
)

// FactoryDefaults returns the hard-coded bounds restored on first boot and on factory restore.
func FactoryDefaults() models.Bounds {
	return models.Bounds{
		LowestKHz:       MinFrequencyFloorKHz + FrequencyStepKHz,
		HighestKHz:      MaxFrequencyCeilingKHz,
		IntervalSeconds: DefaultIntervalCeilingSecs,
	}
}

// ValidBounds reports whether b satisfies
// FLOOR+STEP <= lowest < highest <= CEILING and interval >= MinTimeIntervalSeconds.
func ValidBounds(b models.Bounds) bool {
	return b.LowestKHz >= MinFrequencyFloorKHz+FrequencyStepKHz &&
		b.LowestKHz < b.HighestKHz &&
		b.HighestKHz <= MaxFrequencyCeilingKHz &&
		b.IntervalSeconds >= MinTimeIntervalSeconds
}

// RaiseLowest returns lowest+STEP unless it would reach highest.
func RaiseLowest(b models.Bounds) (uint32, bool) {
	next := b.LowestKHz + FrequencyStepKHz
	if next >= b.HighestKHz {
		return b.LowestKHz, false
	}
	return next, true
}

// LowerLowest returns lowest-STEP unless it would drop below FLOOR+STEP.
func LowerLowest(b models.Bounds) (uint32, bool) {
	if b.LowestKHz < MinFrequencyFloorKHz+2*FrequencyStepKHz {
		return b.LowestKHz, false
	}
	return b.LowestKHz - FrequencyStepKHz, true
}

// RaiseHighest returns highest+STEP unless it would exceed the ceiling.
func RaiseHighest(b models.Bounds) (uint32, bool) {
	next := b.HighestKHz + FrequencyStepKHz
	if next > MaxFrequencyCeilingKHz {
		return b.HighestKHz, false
	}
	return next, true
}

// LowerHighest returns highest-STEP unless it would reach lowest.
func LowerHighest(b models.Bounds) (uint32, bool) {
	if b.HighestKHz <= b.LowestKHz+FrequencyStepKHz {
		return b.HighestKHz, false
	}
	return b.HighestKHz - FrequencyStepKHz, true
}

// IntervalForDigit maps digit keys to interval ceilings: 0 is the default, d is d*10 seconds.
func IntervalForDigit(d uint32) uint32 {
	if d == 0 {
		return DefaultIntervalCeilingSecs
	}
	return d * 10
}
