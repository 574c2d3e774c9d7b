package dispatch

import (
	"fmt"
	"math"
)

// Mode is the named weighting policy used to rank technicians for a job.
type Mode string

const (
	ModeRoundRobin        Mode = "round_robin"
	ModeSkillBased        Mode = "skill_based"
	ModeLocationBased     Mode = "location_based"
	ModeAvailabilityBased Mode = "availability"
	ModeManual            Mode = "manual"
	ModeEmergency         Mode = "emergency"
	ModePreferredFirst    Mode = "preferred_first"
)

// WeightVector holds the four component weights for one dispatch mode.
// Every vector must sum to 1.0 so a technician with perfect sub-scores
// composites to exactly 1.0.
type WeightVector struct {
	Skill        float64
	Distance     float64
	Availability float64
	Workload     float64
}

// Sum returns the total of all four weights.
func (w WeightVector) Sum() float64 {
	return w.Skill + w.Distance + w.Availability + w.Workload
}

var modeWeights = map[Mode]WeightVector{
	ModeSkillBased:        {Skill: 0.5, Distance: 0.2, Availability: 0.2, Workload: 0.1},
	ModeLocationBased:     {Skill: 0.2, Distance: 0.5, Availability: 0.2, Workload: 0.1},
	ModeEmergency:         {Skill: 0.1, Distance: 0.3, Availability: 0.5, Workload: 0.1},
	ModeAvailabilityBased: {Skill: 0.2, Distance: 0.2, Availability: 0.4, Workload: 0.2},
	ModeRoundRobin:        {Skill: 0.1, Distance: 0.1, Availability: 0.1, Workload: 0.7},
	ModePreferredFirst:    {Skill: 0.4, Distance: 0.2, Availability: 0.2, Workload: 0.2},
}

// ParseMode resolves a business's configured mode string, defaulting to
// skill-based for anything unrecognized.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeRoundRobin, ModeSkillBased, ModeLocationBased, ModeAvailabilityBased,
		ModeManual, ModeEmergency, ModePreferredFirst:
		return Mode(s)
	default:
		return ModeSkillBased
	}
}

// validateWeights checks every mode's vector sums to 1.0. Run once at
// construction so per-call scoring never has to re-verify.
func validateWeights() error {
	for mode, w := range modeWeights {
		if math.Abs(w.Sum()-1.0) > 1e-9 {
			return fmt.Errorf("dispatch mode %q weights sum to %.4f, want 1.0", mode, w.Sum())
		}
	}
	return nil
}
