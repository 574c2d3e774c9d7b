package models

// DispatchRules is the business's dispatch configuration. Mode selects the
// weight vector used by the matching scorer.
type DispatchRules struct {
	Mode             string `json:"mode,omitempty"`
	MaxDistanceMiles int    `json:"maxDistanceMiles,omitempty"`
}

// Business is the tenant profile the engine schedules against. Hours maps
// lowercase full weekday names ("monday") to "HH:MM-HH:MM" ranges; a missing
// day means the business is closed that day. Multipliers left at zero fall
// back to the engine defaults.
type Business struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Industry            string              `json:"industry,omitempty"`
	BusinessHours       map[string][]string `json:"businessHours"`
	PeakWindows         []string            `json:"peakWindows,omitempty"` // "08:00-10:00"
	WeekendMultiplier   float64             `json:"weekendMultiplier,omitempty"`
	PeakMultiplier      float64             `json:"peakMultiplier,omitempty"`
	EmergencyMultiplier float64             `json:"emergencyMultiplier,omitempty"`
	SameDayMultiplier   float64             `json:"sameDayMultiplier,omitempty"`
	BaseRates           map[string]float64  `json:"baseRates,omitempty"` // service type -> base price
	DefaultBaseRate     float64             `json:"defaultBaseRate,omitempty"`
	DispatchRules       DispatchRules       `json:"dispatchRules,omitempty"`
}

// BaseRateFor returns the base price for a service type, falling back to the
// business default.
func (b Business) BaseRateFor(serviceType string) float64 {
	if rate, ok := b.BaseRates[serviceType]; ok {
		return rate
	}
	return b.DefaultBaseRate
}

// CustomerLocation is the customer's position for distance scoring.
type CustomerLocation struct {
	ZipCode string `json:"zipCode,omitempty"`
}

// Customer identifies the caller for the final calendar write.
type Customer struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Zip         string `json:"zip,omitempty"`
}
