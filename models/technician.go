package models

// Technician is one roster entry supplied by the CRM side of the product.
// The engine treats it as a read-only snapshot: availability and job counts
// can change between calls, so nothing here is ever cached.
type Technician struct {
	ID                 string              `json:"id" bson:"id"`
	BusinessID         string              `json:"businessId,omitempty" bson:"businessId,omitempty"`
	Name               string              `json:"name" bson:"name"`
	Phone              string              `json:"phone,omitempty" bson:"phone,omitempty"`
	IsAvailable        bool                `json:"isAvailable" bson:"isAvailable"`
	Status             string              `json:"status,omitempty" bson:"status,omitempty"` // "" is treated as active
	Skills             []string            `json:"skills,omitempty" bson:"skills,omitempty"`
	HomeZip            string              `json:"homeZip,omitempty" bson:"homeZip,omitempty"`
	ServiceRadiusMiles int                 `json:"serviceRadiusMiles,omitempty" bson:"serviceRadiusMiles,omitempty"`
	MaxJobsPerDay      int                 `json:"maxJobsPerDay,omitempty" bson:"maxJobsPerDay,omitempty"`
	CurrentJobCount    int                 `json:"currentJobCount,omitempty" bson:"currentJobCount,omitempty"`
	Availability       map[string][]string `json:"availability,omitempty" bson:"availability,omitempty"` // weekday -> ["08:00-17:00"]
}

// Active reports whether the technician may be dispatched at all.
func (t Technician) Active() bool {
	return t.IsAvailable && (t.Status == "" || t.Status == "active" || t.Status == "available")
}

// TechnicianShift is a technician's working window for one date, derived from
// the weekly availability configuration. Times are minutes from midnight.
// A break exists only when BreakEnd > BreakStart.
type TechnicianShift struct {
	TechnicianID  string `json:"technicianId"`
	Start         int    `json:"start"`
	End           int    `json:"end"`
	BreakStart    int    `json:"breakStart,omitempty"`
	BreakEnd      int    `json:"breakEnd,omitempty"`
	MaxJobsPerDay int    `json:"maxJobsPerDay"`
	CurrentJobs   int    `json:"currentJobs,omitempty"`
}

// HasBreak reports whether the shift contains a configured break window.
func (s TechnicianShift) HasBreak() bool {
	return s.BreakEnd > s.BreakStart
}
