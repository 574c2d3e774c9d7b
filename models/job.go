package models

// UrgencyLevel is a job's priority tier. It affects both pricing and slot ordering.
type UrgencyLevel string

const (
	UrgencyNormal    UrgencyLevel = "normal"
	UrgencyHigh      UrgencyLevel = "high"
	UrgencySameDay   UrgencyLevel = "same_day"
	UrgencyEmergency UrgencyLevel = "emergency"
)

// JobType classifies how a job must be scheduled.
type JobType string

const (
	JobStandard   JobType = "standard"
	JobMultiDay   JobType = "multi_day"
	JobTwoTech    JobType = "two_tech"
	JobInspection JobType = "inspection"
	JobEmergency  JobType = "emergency"
)

// JobRequirements describes one booking attempt. It is built by the call
// pipeline from extracted conversation data and never mutated by the engine.
type JobRequirements struct {
	ServiceType       string       `json:"serviceType"`
	EstimatedDuration int          `json:"estimatedDuration"` // minutes
	JobType           JobType      `json:"jobType,omitempty"`
	Urgency           UrgencyLevel `json:"urgency,omitempty"`
	RequiredSkills    []string     `json:"requiredSkills,omitempty"`
	RequiredTechs     int          `json:"requiredTechs,omitempty"`
	DaysNeeded        int          `json:"daysNeeded,omitempty"`
	EquipmentNeeded   []string     `json:"equipmentNeeded,omitempty"`
	CustomerZip       string       `json:"customerZip,omitempty"`
}

// Normalized fills enum and count defaults for a partially populated request.
func (j JobRequirements) Normalized() JobRequirements {
	if j.JobType == "" {
		j.JobType = JobStandard
	}
	if j.Urgency == "" {
		j.Urgency = UrgencyNormal
	}
	if j.RequiredTechs < 1 {
		j.RequiredTechs = 1
	}
	if j.DaysNeeded < 1 {
		j.DaysNeeded = 1
	}
	return j
}
