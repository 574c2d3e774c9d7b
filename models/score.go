package models

// TechnicianScore is the matching scorer's output for one technician. It is
// recomputed fresh for every request; technician state moves too fast to cache.
type TechnicianScore struct {
	TechnicianID      string   `json:"technicianId"`
	Name              string   `json:"name"`
	Phone             string   `json:"phone,omitempty"`
	TotalScore        float64  `json:"totalScore"`
	SkillMatch        float64  `json:"skillMatch"`
	DistanceScore     float64  `json:"distanceScore"`
	AvailabilityScore float64  `json:"availabilityScore"`
	WorkloadScore     float64  `json:"workloadScore"`
	Reasons           []string `json:"reasons,omitempty"`
}
