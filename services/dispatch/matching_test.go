package dispatch

import (
	"testing"

	"fieldline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(nil)
	require.NoError(t, err)
	return m
}

func TestPerfectCandidateCompositesToOne(t *testing.T) {
	m := newTestMatcher(t)
	tech := models.Technician{
		ID: "t1", Name: "Alice", IsAvailable: true,
		Skills:  []string{"plumbing"},
		HomeZip: "94110",
	}
	job := models.JobRequirements{ServiceType: "plumbing", Urgency: models.UrgencyEmergency}
	location := &models.CustomerLocation{ZipCode: "94115"}

	for _, mode := range []Mode{ModeSkillBased, ModeLocationBased, ModeEmergency, ModeRoundRobin} {
		score := m.MatchTechnician([]models.Technician{tech}, job, models.DispatchRules{Mode: string(mode)}, location)
		require.NotNil(t, score, "mode %s", mode)
		assert.InDelta(t, 1.0, score.TotalScore, 1e-9, "mode %s", mode)
	}
}

func TestManualModeReturnsNoMatch(t *testing.T) {
	m := newTestMatcher(t)
	tech := models.Technician{ID: "t1", Name: "Alice", IsAvailable: true, Skills: []string{"plumbing"}}
	job := models.JobRequirements{ServiceType: "plumbing"}

	score := m.MatchTechnician([]models.Technician{tech}, job, models.DispatchRules{Mode: "manual"}, nil)
	assert.Nil(t, score)
}

func TestInactiveTechniciansAreSkipped(t *testing.T) {
	m := newTestMatcher(t)
	techs := []models.Technician{
		{ID: "t1", Name: "Alice", IsAvailable: false, Skills: []string{"plumbing"}},
		{ID: "t2", Name: "Bob", IsAvailable: true, Status: "inactive", Skills: []string{"plumbing"}},
		{ID: "t3", Name: "Cara", IsAvailable: true, Skills: []string{"plumbing"}},
	}
	job := models.JobRequirements{ServiceType: "plumbing"}

	scores := m.MatchTechnicians(techs, job, models.DispatchRules{}, nil, 10)
	require.Len(t, scores, 1)
	assert.Equal(t, "t3", scores[0].TechnicianID)
}

func TestEqualScoresBreakTiesByTechnicianID(t *testing.T) {
	m := newTestMatcher(t)
	techs := []models.Technician{
		{ID: "t2", Name: "Bob", IsAvailable: true, Skills: []string{"plumbing"}},
		{ID: "t1", Name: "Alice", IsAvailable: true, Skills: []string{"plumbing"}},
	}
	job := models.JobRequirements{ServiceType: "plumbing"}

	scores := m.MatchTechnicians(techs, job, models.DispatchRules{}, nil, 2)
	require.Len(t, scores, 2)
	assert.Equal(t, "t1", scores[0].TechnicianID)
	assert.Equal(t, "t2", scores[1].TechnicianID)
}

func TestSkillBasedModeFavorsTheSpecialist(t *testing.T) {
	m := newTestMatcher(t)
	techs := []models.Technician{
		{ID: "t1", Name: "Generalist", IsAvailable: true, Skills: []string{"handyman"}, HomeZip: "94110"},
		{ID: "t2", Name: "Specialist", IsAvailable: true, Skills: []string{"water heater repair"}, HomeZip: "10001"},
	}
	job := models.JobRequirements{ServiceType: "water heater", RequiredSkills: []string{"water heater"}}
	location := &models.CustomerLocation{ZipCode: "94110"}

	scores := m.MatchTechnicians(techs, job, models.DispatchRules{Mode: "skill_based"}, location, 2)
	require.Len(t, scores, 2)
	assert.Equal(t, "t2", scores[0].TechnicianID, "skill weight dominates distance")
	assert.Contains(t, scores[0].Reasons, "Strong skill match")
}

func TestLocationBasedModeFavorsProximity(t *testing.T) {
	m := newTestMatcher(t)
	techs := []models.Technician{
		{ID: "t1", Name: "Near", IsAvailable: true, Skills: []string{"handyman"}, HomeZip: "94110"},
		{ID: "t2", Name: "Far", IsAvailable: true, Skills: []string{"plumbing"}, HomeZip: "10001"},
	}
	job := models.JobRequirements{ServiceType: "plumbing"}
	location := &models.CustomerLocation{ZipCode: "94115"}

	scores := m.MatchTechnicians(techs, job, models.DispatchRules{Mode: "location_based"}, location, 2)
	require.Len(t, scores, 2)
	assert.Equal(t, "t1", scores[0].TechnicianID)
	assert.Contains(t, scores[0].Reasons, "Close proximity")
}

func TestEmergencyModeZeroesUnavailableTechnicians(t *testing.T) {
	m := newTestMatcher(t)
	tech := models.Technician{ID: "t1", Name: "Alice", IsAvailable: true, Skills: []string{"plumbing"}}
	job := models.JobRequirements{ServiceType: "plumbing", Urgency: models.UrgencyEmergency}

	score := m.MatchTechnician([]models.Technician{tech}, job, models.DispatchRules{Mode: "emergency"}, nil)
	require.NotNil(t, score)
	assert.Equal(t, 1.0, score.AvailabilityScore)
	assert.Contains(t, score.Reasons, "Available now")
}

func TestSkillMatch(t *testing.T) {
	tests := []struct {
		name        string
		techSkills  []string
		required    []string
		serviceType string
		want        float64
	}{
		{"nothing to match against", nil, nil, "", 0.7},
		{"service type fuzzy hit", []string{"HVAC Repair"}, nil, "hvac", 1.0},
		{"no required skills", []string{"plumbing"}, nil, "electrical", 0.5},
		{"half of required skills", []string{"plumbing"}, []string{"plumbing", "welding"}, "electrical", 0.5},
		{"all required skills", []string{"plumbing", "welding"}, []string{"plumbing", "welding"}, "electrical", 1.0},
		{"no overlap", []string{"painting"}, []string{"plumbing"}, "electrical", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skillMatch(tt.techSkills, tt.required, tt.serviceType))
		})
	}
}

func TestDistanceScore(t *testing.T) {
	tests := []struct {
		techZip, customerZip string
		want                 float64
	}{
		{"94110", "94115", 1.0},
		{"94110", "94522", 0.7},
		{"94110", "95014", 0.4},
		{"94110", "10001", 0.2},
		{"", "94110", 0.5},
		{"94110", "", 0.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, distanceScore(tt.techZip, tt.customerZip), "%s vs %s", tt.techZip, tt.customerZip)
	}
}

func TestWorkloadScore(t *testing.T) {
	tests := []struct {
		jobs int
		want float64
	}{
		{0, 1.0}, {1, 0.7}, {2, 0.7}, {3, 0.4}, {4, 0.4}, {5, 0.1}, {9, 0.1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, workloadScore(tt.jobs), "%d jobs", tt.jobs)
	}
}
