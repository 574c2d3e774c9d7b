package dispatch

import (
	"sort"
	"strings"

	"fieldline/models"

	"go.uber.org/zap"
)

// Matcher ranks a technician roster against a job's requirements under a
// configurable dispatch mode. Scoring is a read-only pass over the
// caller-supplied snapshot; nothing is cached because technician state moves
// between calls.
type Matcher struct {
	logger *zap.Logger
}

// NewMatcher validates the mode weight table once and returns a matcher.
func NewMatcher(logger *zap.Logger) (*Matcher, error) {
	if err := validateWeights(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}, nil
}

// MatchTechnician returns the single best technician for the job, or nil when
// no one qualifies. Manual mode always returns nil: a human must assign.
func (m *Matcher) MatchTechnician(
	technicians []models.Technician,
	job models.JobRequirements,
	rules models.DispatchRules,
	customerLocation *models.CustomerLocation,
) *models.TechnicianScore {
	scores := m.rank(technicians, job, rules, customerLocation)
	if len(scores) == 0 {
		return nil
	}
	return &scores[0]
}

// MatchTechnicians returns the top count technicians, best first.
func (m *Matcher) MatchTechnicians(
	technicians []models.Technician,
	job models.JobRequirements,
	rules models.DispatchRules,
	customerLocation *models.CustomerLocation,
	count int,
) []models.TechnicianScore {
	scores := m.rank(technicians, job, rules, customerLocation)
	if count > 0 && len(scores) > count {
		scores = scores[:count]
	}
	return scores
}

func (m *Matcher) rank(
	technicians []models.Technician,
	job models.JobRequirements,
	rules models.DispatchRules,
	customerLocation *models.CustomerLocation,
) []models.TechnicianScore {
	mode := ParseMode(rules.Mode)
	if mode == ModeManual {
		return nil
	}

	weights := modeWeights[mode]
	var scores []models.TechnicianScore
	for _, tech := range technicians {
		if !tech.Active() {
			continue
		}
		score := m.scoreTechnician(tech, job, customerLocation, weights)
		if score.TotalScore > 0 {
			scores = append(scores, score)
		}
	}

	// Score descending, then technician id ascending so equal scores rank
	// the same way regardless of roster order.
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].TotalScore != scores[j].TotalScore {
			return scores[i].TotalScore > scores[j].TotalScore
		}
		return scores[i].TechnicianID < scores[j].TechnicianID
	})

	m.logger.Debug("ranked technicians",
		zap.String("mode", string(mode)),
		zap.Int("candidates", len(scores)))
	return scores
}

func (m *Matcher) scoreTechnician(
	tech models.Technician,
	job models.JobRequirements,
	customerLocation *models.CustomerLocation,
	weights WeightVector,
) models.TechnicianScore {
	var reasons []string

	skill := skillMatch(tech.Skills, job.RequiredSkills, job.ServiceType)
	if skill > 0.8 {
		reasons = append(reasons, "Strong skill match")
	}

	distance := 1.0
	if customerLocation != nil && customerLocation.ZipCode != "" {
		distance = distanceScore(tech.HomeZip, customerLocation.ZipCode)
		if distance > 0.7 {
			reasons = append(reasons, "Close proximity")
		}
	}

	availability := 1.0
	if job.Urgency == models.UrgencyEmergency {
		if tech.IsAvailable {
			reasons = append(reasons, "Available now")
		} else {
			availability = 0
		}
	}

	workload := workloadScore(tech.CurrentJobCount)
	if workload > 0.7 {
		reasons = append(reasons, "Light workload")
	}

	total := skill*weights.Skill +
		distance*weights.Distance +
		availability*weights.Availability +
		workload*weights.Workload

	return models.TechnicianScore{
		TechnicianID:      tech.ID,
		Name:              tech.Name,
		Phone:             tech.Phone,
		TotalScore:        total,
		SkillMatch:        skill,
		DistanceScore:     distance,
		AvailabilityScore: availability,
		WorkloadScore:     workload,
		Reasons:           reasons,
	}
}

// skillMatch scores skill fit in [0,1]. An exact or fuzzy service-type hit is
// a full match; otherwise the fraction of required tags matched by substring
// containment in either direction. With nothing to match against, anyone
// half-qualifies; with no requirements at all, anyone mostly qualifies.
func skillMatch(techSkills, requiredSkills []string, serviceType string) float64 {
	if len(requiredSkills) == 0 && serviceType == "" {
		return 0.7
	}

	lower := make([]string, 0, len(techSkills))
	for _, s := range techSkills {
		lower = append(lower, strings.ToLower(s))
	}

	if serviceType != "" {
		service := strings.ToLower(serviceType)
		for _, skill := range lower {
			if strings.Contains(skill, service) || strings.Contains(service, skill) {
				return 1.0
			}
		}
	}

	if len(requiredSkills) == 0 {
		return 0.5
	}

	matches := 0
	for _, required := range requiredSkills {
		r := strings.ToLower(required)
		for _, skill := range lower {
			if strings.Contains(skill, r) || strings.Contains(r, skill) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(requiredSkills))
}

// distanceScore converts shared postal-code prefix length into [0,1].
func distanceScore(techZip, customerZip string) float64 {
	if techZip == "" || customerZip == "" {
		return 0.5
	}
	switch {
	case sharesPrefix(techZip, customerZip, 3):
		return 1.0
	case sharesPrefix(techZip, customerZip, 2):
		return 0.7
	case sharesPrefix(techZip, customerZip, 1):
		return 0.4
	default:
		return 0.2
	}
}

func sharesPrefix(a, b string, n int) bool {
	return len(a) >= n && len(b) >= n && a[:n] == b[:n]
}

// workloadScore is inversely proportional to the technician's open job count.
func workloadScore(currentJobs int) float64 {
	switch {
	case currentJobs <= 0:
		return 1.0
	case currentJobs <= 2:
		return 0.7
	case currentJobs <= 4:
		return 0.4
	default:
		return 0.1
	}
}
