package scheduling

import (
	"fmt"
	"sort"
	"time"

	"fieldline/models"

	"go.uber.org/zap"
)

type emergencyCandidate struct {
	tech      models.Technician
	isBusy    bool
	travel    int
	jobsToday int
}

// RouteEmergency selects the technician who can arrive soonest right now.
// Free technicians beat busy ones regardless of travel time; among equally
// busy technicians the closer one wins, with current daily load as the final
// tiebreak. The winner gets a synthetic two-hour slot at the emergency rate.
func (e *Engine) RouteEmergency(
	business models.Business,
	technicians []models.Technician,
	appointments []models.Appointment,
	customerZip string,
) models.BookingResult {
	now := e.now()
	cfg := e.cfg.forBusiness(business)

	var candidates []emergencyCandidate
	for _, tech := range technicians {
		if !tech.Active() {
			continue
		}

		var todays []models.Appointment
		for _, apt := range appointments {
			if apt.TechnicianID == tech.ID && apt.Valid() && apt.OnDate(now) {
				todays = append(todays, apt)
			}
		}

		busy := false
		for _, apt := range todays {
			if apt.Contains(now) {
				busy = true
				break
			}
		}

		candidates = append(candidates, emergencyCandidate{
			tech:      tech,
			isBusy:    busy,
			travel:    e.estimateTravel(tech, customerZip),
			jobsToday: len(todays),
		})
	}

	if len(candidates) == 0 {
		return models.BookingResult{
			Success: false,
			Message: "No technicians available for emergency dispatch",
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.isBusy != b.isBusy {
			return !a.isBusy
		}
		if a.travel != b.travel {
			return a.travel < b.travel
		}
		if a.jobsToday != b.jobsToday {
			return a.jobsToday < b.jobsToday
		}
		return a.tech.ID < b.tech.ID
	})

	best := candidates[0]
	eta := now.Add(time.Duration(best.travel) * time.Minute)
	if best.isBusy {
		eta = eta.Add(time.Duration(cfg.EmergencyBusyPenaltyMinutes) * time.Minute)
	}

	slot := models.TimeSlot{
		Start:             eta,
		End:               eta.Add(time.Duration(cfg.EmergencyJobMinutes) * time.Minute),
		TechnicianID:      best.tech.ID,
		TechnicianName:    best.tech.Name,
		PriceMultiplier:   cfg.EmergencyMultiplier,
		TravelTimeMinutes: best.travel,
	}

	message := fmt.Sprintf("Emergency dispatch: %s will arrive by %s", best.tech.Name, eta.Format("3:04 PM"))
	if best.isBusy {
		message += " (after completing current job)"
	}

	e.logger.Info("emergency routed",
		zap.String("technicianId", best.tech.ID),
		zap.Bool("busy", best.isBusy),
		zap.Int("travelMinutes", best.travel))

	return models.BookingResult{
		Success: true,
		Slots:   []models.TimeSlot{slot},
		Message: message,
		AssignedTechnicians: []models.AssignedTechnician{{
			ID:    best.tech.ID,
			Name:  best.tech.Name,
			Phone: best.tech.Phone,
			ETA:   eta.Format(time.RFC3339),
		}},
	}
}
