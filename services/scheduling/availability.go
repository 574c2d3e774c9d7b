package scheduling

import (
	"sort"
	"time"

	"fieldline/models"

	"go.uber.org/zap"
)

// technicianShift resolves a technician's working window for one date from
// their weekly availability configuration. Malformed or missing configuration
// degrades to the default shift rather than dropping the technician: bad CRM
// data must not stop a whole business from booking.
func (e *Engine) technicianShift(tech models.Technician, date time.Time) (models.TechnicianShift, bool) {
	maxJobs := tech.MaxJobsPerDay
	if maxJobs <= 0 {
		maxJobs = e.cfg.DefaultMaxJobsPerDay
	}

	defaultShift := e.cfg.DefaultShift
	defaultShift.TechnicianID = tech.ID
	defaultShift.MaxJobsPerDay = maxJobs

	ranges, ok := tech.Availability[weekdayKey(date)]
	if !ok {
		ranges, ok = tech.Availability["default"]
	}
	if !ok {
		return defaultShift, true
	}
	if len(ranges) == 0 {
		// An explicitly empty day means the technician is off.
		return models.TechnicianShift{}, false
	}

	w, err := ParseWindow(ranges[0])
	if err != nil {
		e.logger.Warn("malformed technician availability, using default shift",
			zap.String("technicianId", tech.ID),
			zap.String("value", ranges[0]),
			zap.Error(err))
		return defaultShift, true
	}

	return models.TechnicianShift{
		TechnicianID:  tech.ID,
		Start:         w.Start,
		End:           w.End,
		MaxJobsPerDay: maxJobs,
	}, true
}

// estimateTravel estimates one-way travel minutes from shared postal-code
// prefixes between the technician's home and the customer.
func (e *Engine) estimateTravel(tech models.Technician, customerZip string) int {
	travel := e.cfg.DefaultTravelMinutes
	switch {
	case customerZip == "" || tech.HomeZip == "":
		// keep default
	case sharesPrefix(tech.HomeZip, customerZip, 3):
		travel = e.cfg.CloseTravelMinutes
	case sharesPrefix(tech.HomeZip, customerZip, 2):
		travel = e.cfg.RegionalTravelMinutes
	}
	if travel > e.cfg.MaxTravelMinutes {
		travel = e.cfg.MaxTravelMinutes
	}
	return travel
}

func sharesPrefix(a, b string, n int) bool {
	return len(a) >= n && len(b) >= n && a[:n] == b[:n]
}

// findWindows walks a cursor through the technician's shift and emits one
// candidate slot per open gap that fits the job duration plus travel. Every
// existing appointment is padded by the buffer on both sides, and any slot
// crossing the shift's break window is rejected.
func (e *Engine) findWindows(
	date time.Time,
	shift models.TechnicianShift,
	appointments []models.Appointment,
	job models.JobRequirements,
	tech models.Technician,
) []models.TimeSlot {
	duration := time.Duration(job.EstimatedDuration) * time.Minute
	buffer := time.Duration(e.cfg.BufferMinutes) * time.Minute
	travelMinutes := e.estimateTravel(tech, job.CustomerZip)
	travel := time.Duration(travelMinutes) * time.Minute
	needed := duration + travel

	sorted := make([]models.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt.Valid() {
			sorted = append(sorted, apt)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime.Time)
	})

	shiftStart := atMinutes(date, shift.Start)
	shiftEnd := atMinutes(date, shift.End)

	cursor := shiftStart
	now := e.now()
	if sameDate(date, now) {
		earliest := now.Add(time.Duration(e.cfg.LeadTimeMinutes) * time.Minute)
		if earliest.After(cursor) {
			cursor = earliest
		}
	}

	var slots []models.TimeSlot
	emit := func(gapEnd time.Time) {
		if gapEnd.Sub(cursor) < needed {
			return
		}
		slotStart := cursor.Add(travel)
		slotEnd := slotStart.Add(duration)
		if shift.HasBreak() {
			breakStart := atMinutes(date, shift.BreakStart)
			breakEnd := atMinutes(date, shift.BreakEnd)
			if slotStart.Before(breakEnd) && slotEnd.After(breakStart) {
				return
			}
		}
		slots = append(slots, models.TimeSlot{
			Start:             slotStart,
			End:               slotEnd,
			TravelTimeMinutes: travelMinutes,
			BufferBefore:      e.cfg.BufferMinutes,
			BufferAfter:       e.cfg.BufferMinutes,
		})
	}

	for _, apt := range sorted {
		emit(apt.StartTime.Add(-buffer))
		next := apt.EndTime.Add(buffer)
		if next.After(cursor) {
			cursor = next
		}
	}
	emit(shiftEnd)

	return slots
}

// daySlots generates every candidate slot for one calendar day across the
// roster, enriched with technician identity, peak flag and price multiplier.
// A day with no configured business hours yields nothing.
func (e *Engine) daySlots(
	date time.Time,
	business models.Business,
	job models.JobRequirements,
	technicians []models.Technician,
	appointments []models.Appointment,
) []models.TimeSlot {
	cfg := e.cfg.forBusiness(business)
	if len(business.BusinessHours[weekdayKey(date)]) == 0 {
		return nil
	}

	weekend := isWeekend(date)
	var slots []models.TimeSlot

	for _, tech := range technicians {
		if !tech.IsAvailable {
			continue
		}

		shift, ok := e.technicianShift(tech, date)
		if !ok {
			continue
		}

		var techAppointments []models.Appointment
		for _, apt := range appointments {
			if apt.TechnicianID == tech.ID && apt.Valid() && apt.OnDate(date) {
				techAppointments = append(techAppointments, apt)
			}
		}
		if len(techAppointments) >= shift.MaxJobsPerDay {
			continue
		}

		for _, slot := range e.findWindows(date, shift, techAppointments, job, tech) {
			slot.TechnicianID = tech.ID
			slot.TechnicianName = tech.Name
			slot.IsPeak = e.isPeak(cfg, slot.Start)
			slot.PriceMultiplier = priceMultiplier(cfg, slot.IsPeak, weekend, job.Urgency)
			slots = append(slots, slot)
		}
	}

	return slots
}

// isPeak reports whether the instant's time of day falls in a peak window.
func (e *Engine) isPeak(cfg Config, t time.Time) bool {
	minute := minuteOfDay(t)
	for _, w := range cfg.PeakWindows {
		if w.Contains(minute) {
			return true
		}
	}
	return false
}
