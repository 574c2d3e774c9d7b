package scheduling

import (
	"fmt"
	"sort"
	"time"

	"fieldline/models"

	"go.uber.org/zap"
)

// BookMultiDay books one slot per working day across consecutive calendar
// days. Days on which the business is closed are skipped with a warning and
// the span extends past them, so a Friday start for a Mon-Fri business rolls
// over the weekend onto Monday. A business that works Saturdays books
// Saturdays. An open day with zero availability fails the whole attempt:
// nothing was tentatively held, so there is no rollback.
func (e *Engine) BookMultiDay(
	business models.Business,
	job models.JobRequirements,
	technicians []models.Technician,
	appointments []models.Appointment,
	startDate time.Time,
) (models.BookingResult, error) {
	job = job.Normalized()
	if job.EstimatedDuration <= 0 {
		return models.BookingResult{}, fmt.Errorf("job duration must be positive, got %d minutes", job.EstimatedDuration)
	}

	daysNeeded := job.DaysNeeded
	scanCap := e.cfg.MultiDayScanCap
	if scanCap < daysNeeded {
		scanCap = daysNeeded
	}

	var (
		booked    []models.TimeSlot
		warnings  []string
		firstDate = startDate
	)

	date := startDate
	for scanned := 0; len(booked) < daysNeeded && scanned < scanCap; scanned++ {
		if len(business.BusinessHours[weekdayKey(date)]) == 0 {
			warnings = append(warnings, fmt.Sprintf("Skipped %s (closed), adjusted to %s",
				date.Format("Monday"), date.AddDate(0, 0, 1).Format("Monday")))
			date = date.AddDate(0, 0, 1)
			continue
		}

		daySlots := e.daySlots(date, business, job, technicians, appointments)
		if len(daySlots) == 0 {
			return models.BookingResult{
				Success:  false,
				Message:  fmt.Sprintf("No availability on %s", date.Format("Monday, January 2")),
				Warnings: warnings,
			}, nil
		}

		sort.Slice(daySlots, func(i, j int) bool { return daySlots[i].Start.Before(daySlots[j].Start) })
		if len(booked) == 0 {
			firstDate = date
		}
		booked = append(booked, daySlots[0])
		date = date.AddDate(0, 0, 1)
	}

	if len(booked) < daysNeeded {
		return models.BookingResult{
			Success:  false,
			Message:  fmt.Sprintf("Could not find %d working days within %d days of %s", daysNeeded, scanCap, startDate.Format("January 2")),
			Warnings: warnings,
		}, nil
	}

	assigned := make([]models.AssignedTechnician, 0, len(booked))
	for _, slot := range booked {
		assigned = append(assigned, models.AssignedTechnician{ID: slot.TechnicianID, Name: slot.TechnicianName})
	}

	e.logger.Info("multi-day job booked",
		zap.Int("days", daysNeeded),
		zap.String("firstDay", firstDate.Format("2006-01-02")),
		zap.Int("skippedDays", len(warnings)))

	return models.BookingResult{
		Success:             true,
		Slots:               booked,
		Message:             fmt.Sprintf("Multi-day job booked for %d days starting %s", daysNeeded, firstDate.Format("January 2")),
		AssignedTechnicians: assigned,
		Warnings:            warnings,
	}, nil
}

// BookTwoTech finds the earliest instant at which two technicians are
// simultaneously free and returns both slots. The scan covers the configured
// search window from the preferred date and requires identical start times;
// near-misses are not paired.
func (e *Engine) BookTwoTech(
	business models.Business,
	job models.JobRequirements,
	technicians []models.Technician,
	appointments []models.Appointment,
	preferredDate time.Time,
) (models.BookingResult, error) {
	if preferredDate.IsZero() {
		preferredDate = e.now().AddDate(0, 0, 1)
	}

	allSlots, err := e.GetAvailableSlots(business, job, technicians, appointments, preferredDate, e.cfg.TwoTechSearchDays)
	if err != nil {
		return models.BookingResult{}, err
	}

	byStart := make(map[time.Time][]models.TimeSlot)
	for _, slot := range allSlots {
		byStart[slot.Start] = append(byStart[slot.Start], slot)
	}

	starts := make([]time.Time, 0, len(byStart))
	for start, group := range byStart {
		if len(distinctTechnicians(group)) >= 2 {
			starts = append(starts, start)
		}
	}
	if len(starts) == 0 {
		return models.BookingResult{
			Success: false,
			Message: fmt.Sprintf("Unable to find a time slot with two available technicians in the next %d days", e.cfg.TwoTechSearchDays),
		}, nil
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	group := byStart[starts[0]]
	sort.Slice(group, func(i, j int) bool { return group[i].TechnicianID < group[j].TechnicianID })

	pair := make([]models.TimeSlot, 0, 2)
	seen := make(map[string]bool)
	for _, slot := range group {
		if seen[slot.TechnicianID] {
			continue
		}
		seen[slot.TechnicianID] = true
		pair = append(pair, slot)
		if len(pair) == 2 {
			break
		}
	}

	assigned := make([]models.AssignedTechnician, 0, 2)
	for _, slot := range pair {
		assigned = append(assigned, models.AssignedTechnician{ID: slot.TechnicianID, Name: slot.TechnicianName})
	}

	return models.BookingResult{
		Success:             true,
		Slots:               pair,
		Message:             fmt.Sprintf("Two-technician job booked for %s", pair[0].Start.Format("January 2 at 3:04 PM")),
		AssignedTechnicians: assigned,
	}, nil
}

func distinctTechnicians(slots []models.TimeSlot) map[string]bool {
	ids := make(map[string]bool, len(slots))
	for _, slot := range slots {
		ids[slot.TechnicianID] = true
	}
	return ids
}
