package scheduling

import (
	"fmt"
	"sort"
	"time"

	"fieldline/models"

	"go.uber.org/zap"
)

// Engine generates bookable time slots for a business under shift, buffer,
// travel and pricing constraints. All methods are pure computations over
// caller-owned snapshots and are safe for concurrent use; the engine holds no
// mutable state beyond its configuration.
type Engine struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine builds an engine around an explicit configuration.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// GetAvailableSlots returns every bookable slot over the next daysToCheck
// days, ordered by the job's urgency. The existing-appointments snapshot is
// the caller's responsibility to fetch; the engine performs no I/O. A
// non-positive duration is a caller bug and returns a hard error.
func (e *Engine) GetAvailableSlots(
	business models.Business,
	job models.JobRequirements,
	technicians []models.Technician,
	appointments []models.Appointment,
	startDate time.Time,
	daysToCheck int,
) ([]models.TimeSlot, error) {
	job = job.Normalized()
	if job.EstimatedDuration <= 0 {
		return nil, fmt.Errorf("job duration must be positive, got %d minutes", job.EstimatedDuration)
	}
	if startDate.IsZero() {
		startDate = e.now()
	}
	if daysToCheck <= 0 {
		daysToCheck = 7
	}
	if daysToCheck > e.cfg.MaxAdvanceDays {
		daysToCheck = e.cfg.MaxAdvanceDays
	}

	now := e.now()
	var slots []models.TimeSlot

	for offset := 0; offset < daysToCheck; offset++ {
		date := startDate.AddDate(0, 0, offset)

		// Past the cutoff hour, same-day work is off the table for
		// anything short of an emergency.
		if job.Urgency != models.UrgencyEmergency &&
			sameDate(date, now) && now.Hour() >= e.cfg.SameDayCutoffHour {
			continue
		}

		slots = append(slots, e.daySlots(date, business, job, technicians, appointments)...)
	}

	e.prioritizeSlots(slots, job)
	return slots, nil
}

// prioritizeSlots orders slots in place by urgency: urgent jobs want the
// soonest time, everything else wants the cheapest.
func (e *Engine) prioritizeSlots(slots []models.TimeSlot, job models.JobRequirements) {
	urgent := job.Urgency == models.UrgencyEmergency || job.Urgency == models.UrgencySameDay
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if urgent {
			if !a.Start.Equal(b.Start) {
				return a.Start.Before(b.Start)
			}
			return a.PriceMultiplier < b.PriceMultiplier
		}
		if a.PriceMultiplier != b.PriceMultiplier {
			return a.PriceMultiplier < b.PriceMultiplier
		}
		return a.Start.Before(b.Start)
	})
}
