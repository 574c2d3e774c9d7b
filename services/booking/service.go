package booking

import (
	"context"
	"fmt"
	"strings"

	"fieldline/models"
	"fieldline/services/scheduling"

	"go.uber.org/zap"
)

// AppointmentStore persists committed bookings so later availability
// snapshots see them.
type AppointmentStore interface {
	Insert(ctx context.Context, apt models.Appointment) error
}

// Service commits a chosen slot: it reserves the technician's interval,
// writes the calendar event, and records the appointment. Generation and
// matching stay lock-free; only this final step serializes on the interval.
type Service struct {
	Engine       *scheduling.Engine
	Calendar     CalendarService
	Reservations *ReservationLock
	Appointments AppointmentStore
	Logger       *zap.Logger
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// ConfirmSlot books the slot for the customer. Losing the interval race is a
// normal outcome returned as a retryable failure result, not an error; the
// caller offers the next slot to the caller on the line.
func (s *Service) ConfirmSlot(
	ctx context.Context,
	business models.Business,
	customer models.Customer,
	job models.JobRequirements,
	slot models.TimeSlot,
) (models.BookingResult, error) {
	job = job.Normalized()
	if job.EstimatedDuration <= 0 {
		return models.BookingResult{}, fmt.Errorf("job duration must be positive, got %d minutes", job.EstimatedDuration)
	}
	if slot.TechnicianID == "" {
		return models.BookingResult{}, fmt.Errorf("slot has no assigned technician")
	}

	token, err := s.Reservations.Reserve(ctx, slot.TechnicianID, slot.Start, slot.End)
	if err != nil {
		if IsConflict(err) {
			return models.BookingResult{
				Success: false,
				Message: "That time was just taken. Please pick another slot.",
			}, nil
		}
		return models.BookingResult{}, err
	}

	eventID, err := s.Calendar.CreateEvent(ctx, buildEvent(business, customer, job, slot))
	if err != nil {
		if relErr := s.Reservations.Release(ctx, slot.TechnicianID, slot.Start, slot.End, token); relErr != nil {
			s.log().Warn("failed to release reservation", zap.Error(relErr))
		}
		if IsConflict(err) {
			return models.BookingResult{
				Success: false,
				Message: "That time was just taken. Please pick another slot.",
			}, nil
		}
		return models.BookingResult{}, fmt.Errorf("creating calendar event: %w", err)
	}

	if s.Appointments != nil {
		apt := models.Appointment{
			ID:           eventID,
			BusinessID:   business.ID,
			TechnicianID: slot.TechnicianID,
			StartTime:    models.FlexTime{Time: slot.Start},
			EndTime:      models.FlexTime{Time: slot.End},
			ServiceType:  job.ServiceType,
		}
		if err := s.Appointments.Insert(ctx, apt); err != nil {
			// The calendar event is the source of truth; a failed local
			// write is logged, not rolled back.
			s.log().Error("failed to record appointment", zap.String("eventId", eventID), zap.Error(err))
		}
	}

	breakdown := s.Engine.PriceBreakdown(business, business.BaseRateFor(job.ServiceType), slot, job)

	s.log().Info("booking confirmed",
		zap.String("eventId", eventID),
		zap.String("technicianId", slot.TechnicianID),
		zap.Time("start", slot.Start))

	return models.BookingResult{
		Success:    true,
		Slots:      []models.TimeSlot{slot},
		Message:    fmt.Sprintf("Appointment booked for %s", slot.Start.Format("January 2 at 3:04 PM")),
		TotalPrice: breakdown.FinalPrice,
		AssignedTechnicians: []models.AssignedTechnician{{
			ID:   slot.TechnicianID,
			Name: slot.TechnicianName,
		}},
	}, nil
}

func buildEvent(business models.Business, customer models.Customer, job models.JobRequirements, slot models.TimeSlot) CalendarEvent {
	title := fmt.Sprintf("%s - %s", valueOr(job.ServiceType, "Service Appointment"), valueOr(customer.Name, "Customer"))
	if job.Urgency == models.UrgencyEmergency {
		title = "EMERGENCY: " + title
	}

	lines := []string{
		fmt.Sprintf("Customer: %s", valueOr(customer.Name, "Customer")),
		fmt.Sprintf("Phone: %s", customer.PhoneNumber),
		fmt.Sprintf("Address: %s", customer.Address),
		fmt.Sprintf("Service: %s", valueOr(job.ServiceType, "Service Appointment")),
		fmt.Sprintf("Urgency: %s", job.Urgency),
	}
	if slot.TechnicianName != "" {
		lines = append(lines, fmt.Sprintf("Technician: %s", slot.TechnicianName))
	}

	return CalendarEvent{
		Title:        title,
		Description:  strings.Join(lines, "\n"),
		Start:        slot.Start,
		End:          slot.End,
		Location:     customer.Address,
		TechnicianID: slot.TechnicianID,
		BusinessID:   business.ID,
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
