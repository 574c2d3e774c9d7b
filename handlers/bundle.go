package handlers

import (
	"context"
	"time"

	"fieldline/database/repository"
	"fieldline/models"
	"fieldline/services/booking"
	"fieldline/services/dispatch"
	"fieldline/services/scheduling"

	"go.uber.org/zap"
)

// HandlerBundle groups the engines and repositories the HTTP layer needs.
type HandlerBundle struct {
	Engine       *scheduling.Engine
	Matcher      *dispatch.Matcher
	Booking      *booking.Service
	Notifier     dispatch.Notifier
	Businesses   repository.BusinessRepository
	Technicians  repository.TechnicianRepository
	Appointments repository.AppointmentRepository
	Logger       *zap.Logger
}

// loadContext fetches the business, roster and appointment snapshot every
// scheduling call starts from. The appointment window spans the scan range so
// the engine sees every booking it could collide with.
func (hb *HandlerBundle) loadContext(ctx context.Context, businessID string, from time.Time, days int) (*models.Business, []models.Technician, []models.Appointment, error) {
	business, err := hb.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, nil, nil, err
	}
	technicians, err := hb.Technicians.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, nil, nil, err
	}
	if days < 1 {
		days = 1
	}
	appointments, err := hb.Appointments.FetchByBusinessAndRange(ctx, businessID, from.AddDate(0, 0, -1), from.AddDate(0, 0, days+1))
	if err != nil {
		return nil, nil, nil, err
	}
	return business, technicians, appointments, nil
}
