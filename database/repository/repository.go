package repository

import (
	"context"
	"time"

	"fieldline/models"
)

// BusinessRepository provides access to tenant business profiles.
type BusinessRepository interface {
	GetByID(ctx context.Context, businessID string) (*models.Business, error)
}

// TechnicianRepository provides access to a business's technician roster.
type TechnicianRepository interface {
	ListByBusiness(ctx context.Context, businessID string) ([]models.Technician, error)
}

// AppointmentRepository persists bookings and serves the schedule snapshots
// the availability engine reads from.
type AppointmentRepository interface {
	FetchByBusinessAndRange(ctx context.Context, businessID string, from, to time.Time) ([]models.Appointment, error)
	Insert(ctx context.Context, apt models.Appointment) error
}
