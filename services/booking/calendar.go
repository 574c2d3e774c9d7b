package booking

import (
	"context"
	"time"
)

// CalendarEvent is the finalized slot plus metadata handed to the external
// calendar service.
type CalendarEvent struct {
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Location     string    `json:"location,omitempty"`
	TechnicianID string    `json:"technicianId,omitempty"`
	BusinessID   string    `json:"businessId,omitempty"`
}

// CalendarService is the write path to the external calendar. The engine
// only prepares events; creating, moving and deleting them is collaborator
// territory. CreateEvent must return a *ConflictError when the interval is
// already taken so the caller can retry with another slot.
type CalendarService interface {
	CreateEvent(ctx context.Context, event CalendarEvent) (eventID string, err error)
	DeleteEvent(ctx context.Context, eventID string) error
}
