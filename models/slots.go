package models

import "time"

// TimeSlot is the bookable unit produced by the availability generator.
// Start/End are absolute instants; End - Start always equals the job's
// estimated duration. Travel and buffer minutes are carried for display and
// for the final calendar write, they are not part of the interval itself.
type TimeSlot struct {
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`
	TechnicianID      string    `json:"technicianId,omitempty"`
	TechnicianName    string    `json:"technicianName,omitempty"`
	IsPeak            bool      `json:"isPeak"`
	PriceMultiplier   float64   `json:"priceMultiplier"`
	TravelTimeMinutes int       `json:"travelTimeMinutes"`
	BufferBefore      int       `json:"bufferBefore"`
	BufferAfter       int       `json:"bufferAfter"`
}

// AssignedTechnician is the `{id, name}` record attached to a BookingResult.
type AssignedTechnician struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	ETA   string `json:"eta,omitempty"`
}

// BookingResult is the terminal outcome of a booking attempt. Scheduling
// failure is a normal business outcome spoken back to a live caller, so it is
// always data, never an error.
type BookingResult struct {
	Success             bool                 `json:"success"`
	Slots               []TimeSlot           `json:"slots,omitempty"`
	Message             string               `json:"message"`
	TotalPrice          float64              `json:"totalPrice,omitempty"`
	AssignedTechnicians []AssignedTechnician `json:"assignedTechnicians,omitempty"`
	Warnings            []string             `json:"warnings,omitempty"`
}
