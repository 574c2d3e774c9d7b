package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fieldline/models"

	"go.uber.org/zap"
)

// Notifier delivers an assignment message to the chosen technician. Delivery
// (SMS, push) lives outside this core; implementations wrap whatever channel
// the surrounding product uses.
type Notifier interface {
	SendAssignment(ctx context.Context, technician models.TechnicianScore, message string) error
}

// LogNotifier records assignments instead of delivering them. It stands in
// until an SMS or push channel is wired up.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) SendAssignment(_ context.Context, technician models.TechnicianScore, message string) error {
	logger := n.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("dispatch assignment",
		zap.String("technicianId", technician.TechnicianID),
		zap.String("message", message))
	return nil
}

// Assignment carries the appointment details a technician needs on dispatch.
type Assignment struct {
	ServiceType string              `json:"serviceType"`
	Urgency     models.UrgencyLevel `json:"urgency,omitempty"`
	StartTime   time.Time           `json:"startTime,omitempty"`
	Customer    models.Customer     `json:"customer"`
	Notes       string              `json:"notes,omitempty"`
}

// AssignmentMessage builds the dispatch text for a chosen technician.
func AssignmentMessage(a Assignment) string {
	timeStr := "ASAP"
	if !a.StartTime.IsZero() {
		timeStr = a.StartTime.Format("January 2 at 3:04 PM")
	}

	var b strings.Builder
	if a.Urgency == models.UrgencyEmergency {
		b.WriteString("EMERGENCY: ")
	}
	b.WriteString("New Job Assignment\n\n")
	fmt.Fprintf(&b, "Service: %s\n", valueOr(a.ServiceType, "Service Call"))
	fmt.Fprintf(&b, "Customer: %s\n", valueOr(a.Customer.Name, "Customer"))
	fmt.Fprintf(&b, "Address: %s\n", valueOr(a.Customer.Address, "Address TBD"))
	fmt.Fprintf(&b, "Phone: %s\n", a.Customer.PhoneNumber)
	fmt.Fprintf(&b, "Time: %s\n", timeStr)
	if a.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", a.Notes)
	}
	b.WriteString("\nReply YES to confirm or call dispatch for questions.")
	return b.String()
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
