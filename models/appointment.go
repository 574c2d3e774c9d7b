package models

import (
	"bytes"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexTime wraps time.Time with tolerant JSON parsing. Upstream calendar
// exports deliver timestamps in several ISO-8601 shapes (with and without
// zone offsets, with and without seconds), and a bad record must not abort
// scheduling for a whole business.
type FlexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON accepts any supported layout; an empty or null value leaves
// the zero time in place.
func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		ft.Time = time.Time{}
		return nil
	}
	for _, layout := range flexLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ft.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized time value %q", s)
}

// MarshalJSON emits RFC 3339, or null for the zero time.
func (ft FlexTime) MarshalJSON() ([]byte, error) {
	if ft.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ft.Format(time.RFC3339) + `"`), nil
}

// MarshalBSONValue stores the wrapped time as a plain BSON datetime.
func (ft FlexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(ft.Time)
}

// UnmarshalBSONValue reads a BSON datetime back into the wrapper.
func (ft *FlexTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var tm time.Time
	if err := bson.UnmarshalValue(t, data, &tm); err != nil {
		return fmt.Errorf("decoding time value: %w", err)
	}
	ft.Time = tm
	return nil
}

// Appointment is an existing booking fetched from the calendar collaborator.
type Appointment struct {
	ID           string   `json:"id,omitempty" bson:"id,omitempty"`
	BusinessID   string   `json:"businessId,omitempty" bson:"businessId,omitempty"`
	TechnicianID string   `json:"technician_id" bson:"technicianId"`
	StartTime    FlexTime `json:"start_time" bson:"startTime"`
	EndTime      FlexTime `json:"end_time" bson:"endTime"`
	ServiceType  string   `json:"serviceType,omitempty" bson:"serviceType,omitempty"`
}

// Valid reports whether both endpoints parsed and are ordered.
func (a Appointment) Valid() bool {
	return !a.StartTime.IsZero() && !a.EndTime.IsZero() && a.EndTime.After(a.StartTime.Time)
}

// OnDate reports whether the appointment starts on the given calendar day.
func (a Appointment) OnDate(date time.Time) bool {
	y1, m1, d1 := a.StartTime.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Contains reports whether the instant falls inside the appointment interval.
func (a Appointment) Contains(t time.Time) bool {
	return !t.Before(a.StartTime.Time) && !t.After(a.EndTime.Time)
}
