package booking

import (
	"errors"
	"fmt"
)

// ErrIntervalHeld means another caller holds a reservation on the same
// technician and interval. The booking attempt should be retried with a
// different slot.
var ErrIntervalHeld = errors.New("interval already reserved")

// ConflictError is returned by calendar collaborators when the target
// interval already carries an event. It surfaces the concurrent-booking race
// the slot generator itself cannot detect.
type ConflictError struct {
	EventID string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("calendar conflict: %s", e.Message)
}

// IsConflict reports whether the error marks a lost booking race.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce) || errors.Is(err, ErrIntervalHeld)
}
