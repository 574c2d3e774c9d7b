// File: utils/constants.go
package utils

import "time"

// ReservationKeyPrefix is the prefix used for Redis interval-reservation keys.
const ReservationKeyPrefix = "reserve:"

// DefaultReservationTTL bounds how long a selected slot stays held before the
// calendar write must land.
const DefaultReservationTTL = 2 * time.Minute
