package booking

import (
	"context"
	"fmt"
	"time"

	"fieldline/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ReservationLock is a short-lived lock keyed by technician and interval,
// held only between slot selection and the calendar write. Slot generation
// stays lock-free; this closes the window in which two concurrent callers
// compute the same open slot and both try to book it.
type ReservationLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReservationLock wraps a redis client with a reservation TTL.
func NewReservationLock(client *redis.Client, ttl time.Duration) *ReservationLock {
	if ttl <= 0 {
		ttl = utils.DefaultReservationTTL
	}
	return &ReservationLock{client: client, ttl: ttl}
}

func reservationKey(technicianID string, start, end time.Time) string {
	return fmt.Sprintf("%s%s:%d-%d", utils.ReservationKeyPrefix, technicianID, start.Unix(), end.Unix())
}

// Reserve claims the interval for this caller and returns a release token.
// Returns ErrIntervalHeld when someone else got there first.
func (l *ReservationLock) Reserve(ctx context.Context, technicianID string, start, end time.Time) (string, error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, reservationKey(technicianID, start, end), token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("reserving interval: %w", err)
	}
	if !ok {
		return "", ErrIntervalHeld
	}
	return token, nil
}

// Release frees the interval if the token still owns it. A reservation that
// expired or was taken over by another caller is left alone.
func (l *ReservationLock) Release(ctx context.Context, technicianID string, start, end time.Time, token string) error {
	key := reservationKey(technicianID, start, end)
	held, err := l.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking reservation: %w", err)
	}
	if held != token {
		return nil
	}
	return l.client.Del(ctx, key).Err()
}
