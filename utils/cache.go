// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReservationClient is the dedicated client for interval reservations.
var ReservationClient *redis.Client

// InitRedis initializes the Redis client used for booking reservations.
func InitRedis() {
	ReservationClient = redis.NewClient(&redis.Options{
		Addr:     AppConfig.RedisAddr,
		Password: AppConfig.RedisPassword,
		DB:       AppConfig.RedisReservationDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ReservationClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Reservations): %v", err)
	}
}

// GetReservationClient returns the reservation Redis client.
func GetReservationClient() *redis.Client {
	if ReservationClient == nil {
		InitRedis()
	}
	return ReservationClient
}
