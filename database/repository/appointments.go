package repository

import (
	"context"
	"fmt"
	"time"

	"fieldline/database"
	"fieldline/models"
	"fieldline/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	db := database.MongoClient.Database(utils.AppConfig.MongoDatabase)
	return &MongoAppointmentRepo{coll: db.Collection("appointments")}
}

// FetchByBusinessAndRange retrieves appointments for a business whose start
// time falls inside [from, to), sorted by start time ascending.
func (repo *MongoAppointmentRepo) FetchByBusinessAndRange(ctx context.Context, businessID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"startTime":  bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	for cursor.Next(ctx) {
		var apt models.Appointment
		if err := cursor.Decode(&apt); err != nil {
			return nil, fmt.Errorf("error decoding appointment: %w", err)
		}
		appointments = append(appointments, apt)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return appointments, nil
}

// Insert writes a confirmed appointment.
func (repo *MongoAppointmentRepo) Insert(ctx context.Context, apt models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, apt); err != nil {
		return fmt.Errorf("error inserting appointment: %w", err)
	}
	return nil
}
