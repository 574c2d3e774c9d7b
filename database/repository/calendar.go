package repository

import (
	"context"
	"fmt"
	"time"

	"fieldline/database"
	"fieldline/services/booking"
	"fieldline/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// calendarEventDoc is the stored form of a booking.CalendarEvent.
type calendarEventDoc struct {
	ID           string    `bson:"id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description,omitempty"`
	Start        time.Time `bson:"start"`
	End          time.Time `bson:"end"`
	Location     string    `bson:"location,omitempty"`
	TechnicianID string    `bson:"technicianId,omitempty"`
	BusinessID   string    `bson:"businessId,omitempty"`
}

// MongoCalendarRepo implements booking.CalendarService against a local
// collection. It refuses events that overlap an existing one for the same
// technician, which is the conflict signal the booking flow retries on.
type MongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo constructs a new instance of MongoCalendarRepo.
func NewMongoCalendarRepo() *MongoCalendarRepo {
	db := database.MongoClient.Database(utils.AppConfig.MongoDatabase)
	return &MongoCalendarRepo{coll: db.Collection("calendar_events")}
}

// CreateEvent writes the event unless the technician already has one on an
// overlapping interval.
func (repo *MongoCalendarRepo) CreateEvent(ctx context.Context, event booking.CalendarEvent) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"technicianId": event.TechnicianID,
		"start":        bson.M{"$lt": event.End},
		"end":          bson.M{"$gt": event.Start},
	}
	var existing calendarEventDoc
	err := repo.coll.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		return "", &booking.ConflictError{
			EventID: existing.ID,
			Message: fmt.Sprintf("technician %s already booked %s-%s", event.TechnicianID,
				existing.Start.Format(time.RFC3339), existing.End.Format(time.RFC3339)),
		}
	}
	if err != mongo.ErrNoDocuments {
		return "", fmt.Errorf("error checking calendar conflicts: %w", err)
	}

	doc := calendarEventDoc{
		ID:           uuid.New().String(),
		Title:        event.Title,
		Description:  event.Description,
		Start:        event.Start,
		End:          event.End,
		Location:     event.Location,
		TechnicianID: event.TechnicianID,
		BusinessID:   event.BusinessID,
	}
	if _, err := repo.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("error inserting calendar event: %w", err)
	}
	return doc.ID, nil
}

// DeleteEvent removes an event by ID. Missing events are not an error.
func (repo *MongoCalendarRepo) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctx, bson.M{"id": eventID}); err != nil {
		return fmt.Errorf("error deleting calendar event %s: %w", eventID, err)
	}
	return nil
}
