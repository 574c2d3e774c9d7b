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
)

// MongoTechnicianRepo implements TechnicianRepository using MongoDB.
type MongoTechnicianRepo struct {
	coll *mongo.Collection
}

// NewMongoTechnicianRepo constructs a new instance of MongoTechnicianRepo.
func NewMongoTechnicianRepo() *MongoTechnicianRepo {
	db := database.MongoClient.Database(utils.AppConfig.MongoDatabase)
	return &MongoTechnicianRepo{coll: db.Collection("technicians")}
}

// ListByBusiness retrieves every technician on a business's roster.
func (repo *MongoTechnicianRepo) ListByBusiness(ctx context.Context, businessID string) ([]models.Technician, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"businessId": businessID})
	if err != nil {
		return nil, fmt.Errorf("error fetching technicians for business %s: %w", businessID, err)
	}
	defer cursor.Close(ctx)

	var technicians []models.Technician
	for cursor.Next(ctx) {
		var t models.Technician
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("error decoding technician: %w", err)
		}
		technicians = append(technicians, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return technicians, nil
}
