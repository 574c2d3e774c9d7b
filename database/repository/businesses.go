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

// MongoBusinessRepo implements BusinessRepository using MongoDB.
type MongoBusinessRepo struct {
	coll *mongo.Collection
}

// NewMongoBusinessRepo constructs a new instance of MongoBusinessRepo.
func NewMongoBusinessRepo() *MongoBusinessRepo {
	db := database.MongoClient.Database(utils.AppConfig.MongoDatabase)
	return &MongoBusinessRepo{coll: db.Collection("businesses")}
}

// GetByID retrieves a business document by ID.
func (repo *MongoBusinessRepo) GetByID(ctx context.Context, businessID string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var business models.Business
	filter := bson.M{"id": businessID}
	if err := repo.coll.FindOne(ctx, filter).Decode(&business); err != nil {
		return nil, fmt.Errorf("error fetching business with id %s: %w", businessID, err)
	}
	return &business, nil
}
