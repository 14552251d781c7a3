package expertRepo

import (
	"context"
	"time"

	"advisorly/config"
	"advisorly/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoExpertRepo is the MongoDB implementation of ExpertRepository.
type MongoExpertRepo struct {
	coll *mongo.Collection
}

// NewMongoExpertRepo returns a repository bound to the experts collection.
func NewMongoExpertRepo() *MongoExpertRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoExpertRepo{coll: db.Collection("experts")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
