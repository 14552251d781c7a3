package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"advisorly/config"
	"advisorly/database"
	"advisorly/errs"
	"advisorly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the read access this service needs to platform
// users (profile preferences and push/contact targets).
type UserRepository interface {
	GetByID(id string) (*models.User, error)
}

// MongoUserRepo is the MongoDB implementation of UserRepository.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a repository bound to the users collection.
func NewMongoUserRepo() *MongoUserRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoUserRepo{coll: db.Collection("users")}
}

// GetByID retrieves a user document by its ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errs.NotFoundError{Entity: "user", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	return &user, nil
}
