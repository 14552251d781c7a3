package requestRepo

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

// RequestRepository defines read access to consultation requests. Requests
// are created upstream; this service only reads them.
type RequestRepository interface {
	GetByID(id string) (*models.ConsultationRequest, error)
}

// MongoRequestRepo is the MongoDB implementation of RequestRepository.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo returns a repository bound to the requests collection.
func NewMongoRequestRepo() *MongoRequestRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoRequestRepo{coll: db.Collection("consultation_requests")}
}

// GetByID retrieves a consultation request by its ID.
func (r *MongoRequestRepo) GetByID(id string) (*models.ConsultationRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var req models.ConsultationRequest
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errs.NotFoundError{Entity: "consultation request", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch consultation request %s: %w", id, err)
	}
	return &req, nil
}
