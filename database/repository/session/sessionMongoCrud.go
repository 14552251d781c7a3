package sessionRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepo is the MongoDB implementation of SessionRepository.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo returns a repository bound to the sessions collection.
func NewMongoSessionRepo() *MongoSessionRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoSessionRepo{coll: db.Collection("sessions")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a session document by its ID.
func (r *MongoSessionRepo) GetByID(id string) (*models.Session, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var session models.Session
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errs.NotFoundError{Entity: "session", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &session, nil
}

// Create inserts a new session document.
func (r *MongoSessionRepo) Create(session *models.Session) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Update applies a partial update to a session document.
func (r *MongoSessionRepo) Update(id string, update models.SessionUpdate) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	setDoc, err := toSetDocument(update)
	if err != nil {
		return err
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": setDoc})
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return &errs.NotFoundError{Entity: "session", ID: id}
	}
	return nil
}

// UpdateWithVersion applies a partial update guarded by the session version.
func (r *MongoSessionRepo) UpdateWithVersion(id string, expectedVersion int64, update models.SessionUpdate) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	setDoc, err := toSetDocument(update)
	if err != nil {
		return err
	}
	filter := bson.M{"id": id, "version": expectedVersion}
	updateDoc := bson.M{
		"$set": setDoc,
		"$inc": bson.M{"version": 1},
	}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing session from a stale version.
		count, cerr := r.coll.CountDocuments(ctx, bson.M{"id": id})
		if cerr == nil && count == 0 {
			return &errs.NotFoundError{Entity: "session", ID: id}
		}
		return &VersionConflictError{SessionID: id}
	}
	return nil
}

// GetByUser lists sessions for a user, newest first.
func (r *MongoSessionRepo) GetByUser(userID string) ([]models.Session, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

// toSetDocument converts a typed partial update into a bson $set document,
// skipping nil fields.
func toSetDocument(update models.SessionUpdate) (bson.M, error) {
	raw, err := bson.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session update: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to build session update document: %w", err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("empty session update")
	}
	return doc, nil
}
