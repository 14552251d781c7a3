package expertRepo

import (
	"errors"
	"fmt"
	"time"

	"advisorly/errs"
	"advisorly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves an expert document by its ID.
func (r *MongoExpertRepo) GetByID(id string) (*models.Expert, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var expert models.Expert
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&expert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &errs.NotFoundError{Entity: "expert", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch expert %s: %w", id, err)
	}
	return &expert, nil
}

// GetAll retrieves all expert documents.
func (r *MongoExpertRepo) GetAll() ([]models.Expert, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list experts: %w", err)
	}
	defer cursor.Close(ctx)

	var experts []models.Expert
	if err := cursor.All(ctx, &experts); err != nil {
		return nil, fmt.Errorf("failed to decode experts: %w", err)
	}
	return experts, nil
}

// Create inserts a new expert document.
func (r *MongoExpertRepo) Create(expert *models.Expert) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, expert); err != nil {
		return fmt.Errorf("failed to create expert: %w", err)
	}
	return nil
}

// Update modifies an existing expert document.
func (r *MongoExpertRepo) Update(expert *models.Expert) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": expert.ID}, bson.M{"$set": expert})
	if err != nil {
		return fmt.Errorf("failed to update expert %s: %w", expert.ID, err)
	}
	if result.MatchedCount == 0 {
		return &errs.NotFoundError{Entity: "expert", ID: expert.ID}
	}
	return nil
}

// Delete removes an expert document by its ID.
func (r *MongoExpertRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete expert %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return &errs.NotFoundError{Entity: "expert", ID: id}
	}
	return nil
}

// AddAvailabilityHold pushes a calendar hold onto the expert document.
func (r *MongoExpertRepo) AddAvailabilityHold(expertID string, hold models.AvailabilityHold) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"availabilityHolds": hold},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": expertID}, update)
	if err != nil {
		return fmt.Errorf("failed to add hold for expert %s: %w", expertID, err)
	}
	if result.MatchedCount == 0 {
		return &errs.NotFoundError{Entity: "expert", ID: expertID}
	}
	return nil
}

// RemoveAvailabilityHold pulls the hold recorded for the given session.
func (r *MongoExpertRepo) RemoveAvailabilityHold(expertID, sessionID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"availabilityHolds": bson.M{"sessionId": sessionID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": expertID}, update)
	if err != nil {
		return fmt.Errorf("failed to release hold for expert %s: %w", expertID, err)
	}
	if result.MatchedCount == 0 {
		return &errs.NotFoundError{Entity: "expert", ID: expertID}
	}
	return nil
}

// IncrementCompletedSessions bumps the completed-session tally by one.
func (r *MongoExpertRepo) IncrementCompletedSessions(expertID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"completedSessions": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": expertID}, update)
	if err != nil {
		return fmt.Errorf("failed to increment completed sessions for expert %s: %w", expertID, err)
	}
	if result.MatchedCount == 0 {
		return &errs.NotFoundError{Entity: "expert", ID: expertID}
	}
	return nil
}
