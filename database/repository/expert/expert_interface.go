package expertRepo

import (
	"advisorly/models"
)

// ExpertRepository defines methods for expert directory data access.
type ExpertRepository interface {
	// GetByID retrieves an expert by its unique ID.
	GetByID(id string) (*models.Expert, error)
	// GetAll retrieves the full expert pool as a read-only snapshot.
	GetAll() ([]models.Expert, error)
	// Create inserts a new expert record.
	Create(expert *models.Expert) error
	// Update modifies an existing expert record.
	Update(expert *models.Expert) error
	// Delete removes an expert record by its ID.
	Delete(id string) error
	// AddAvailabilityHold records a calendar hold for a scheduled session.
	AddAvailabilityHold(expertID string, hold models.AvailabilityHold) error
	// RemoveAvailabilityHold releases the hold created for a session.
	RemoveAvailabilityHold(expertID, sessionID string) error
	// IncrementCompletedSessions bumps the expert's completed-session tally.
	IncrementCompletedSessions(expertID string) error
}
