package sessionRepo

import (
	"advisorly/models"
)

// SessionRepository defines methods for consultation session data access.
type SessionRepository interface {
	// GetByID retrieves a session by its unique ID.
	GetByID(id string) (*models.Session, error)
	// Create inserts a new session record.
	Create(session *models.Session) error
	// Update applies a partial update to a session.
	Update(id string, update models.SessionUpdate) error
	// UpdateWithVersion applies a partial update only if the persisted
	// version still matches; the version is bumped atomically. A stale
	// version yields a VersionConflictError.
	UpdateWithVersion(id string, expectedVersion int64, update models.SessionUpdate) error
	// GetByUser lists sessions belonging to a user, newest first.
	GetByUser(userID string) ([]models.Session, error)
}

// VersionConflictError signals an optimistic concurrency failure: the
// session was modified between read and write.
type VersionConflictError struct {
	SessionID string
}

func (e *VersionConflictError) Error() string {
	return "session " + e.SessionID + " was modified concurrently"
}
