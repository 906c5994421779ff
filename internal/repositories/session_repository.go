package repositories

import (
	"time"

	"benta/internal/models"
)

// SessionRepository defines the interface for session data access.
// Sessions are keyed by the hash of their token.
type SessionRepository interface {
	Create(session *models.Session) error
	// GetWithUser returns the session and its owner, or ErrNotFound.
	GetWithUser(id string) (*models.Session, error)
	UpdateExpiry(id string, expiresAt time.Time) error
	Delete(id string) error
	DeleteByUser(userID uint) error
}
