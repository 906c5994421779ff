package repositories

import (
	"fmt"
	"time"

	"benta/internal/models"

	"gorm.io/gorm"
)

// GORMSessionRepository is a GORM implementation of SessionRepository.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{db: db}
}

func (r *GORMSessionRepository) Create(session *models.Session) error {
	if err := r.db.Omit("User").Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *GORMSessionRepository) GetWithUser(id string) (*models.Session, error) {
	var session models.Session
	if err := r.db.Preload("User").First(&session, "id = ?", id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.User == nil {
		// Orphaned session: the owner is gone.
		return nil, fmt.Errorf("session owner: %w", ErrNotFound)
	}
	return &session, nil
}

func (r *GORMSessionRepository) UpdateExpiry(id string, expiresAt time.Time) error {
	res := r.db.Model(&models.Session{}).Where("id = ?", id).Update("expires_at", expiresAt)
	if res.Error != nil {
		return fmt.Errorf("failed to renew session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session for renewal: %w", ErrNotFound)
	}
	return nil
}

func (r *GORMSessionRepository) Delete(id string) error {
	if err := r.db.Delete(&models.Session{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteByUser removes every session owned by userID.
func (r *GORMSessionRepository) DeleteByUser(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete sessions of user %d: %w", userID, err)
	}
	return nil
}
