package services

import (
	"errors"
	"fmt"
	"time"

	"benta/internal/metrics"
	"benta/internal/models"
	"benta/internal/repositories"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionDuration is how long a session lives without activity.
	SessionDuration = 30 * 24 * time.Hour
	// SessionRenewWindow is the trailing part of the session lifetime in
	// which a validation pushes the expiry forward again.
	SessionRenewWindow = 15 * 24 * time.Hour
)

var (
	// ErrNoSession means the token does not map to a live session.
	// Expired and unknown tokens are not distinguished.
	ErrNoSession = errors.New("no session")
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService issues, validates, renews and revokes login sessions.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	now         func() time.Time
}

// AuthOption customizes an AuthService.
type AuthOption func(*AuthService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, opts ...AuthOption) *AuthService {
	s := &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials and opens a new session for the user.
// It returns the bearer token to hand to the client.
func (s *AuthService) Login(username, password string) (string, *models.Session, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.RecordLogin("invalid")
			return "", nil, nil, ErrInvalidCredentials
		}
		metrics.RecordLogin("error")
		return "", nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		metrics.RecordLogin("invalid")
		return "", nil, nil, ErrInvalidCredentials
	}

	token, err := GenerateSessionToken()
	if err != nil {
		metrics.RecordLogin("error")
		return "", nil, nil, err
	}
	session, err := s.CreateSession(token, user.ID)
	if err != nil {
		metrics.RecordLogin("error")
		return "", nil, nil, err
	}
	metrics.RecordLogin("success")
	return token, session, user, nil
}

// CreateSession persists a session for token owned by userID.
func (s *AuthService) CreateSession(token string, userID uint) (*models.Session, error) {
	session := &models.Session{
		ID:        HashSessionToken(token),
		UserID:    userID,
		ExpiresAt: s.now().Add(SessionDuration),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	metrics.RecordSessionEvent("created")
	return session, nil
}

// ValidateSessionToken resolves token to its session and user.
// Expired sessions are deleted on sight; sessions in the renewal window get
// their expiry moved to now+SessionDuration before returning.
func (s *AuthService) ValidateSessionToken(token string) (*models.Session, *models.User, error) {
	id := HashSessionToken(token)
	session, err := s.sessionRepo.GetWithUser(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrNoSession
		}
		return nil, nil, fmt.Errorf("failed to validate session: %w", err)
	}

	now := s.now()
	if !now.Before(session.ExpiresAt) {
		if err := s.sessionRepo.Delete(id); err != nil {
			return nil, nil, fmt.Errorf("failed to delete expired session: %w", err)
		}
		metrics.RecordSessionEvent("expired")
		return nil, nil, ErrNoSession
	}

	if !now.Before(session.ExpiresAt.Add(-SessionRenewWindow)) {
		expiresAt := now.Add(SessionDuration)
		if err := s.sessionRepo.UpdateExpiry(id, expiresAt); err != nil {
			return nil, nil, fmt.Errorf("failed to renew session: %w", err)
		}
		session.ExpiresAt = expiresAt
		metrics.RecordSessionEvent("renewed")
		log.WithField("user_id", session.UserID).Debug("Session renewed")
	}

	return session, session.User, nil
}

// InvalidateSession deletes a single session by id.
func (s *AuthService) InvalidateSession(sessionID string) error {
	if err := s.sessionRepo.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	metrics.RecordSessionEvent("revoked")
	return nil
}

// InvalidateAllSessions deletes every session of a user.
func (s *AuthService) InvalidateAllSessions(userID uint) error {
	if err := s.sessionRepo.DeleteByUser(userID); err != nil {
		return fmt.Errorf("failed to invalidate sessions: %w", err)
	}
	metrics.RecordSessionEvent("revoked_all")
	return nil
}
