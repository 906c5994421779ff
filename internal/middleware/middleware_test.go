package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"benta/internal/middleware"
	"benta/internal/models"
	"benta/internal/repositories"
	"benta/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const allowedOrigin = "http://localhost:5173"

// MockSessionRepository is a mock implementation of repositories.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(session *models.Session) error {
	return m.Called(session).Error(0)
}

func (m *MockSessionRepository) GetWithUser(id string) (*models.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) UpdateExpiry(id string, expiresAt time.Time) error {
	return m.Called(id, expiresAt).Error(0)
}

func (m *MockSessionRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockSessionRepository) DeleteByUser(userID uint) error {
	return m.Called(userID).Error(0)
}

func setupApp(repo *MockSessionRepository, transport middleware.SessionTransport) *fiber.App {
	authService := services.NewAuthService(nil, repo)
	app := fiber.New()
	protected := app.Group("/api",
		middleware.OriginRequired([]string{allowedOrigin}),
		middleware.SessionRequired(authService, transport),
	)
	handler := func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		return c.JSON(fiber.Map{"username": user.Username})
	}
	protected.Get("/thing", handler)
	protected.Post("/thing", handler)
	return app
}

func liveSession(token string) *models.Session {
	return &models.Session{
		ID:        services.HashSessionToken(token),
		UserID:    1,
		ExpiresAt: time.Now().Add(25 * 24 * time.Hour),
		User:      &models.User{ID: 1, Username: "admin"},
	}
}

func TestOriginRequired_RejectsBeforeSessionLookup(t *testing.T) {
	repo := new(MockSessionRepository)
	app := setupApp(repo, middleware.SessionTransport{})

	for _, origin := range []string{"http://evil.example.com", ""} {
		req := httptest.NewRequest(http.MethodPost, "/api/thing", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok"})
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "origin %q", origin)
		resp.Body.Close()
	}

	repo.AssertNotCalled(t, "GetWithUser", mock.Anything)
}

func TestOriginRequired_GetSkipsCheck(t *testing.T) {
	repo := new(MockSessionRepository)
	repo.On("GetWithUser", services.HashSessionToken("tok")).Return(liveSession("tok"), nil).Once()
	app := setupApp(repo, middleware.SessionTransport{})

	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	repo.AssertExpectations(t)
}

func TestSessionRequired(t *testing.T) {
	t.Run("NoToken", func(t *testing.T) {
		app := setupApp(new(MockSessionRepository), middleware.SessionTransport{})
		req := httptest.NewRequest(http.MethodPost, "/api/thing", nil)
		req.Header.Set("Origin", allowedOrigin)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ValidCookie", func(t *testing.T) {
		repo := new(MockSessionRepository)
		repo.On("GetWithUser", services.HashSessionToken("tok")).Return(liveSession("tok"), nil).Once()
		app := setupApp(repo, middleware.SessionTransport{})

		req := httptest.NewRequest(http.MethodPost, "/api/thing", nil)
		req.Header.Set("Origin", allowedOrigin)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownSessionClearsCookie", func(t *testing.T) {
		repo := new(MockSessionRepository)
		repo.On("GetWithUser", mock.Anything).Return(nil, fmt.Errorf("session: %w", repositories.ErrNotFound)).Once()
		app := setupApp(repo, middleware.SessionTransport{})

		req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "stale"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var cleared *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == middleware.SessionCookieName {
				cleared = c
			}
		}
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.True(t, cleared.Expires.Before(time.Now()))
		assert.True(t, cleared.HttpOnly)
	})

	t.Run("StorageErrorFailsClosed", func(t *testing.T) {
		repo := new(MockSessionRepository)
		repo.On("GetWithUser", mock.Anything).Return(nil, fmt.Errorf("db down")).Once()
		app := setupApp(repo, middleware.SessionTransport{})

		req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSessionRequired_Bearer(t *testing.T) {
	repo := new(MockSessionRepository)
	repo.On("GetWithUser", services.HashSessionToken("tok")).Return(liveSession("tok"), nil).Once()

	// Disabled: header ignored, no lookup.
	app := setupApp(repo, middleware.SessionTransport{})
	req := httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Enabled.
	app = setupApp(repo, middleware.SessionTransport{Bearer: true})
	req = httptest.NewRequest(http.MethodGet, "/api/thing", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	repo.AssertExpectations(t)
}

func TestSessionTransport_CookieAttributes(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	for _, tc := range []struct {
		name      string
		crossSite bool
		sameSite  http.SameSite
		secure    bool
	}{
		{"Development", false, http.SameSiteLaxMode, false},
		{"Production", true, http.SameSiteNoneMode, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			transport := middleware.SessionTransport{CrossSite: tc.crossSite}
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				transport.SetSessionCookie(c, "tok", expires)
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			cookies := resp.Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "tok", cookies[0].Value)
			assert.Equal(t, "/", cookies[0].Path)
			assert.True(t, cookies[0].HttpOnly)
			assert.Equal(t, tc.secure, cookies[0].Secure)
			assert.Equal(t, tc.sameSite, cookies[0].SameSite)
			assert.True(t, expires.Equal(cookies[0].Expires))
		})
	}
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", middleware.NewRateLimiter(2).Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
