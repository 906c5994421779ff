package handlers

import (
	"errors"

	"benta/internal/middleware"
	"benta/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	transport   middleware.SessionTransport
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, transport middleware.SessionTransport) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		transport:   transport,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes. limiter guards login.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guard Guard, limiter fiber.Handler) {
	router.Post("/login", limiter, h.HandleLogin)
	router.Post("/logout", h.HandleLogout)
	router.Post("/logout-all", guard.Then(h.HandleLogoutAll)...)
	router.Get("/auth", h.HandleAuth)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// HandleLogin checks the credentials, opens a session and sets the cookie.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	token, session, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Usuário ou senha inválidos",
			})
		}
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "ERRO: " + err.Error(),
		})
	}

	h.transport.SetSessionCookie(c, token, session.ExpiresAt)

	resp := fiber.Map{
		"message": "Login realizado com sucesso",
		"user":    userResponse{ID: user.ID, Username: user.Username},
	}
	if h.transport.Bearer {
		resp["token"] = token
		resp["expiresAt"] = session.ExpiresAt
	}
	return c.JSON(resp)
}

// HandleLogout invalidates the current session and clears the cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token := h.transport.Token(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Não autorizado",
		})
	}

	session, _, err := h.authService.ValidateSessionToken(token)
	if err != nil {
		if !errors.Is(err, services.ErrNoSession) {
			log.Printf("Error validating session on logout: %v", err)
		}
		h.transport.ClearSessionCookie(c)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Não autorizado",
		})
	}

	if err := h.authService.InvalidateSession(session.ID); err != nil {
		log.Printf("Error invalidating session: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "ERRO: " + err.Error(),
		})
	}
	h.transport.ClearSessionCookie(c)
	return c.JSON(fiber.Map{
		"message": "Logout realizado com sucesso",
	})
}

// HandleLogoutAll invalidates every session of the current user.
func (h *AuthHandler) HandleLogoutAll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.authService.InvalidateAllSessions(user.ID); err != nil {
		log.Printf("Error invalidating sessions of user %d: %v", user.ID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "ERRO: " + err.Error(),
		})
	}
	h.transport.ClearSessionCookie(c)
	return c.JSON(fiber.Map{
		"message": "Todas as sessões foram encerradas",
	})
}

// HandleAuth reports the logged-in user, or 401.
func (h *AuthHandler) HandleAuth(c *fiber.Ctx) error {
	token := h.transport.Token(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Não autorizado",
		})
	}

	_, user, err := h.authService.ValidateSessionToken(token)
	if err != nil {
		if !errors.Is(err, services.ErrNoSession) {
			log.Printf("Error validating session: %v", err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Não autorizado",
		})
	}

	return c.JSON(fiber.Map{
		"user": userResponse{ID: user.ID, Username: user.Username},
	})
}
