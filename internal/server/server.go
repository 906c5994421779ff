// Package server assembles the Fiber application from its dependencies.
package server

import (
	"strings"
	"time"

	"benta/internal/config"
	"benta/internal/handlers"
	"benta/internal/metrics"
	"benta/internal/middleware"
	"benta/internal/repositories"
	"benta/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options tweaks the application for tests.
type Options struct {
	// Publisher receives sale events; nil disables them.
	Publisher services.SaleEventPublisher
	// Clock overrides time.Now for session handling.
	Clock func() time.Time
	// DisableAccessLog turns off the request logger.
	DisableAccessLog bool
}

// NewApp wires repositories, services and handlers into a Fiber app.
func NewApp(cfg *config.Config, db *gorm.DB, opts Options) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	sessionRepo := repositories.NewGORMSessionRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	saleRepo := repositories.NewGORMSaleRepository(db)

	// --- Services ---
	var authOpts []services.AuthOption
	if opts.Clock != nil {
		authOpts = append(authOpts, services.WithClock(opts.Clock))
	}
	authService := services.NewAuthService(userRepo, sessionRepo, authOpts...)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	saleService := services.NewSaleService(saleRepo, opts.Publisher)

	transport := middleware.SessionTransport{
		CrossSite: cfg.IsProduction(),
		Bearer:    cfg.BearerEnabled,
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, transport)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)

	app := fiber.New(fiber.Config{
		AppName: "benta",
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if !opts.DisableAccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(middleware.Metrics())
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		// Fiber refuses credentials with a wildcard origin.
		AllowCredentials: allowOrigins != "" && !strings.Contains(allowOrigins, "*"),
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// --- API Routes ---
	api := app.Group("/api")
	api.Get("/ping", handlers.HandlePing)

	guard := handlers.Guard{
		middleware.OriginRequired(cfg.AllowedOrigins),
		middleware.SessionRequired(authService, transport),
	}
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute)

	authHandler.RegisterRoutes(api, guard, loginLimiter.Handler())
	productHandler.RegisterRoutes(api, guard)
	categoryHandler.RegisterRoutes(api, guard)
	saleHandler.RegisterRoutes(api, guard)

	return app
}
