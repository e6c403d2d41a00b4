// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"io"
	"log/slog"
	"time"

	"ledgerguard/internal/config"
	"ledgerguard/internal/handlers"
	"ledgerguard/internal/logging"
	"ledgerguard/internal/metrics"
	"ledgerguard/internal/middleware"
	"ledgerguard/internal/models"
	"ledgerguard/internal/services/auth"
	"ledgerguard/internal/services/banking"
	"ledgerguard/internal/services/history"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Banking banking.Service
	Auth    auth.Service
	History history.Log
	Stats   *metrics.CounterCollector
	Checks  map[string]handlers.Checker
	// Audit is the optional Postgres mirror of transfer records.
	Audit  handlers.AuditReader
	Logger *slog.Logger
	// AccessLog receives one line per request. Nil disables access logging.
	AccessLog io.Writer
	Version   string
}

// NewApp builds the fiber application with global middleware and routes.
func NewApp(cfg config.ServerConfig, deps Dependencies) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Stats == nil {
		deps.Stats = metrics.NewCounterCollector()
	}

	app := fiber.New(fiber.Config{
		AppName:      "ledgerguard",
		UnescapePath: true,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD",
		AllowCredentials: cfg.AllowedOrigins != "*",
	}))

	if deps.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
			Output: deps.AccessLog,
		}))
	}

	if cfg.LoginRateLimit > 0 {
		app.Use("/api/login", rateLimit(cfg.LoginRateLimit))
	}
	if cfg.RateLimit > 0 {
		app.Use("/api", rateLimit(cfg.RateLimit))
	}

	SetupRoutes(app, deps)
	return app
}

func rateLimit(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.Version, deps.Checks, deps.Stats, deps.History, deps.Audit)
	authHandler := handlers.NewAuthHandler(deps.Auth)
	accountHandler := handlers.NewAccountHandler(deps.Banking, deps.Audit, deps.Logger)
	transferHandler := handlers.NewTransferHandler(deps.Banking, deps.Logger)
	fraudHandler := handlers.NewFraudHandler(deps.Banking, deps.Logger)
	authMiddleware := middleware.NewAuthMiddleware(deps.Auth, deps.Logger)

	// Public routes
	app.Get("/health", healthHandler.HealthCheck)
	api := app.Group("/api")
	api.Post("/login", authHandler.Login)

	// Operator routes with authentication
	protected := api.Group("", authMiddleware.Handler)

	accounts := protected.Group("/accounts")
	accounts.Post("/", middleware.HasPermission(models.PermissionAccountWrite), accountHandler.Create)
	accounts.Get("/", middleware.HasPermission(models.PermissionAccountRead), accountHandler.List)
	accounts.Get("/:email", middleware.HasPermission(models.PermissionAccountRead), accountHandler.Get)
	accounts.Get("/:email/transfers", middleware.HasPermission(models.PermissionTransferRead), accountHandler.Transfers)

	protected.Post("/transfers", middleware.HasPermission(models.PermissionTransferWrite), transferHandler.Transfer)

	fraud := protected.Group("/fraud")
	fraud.Post("/pattern", middleware.HasPermission(models.PermissionFraudRead), fraudHandler.Pattern)
	fraud.Post("/spike", middleware.HasPermission(models.PermissionTransferWrite), fraudHandler.Spike)
	fraud.Post("/screen", middleware.HasPermission(models.PermissionFraudRead), fraudHandler.Screen)

	protected.Get("/stats", middleware.HasPermission(models.PermissionStatsRead), healthHandler.Stats)
}
