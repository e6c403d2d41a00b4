// Package middleware provides HTTP middleware components for the application.
// It includes bearer-token authentication and permission checks for the
// fiber web framework.
package middleware

import (
	"log/slog"
	"strings"

	"ledgerguard/internal/logging"
	"ledgerguard/internal/models"
	"ledgerguard/internal/services/auth"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and operator authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the operator claims to the request context.
type AuthMiddleware struct {
	authService auth.Service
	logger      *slog.Logger
}

func NewAuthMiddleware(authService auth.Service, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = logging.Discard()
	}
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Handler validates JWT tokens and adds claims to the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}

	claims, err := m.authService.Verify(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		m.logger.Debug("token validation failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	c.Locals("claims", claims)
	c.Locals("operatorID", claims.OperatorID)
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.OperatorClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		// Admins hold every permission
		if claims.Role == models.RoleAdmin {
			return c.Next()
		}

		if claims.HasPermission(permission) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
