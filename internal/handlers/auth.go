package handlers

import (
	"errors"

	"ledgerguard/internal/services/auth"
	"ledgerguard/internal/utils/response"
	"ledgerguard/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges an operator key for a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		OperatorID string `json:"operator_id"`
		Key        string `json:"key"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	if v.Login(input.OperatorID, input.Key); !v.Valid() {
		return response.ValidationError(c, v.Error())
	}

	token, claims, err := h.authService.Login(c.UserContext(), input.OperatorID, input.Key)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return response.Error(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrLoginDisabled):
		return response.Error(c, fiber.StatusServiceUnavailable, err.Error())
	case err != nil:
		return response.ServerError(c, "error generating token")
	}

	return response.Success(c, "login successful", fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   claims.ExpiresAt.Time,
		"role":         claims.Role,
		"permissions":  claims.Permissions,
	})
}
