package handlers

import (
	"context"
	"log/slog"

	"ledgerguard/internal/services/banking"
	"ledgerguard/internal/utils/response"
	"ledgerguard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// FraudHandler exposes the standalone fraud checks.
type FraudHandler struct {
	service banking.Service
	logger  *slog.Logger
}

func NewFraudHandler(s banking.Service, logger *slog.Logger) *FraudHandler {
	return &FraudHandler{service: s, logger: logger}
}

type amountCheckRequest struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// Pattern handles POST /fraud/pattern.
func (h *FraudHandler) Pattern(c *fiber.Ctx) error {
	return h.amountCheck(c, "pattern check", h.service.CheckTransferPattern)
}

// Spike handles POST /fraud/spike.
func (h *FraudHandler) Spike(c *fiber.Ctx) error {
	return h.amountCheck(c, "spike check", h.service.DetectAmountSpike)
}

func (h *FraudHandler) amountCheck(c *fiber.Ctx, name string, check func(context.Context, string, decimal.Decimal) (banking.Result, error)) error {
	var req amountCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	v := validation.New()
	if v.FraudCheck(req.UserID); !v.Valid() {
		return response.ValidationError(c, v.Error())
	}

	res, err := check(c.UserContext(), req.UserID, req.Amount)
	if err != nil {
		h.logger.Error(name, "user_id", req.UserID, "error", err)
		return response.ServerError(c, name+" failed")
	}
	return writeResult(c, res, fiber.StatusOK)
}

// Screen handles POST /fraud/screen.
func (h *FraudHandler) Screen(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		IP     string `json:"ip"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if req.IP == "" {
		req.IP = c.IP()
	}

	v := validation.New()
	if v.Screen(req.UserID, req.Email, req.IP); !v.Valid() {
		return response.ValidationError(c, v.Error())
	}

	res, err := h.service.ScreenSignup(c.UserContext(), req.UserID, req.Email, req.IP)
	if err != nil {
		h.logger.Error("screen signup", "user_id", req.UserID, "error", err)
		return response.ServerError(c, "screening failed")
	}
	return writeResult(c, res, fiber.StatusOK)
}
