package handlers

import (
	"log/slog"

	"ledgerguard/internal/services/banking"
	"ledgerguard/internal/utils/response"
	"ledgerguard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// TransferHandler exposes the transfer endpoint.
type TransferHandler struct {
	service banking.Service
	logger  *slog.Logger
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s banking.Service, logger *slog.Logger) *TransferHandler {
	return &TransferHandler{service: s, logger: logger}
}

// Transfer handles POST /transfers requests.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var req struct {
		FromEmail string          `json:"from_email"`
		ToEmail   string          `json:"to_email"`
		Amount    decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	v := validation.New()
	if v.Transfer(req.FromEmail, req.ToEmail); !v.Valid() {
		return response.ValidationError(c, v.Error())
	}

	res, err := h.service.TransferMoney(c.UserContext(), req.FromEmail, req.ToEmail, req.Amount)
	if err != nil {
		h.logger.Error("transfer", "from", req.FromEmail, "to", req.ToEmail, "error", err)
		return response.ServerError(c, "transfer failed")
	}
	return writeResult(c, res, fiber.StatusOK)
}
