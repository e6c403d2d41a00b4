package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerguard/internal/models"
	"ledgerguard/internal/services/banking"
	"ledgerguard/internal/utils"
	"ledgerguard/internal/utils/response"
	"ledgerguard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AuditReader serves transfer history and volumes from the audit mirror.
type AuditReader interface {
	ListByAccount(ctx context.Context, email string, limit, offset int) ([]models.TransferRecord, int64, error)
	VolumeByStatus(ctx context.Context) (map[models.TransferStatus]decimal.Decimal, error)
}

// AccountHandler exposes account endpoints.
type AccountHandler struct {
	service banking.Service
	audit   AuditReader
	logger  *slog.Logger
}

// NewAccountHandler creates an AccountHandler. audit may be nil, in which
// case transfer history is paged from the in-memory log.
func NewAccountHandler(s banking.Service, audit AuditReader, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{service: s, audit: audit, logger: logger}
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var req models.NewAccount
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	v := validation.New()
	if v.NewAccount(req); !v.Valid() {
		return response.ValidationError(c, v.Error())
	}

	res, err := h.service.CreateAccount(c.UserContext(), req)
	if err != nil {
		h.logger.Error("create account", "error", err)
		return response.ServerError(c, "failed to create account")
	}
	return writeResult(c, res, fiber.StatusCreated)
}

// Get handles GET /accounts/:email.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	res, err := h.service.ViewAccount(c.UserContext(), c.Params("email"))
	if err != nil {
		h.logger.Error("view account", "error", err)
		return response.ServerError(c, "failed to load account")
	}
	return writeResult(c, res, fiber.StatusOK)
}

// List handles GET /accounts.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	res, err := h.service.ListAccounts(c.UserContext())
	if err != nil {
		h.logger.Error("list accounts", "error", err)
		return response.ServerError(c, "failed to list accounts")
	}
	return writeResult(c, res, fiber.StatusOK)
}

// Transfers handles GET /accounts/:email/transfers with page and limit
// query parameters.
func (h *AccountHandler) Transfers(c *fiber.Ctx) error {
	email := c.Params("email")
	p := utils.GetPagination(c, 1, 20)

	if h.audit != nil {
		res, err := h.service.ViewAccount(c.UserContext(), email)
		if err != nil {
			h.logger.Error("transfer history", "error", err)
			return response.ServerError(c, "failed to load transfers")
		}
		if !res.Success {
			return writeResult(c, res, fiber.StatusOK)
		}

		records, total, err := h.audit.ListByAccount(c.UserContext(), email, p.Limit, p.Offset)
		if err == nil {
			p.SetTotal(total)
			msg := fmt.Sprintf("%d transfers for %s", total, models.NormalizeEmail(email))
			return response.Success(c, msg, utils.NewPaginatedResponse(records, p))
		}
		h.logger.Warn("audit history unavailable, using in-memory log", "email", email, "error", err)
	}

	res, err := h.service.TransferHistory(c.UserContext(), email)
	if err != nil {
		h.logger.Error("transfer history", "error", err)
		return response.ServerError(c, "failed to load transfers")
	}
	if !res.Success {
		return writeResult(c, res, fiber.StatusOK)
	}

	p.SetTotal(int64(len(res.Records)))
	start, end := p.Window(len(res.Records))
	return response.Success(c, res.Message, utils.NewPaginatedResponse(res.Records[start:end], p))
}
