package handlers

import (
	apperrors "ledgerguard/internal/errors"
	"ledgerguard/internal/services/banking"
	"ledgerguard/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// statusFor picks the HTTP status of a banking result.
func statusFor(r banking.Result, okStatus int) int {
	if r.Success {
		return okStatus
	}
	switch r.Code {
	case apperrors.CodeNotFound:
		return fiber.StatusNotFound
	case apperrors.CodeAlreadyExists:
		return fiber.StatusConflict
	case apperrors.CodeInsufficientFunds, apperrors.CodeFraudBlocked:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusBadRequest
	}
}

func writeResult(c *fiber.Ctx, r banking.Result, okStatus int) error {
	return response.Result(c, statusFor(r, okStatus), r.Message, r.Code, r)
}
