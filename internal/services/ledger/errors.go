package ledger

import apperrors "ledgerguard/internal/errors"

// Store errors
var (
	ErrAccountNotFound   = apperrors.ErrAccountNotFound
	ErrAccountExists     = apperrors.ErrAccountExists
	ErrInsufficientFunds = apperrors.ErrInsufficientFunds
	ErrInvalidAmount     = apperrors.ErrInvalidAmount
	ErrInvalidEmail      = apperrors.ErrInvalidEmail
)
