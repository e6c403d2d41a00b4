package transfer

import apperrors "ledgerguard/internal/errors"

// Transfer errors
var (
	ErrAccountNotFound   = apperrors.ErrAccountNotFound
	ErrInsufficientFunds = apperrors.ErrInsufficientFunds
	ErrInvalidAmount     = apperrors.ErrInvalidAmount
	ErrFraudBlocked      = apperrors.ErrFraudBlocked
)
