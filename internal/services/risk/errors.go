package risk

import apperrors "ledgerguard/internal/errors"

// Risk errors
var (
	ErrFraudBlocked        = apperrors.ErrFraudBlocked
	ErrInsufficientHistory = apperrors.ErrInsufficientHistory
)
