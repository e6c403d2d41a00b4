// Package errors defines the business error taxonomy shared by the ledger,
// the risk evaluators and the transfer orchestrator.
package errors

import stderrors "errors"

// Stable error codes. Handlers map these onto HTTP statuses.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeFraudBlocked        = "FRAUD_BLOCKED"
	CodeInsufficientHistory = "INSUFFICIENT_HISTORY"
	CodeInvalidRequest      = "INVALID_REQUEST"
)

// DomainError is an expected business outcome. It is never a programming fault.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so wrapped or
// re-created errors still satisfy errors.Is against the package sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first DomainError in err's chain, or "".
func CodeOf(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ErrInternal marks invariant violations such as store corruption. It is
// not a DomainError.
var ErrInternal = stderrors.New("internal invariant violated")
