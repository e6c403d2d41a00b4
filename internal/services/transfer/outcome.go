package transfer

import (
	"ledgerguard/internal/models"
	"ledgerguard/internal/services/risk"

	"github.com/shopspring/decimal"
)

// State is a step of the transfer state machine. Committed, Blocked and
// Rejected are terminal.
type State string

const (
	StateValidating       State = "validating"
	StateAccountsResolved State = "accounts_resolved"
	StateRiskChecked      State = "risk_checked"
	StateBalanceChecked   State = "balance_checked"
	StateCommitted        State = "committed"
	StateBlocked          State = "blocked"
	StateRejected         State = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateBlocked || s == StateRejected
}

// RejectReason explains a Rejected outcome.
type RejectReason string

const (
	ReasonSenderNotFound    RejectReason = "sender_not_found"
	ReasonRecipientNotFound RejectReason = "recipient_not_found"
	ReasonInsufficientFunds RejectReason = "insufficient_funds"
)

// Outcome is the terminal result of one transfer request.
type Outcome struct {
	State     State                  `json:"state"`
	Reason    RejectReason           `json:"reason,omitempty"`
	Amount    decimal.Decimal        `json:"amount"`
	FromEmail string                 `json:"from_email"`
	FromName  string                 `json:"from_name,omitempty"`
	ToEmail   string                 `json:"to_email"`
	ToName    string                 `json:"to_name,omitempty"`
	Verdict   *risk.Verdict          `json:"verdict,omitempty"`
	Record    *models.TransferRecord `json:"record,omitempty"`
}

// Err maps the outcome onto the business error taxonomy. Committed returns nil.
func (o Outcome) Err() error {
	switch o.State {
	case StateCommitted:
		return nil
	case StateBlocked:
		if o.Verdict != nil && o.Verdict.Reason == risk.ReasonInvalidAmount {
			return ErrInvalidAmount
		}
		return ErrFraudBlocked
	}
	switch o.Reason {
	case ReasonSenderNotFound, ReasonRecipientNotFound:
		return ErrAccountNotFound
	case ReasonInsufficientFunds:
		return ErrInsufficientFunds
	}
	return nil
}
