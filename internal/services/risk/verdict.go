package risk

import "github.com/shopspring/decimal"

// Outcome is the result class of a transfer check.
type Outcome string

const (
	OutcomeClean               Outcome = "clean"
	OutcomeFlagged             Outcome = "flagged"
	OutcomeInsufficientHistory Outcome = "insufficient_history"
)

// Flag reasons
const (
	ReasonInvalidAmount       = "invalid_amount"
	ReasonExceedsRecentAvg    = "exceeds_recent_average"
	ReasonDeviatesFromPattern = "deviates_from_pattern"
	ReasonSpike               = "spike"
)

// Verdict is what a Check concludes about one amount.
type Verdict struct {
	Check      string          `json:"check"`
	Outcome    Outcome         `json:"outcome"`
	Reason     string          `json:"reason,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Baseline   decimal.Decimal `json:"baseline"`
	Limit      decimal.Decimal `json:"limit"`
	HistoryLen int             `json:"history_len"`
}

// Flagged reports whether the check considers the amount fraudulent.
func (v Verdict) Flagged() bool {
	return v.Outcome == OutcomeFlagged
}

// Err maps the verdict onto the business error taxonomy. Clean verdicts
// return nil.
func (v Verdict) Err() error {
	switch v.Outcome {
	case OutcomeFlagged:
		return ErrFraudBlocked
	case OutcomeInsufficientHistory:
		return ErrInsufficientHistory
	default:
		return nil
	}
}
