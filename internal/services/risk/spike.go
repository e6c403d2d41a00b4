package risk

import (
	"context"
	"log/slog"

	"ledgerguard/internal/logging"
	"ledgerguard/internal/metrics"

	"github.com/shopspring/decimal"
)

// SpikeCheck flags an amount above Multiplier times the average of every
// prior amount. Observe is its production entry point and records accepted
// amounts into the shared history.
type SpikeCheck struct {
	MinHistory int
	Multiplier decimal.Decimal

	history AmountHistory
	logger  *slog.Logger
	metrics metrics.MetricsCollector
}

// NewSpikeCheck builds the check from cfg over history.
func NewSpikeCheck(cfg Config, history AmountHistory, logger *slog.Logger, m metrics.MetricsCollector) *SpikeCheck {
	if history == nil {
		panic("amount history is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if m == nil {
		m = &metrics.NoopMetricsCollector{}
	}
	cfg = cfg.WithDefaults()
	return &SpikeCheck{
		MinHistory: cfg.MinHistory,
		Multiplier: cfg.SpikeMultiplier,
		history:    history,
		logger:     logger,
		metrics:    m,
	}
}

func (c *SpikeCheck) Name() string        { return CheckSpike }
func (c *SpikeCheck) SideEffecting() bool { return true }

// Evaluate judges amount against prior, which must not include amount.
func (c *SpikeCheck) Evaluate(amount decimal.Decimal, prior []decimal.Decimal) Verdict {
	v := Verdict{Check: c.Name(), Outcome: OutcomeClean, Amount: amount, HistoryLen: len(prior) + 1}
	if len(prior)+1 < c.MinHistory || len(prior) == 0 {
		v.Outcome = OutcomeInsufficientHistory
		return v
	}

	sum := decimal.Zero
	for _, a := range prior {
		sum = sum.Add(a)
	}
	n := decimal.NewFromInt(int64(len(prior)))
	v.Baseline = sum.Div(n)
	v.Limit = c.Multiplier.Mul(v.Baseline)

	if amount.Mul(n).GreaterThan(c.Multiplier.Mul(sum)) {
		v.Outcome = OutcomeFlagged
		v.Reason = ReasonSpike
	}
	return v
}

// Observe appends amount to the user's history and evaluates it. A flagged
// amount is rolled back; any other outcome keeps it. The whole step holds
// the user's history lock.
func (c *SpikeCheck) Observe(ctx context.Context, userID string, amount decimal.Decimal) (Verdict, error) {
	var v Verdict
	err := c.history.Update(ctx, userID, func(history []decimal.Decimal) ([]decimal.Decimal, error) {
		v = c.Evaluate(amount, history)
		if v.Flagged() {
			return history, nil
		}
		return append(history, amount), nil
	})
	if err != nil {
		c.metrics.RecordError("spike_check", "history")
		return Verdict{}, err
	}

	c.metrics.RecordRiskDecision(CheckSpike, string(v.Outcome))
	c.logger.Info("spike check",
		"user_id", userID,
		"amount", amount.String(),
		"outcome", v.Outcome,
		"baseline", v.Baseline.String(),
		"history_len", v.HistoryLen,
	)
	return v, nil
}
