package risk

import (
	"math"

	"github.com/shopspring/decimal"
)

// Check names
const (
	CheckRecencyWindow = "recency_window"
	CheckDeviation     = "deviation"
	CheckSpike         = "spike"
)

// Check compares a proposed amount against prior amounts.
type Check interface {
	Name() string
	// Evaluate never mutates history.
	Evaluate(amount decimal.Decimal, history []decimal.Decimal) Verdict
	// SideEffecting reports whether the check's production entry point
	// writes to shared history.
	SideEffecting() bool
}

// RecencyWindowCheck flags an amount above Multiplier times the average of
// the Window most recent transfers. history must be newest first.
type RecencyWindowCheck struct {
	Window     int
	Multiplier decimal.Decimal
}

// NewRecencyWindowCheck builds the check from cfg.
func NewRecencyWindowCheck(cfg Config) *RecencyWindowCheck {
	cfg = cfg.WithDefaults()
	return &RecencyWindowCheck{Window: cfg.RecencyWindow, Multiplier: cfg.RecencyMultiplier}
}

func (c *RecencyWindowCheck) Name() string        { return CheckRecencyWindow }
func (c *RecencyWindowCheck) SideEffecting() bool { return false }

func (c *RecencyWindowCheck) Evaluate(amount decimal.Decimal, history []decimal.Decimal) Verdict {
	v := Verdict{Check: c.Name(), Outcome: OutcomeClean, Amount: amount, HistoryLen: len(history)}
	if !amount.IsPositive() {
		v.Outcome = OutcomeFlagged
		v.Reason = ReasonInvalidAmount
		return v
	}
	if len(history) < c.Window {
		return v
	}

	sum := decimal.Zero
	for _, a := range history[:c.Window] {
		sum = sum.Add(a)
	}
	window := decimal.NewFromInt(int64(c.Window))
	v.Baseline = sum.Div(window)
	v.Limit = c.Multiplier.Mul(v.Baseline)

	// amount > m * sum/w, compared without division
	if amount.Mul(window).GreaterThan(c.Multiplier.Mul(sum)) {
		v.Outcome = OutcomeFlagged
		v.Reason = ReasonExceedsRecentAvg
	}
	return v
}

// DeviationCheck flags an amount further than Multiplier population standard
// deviations from the mean of the full history.
type DeviationCheck struct {
	MinHistory int
	Multiplier decimal.Decimal
}

// NewDeviationCheck builds the check from cfg.
func NewDeviationCheck(cfg Config) *DeviationCheck {
	cfg = cfg.WithDefaults()
	return &DeviationCheck{MinHistory: cfg.MinHistory, Multiplier: cfg.DeviationMultiplier}
}

func (c *DeviationCheck) Name() string        { return CheckDeviation }
func (c *DeviationCheck) SideEffecting() bool { return false }

func (c *DeviationCheck) Evaluate(amount decimal.Decimal, history []decimal.Decimal) Verdict {
	v := Verdict{Check: c.Name(), Amount: amount, HistoryLen: len(history)}
	if len(history) < c.MinHistory {
		v.Outcome = OutcomeInsufficientHistory
		return v
	}

	sum, sumSq := decimal.Zero, decimal.Zero
	for _, a := range history {
		sum = sum.Add(a)
		sumSq = sumSq.Add(a.Mul(a))
	}
	n := decimal.NewFromInt(int64(len(history)))

	// With d = n*amount - sum and s = n*sumSq - sum^2 (n^2 times the
	// variance), |amount - mean| > k*sigma  <=>  d^2 > k^2 * s.
	d := n.Mul(amount).Sub(sum)
	s := n.Mul(sumSq).Sub(sum.Mul(sum))
	k2 := c.Multiplier.Mul(c.Multiplier)

	v.Baseline = sum.Div(n)
	v.Limit = c.Multiplier.Mul(stdDev(s, n))
	if d.Mul(d).GreaterThan(k2.Mul(s)) {
		v.Outcome = OutcomeFlagged
		v.Reason = ReasonDeviatesFromPattern
	} else {
		v.Outcome = OutcomeClean
	}
	return v
}

// stdDev returns sqrt(s)/n for display. The flag decision does not depend on it.
func stdDev(s, n decimal.Decimal) decimal.Decimal {
	if !s.IsPositive() {
		return decimal.Zero
	}
	root := decimal.NewFromFloat(math.Sqrt(s.InexactFloat64()))
	return root.Div(n).Round(4)
}
