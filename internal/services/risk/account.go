package risk

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"ledgerguard/internal/logging"
	"ledgerguard/internal/metrics"
	"ledgerguard/internal/models"
)

// Signal names
const (
	SignalSuspiciousEmailDomain = "suspicious_email_domain"
	SignalDigitsInName          = "digits_in_name"
	SignalExcessSpecialChars    = "excess_special_chars"
	SignalInvalidPhone          = "invalid_phone"
	SignalHighInitialBalance    = "high_initial_balance"
	SignalWeakAddress           = "weak_address"
	SignalRandomEmailLocalPart  = "random_email_local_part"
	SignalNameEmailMismatch     = "name_email_mismatch"
)

type signal struct {
	name   string
	weight int
	test   func(cfg *Config, app models.NewAccount) bool
}

// accountSignals is evaluated in order, unconditionally.
var accountSignals = []signal{
	{SignalSuspiciousEmailDomain, 2, func(cfg *Config, app models.NewAccount) bool {
		email := models.NormalizeEmail(app.Email)
		return !strings.HasSuffix(email, strings.ToLower(cfg.TrustedEmailSuffix))
	}},
	{SignalDigitsInName, 3, func(_ *Config, app models.NewAccount) bool {
		return countRunes(app.FullName, unicode.IsDigit) > 0
	}},
	{SignalExcessSpecialChars, 2, func(_ *Config, app models.NewAccount) bool {
		return countRunes(app.FullName, isSpecial) > 2
	}},
	{SignalInvalidPhone, 2, func(_ *Config, app models.NewAccount) bool {
		return utf8.RuneCountInString(app.Phone) < 10 || countRunes(app.Phone, unicode.IsDigit) != utf8.RuneCountInString(app.Phone)
	}},
	{SignalHighInitialBalance, 3, func(cfg *Config, app models.NewAccount) bool {
		return app.InitialBalance.GreaterThan(cfg.HighBalanceCeiling)
	}},
	{SignalWeakAddress, 1, func(_ *Config, app models.NewAccount) bool {
		return strings.TrimSpace(app.Address) == "" || utf8.RuneCountInString(app.Address) < 10
	}},
	{SignalRandomEmailLocalPart, 2, func(_ *Config, app models.NewAccount) bool {
		local := localPart(app.Email)
		return utf8.RuneCountInString(local) > 20 ||
			countRunes(local, unicode.IsDigit) > 5 ||
			countRunes(local, isSpecial) > 3
	}},
	{SignalNameEmailMismatch, 1, func(_ *Config, app models.NewAccount) bool {
		local := strings.ToLower(localPart(app.Email))
		for _, token := range strings.Split(app.FullName, " ") {
			if strings.Contains(local, strings.ToLower(token)) {
				return false
			}
		}
		return true
	}},
}

// SignalResult reports one signal of an Assessment.
type SignalResult struct {
	Name      string `json:"name"`
	Weight    int    `json:"weight"`
	Triggered bool   `json:"triggered"`
}

// Assessment is the full scoring breakdown of an application.
type Assessment struct {
	Score     int            `json:"score"`
	Threshold int            `json:"threshold"`
	Denied    bool           `json:"denied"`
	Signals   []SignalResult `json:"signals"`
}

// Triggered lists the names of the signals that fired, in evaluation order.
func (a Assessment) Triggered() []string {
	var out []string
	for _, s := range a.Signals {
		if s.Triggered {
			out = append(out, s.Name)
		}
	}
	return out
}

// AccountEvaluator scores account-opening applications. It is stateless and
// safe for concurrent use.
type AccountEvaluator struct {
	cfg     Config
	logger  *slog.Logger
	metrics metrics.MetricsCollector
}

// NewAccountEvaluator creates an evaluator. logger and m may be nil.
func NewAccountEvaluator(cfg Config, logger *slog.Logger, m metrics.MetricsCollector) *AccountEvaluator {
	if logger == nil {
		logger = logging.Discard()
	}
	if m == nil {
		m = &metrics.NoopMetricsCollector{}
	}
	return &AccountEvaluator{cfg: cfg.WithDefaults(), logger: logger, metrics: m}
}

// Evaluate computes every signal, sums the weights of those that fired and
// denies the application when the total reaches the threshold.
func (e *AccountEvaluator) Evaluate(app models.NewAccount) Assessment {
	a := Assessment{
		Threshold: e.cfg.ScoreThreshold,
		Signals:   make([]SignalResult, 0, len(accountSignals)),
	}
	for _, s := range accountSignals {
		hit := s.test(&e.cfg, app)
		if hit {
			a.Score += s.weight
		}
		a.Signals = append(a.Signals, SignalResult{Name: s.name, Weight: s.weight, Triggered: hit})
	}
	a.Denied = a.Score >= a.Threshold

	decision := "allowed"
	if a.Denied {
		decision = "denied"
	}
	e.metrics.RecordRiskDecision("account_creation", decision)
	e.logger.Info("account creation assessed",
		"email", models.NormalizeEmail(app.Email),
		"score", a.Score,
		"threshold", a.Threshold,
		"decision", decision,
		"signals", a.Triggered(),
	)
	return a
}

func localPart(email string) string {
	email = strings.TrimSpace(email)
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func countRunes(s string, pred func(rune) bool) int {
	n := 0
	for _, r := range s {
		if pred(r) {
			n++
		}
	}
	return n
}
