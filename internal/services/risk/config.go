package risk

import (
	"ledgerguard/internal/config"

	"github.com/shopspring/decimal"
)

// Default configuration values
const (
	DefaultTrustedEmailSuffix = "@ext.com"
	DefaultScoreThreshold     = 5
	DefaultRecencyWindow      = 3
	DefaultMinHistory         = 3
)

var (
	DefaultHighBalanceCeiling  = decimal.NewFromInt(100000)
	DefaultRecencyMultiplier   = decimal.NewFromInt(3)
	DefaultDeviationMultiplier = decimal.NewFromInt(2)
	DefaultSpikeMultiplier     = decimal.NewFromInt(3)
	DefaultDisposableDomains   = []string{"tempmail"}
	DefaultBlockedIPPrefixes   = []string{"192.168.0."}
)

// Config holds every tunable of the fraud engine
type Config struct {
	TrustedEmailSuffix  string
	HighBalanceCeiling  decimal.Decimal
	ScoreThreshold      int
	RecencyWindow       int
	RecencyMultiplier   decimal.Decimal
	DeviationMultiplier decimal.Decimal
	SpikeMultiplier     decimal.Decimal
	MinHistory          int
	DisposableDomains   []string
	BlockedIPPrefixes   []string
}

// WithDefaults fills every zero field with its default. A zero multiplier or
// ceiling therefore means "unset"; config.Load rejects non-positive values
// before they reach FromSettings.
func (c Config) WithDefaults() Config {
	if c.TrustedEmailSuffix == "" {
		c.TrustedEmailSuffix = DefaultTrustedEmailSuffix
	}
	if c.HighBalanceCeiling.IsZero() {
		c.HighBalanceCeiling = DefaultHighBalanceCeiling
	}
	if c.ScoreThreshold <= 0 {
		c.ScoreThreshold = DefaultScoreThreshold
	}
	if c.RecencyWindow <= 0 {
		c.RecencyWindow = DefaultRecencyWindow
	}
	if c.RecencyMultiplier.IsZero() {
		c.RecencyMultiplier = DefaultRecencyMultiplier
	}
	if c.DeviationMultiplier.IsZero() {
		c.DeviationMultiplier = DefaultDeviationMultiplier
	}
	if c.SpikeMultiplier.IsZero() {
		c.SpikeMultiplier = DefaultSpikeMultiplier
	}
	if c.MinHistory <= 0 {
		c.MinHistory = DefaultMinHistory
	}
	if c.DisposableDomains == nil {
		c.DisposableDomains = DefaultDisposableDomains
	}
	if c.BlockedIPPrefixes == nil {
		c.BlockedIPPrefixes = DefaultBlockedIPPrefixes
	}
	return c
}

// FromSettings maps the environment-driven settings onto a Config. Window
// sizes are not tunable and keep their defaults.
func FromSettings(rc config.RiskConfig) Config {
	return Config{
		TrustedEmailSuffix:  rc.TrustedEmailSuffix,
		HighBalanceCeiling:  rc.HighBalanceCeiling,
		ScoreThreshold:      rc.ScoreThreshold,
		RecencyMultiplier:   rc.RecencyMultiplier,
		DeviationMultiplier: rc.DeviationMultiplier,
		SpikeMultiplier:     rc.SpikeMultiplier,
		DisposableDomains:   rc.DisposableDomains,
		BlockedIPPrefixes:   rc.BlockedIPPrefixes,
	}.WithDefaults()
}
