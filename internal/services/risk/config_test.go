package risk

import (
	"testing"

	"ledgerguard/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(config.RiskConfig{
		TrustedEmailSuffix: "@bank.ng",
		SpikeMultiplier:    decimal.NewFromInt(5),
		DisposableDomains:  []string{"mailinator", "tempmail"},
	})

	assert.Equal(t, "@bank.ng", cfg.TrustedEmailSuffix)
	assert.True(t, cfg.SpikeMultiplier.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, []string{"mailinator", "tempmail"}, cfg.DisposableDomains)

	assert.Equal(t, DefaultRecencyWindow, cfg.RecencyWindow)
	assert.Equal(t, DefaultMinHistory, cfg.MinHistory)
	assert.Equal(t, DefaultScoreThreshold, cfg.ScoreThreshold)
	assert.True(t, cfg.RecencyMultiplier.Equal(DefaultRecencyMultiplier))
	assert.Equal(t, DefaultBlockedIPPrefixes, cfg.BlockedIPPrefixes)
}
