package risk

import (
	"testing"

	"ledgerguard/internal/metrics"
	"ledgerguard/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decs(vals ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = dec(v)
	}
	return out
}

// cleanApplication triggers no signal at all.
func cleanApplication() models.NewAccount {
	return models.NewAccount{
		FullName:       "John Doe",
		Address:        "12 Marina Road, Lagos",
		Phone:          "08012345678",
		Email:          "john.doe@ext.com",
		InitialBalance: dec("5000"),
	}
}

func TestAccountEvaluator_Evaluate(t *testing.T) {
	e := NewAccountEvaluator(Config{}, nil, nil)

	tests := []struct {
		name      string
		mutate    func(*models.NewAccount)
		wantScore int
		wantHits  []string
		denied    bool
	}{
		{
			name:      "clean application",
			mutate:    func(*models.NewAccount) {},
			wantScore: 0,
		},
		{
			name: "untrusted domain, high balance and short address is denied",
			mutate: func(a *models.NewAccount) {
				a.Email = "john@gmail.com"
				a.InitialBalance = dec("200000")
				a.Address = "Ikeja"
			},
			wantScore: 6,
			wantHits:  []string{SignalSuspiciousEmailDomain, SignalHighInitialBalance, SignalWeakAddress},
			denied:    true,
		},
		{
			name: "same application with moderate balance is allowed",
			mutate: func(a *models.NewAccount) {
				a.Email = "john@gmail.com"
				a.InitialBalance = dec("50000")
				a.Address = "Ikeja"
			},
			wantScore: 3,
			wantHits:  []string{SignalSuspiciousEmailDomain, SignalWeakAddress},
		},
		{
			name: "score equal to threshold is denied",
			mutate: func(a *models.NewAccount) {
				a.FullName = "John2 Doe"
				a.Email = "john2@gmail.com"
			},
			wantScore: 5,
			wantHits:  []string{SignalSuspiciousEmailDomain, SignalDigitsInName},
			denied:    true,
		},
		{
			name: "trusted suffix is case-insensitive",
			mutate: func(a *models.NewAccount) {
				a.Email = "John.Doe@EXT.COM"
			},
			wantScore: 0,
		},
		{
			name: "balance at ceiling is not high",
			mutate: func(a *models.NewAccount) {
				a.InitialBalance = dec("100000")
			},
			wantScore: 0,
		},
		{
			name: "spaces count as special characters",
			mutate: func(a *models.NewAccount) {
				a.FullName = "John Michael Doe Smith"
			},
			wantScore: 2,
			wantHits:  []string{SignalExcessSpecialChars},
		},
		{
			name: "empty phone is invalid",
			mutate: func(a *models.NewAccount) {
				a.Phone = ""
			},
			wantScore: 2,
			wantHits:  []string{SignalInvalidPhone},
		},
		{
			name: "formatted phone is invalid",
			mutate: func(a *models.NewAccount) {
				a.Phone = "+2348012345678"
			},
			wantScore: 2,
			wantHits:  []string{SignalInvalidPhone},
		},
		{
			name: "whitespace address is weak",
			mutate: func(a *models.NewAccount) {
				a.Address = "            "
			},
			wantScore: 1,
			wantHits:  []string{SignalWeakAddress},
		},
		{
			name: "long local part looks random",
			mutate: func(a *models.NewAccount) {
				a.Email = "john.doe.abcdefghijklmnop@ext.com"
			},
			wantScore: 2,
			wantHits:  []string{SignalRandomEmailLocalPart},
		},
		{
			name: "digit-heavy local part looks random",
			mutate: func(a *models.NewAccount) {
				a.Email = "john123456@ext.com"
			},
			wantScore: 2,
			wantHits:  []string{SignalRandomEmailLocalPart},
		},
		{
			name: "name not in local part",
			mutate: func(a *models.NewAccount) {
				a.Email = "payments@ext.com"
			},
			wantScore: 1,
			wantHits:  []string{SignalNameEmailMismatch},
		},
		{
			name: "double space yields an empty token that always matches",
			mutate: func(a *models.NewAccount) {
				a.FullName = "John  Doe"
				a.Email = "payments@ext.com"
			},
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := cleanApplication()
			tt.mutate(&app)

			got := e.Evaluate(app)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantHits, got.Triggered())
			assert.Equal(t, tt.denied, got.Denied)
			assert.Equal(t, DefaultScoreThreshold, got.Threshold)
			assert.Len(t, got.Signals, len(accountSignals))
		})
	}
}

func TestAccountEvaluator_AllSignalsEvaluated(t *testing.T) {
	e := NewAccountEvaluator(Config{}, nil, nil)

	got := e.Evaluate(models.NewAccount{
		FullName:       "J0hn #D!e",
		Address:        "",
		Phone:          "12ab",
		Email:          "x1234567_#$%!@tempmail.io",
		InitialBalance: dec("250000"),
	})

	require.Len(t, got.Signals, 8)
	for _, s := range got.Signals {
		assert.True(t, s.Triggered, s.Name)
	}
	assert.Equal(t, 2+3+2+2+3+1+2+1, got.Score)
	assert.True(t, got.Denied)
}

func TestAccountEvaluator_Config(t *testing.T) {
	m := metrics.NewCounterCollector()
	e := NewAccountEvaluator(Config{
		TrustedEmailSuffix: "@bank.ng",
		HighBalanceCeiling: dec("1000"),
		ScoreThreshold:     3,
	}, nil, m)

	app := cleanApplication()
	app.Email = "john.doe@bank.ng"
	app.InitialBalance = dec("1000.01")

	got := e.Evaluate(app)
	assert.Equal(t, []string{SignalHighInitialBalance}, got.Triggered())
	assert.Equal(t, 3, got.Threshold)
	assert.True(t, got.Denied)
	assert.Equal(t, int64(1), m.Snapshot().Decisions["account_creation:denied"])
}
