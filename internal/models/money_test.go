package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"0":          "₦0.00",
		"5":          "₦5.00",
		"999.999":    "₦1,000.00",
		"1250.5":     "₦1,250.50",
		"100000":     "₦100,000.00",
		"1234567.89": "₦1,234,567.89",
		"-42.1":      "-₦42.10",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(decimal.RequireFromString(in)), in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@ext.com", NormalizeEmail("  Ada@EXT.com\t"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
