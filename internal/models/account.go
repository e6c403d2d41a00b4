package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a ledger account keyed by its normalized email.
type Account struct {
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	Address   string          `json:"address,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewAccount is an account-opening application as submitted by the caller.
type NewAccount struct {
	FullName       string          `json:"full_name"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// NormalizeEmail produces the case-insensitive account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
