package ledger

import (
	"context"

	"ledgerguard/internal/models"

	"github.com/shopspring/decimal"
)

// Store defines the ledger operations
type Store interface {
	// Account lifecycle
	CreateAccount(ctx context.Context, in models.NewAccount) (*models.Account, error)
	GetAccount(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)

	// Balance mutation. Callers guarantee amount > 0.
	ApplyTransfer(ctx context.Context, fromEmail, toEmail string, amount decimal.Decimal) error
}
