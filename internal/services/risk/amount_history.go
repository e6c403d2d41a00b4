package risk

import (
	"context"
	"sync"

	"ledgerguard/internal/models"

	"github.com/shopspring/decimal"
)

// UpdateFunc receives a user's current history (oldest first) and returns the
// history to store. It must not retain the slice.
type UpdateFunc func(history []decimal.Decimal) ([]decimal.Decimal, error)

// AmountHistory is the per-user running amount history shared by the
// deviation and spike checks.
type AmountHistory interface {
	// Amounts returns a copy of the user's history, oldest first.
	Amounts(ctx context.Context, userID string) ([]decimal.Decimal, error)
	Append(ctx context.Context, userID string, amount decimal.Decimal) error
	// Update runs fn with the user's history locked against other writers.
	Update(ctx context.Context, userID string, fn UpdateFunc) error
}

type userHistory struct {
	mu      sync.Mutex
	amounts []decimal.Decimal
}

type memoryAmountHistory struct {
	mu        sync.Mutex
	users     map[string]*userHistory
	retention int
}

// NewMemoryAmountHistory creates an in-process history. A positive retention
// keeps only that many of the newest amounts per user.
func NewMemoryAmountHistory(retention int) AmountHistory {
	return &memoryAmountHistory{
		users:     make(map[string]*userHistory),
		retention: retention,
	}
}

func (h *memoryAmountHistory) user(userID string) *userHistory {
	key := models.NormalizeEmail(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	u, ok := h.users[key]
	if !ok {
		u = &userHistory{}
		h.users[key] = u
	}
	return u
}

func (h *memoryAmountHistory) Amounts(_ context.Context, userID string) ([]decimal.Decimal, error) {
	u := h.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]decimal.Decimal(nil), u.amounts...), nil
}

func (h *memoryAmountHistory) Append(ctx context.Context, userID string, amount decimal.Decimal) error {
	return h.Update(ctx, userID, func(history []decimal.Decimal) ([]decimal.Decimal, error) {
		return append(history, amount), nil
	})
}

func (h *memoryAmountHistory) Update(_ context.Context, userID string, fn UpdateFunc) error {
	u := h.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	current := append([]decimal.Decimal(nil), u.amounts...)
	next, err := fn(current)
	if err != nil {
		return err
	}
	u.amounts = trimHistory(next, h.retention)
	return nil
}

func trimHistory(history []decimal.Decimal, retention int) []decimal.Decimal {
	if retention > 0 && len(history) > retention {
		return append([]decimal.Decimal(nil), history[len(history)-retention:]...)
	}
	return history
}
