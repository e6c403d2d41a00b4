package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ledgerguard/internal/metrics"
	"ledgerguard/internal/models"

	"github.com/shopspring/decimal"
)

type entry struct {
	mu      sync.Mutex
	account models.Account
}

type store struct {
	mu       sync.RWMutex
	accounts map[string]*entry
	metrics  metrics.MetricsCollector
	now      func() time.Time
}

// NewStore creates an empty ledger
func NewStore(m metrics.MetricsCollector) Store {
	// Metrics is optional, create no-op collector if nil
	if m == nil {
		m = &metrics.NoopMetricsCollector{}
	}
	return &store{
		accounts: make(map[string]*entry),
		metrics:  m,
		now:      time.Now,
	}
}

func (s *store) CreateAccount(ctx context.Context, in models.NewAccount) (*models.Account, error) {
	if in.InitialBalance.IsNegative() {
		s.metrics.RecordError("create_account", "invalid_amount")
		return nil, ErrInvalidAmount
	}

	key := models.NormalizeEmail(in.Email)
	if key == "" {
		return nil, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[key]; exists {
		s.metrics.RecordOperationResult("create_account", "exists")
		return nil, ErrAccountExists
	}

	e := &entry{account: models.Account{
		Email:     key,
		FullName:  in.FullName,
		Address:   in.Address,
		Phone:     in.Phone,
		Balance:   in.InitialBalance,
		CreatedAt: s.now().UTC(),
	}}
	s.accounts[key] = e
	s.metrics.RecordOperationResult("create_account", "created")

	acct := e.account
	return &acct, nil
}

func (s *store) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	e, ok := s.lookup(models.NormalizeEmail(email))
	if !ok {
		return nil, ErrAccountNotFound
	}

	e.mu.Lock()
	acct := e.account
	e.mu.Unlock()
	return &acct, nil
}

// List returns a consistent snapshot: every account lock is held at once, in
// the same global order ApplyTransfer uses.
func (s *store) List(ctx context.Context) ([]models.Account, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.accounts))
	entries := make([]*entry, 0, len(s.accounts))
	for k := range s.accounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		entries = append(entries, s.accounts[k])
	}
	s.mu.RUnlock()

	for _, e := range entries {
		e.mu.Lock()
	}
	out := make([]models.Account, len(entries))
	for i, e := range entries {
		out[i] = e.account
	}
	for i := len(entries) - 1; i >= 0; i-- {
		entries[i].mu.Unlock()
	}
	return out, nil
}

func (s *store) ApplyTransfer(ctx context.Context, fromEmail, toEmail string, amount decimal.Decimal) error {
	start := s.now()
	defer func() {
		s.metrics.RecordOperationDuration("apply_transfer", s.now().Sub(start))
	}()

	fromKey := models.NormalizeEmail(fromEmail)
	toKey := models.NormalizeEmail(toEmail)

	from, ok := s.lookup(fromKey)
	if !ok {
		return fmt.Errorf("sender %s: %w", fromKey, ErrAccountNotFound)
	}
	to, ok := s.lookup(toKey)
	if !ok {
		return fmt.Errorf("recipient %s: %w", toKey, ErrAccountNotFound)
	}

	unlock := lockPair(fromKey, from, toKey, to)
	defer unlock()

	if from.account.Balance.LessThan(amount) {
		s.metrics.RecordError("apply_transfer", "insufficient_funds")
		return ErrInsufficientFunds
	}

	from.account.Balance = from.account.Balance.Sub(amount)
	to.account.Balance = to.account.Balance.Add(amount)

	s.metrics.RecordTransaction("transfer", amount)
	return nil
}

func (s *store) lookup(key string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.accounts[key]
	return e, ok
}

// lockPair locks both entries in lexicographic key order and returns the
// matching unlock. A self-transfer locks once.
func lockPair(aKey string, a *entry, bKey string, b *entry) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}
	first, second := a, b
	if bKey < aKey {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
