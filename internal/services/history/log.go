// Package history implements the append-only transfer history log.
package history

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"ledgerguard/internal/logging"
	"ledgerguard/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sink mirrors appended records somewhere outside the process, e.g. an
// audit table. The in-memory log stays authoritative.
type Sink interface {
	Save(ctx context.Context, rec *models.TransferRecord) error
}

// Log is the transfer history log.
type Log interface {
	Append(ctx context.Context, rec models.TransferRecord) (models.TransferRecord, error)
	RecentBySender(ctx context.Context, email string, limit int) ([]models.TransferRecord, error)
	ForAccount(ctx context.Context, email string) ([]models.TransferRecord, error)
	Len() int
}

type memoryLog struct {
	mu       sync.RWMutex
	records  []models.TransferRecord
	bySender map[string][]int
	byParty  map[string][]int
	sink     Sink
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes a Log.
type Option func(*memoryLog)

// WithSink mirrors every appended record to s.
func WithSink(s Sink) Option {
	return func(l *memoryLog) { l.sink = s }
}

// WithLogger sets the logger used for sink failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *memoryLog) { l.logger = logger }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *memoryLog) { l.now = now }
}

// NewLog creates an empty history log.
func NewLog(opts ...Option) Log {
	l := &memoryLog{
		bySender: make(map[string][]int),
		byParty:  make(map[string][]int),
		logger:   logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append stores rec, assigning an ID and timestamp when missing, and returns
// the stored copy. A sink failure is logged and does not fail the append.
func (l *memoryLog) Append(ctx context.Context, rec models.TransferRecord) (models.TransferRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.FromEmail = models.NormalizeEmail(rec.FromEmail)
	rec.ToEmail = models.NormalizeEmail(rec.ToEmail)

	l.mu.Lock()
	if rec.Timestamp.IsZero() {
		rec.Timestamp = l.now().UTC()
	}
	idx := len(l.records)
	l.records = append(l.records, rec)
	l.bySender[rec.FromEmail] = append(l.bySender[rec.FromEmail], idx)
	l.byParty[rec.FromEmail] = append(l.byParty[rec.FromEmail], idx)
	if rec.ToEmail != rec.FromEmail {
		l.byParty[rec.ToEmail] = append(l.byParty[rec.ToEmail], idx)
	}
	l.mu.Unlock()

	if l.sink != nil {
		if err := l.sink.Save(ctx, &rec); err != nil {
			l.logger.Warn("transfer record mirror failed", "record_id", rec.ID, "error", err)
		}
	}
	return rec, nil
}

// RecentBySender returns up to limit records sent by email, newest first.
// A non-positive limit returns all of them.
func (l *memoryLog) RecentBySender(ctx context.Context, email string, limit int) ([]models.TransferRecord, error) {
	l.mu.RLock()
	out := l.collect(l.bySender[models.NormalizeEmail(email)])
	l.mu.RUnlock()

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ForAccount returns every record where email is sender or recipient, newest first.
func (l *memoryLog) ForAccount(ctx context.Context, email string) ([]models.TransferRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.collect(l.byParty[models.NormalizeEmail(email)]), nil
}

func (l *memoryLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// collect copies the indexed records newest first. Caller holds the read lock.
func (l *memoryLog) collect(idx []int) []models.TransferRecord {
	out := make([]models.TransferRecord, 0, len(idx))
	for i := len(idx) - 1; i >= 0; i-- {
		out = append(out, l.records[idx[i]])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Amounts extracts the amounts of records, preserving order.
func Amounts(records []models.TransferRecord) []decimal.Decimal {
	out := make([]decimal.Decimal, len(records))
	for i, r := range records {
		out[i] = r.Amount
	}
	return out
}
