package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ledgerguard/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Save(ctx context.Context, rec *models.TransferRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// stepClock advances one second per call so ordering is deterministic.
func stepClock() func() time.Time {
	t := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func record(from, to string, amount int64, status models.TransferStatus) models.TransferRecord {
	return models.TransferRecord{
		FromEmail: from,
		FromName:  "Sender",
		ToEmail:   to,
		ToName:    "Recipient",
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
	}
}

func TestLog_AppendAssignsIdentity(t *testing.T) {
	l := NewLog(WithClock(stepClock()))

	rec, err := l.Append(context.Background(), record("A@ext.com", "b@EXT.com", 10, models.TransferStatusCompleted))
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Timestamp.IsZero())
	assert.Equal(t, "a@ext.com", rec.FromEmail)
	assert.Equal(t, "b@ext.com", rec.ToEmail)
	assert.Equal(t, 1, l.Len())
}

func TestLog_RecentBySender(t *testing.T) {
	ctx := context.Background()
	l := NewLog(WithClock(stepClock()))

	_, _ = l.Append(ctx, record("a@ext.com", "b@ext.com", 100, models.TransferStatusCompleted))
	_, _ = l.Append(ctx, record("b@ext.com", "a@ext.com", 7, models.TransferStatusCompleted))
	_, _ = l.Append(ctx, record("a@ext.com", "c@ext.com", 200, models.TransferStatusBlockedFraud))
	_, _ = l.Append(ctx, record("a@ext.com", "b@ext.com", 300, models.TransferStatusCompleted))
	_, _ = l.Append(ctx, record("a@ext.com", "b@ext.com", 400, models.TransferStatusCompleted))

	recent, err := l.RecentBySender(ctx, "A@EXT.COM", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"400", "300", "200"}, amountsAsStrings(recent))

	all, err := l.RecentBySender(ctx, "a@ext.com", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := l.RecentBySender(ctx, "nobody@ext.com", 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLog_RecentBySenderOrdersByTimestamp(t *testing.T) {
	ctx := context.Background()
	l := NewLog()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	late := record("a@ext.com", "b@ext.com", 1, models.TransferStatusCompleted)
	late.Timestamp = base.Add(time.Hour)
	early := record("a@ext.com", "b@ext.com", 2, models.TransferStatusCompleted)
	early.Timestamp = base

	_, _ = l.Append(ctx, late)
	_, _ = l.Append(ctx, early)

	recent, err := l.RecentBySender(ctx, "a@ext.com", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, amountsAsStrings(recent))
}

func TestLog_ForAccount(t *testing.T) {
	ctx := context.Background()
	l := NewLog(WithClock(stepClock()))

	_, _ = l.Append(ctx, record("a@ext.com", "b@ext.com", 1, models.TransferStatusCompleted))
	_, _ = l.Append(ctx, record("c@ext.com", "a@ext.com", 2, models.TransferStatusCompleted))
	_, _ = l.Append(ctx, record("b@ext.com", "c@ext.com", 3, models.TransferStatusCompleted))
	_, _ = l.Append(ctx, record("a@ext.com", "a@ext.com", 4, models.TransferStatusCompleted))

	recs, err := l.ForAccount(ctx, "a@ext.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "2", "1"}, amountsAsStrings(recs))
}

func TestLog_Sink(t *testing.T) {
	ctx := context.Background()

	t.Run("mirrors appended record", func(t *testing.T) {
		sink := new(MockSink)
		sink.On("Save", ctx, mock.MatchedBy(func(r *models.TransferRecord) bool {
			return r.ID != "" && r.Status == models.TransferStatusBlockedFraud
		})).Return(nil).Once()

		l := NewLog(WithSink(sink))
		_, err := l.Append(ctx, record("a@ext.com", "b@ext.com", 5, models.TransferStatusBlockedFraud))
		require.NoError(t, err)
		sink.AssertExpectations(t)
	})

	t.Run("sink failure does not fail append", func(t *testing.T) {
		sink := new(MockSink)
		sink.On("Save", ctx, mock.Anything).Return(errors.New("db down")).Once()

		l := NewLog(WithSink(sink))
		_, err := l.Append(ctx, record("a@ext.com", "b@ext.com", 5, models.TransferStatusCompleted))
		require.NoError(t, err)
		assert.Equal(t, 1, l.Len())
		sink.AssertExpectations(t)
	})
}

func TestLog_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	l := NewLog()

	const workers = 100
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, _ = l.Append(ctx, record("a@ext.com", "b@ext.com", int64(i+1), models.TransferStatusCompleted))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, workers, l.Len())
	all, err := l.RecentBySender(ctx, "a@ext.com", 0)
	require.NoError(t, err)
	assert.Len(t, all, workers)
}

func TestAmounts(t *testing.T) {
	recs := []models.TransferRecord{
		record("a@ext.com", "b@ext.com", 3, models.TransferStatusCompleted),
		record("a@ext.com", "b@ext.com", 9, models.TransferStatusCompleted),
	}
	got := Amounts(recs)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(decimal.NewFromInt(3)))
	assert.True(t, got[1].Equal(decimal.NewFromInt(9)))
}

func amountsAsStrings(recs []models.TransferRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Amount.String()
	}
	return out
}
