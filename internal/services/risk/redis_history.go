package risk

import (
	"context"
	"errors"
	"fmt"

	"ledgerguard/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const maxTxRetries = 10

// RedisAmountHistory keeps each user's history in a Redis list of decimal
// strings. Update uses optimistic WATCH/MULTI transactions, so the history
// is shared safely between server replicas.
type RedisAmountHistory struct {
	client    *redis.Client
	prefix    string
	retention int
}

// NewRedisAmountHistory creates a Redis-backed history.
func NewRedisAmountHistory(client *redis.Client, prefix string, retention int) *RedisAmountHistory {
	if client == nil {
		panic("redis client is required")
	}
	if prefix == "" {
		prefix = "ledgerguard"
	}
	return &RedisAmountHistory{client: client, prefix: prefix, retention: retention}
}

func (h *RedisAmountHistory) key(userID string) string {
	return fmt.Sprintf("%s:amounts:%s", h.prefix, models.NormalizeEmail(userID))
}

func (h *RedisAmountHistory) Amounts(ctx context.Context, userID string) ([]decimal.Decimal, error) {
	vals, err := h.client.LRange(ctx, h.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read amount history: %w", err)
	}
	return parseAmounts(vals)
}

func (h *RedisAmountHistory) Append(ctx context.Context, userID string, amount decimal.Decimal) error {
	key := h.key(userID)
	_, err := h.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, amount.String())
		if h.retention > 0 {
			pipe.LTrim(ctx, key, int64(-h.retention), -1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append amount history: %w", err)
	}
	return nil
}

func (h *RedisAmountHistory) Update(ctx context.Context, userID string, fn UpdateFunc) error {
	key := h.key(userID)

	txf := func(tx *redis.Tx) error {
		vals, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		current, err := parseAmounts(vals)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		next = trimHistory(next, h.retention)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(next) > 0 {
				args := make([]interface{}, len(next))
				for i, a := range next {
					args[i] = a.String()
				}
				pipe.RPush(ctx, key, args...)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := h.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("update amount history: %w", err)
	}
	return fmt.Errorf("update amount history: %w", redis.TxFailedErr)
}

func parseAmounts(vals []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, 0, len(vals))
	for _, v := range vals {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", v, err)
		}
		out = append(out, d)
	}
	return out, nil
}
