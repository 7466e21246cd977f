package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed checkout can hold its key.
	pendingTTL    = 2 * time.Minute
	pendingMarker = "pending"
)

// IdempotencyStore maps checkout Idempotency-Key headers to the order they
// produced. Keys are scoped per buyer:
// idempotency:checkout:<buyerID>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Claim reserves key for buyerID with a pending marker. When the key is
// already taken it returns claimed=false and the stored order id, which is
// empty while the other checkout is still running.
func (s *IdempotencyStore) Claim(ctx context.Context, buyerID, key string) (string, bool, error) {
	k := checkoutKey(buyerID, key)

	ok, err := s.client.SetNX(ctx, k, pendingMarker, pendingTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return "", true, nil
	}

	value, err := s.client.Get(ctx, k).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// Expired between SETNX and GET; report it as still in progress.
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	case value == pendingMarker:
		return "", false, nil
	}
	return value, false, nil
}

// Complete replaces the pending marker with the created order id.
func (s *IdempotencyStore) Complete(ctx context.Context, buyerID, key, orderID string) error {
	if err := s.client.Set(ctx, checkoutKey(buyerID, key), orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release drops a claim whose checkout produced no order, so the client can
// retry with the same key.
func (s *IdempotencyStore) Release(ctx context.Context, buyerID, key string) error {
	if err := s.client.Del(ctx, checkoutKey(buyerID, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func checkoutKey(buyerID, key string) string {
	return "idempotency:checkout:" + buyerID + ":" + key
}
