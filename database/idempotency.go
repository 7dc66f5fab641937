package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StoredResponse is a recorded HTTP answer replayed for a repeated request.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// pendingTTL bounds how long a crashed request keeps its key reserved.
const pendingTTL = time.Minute

// IdempotencyStore keeps responses per cart and idempotency key.
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		client:     client,
		ttl:        ttl,
		pendingTTL: pendingTTL,
	}
}

func (s *IdempotencyStore) getKey(cartID int, key string) string {
	return fmt.Sprintf("idem:cart:%d:%s", cartID, key)
}

func (s *IdempotencyStore) getPendingKey(cartID int, key string) string {
	return s.getKey(cartID, key) + ":pending"
}

// Reserve marks key as in flight. It reports false when another request
// already holds the reservation.
func (s *IdempotencyStore) Reserve(ctx context.Context, cartID int, key string) (bool, error) {
	return s.client.SetNX(ctx, s.getPendingKey(cartID, key), 1, s.pendingTTL).Result()
}

// Release drops the in-flight mark for key.
func (s *IdempotencyStore) Release(ctx context.Context, cartID int, key string) error {
	return s.client.Del(ctx, s.getPendingKey(cartID, key)).Err()
}

// Get returns the stored response, or nil when none exists.
func (s *IdempotencyStore) Get(ctx context.Context, cartID int, key string) (*StoredResponse, error) {
	data, err := s.client.Get(ctx, s.getKey(cartID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp StoredResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode stored response: %w", err)
	}
	return &resp, nil
}

// Set records resp under key. An existing record is kept.
func (s *IdempotencyStore) Set(ctx context.Context, cartID int, key string, resp *StoredResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.SetNX(ctx, s.getKey(cartID, key), data, s.ttl).Err()
}
