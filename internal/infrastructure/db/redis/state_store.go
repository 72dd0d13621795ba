package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const stateTTL = 10 * time.Minute

// StateStore keeps one-time OAuth state nonces in Redis.
// Key format: oauth_state:<nonce>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Issue stores a fresh nonce that expires after stateTTL and returns it.
func (s *StateStore) Issue(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.client.Set(ctx, s.key(state), "1", stateTTL).Err(); err != nil {
		return "", fmt.Errorf("issue oauth state: %w", err)
	}
	return state, nil
}

// Consume removes the nonce and reports whether it existed. GETDEL makes the
// check-and-invalidate a single round trip, so a nonce can be redeemed once.
func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	_, err := s.client.GetDel(ctx, s.key(state)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
	return true, nil
}

func (s *StateStore) key(state string) string {
	return "oauth_state:" + state
}
