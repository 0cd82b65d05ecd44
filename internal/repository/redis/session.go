package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionRepository implements repository.SessionRepository using Redis.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// Exists reports whether the session is known. A known session's expiry is
// pushed back to the full TTL.
func (r *SessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.client.Expire(ctx, sessionKeyPrefix+id, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis expire session: %w", err)
	}
	return ok, nil
}

// Create records a session with the configured TTL.
func (r *SessionRepository) Create(ctx context.Context, id string) error {
	created := time.Now().UTC().Format(time.RFC3339)
	if err := r.client.Set(ctx, sessionKeyPrefix+id, created, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}
