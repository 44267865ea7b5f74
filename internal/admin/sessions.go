package admin

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "admin:session:v1:"

// ErrInvalidSession occurs when a session token is unknown or expired.
var ErrInvalidSession = errors.New("invalid admin session")

// Sessions stores opaque admin session tokens in Redis with a TTL.
type Sessions struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewSessions builds a Redis-backed session store.
func NewSessions(cache *redis.Client, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Sessions{cache: cache, ttl: ttl}
}

// Issue mints a session token for the principal.
func (s *Sessions) Issue(ctx context.Context, p Principal) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := s.cache.Set(ctx, sessionPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the principal behind a session token.
func (s *Sessions) Resolve(ctx context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrInvalidSession
	}
	raw, err := s.cache.Get(ctx, sessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return Principal{}, ErrInvalidSession
	}
	if err != nil {
		return Principal{}, err
	}
	var p Principal
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Principal{}, ErrInvalidSession
	}
	if p.Zero() {
		return Principal{}, ErrInvalidSession
	}
	return p, nil
}

// Revoke deletes a session token.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	return s.cache.Del(ctx, sessionPrefix+token).Err()
}
