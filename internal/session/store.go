// Package session keeps authenticated sessions server-side: the cookie
// carries an opaque token, Redis maps the token to a user id with a TTL
// that is refreshed on every resolve.
package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/sparkswipe/internal/cache"
)

type Store struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

func NewStore(c *cache.RedisCache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

// Create mints a new session token bound to userID.
func (s *Store) Create(ctx context.Context, userID uint64) (string, error) {
	token := uuid.NewString()
	key := s.cache.KeyForSession(token)
	if err := s.cache.Set(ctx, key, strconv.FormatUint(userID, 10), s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id bound to token, refreshing the TTL.
// ok is false for unknown or expired tokens.
func (s *Store) Resolve(ctx context.Context, token string) (uint64, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	key := s.cache.KeyForSession(token)
	val, err := s.cache.Get(ctx, key)
	if err != nil {
		return 0, false, err
	}
	if val == "" {
		return 0, false, nil
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		// stale/garbage value, treat as unauthenticated
		_ = s.cache.Del(ctx, key)
		return 0, false, nil
	}
	_ = s.cache.Expire(ctx, key, s.ttl)
	return userID, true, nil
}

// Destroy removes the session for token. Unknown tokens are a no-op.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.cache.Del(ctx, s.cache.KeyForSession(token))
}
