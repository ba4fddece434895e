package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned by Store.Get when no entry exists for the key.
var ErrNoSession = errors.New("no cached session")

// ErrStoreBackend wraps store backend failures (connection loss, I/O).
var ErrStoreBackend = errors.New("credential store backend unavailable")

// Store is durable key/value persistence for serialized session tokens.
// Implementations must make Delete idempotent: deleting a missing key is
// not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key builds the store key for a username: "<prefix>.<sanitized username>",
// or the bare prefix when the username is empty.
func Key(prefix, username string) string {
	s := Sanitize(username)
	if s == "" {
		return prefix
	}
	return prefix + "." + s
}

// Sanitize normalizes a username for use inside a store key: lowercased,
// surrounding whitespace and a leading "@" removed, and any character
// outside [a-z0-9._-] dropped.
func Sanitize(username string) string {
	s := strings.ToLower(strings.TrimSpace(username))
	s = strings.TrimPrefix(s, "@")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RedisStore is the default Store implementation.
type RedisStore struct {
	redis redis.UniversalClient
}

// NewRedisStore wraps a Redis client as a credential store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{redis: client}
}

// Get returns the serialized token stored under key, or ErrNoSession.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreBackend, err)
	}
	return data, nil
}

// Set writes the serialized token under key. A positive ttl bounds the
// entry's life in Redis so expired sessions eventually vanish on their own.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreBackend, err)
	}
	return nil
}

// Delete removes the entry under key. Deleting a missing key succeeds.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreBackend, err)
	}
	return nil
}
