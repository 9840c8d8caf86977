// Package session implements the server-side session layer: a short id,
// delivered as a cookie, that maps to a signed token held in Redis. The
// token itself is never replayed by the browser; only the session id is.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie carrying the session id.
const CookieName = "doodleboard_session"

const keyPrefix = "session:"

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// ErrUnavailable is returned when no session backend is configured.
var ErrUnavailable = errors.New("session store unavailable")

// Store keeps issued tokens server-side, keyed by an opaque session id.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore returns a Store backed by the given Redis client. Sessions live
// for ttl; this should match the embedded token expiry so a session never
// outlives its token.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Available reports whether sessions can be created and resolved.
func (s *Store) Available() bool {
	return s != nil && s.rdb != nil
}

// Create stores the token under a fresh session id and returns the id.
func (s *Store) Create(ctx context.Context, token string) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	sid := uuid.New().String()
	if err := s.rdb.Set(ctx, keyPrefix+sid, token, s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

// Get resolves a session id to its stored token.
func (s *Store) Get(ctx context.Context, sid string) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	token, err := s.rdb.Get(ctx, keyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Destroy removes a session. Destroying an unknown session is not an error.
func (s *Store) Destroy(ctx context.Context, sid string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
