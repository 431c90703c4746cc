// Package token persists the bearer token outside application memory.
//
// Every Store behaves like a browser cookie: a value with an expiry that
// reads back as empty once expired or removed.
package token

import (
	"context"
	"sync"
	"time"
)

// Store holds a single bearer token.
type Store interface {
	// Get returns the token, or "" when none is stored or it expired.
	Get(ctx context.Context) (string, error)
	// Set stores the token for ttl.
	Set(ctx context.Context, token string, ttl time.Duration) error
	// Remove deletes the token. Removing a missing token is not an error.
	Remove(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return "", nil
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		s.token = ""
		s.expiresAt = time.Time{}
		return "", nil
	}
	return s.token, nil
}

func (s *MemoryStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.expiresAt = time.Time{}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}
