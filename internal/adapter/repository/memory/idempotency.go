package memory

import (
	"context"
	"sync"
	"time"
)

// IdempotencyStore implements usecase.IdempotencyStore in memory.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	prefix  string
}

type idempotencyEntry struct {
	expiresAt time.Time
	response  []byte
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]idempotencyEntry),
		prefix:  "idempotency:",
	}
}

// CheckAndSet atomically checks if key exists, sets if not. A nil
// response stores a "processing" placeholder to lock the key.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[fullKey]; ok && entry.expiresAt.After(now) {
		return true, entry.response, nil
	}

	value := response
	if value == nil {
		value = []byte("processing")
	}

	s.entries[fullKey] = idempotencyEntry{
		response:  value,
		expiresAt: now.Add(ttl),
	}

	return false, nil, nil
}

// Update updates an existing idempotency key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	fullKey := s.prefix + key

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[fullKey] = idempotencyEntry{
		response:  response,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Sweep drops expired entries. Callers can run it periodically to keep
// the map from growing unbounded.
func (s *IdempotencyStore) Sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if !entry.expiresAt.After(now) {
			delete(s.entries, key)
		}
	}
}
