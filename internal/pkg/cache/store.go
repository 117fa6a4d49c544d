package cache

import (
	"errors"
	"sync"
	"time"
)

// ErrMiss is returned by Store.Lookup when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the injectable key/value-with-expiry abstraction used by features
// that only need best-effort caching (AI text extraction). Call sites take a
// Store so the process-local map can be swapped for the shared Redis cache in
// a multi-process deployment.
type Store interface {
	Lookup(key string) (string, error)
	Put(key, value string, ttl time.Duration) error
}

type redisStore struct{}

// NewRedisStore returns a Store backed by the shared Redis client.
func NewRedisStore() Store {
	return redisStore{}
}

func (redisStore) Lookup(key string) (string, error) {
	val, err := Get(key)
	if err != nil {
		return "", ErrMiss
	}
	return val, nil
}

func (redisStore) Put(key, value string, ttl time.Duration) error {
	return Set(key, value, ttl)
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-process Store with per-key TTL. Expired entries are
// dropped lazily on lookup.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Lookup(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", ErrMiss
	}
	if m.now().After(entry.expiresAt) {
		delete(m.entries, key)
		return "", ErrMiss
	}
	return entry.value, nil
}

func (m *MemoryStore) Put(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}
