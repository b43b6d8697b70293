package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store counts hits per key inside a rolling window. Implementations must be
// safe for concurrent use; Increment is a single atomic increment-then-read
// so concurrent requests from the same key cannot undercount.
type Store interface {
	Increment(key string, window time.Duration) (int64, error)
}

// Limiter rejects the N+1th hit per key within the window.
type Limiter struct {
	store  Store
	max    int64
	window time.Duration
}

func New(store Store, max int64, window time.Duration) *Limiter {
	return &Limiter{store: store, max: max, window: window}
}

// Allow registers a hit for key and reports whether it is within the limit.
// On store errors the request is allowed; losing a counter beat is better
// than failing the request.
func (l *Limiter) Allow(key string) bool {
	n, err := l.store.Increment(key, l.window)
	if err != nil {
		return true
	}
	return n <= l.max
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore is a process-local counter store with per-key TTL.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Increment(key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &memoryEntry{expiresAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++

	// Opportunistic cleanup keeps the map from growing unbounded.
	if len(s.entries) > 1024 {
		for k, v := range s.entries {
			if now.After(v.expiresAt) {
				delete(s.entries, k)
			}
		}
	}

	return e.count, nil
}

// RedisStore shares the counter across instances; the key expires with the
// window so the first hit opens it.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Increment(key string, window time.Duration) (int64, error) {
	ctx := context.Background()
	fullKey := s.prefix + key

	n, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
