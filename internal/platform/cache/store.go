package cache

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/league-scheduler/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process TTL cache with request coalescing on cache miss.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flights *resilience.SingleFlight
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		flights: resilience.NewSingleFlight(),
		now:     time.Now,
	}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	item, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || s.now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or loads it once even when
// many callers miss concurrently.
func (s *Store) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (any, error)) (any, error) {
	if value, ok := s.Get(key); ok {
		return value, nil
	}

	return s.flights.Do(ctx, key, func(ctx context.Context) (any, error) {
		if value, ok := s.Get(key); ok {
			return value, nil
		}

		value, err := load(ctx)
		if err != nil {
			return nil, err
		}

		s.Set(key, value)
		return value, nil
	})
}
