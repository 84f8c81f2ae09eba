package resilience

import (
	"context"
	"sync"
)

type flightResult struct {
	value any
	err   error
}

type flight struct {
	done   chan struct{}
	result flightResult
}

// SingleFlight deduplicates concurrent calls with the same key: one caller
// does the work, the rest wait for its result.
type SingleFlight struct {
	mu      sync.Mutex
	flights map[string]*flight
}

func NewSingleFlight() *SingleFlight {
	return &SingleFlight{flights: make(map[string]*flight)}
}

func (s *SingleFlight) Do(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	s.mu.Lock()
	if existing, ok := s.flights[key]; ok {
		s.mu.Unlock()
		select {
		case <-existing.done:
			return existing.result.value, existing.result.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	current := &flight{done: make(chan struct{})}
	s.flights[key] = current
	s.mu.Unlock()

	value, err := fn(ctx)

	s.mu.Lock()
	delete(s.flights, key)
	s.mu.Unlock()

	current.result = flightResult{value: value, err: err}
	close(current.done)

	return value, err
}
