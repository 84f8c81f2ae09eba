package resilience

import "sync"

// KeyedTryLock hands out at most one lease per key. Acquire fails fast
// instead of blocking, which lets callers surface contention to their
// clients rather than queueing work.
type KeyedTryLock struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewKeyedTryLock() *KeyedTryLock {
	return &KeyedTryLock{held: make(map[string]bool)}
}

// Acquire takes the lease for key. It returns false when the lease is
// already held.
func (l *KeyedTryLock) Acquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[key] {
		return false
	}
	l.held[key] = true
	return true
}

// Release frees the lease for key. Releasing an unheld key is a no-op.
func (l *KeyedTryLock) Release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.held, key)
}
