package alerts

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-process throttle store: a map of alert key to
// last-sent time, swept periodically so it cannot grow without bound. State
// is lost on restart, which only risks one duplicate alert per key.
type MemoryStore struct {
	mu       sync.Mutex
	lastSent map[string]time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewMemoryStore(sweepInterval, retention time.Duration) *MemoryStore {

	s := &MemoryStore{
		lastSent: make(map[string]time.Time),
		done:     make(chan struct{}),
	}

	go s.sweep(sweepInterval, retention)

	return s
}

// Allow implements ThrottleStore.
func (s *MemoryStore) Allow(_ context.Context, key string, window time.Duration) (bool, error) {

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.lastSent[key]; ok && now.Sub(last) < window {
		return false, nil
	}

	s.lastSent[key] = now

	return true, nil
}

func (s *MemoryStore) sweep(interval, retention time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:

			cutoff := time.Now().Add(-retention)

			s.mu.Lock()
			for key, last := range s.lastSent {
				if last.Before(cutoff) {
					delete(s.lastSent, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}
