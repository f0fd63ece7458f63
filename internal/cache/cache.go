package cache

import (
	"sync"
	"time"
)

// Cleaner is any cache that can shed its expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager sweeps registered caches on a shared ticker so each cache does
// not need its own background goroutine.
type Manager struct {
	mu      sync.Mutex
	caches  []Cleaner
	started bool
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewManager returns a manager with no caches registered.
func NewManager() *Manager {
	return &Manager{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Register adds a cache to the sweep rotation.
func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	m.caches = append(m.caches, c)
	m.mu.Unlock()
}

// StartCleanup sweeps all registered caches every interval until Stop.
func (m *Manager) StartCleanup(interval time.Duration) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stop:
				return
			}
		}
	}()
}

func (m *Manager) sweep() {
	m.mu.Lock()
	caches := make([]Cleaner, len(m.caches))
	copy(caches, m.caches)
	m.mu.Unlock()

	for _, c := range caches {
		c.CleanExpired()
	}
}

// Stop ends the sweep goroutine and waits for it to exit. Safe to call
// more than once.
func (m *Manager) Stop() {
	m.once.Do(func() {
		m.mu.Lock()
		started := m.started
		m.mu.Unlock()

		close(m.stop)
		if started {
			<-m.done
		}
	})
}
