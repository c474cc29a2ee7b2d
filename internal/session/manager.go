package session

import (
	"context"
	"sync"
	"time"
)

// Manager serializes turn processing per conversation. Turns of one
// conversation run one at a time; different conversations run in parallel.
type Manager struct {
	mu    sync.Mutex
	locks map[string]*convLock
	now   func() time.Time
}

type convLock struct {
	mu       sync.Mutex
	lastUsed time.Time
	// holders counts callers inside or waiting in WithLock; guarded by Manager.mu.
	holders int
}

func NewManager() *Manager {
	return &Manager{
		locks: make(map[string]*convLock),
		now:   time.Now,
	}
}

// WithLock runs fn while holding the lock for conversationID.
func (m *Manager) WithLock(conversationID string, fn func() error) error {
	m.mu.Lock()
	cl, ok := m.locks[conversationID]
	if !ok {
		cl = &convLock{}
		m.locks[conversationID] = cl
	}
	cl.holders++
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		cl.holders--
		cl.lastUsed = m.now()
		m.mu.Unlock()
	}()

	cl.mu.Lock()
	defer cl.mu.Unlock()
	return fn()
}

// Cleanup drops idle locks not used within maxAge and returns how many were removed.
func (m *Manager) Cleanup(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, cl := range m.locks {
		if cl.holders == 0 && now.Sub(cl.lastUsed) > maxAge {
			delete(m.locks, id)
			removed++
		}
	}
	return removed
}

// Len reports how many conversations currently have a lock.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (m *Manager) RunCleanup(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Cleanup(maxAge)
		}
	}
}
