package idempotency

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   string
	expires time.Time
}

// MemoryStore is a process-local Store for single-instance and mock
// deployments.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{entries: map[string]entry{}, ttl: ttl, now: time.Now}
}

func (m *MemoryStore) Reserve(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.entries[key]; ok && now.Before(e.expires) {
		if e.value == pendingMarker {
			return "", false, ErrInProgress
		}
		return e.value, false, nil
	}
	m.entries[key] = entry{value: pendingMarker, expires: now.Add(m.ttl)}
	return "", true, nil
}

func (m *MemoryStore) Complete(_ context.Context, key, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: orderID, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
