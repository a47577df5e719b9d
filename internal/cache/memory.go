package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMemoryCapacity bounds the in-memory store when the config
// leaves capacity unset.
const DefaultMemoryCapacity = 1024

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a bounded in-process TTL store. Eviction is
// insertion-ordered; expired entries are dropped lazily on read.
type Memory struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]memoryEntry
	order    []string

	now func() time.Time // replaceable in tests
}

// NewMemory creates a memory store holding at most capacity entries.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &Memory{
		capacity: capacity,
		entries:  make(map[string]memoryEntry, capacity),
		now:      time.Now,
	}
}

// Get returns the live value for key or ErrKeyNotFound.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, ErrKeyNotFound
	}
	return e.value, nil
}

// SetWithTTL stores value under key, evicting the oldest insertion
// when the store is full.
func (m *Memory) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists {
		for len(m.entries) >= m.capacity && len(m.order) > 0 {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.entries, oldest)
		}
		m.order = append(m.order, key)
	}
	m.entries[key] = memoryEntry{value: value, expiresAt: m.now().Add(ttl)}
	return nil
}

// Ping always succeeds for the in-process store.
func (m *Memory) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close() {}

// Len returns the number of stored entries, including not yet
// collected expired ones.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
