// Package favorites persists the values a user has starred, per level.
package favorites

import (
	"sort"
	"sync"
	"time"
)

// Favorite is one starred value.
type Favorite struct {
	Level     string
	Value     string
	CreatedAt time.Time
}

// Store persists favorites.
type Store interface {
	IsFavorite(level, value string) bool
	Add(level, value string) error
	Remove(level, value string) error
	List() ([]Favorite, error)
	Close() error
}

type key struct {
	level, value string
}

// MemoryStore keeps favorites in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[key]time.Time
	now   func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[key]time.Time), now: time.Now}
}

func (m *MemoryStore) IsFavorite(level, value string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key{level, value}]
	return ok
}

func (m *MemoryStore) Add(level, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{level, value}
	if _, ok := m.items[k]; !ok {
		m.items[k] = m.now()
	}
	return nil
}

func (m *MemoryStore) Remove(level, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key{level, value})
	return nil
}

// List returns favorites ordered by level, then value.
func (m *MemoryStore) List() ([]Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Favorite, 0, len(m.items))
	for k, at := range m.items {
		out = append(out, Favorite{Level: k.level, Value: k.value, CreatedAt: at})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
