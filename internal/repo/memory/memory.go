package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/hamed0406/sitewatch/internal/domain"
	"github.com/hamed0406/sitewatch/internal/repo"
)

var _ repo.Registry = (*Store)(nil)

type Store struct {
	mu    sync.RWMutex
	sites map[string]domain.ObservedState
}

func New() *Store {
	return &Store{sites: make(map[string]domain.ObservedState)}
}

func (m *Store) Upsert(url string, st domain.ObservedState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sites[url] = st
}

func (m *Store) Snapshot() map[string]domain.ObservedState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.sites)
}

func (m *Store) Keys() []string {
	m.mu.RLock()
	keys := slices.Collect(maps.Keys(m.sites))
	m.mu.RUnlock()
	slices.Sort(keys)
	return keys
}

func (m *Store) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sites)
}
