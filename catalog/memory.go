package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// MemoryStore keeps species in a map. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	species map[string]Species
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{species: make(map[string]Species)}
}

var errClosed = errors.New("catalog: store closed")

func (m *MemoryStore) Save(_ context.Context, s Species) error {
	if s.ID == "" {
		return errors.New("catalog: species id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errClosed
	}
	m.species[s.ID] = clone(s)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Species, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return Species{}, errClosed
	}
	s, ok := m.species[id]
	if !ok {
		return Species{}, ErrNotFound
	}
	return clone(s), nil
}

// List returns every species, oldest first.
func (m *MemoryStore) List(_ context.Context) ([]Species, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, errClosed
	}
	out := make([]Species, 0, len(m.species))
	for _, s := range m.species {
		out = append(out, clone(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// clone detaches the slices so stored records stay immutable.
func clone(s Species) Species {
	s.Variant = append([]int(nil), s.Variant...)
	if s.Brain != nil {
		b := *s.Brain
		b.W1 = append([]float64(nil), b.W1...)
		b.B1 = append([]float64(nil), b.B1...)
		b.W2 = append([]float64(nil), b.W2...)
		b.B2 = append([]float64(nil), b.B2...)
		s.Brain = &b
	}
	return s
}
