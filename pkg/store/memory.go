package store

import (
	"context"
	"sort"
	"sync"

	"github.com/framewright/framewright/pkg/frame"
)

// MemoryStore is an in-memory store for development and tests.
// Assemblies are deep-copied on the way in and out so callers cannot
// mutate stored state through shared slices.
type MemoryStore struct {
	mu         sync.RWMutex
	assemblies map[string]*frame.Assembly
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{assemblies: make(map[string]*frame.Assembly)}
}

// Save stores a deep copy of the assembly.
func (s *MemoryStore) Save(ctx context.Context, a *frame.Assembly) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assemblies[a.ID] = a.Clone()
	return nil
}

// Load returns a deep copy of the stored assembly.
func (s *MemoryStore) Load(ctx context.Context, id string) (*frame.Assembly, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assemblies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a.Clone(), nil
}

// List returns stored IDs in lexical order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.assemblies))
	for id := range s.assemblies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes an assembly; missing IDs are ignored.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assemblies, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
