package store

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Memory is an in-process Store. It backs tests and local runs without a
// database; its contents die with the process.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document

	// Err, when set, is returned by every List call.
	Err error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]Document)}
}

// List implements Reader.
func (m *Memory) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	docs := m.collections[collection]
	out := make([]Document, 0, len(docs))
	for _, id := range slices.Sorted(maps.Keys(docs)) {
		d := docs[id]
		out = append(out, Document{ID: d.ID, Data: slices.Clone(d.Data)})
	}
	return out, nil
}

// Put implements Store.
func (m *Memory) Put(ctx context.Context, collection string, docs []Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateCollection(collection); err != nil {
		return err
	}
	for _, d := range docs {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		c = make(map[string]Document)
		m.collections[collection] = c
	}
	for _, d := range docs {
		c[d.ID] = Document{ID: d.ID, Data: slices.Clone(d.Data)}
	}
	return nil
}

// Clear implements Store.
func (m *Memory) Clear(ctx context.Context, collection string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.collections[collection])
	delete(m.collections, collection)
	return n, nil
}

// Count implements Store.
func (m *Memory) Count(ctx context.Context, collection string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection]), nil
}

// Collections implements Store.
func (m *Memory) Collections(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var names []string
	for name, docs := range m.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
