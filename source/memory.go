package source

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
)

// MemorySource is an in-memory Source.
// Thread-safe for concurrent reads and writes.
type MemorySource struct {
	mu     sync.RWMutex
	tables map[string][]byte
}

// NewMemory creates a MemorySource holding the given tables.
func NewMemory(tables map[string]string) *MemorySource {
	m := &MemorySource{tables: make(map[string][]byte, len(tables))}
	for name, content := range tables {
		m.tables[name] = []byte(content)
	}
	return m
}

// Open returns a reader over a copy of the named table.
func (m *MemorySource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.tables[name]
	if !ok {
		return nil, ErrNotFound
	}

	copied := make([]byte, len(data))
	copy(copied, data)
	return io.NopCloser(bytes.NewReader(copied)), nil
}

// Put stores a table, replacing any previous content.
func (m *MemorySource) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.tables[name] = copied
}

// Names returns the stored table names in sorted order.
func (m *MemorySource) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
