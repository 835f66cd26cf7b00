// Package registry provides an insertion-ordered arena of records addressed
// both by a string key and by a dense integer index.
package registry

import "iter"

// Registry stores records in insertion order. Each key is assigned the next
// index on first insertion; later insertions of the same key are no-ops.
// Indices are never reused.
type Registry[T any] struct {
	records []T
	indexes map[string]uint32
}

// New returns an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		indexes: make(map[string]uint32),
	}
}

// Add appends rec under key if key is unseen. It returns the index of key and
// whether the record was added.
func (r *Registry[T]) Add(key string, rec T) (uint32, bool) {
	if idx, ok := r.indexes[key]; ok {
		return idx, false
	}
	idx := uint32(len(r.records))
	r.records = append(r.records, rec)
	r.indexes[key] = idx
	return idx, true
}

// Index returns the index assigned to key.
func (r *Registry[T]) Index(key string) (uint32, bool) {
	idx, ok := r.indexes[key]
	return idx, ok
}

// Has reports whether key has been added.
func (r *Registry[T]) Has(key string) bool {
	_, ok := r.indexes[key]
	return ok
}

// At returns the record at idx.
func (r *Registry[T]) At(idx uint32) (T, bool) {
	if int(idx) >= len(r.records) {
		var zero T
		return zero, false
	}
	return r.records[idx], true
}

// Len returns the number of records.
func (r *Registry[T]) Len() int {
	return len(r.records)
}

// All iterates over records in index order.
func (r *Registry[T]) All() iter.Seq2[uint32, T] {
	return func(yield func(uint32, T) bool) {
		for i, rec := range r.records {
			if !yield(uint32(i), rec) {
				return
			}
		}
	}
}
