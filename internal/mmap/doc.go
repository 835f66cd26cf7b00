// Package mmap provides read-only memory-mapped access to table files.
//
// # Usage
//
//	m, err := mmap.Open("go.sym.tsv")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Tables are parsed front to back
//	_ = m.Advise(mmap.AccessSequential)
//	r := m.Reader()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent reads. Close is idempotent, but callers
// must not touch Bytes() or a Reader after Close returns.
package mmap
