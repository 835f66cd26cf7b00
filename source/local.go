package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/enriched/internal/mmap"
)

// LocalSource reads tables from the local file system.
type LocalSource struct {
	root string
}

// NewLocal creates a LocalSource rooted at root. With an empty root, names
// are used as paths as given.
func NewLocal(root string) *LocalSource {
	return &LocalSource{root: root}
}

func (s *LocalSource) path(name string) string {
	if s.root == "" {
		return name
	}
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open maps a regular file into memory. Pipes and devices are read through
// a plain file handle.
func (s *LocalSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.path(name)
	m, err := mmap.Open(path)
	if errors.Is(err, mmap.ErrNotRegular) {
		fi, statErr := os.Stat(path)
		if statErr == nil && fi.IsDir() {
			return nil, err
		}
		return os.Open(path)
	}
	if err != nil {
		return nil, err
	}

	_ = m.Advise(mmap.AccessSequential)
	return &mappedReader{Reader: m.Reader(), m: m}, nil
}

type mappedReader struct {
	io.Reader
	m *mmap.Mapping
}

func (r *mappedReader) Close() error {
	return r.m.Close()
}
