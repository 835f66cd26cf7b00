package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when a table does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// Source opens tables by name.
type Source interface {
	// Open returns a stream over the named table. The caller must close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// ReadAll opens name and returns its full contents.
func ReadAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// FetchAll reads the named tables concurrently. The result holds the
// contents in the order of names. The first failure cancels the rest.
func FetchAll(ctx context.Context, src Source, names ...string) ([][]byte, error) {
	out := make([][]byte, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, name := range names {
		g.Go(func() error {
			data, err := ReadAll(gctx, src, name)
			if err != nil {
				return err
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
