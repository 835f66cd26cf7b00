package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.anno.tsv"), []byte("anno1\tstudying\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.tsv"), nil, 0o600))

	ctx := context.Background()
	src := NewLocal(dir)

	t.Run("Open", func(t *testing.T) {
		data, err := ReadAll(ctx, src, "go.anno.tsv")
		require.NoError(t, err)
		assert.Equal(t, "anno1\tstudying\n", string(data))
	})

	t.Run("Empty", func(t *testing.T) {
		data, err := ReadAll(ctx, src, "empty.tsv")
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := src.Open(ctx, "missing.tsv")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := src.Open(ctx, ".")
		assert.Error(t, err)
	})

	t.Run("NoRoot", func(t *testing.T) {
		data, err := ReadAll(ctx, NewLocal(""), filepath.Join(dir, "go.anno.tsv"))
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}

func TestMemorySource(t *testing.T) {
	ctx := context.Background()
	src := NewMemory(map[string]string{"a": "1"})
	src.Put("b", []byte("2"))

	assert.Equal(t, []string{"a", "b"}, src.Names())

	data, err := ReadAll(ctx, src, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))

	_, err = src.Open(ctx, "c")
	assert.ErrorIs(t, err, ErrNotFound)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = src.Open(canceled, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchAll(t *testing.T) {
	ctx := context.Background()
	src := NewMemory(map[string]string{"anno": "A", "sym": "S", "hits": "H"})

	out, err := FetchAll(ctx, src, "sym", "anno", "hits")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "S", string(out[0]))
	assert.Equal(t, "A", string(out[1]))
	assert.Equal(t, "H", string(out[2]))

	_, err = FetchAll(ctx, src, "anno", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThrottle(t *testing.T) {
	ctx := context.Background()
	src := NewMemory(map[string]string{"t": "0123456789"})

	assert.Same(t, Source(src), Throttle(src, 0))

	throttled := Throttle(src, 4)
	start := time.Now()
	data, err := ReadAll(ctx, throttled, "t")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))
	assert.GreaterOrEqual(t, time.Since(start), time.Second, "10 bytes at 4 B/s exceeds the burst")

	canceled, cancel := context.WithCancel(ctx)
	rc, err := throttled.Open(canceled, "t")
	require.NoError(t, err)
	cancel()
	_, err = io.ReadAll(rc)
	assert.Error(t, err)
}

type countingSource struct {
	Source
	opens atomic.Int32
}

func (c *countingSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	c.opens.Add(1)
	return c.Source.Open(ctx, name)
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{Source: NewMemory(map[string]string{"t": "table"})}
	src := Cache(inner, 1<<10)

	for range 3 {
		data, err := ReadAll(ctx, src, "t")
		require.NoError(t, err)
		assert.Equal(t, "table", string(data))
	}
	assert.Equal(t, int32(1), inner.opens.Load())

	hits, misses := src.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)

	src.Forget("t")
	_, err := ReadAll(ctx, src, "t")
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.opens.Load())

	_, err = src.Open(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
