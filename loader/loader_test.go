package loader

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/enriched/dataset"
	"github.com/hupe1980/enriched/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDataset(t *testing.T, capacity uint32) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(capacity)
	require.NoError(t, err)
	return ds
}

func TestLoadCanonical(t *testing.T) {
	ctx := context.Background()
	ds := newDataset(t, 32)

	s, err := LoadAnnotations(ctx, ds, strings.NewReader(testutil.CanonicalAnnotationTable))
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 2, Added: 2}, s)

	s, err = LoadSymbols(ctx, ds, strings.NewReader(testutil.CanonicalSymbolTable()))
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 24, Added: 24}, s)

	assert.Equal(t, dataset.DerivedAnnotations, ds.DeriveMissingMapping())

	anno, err := ds.AnnotationByKey("anno2")
	require.NoError(t, err)
	assert.Equal(t, "not studying", anno.Name)
	assert.Equal(t, "bad!", anno.Description)

	idx, ok := ds.AnnotationIndex("anno1")
	require.True(t, ok)
	n, err := ds.AnnotationCount(idx)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), n)

	sym, err := ds.SymbolByKey("m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", sym.Name, "name defaults to the id")
}

func TestLoadAnnotationsFields(t *testing.T) {
	ctx := context.Background()
	ds := newDataset(t, 8)

	_, err := ds.AddSymbol("s1", "s1", nil)
	require.NoError(t, err)

	input := strings.Join([]string{
		"# GO terms",
		"GO:1\tonly name",
		"",
		"GO:2\tfull\tdescribed\ts1,ghost",
		"GO:1\tagain\tdup",
		"   ",
		"GO:3",
	}, "\n")

	s, err := LoadAnnotations(ctx, ds, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 4, Added: 3, Duplicates: 1, Registered: 1}, s)

	a1, err := ds.AnnotationByKey("GO:1")
	require.NoError(t, err)
	assert.Equal(t, "only name", a1.Name)
	assert.Empty(t, a1.Description)

	idx, _ := ds.AnnotationIndex("GO:2")
	n, err := ds.AnnotationCount(idx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	ghost, err := ds.SymbolByKey("ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", ghost.Name)
}

func TestLoadAnnotationsWithSymbolLists(t *testing.T) {
	ctx := context.Background()
	ds := newDataset(t, 8)

	input := "anno1\tstudying\tgood\tm1,f1,f2\nanno2\tnot\tbad\tm2,m3,m1\n"
	s, err := LoadAnnotations(ctx, ds, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 2, Added: 2, Registered: 5}, s)
	assert.Equal(t, 5, ds.TotalSymbols())

	assert.Equal(t, dataset.DerivedSymbols, ds.DeriveMissingMapping())
	assert.Zero(t, ds.Inconsistencies())

	idx, ok := ds.SymbolIndex("m1")
	require.True(t, ok)
	links, err := ds.SymbolMask(idx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), links.Count())
}

func TestLoadSymbolsName(t *testing.T) {
	ctx := context.Background()
	ds := newDataset(t, 8)

	_, err := LoadAnnotations(ctx, ds, strings.NewReader("a\tA\n"))
	require.NoError(t, err)

	s, err := LoadSymbols(ctx, ds, strings.NewReader("TP53\ta, b ,,\ttumor protein\r\n"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Lines: 1, Added: 1, Unresolved: 1}, s)

	sym, err := ds.SymbolByKey("TP53")
	require.NoError(t, err)
	assert.Equal(t, "tumor protein", sym.Name)
}

func TestLoadAtomicity(t *testing.T) {
	ctx := context.Background()

	t.Run("CapacityPrecheck", func(t *testing.T) {
		ds := newDataset(t, 2)
		_, err := LoadAnnotations(ctx, ds, strings.NewReader("a\nb\nc\n"))
		require.ErrorIs(t, err, dataset.ErrCapacityExceeded)

		var capErr *dataset.CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, "c", capErr.Key)
		assert.Zero(t, ds.TotalAnnotations())
	})

	t.Run("SymbolListCapacity", func(t *testing.T) {
		ds := newDataset(t, 2)
		_, err := LoadAnnotations(ctx, ds, strings.NewReader("a\tA\t\ts1,s2\nb\tB\t\ts2,s3\n"))
		require.ErrorIs(t, err, dataset.ErrCapacityExceeded)

		var capErr *dataset.CapacityError
		require.ErrorAs(t, err, &capErr)
		assert.Equal(t, dataset.Symbols, capErr.Side)
		assert.Equal(t, "s3", capErr.Key)
		assert.Zero(t, ds.TotalSymbols())
		assert.Zero(t, ds.TotalAnnotations())
	})

	t.Run("DuplicatesDoNotCount", func(t *testing.T) {
		ds := newDataset(t, 2)
		_, err := LoadAnnotations(ctx, ds, strings.NewReader("a\na\nb\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, ds.TotalAnnotations())

		_, err = LoadAnnotations(ctx, ds, strings.NewReader("b\na\n"))
		require.NoError(t, err)
	})

	t.Run("ParseError", func(t *testing.T) {
		ds := newDataset(t, 4)
		_, err := LoadSymbols(ctx, ds, strings.NewReader("s1\t\n\tanno\n"))
		require.ErrorIs(t, err, ErrMalformed)

		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 2, pe.Line)
		assert.Zero(t, ds.TotalSymbols())
	})

	t.Run("Canceled", func(t *testing.T) {
		ds := newDataset(t, 4)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := LoadAnnotations(cctx, ds, strings.NewReader("a\n"))
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, ds.TotalAnnotations())
	})
}

func compress(t *testing.T, c Compression, data string) []byte {
	t.Helper()

	var buf bytes.Buffer
	switch c {
	case CompressionGzip:
		w := gzip.NewWriter(&buf)
		_, err := w.Write([]byte(data))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case CompressionZstd:
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case CompressionLZ4:
		w := lz4.NewWriter(&buf)
		_, err := w.Write([]byte(data))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		buf.WriteString(data)
	}
	return buf.Bytes()
}

func TestCompressedInput(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			data := compress(t, c, testutil.CanonicalSymbolTable())
			assert.Equal(t, c, Detect(data))

			ds := newDataset(t, 32)
			_, err := LoadAnnotations(context.Background(), ds, strings.NewReader(testutil.CanonicalAnnotationTable))
			require.NoError(t, err)

			s, err := LoadSymbols(context.Background(), ds, bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 24, s.Added)
		})
	}
}

func TestDetectShortInput(t *testing.T) {
	assert.Equal(t, CompressionNone, Detect(nil))
	assert.Equal(t, CompressionNone, Detect([]byte{0x1f}))

	rc, c, err := NewReader(strings.NewReader("x"))
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, CompressionNone, c)
}

func TestReadSymbolList(t *testing.T) {
	names, err := ReadSymbolList(strings.NewReader("m1\n  m2  \n\n# comment\nf1\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2", "f1"}, names)

	gz := compress(t, CompressionGzip, "a\nb\n")
	names, err = ReadSymbolList(bytes.NewReader(gz))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}
