package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := []int{rng.Intn(100), rng.Intn(100), rng.Intn(100)}

	rng.Reset()
	v2 := []int{rng.Intn(100), rng.Intn(100), rng.Intn(100)}

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestZipf(t *testing.T) {
	rng := NewRNG(1)

	counts := make([]int, 10)
	for range 2000 {
		v := rng.Zipf(10, 1.5)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 10)
		counts[v]++
	}
	assert.Greater(t, counts[0], counts[9], "head must dominate the tail")
}

func TestSample(t *testing.T) {
	rng := NewRNG(3)

	s := rng.Sample(20, 5)
	assert.Len(t, s, 5)

	seen := map[int]bool{}
	for _, v := range s {
		assert.False(t, seen[v])
		seen[v] = true
	}
	assert.Len(t, rng.Sample(3, 10), 3)
}

func TestDataset(t *testing.T) {
	rng := NewRNG(42)
	ds := rng.Dataset(t, 200, 25, 4)

	assert.Equal(t, 200, ds.TotalSymbols())
	assert.Equal(t, 25, ds.TotalAnnotations())
	assert.Zero(t, ds.Inconsistencies())
}

func TestCanonical(t *testing.T) {
	ds := Canonical(t)

	assert.Equal(t, 24, ds.TotalSymbols())
	assert.Len(t, Males(), 12)
	assert.Equal(t, "f12", Females()[11])
	assert.Contains(t, CanonicalSymbolTable(), "m12\tanno2\n")
}
