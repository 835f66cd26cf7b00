package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/hupe1980/enriched/dataset"
	"github.com/stretchr/testify/require"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Sample returns k distinct values from [0, n) in random order.
func (r *RNG) Sample(n, k int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	perm := r.rand.Perm(n)
	return perm[:min(k, n)]
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// Annotation sizes in real catalogues follow this shape: a few broad
// categories and a long tail of narrow ones.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// SymbolID returns the id used for the i-th generated symbol.
func SymbolID(i int) string { return fmt.Sprintf("sym%d", i) }

// AnnotationID returns the id used for the i-th generated annotation.
func AnnotationID(i int) string { return fmt.Sprintf("anno%d", i) }

// Dataset generates a derived dataset of numSyms symbols and numAnnos
// annotations. Each symbol carries between 1 and maxLinks annotations drawn
// with Zipfian popularity. Links are supplied on the symbol side.
func (r *RNG) Dataset(tb testing.TB, numSyms, numAnnos, maxLinks int) *dataset.Dataset {
	tb.Helper()

	capacity := uint32(max(numSyms, numAnnos))
	ds, err := dataset.New(capacity)
	require.NoError(tb, err)

	for i := range numAnnos {
		id := AnnotationID(i)
		_, err := ds.AddAnnotation(id, "term "+id, "generated", nil)
		require.NoError(tb, err)
	}

	for i := range numSyms {
		n := 1 + r.Intn(maxLinks)
		links := make([]string, 0, n)
		for range n {
			links = append(links, AnnotationID(r.Zipf(numAnnos, 1.2)))
		}
		_, err := ds.AddSymbol(SymbolID(i), SymbolID(i), links)
		require.NoError(tb, err)
	}

	ds.DeriveMissingMapping()
	return ds
}

// SymbolIDs returns the generated ids of the given symbol indices.
func SymbolIDs(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = SymbolID(idx)
	}
	return out
}

// Males returns the ids m1..m12 of the canonical example.
func Males() []string {
	return numbered("m", 1, 12)
}

// Females returns the ids f1..f12 of the canonical example.
func Females() []string {
	return numbered("f", 1, 12)
}

func numbered(prefix string, from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("%s%d", prefix, i))
	}
	return out
}

// Canonical returns the derived two-annotation example dataset:
//
//	anno1 "studying":     m1, f1..f9
//	anno2 "not studying": m2..m12, f10..f12
func Canonical(tb testing.TB) *dataset.Dataset {
	tb.Helper()

	ds, err := dataset.New(32)
	require.NoError(tb, err)

	_, err = ds.AddAnnotation("anno1", "studying", "good!", nil)
	require.NoError(tb, err)
	_, err = ds.AddAnnotation("anno2", "not studying", "bad!", nil)
	require.NoError(tb, err)

	add := func(id, name, anno string) {
		_, err := ds.AddSymbol(id, name, []string{anno})
		require.NoError(tb, err)
	}

	add("m1", "male 1", "anno1")
	for i := 2; i <= 12; i++ {
		add(fmt.Sprintf("m%d", i), fmt.Sprintf("male %d", i), "anno2")
	}
	for i := 1; i <= 9; i++ {
		add(fmt.Sprintf("f%d", i), fmt.Sprintf("female %d", i), "anno1")
	}
	for i := 10; i <= 12; i++ {
		add(fmt.Sprintf("f%d", i), fmt.Sprintf("female %d", i), "anno2")
	}

	require.Equal(tb, dataset.DerivedAnnotations, ds.DeriveMissingMapping())
	return ds
}

// CanonicalAnnotationTable is the annotation table of the canonical example.
const CanonicalAnnotationTable = "anno1\tstudying\tgood!\nanno2\tnot studying\tbad!\n"

// CanonicalSymbolTable returns the symbol mapping table of the canonical example.
func CanonicalSymbolTable() string {
	var out string
	out += "m1\tanno1\n"
	for _, id := range numbered("m", 2, 12) {
		out += id + "\tanno2\n"
	}
	for _, id := range numbered("f", 1, 9) {
		out += id + "\tanno1\n"
	}
	for _, id := range numbered("f", 10, 12) {
		out += id + "\tanno2\n"
	}
	return out
}
