package enrichment

import (
	"context"
	"slices"
	"testing"

	"github.com/hupe1980/enriched/dataset"
	"github.com/hupe1980/enriched/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepAll(t Test) Test {
	t.Keep = nil
	return t
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.AnnotationID
	}
	return out
}

func TestBackground(t *testing.T) {
	ds := testutil.Canonical(t)
	males := dataset.NewSymSet(ds, testutil.Males())
	eng := New()

	t.Run("Fisher", func(t *testing.T) {
		report, err := eng.Background(context.Background(), Fisher(), males, ds)
		require.NoError(t, err)

		assert.Equal(t, "Fisher's Exact Test (P <= 0.05)", report.Test)
		require.Len(t, report.Results, 2)
		assert.Equal(t, []string{"anno1", "anno2"}, ids(report.Results))

		r1, r2 := report.Results[0], report.Results[1]
		assert.Equal(t, "studying", r1.Annotation)
		assert.Equal(t, Table{A: 1, B: 10, C: 11, D: 14}, r1.Table)
		assert.InDelta(t, 0.0391725441781059, r1.Stat, 1e-12)
		assert.False(t, r1.Enriched)

		assert.Equal(t, Table{A: 11, B: 14, C: 1, D: 10}, r2.Table)
		assert.InDelta(t, 0.0391725441781059, r2.Stat, 1e-12)
		assert.True(t, r2.Enriched)
	})

	t.Run("FoldChange", func(t *testing.T) {
		report, err := eng.Background(context.Background(), FoldChange(), males, ds)
		require.NoError(t, err)

		assert.Equal(t, "Fold Change (Fold > 1)", report.Test)
		require.Len(t, report.Results, 1)
		assert.Equal(t, "anno2", report.Results[0].AnnotationID)
		assert.InDelta(t, 11.0/12.0/(14.0/24.0), report.Results[0].Stat, 1e-12)
	})

	t.Run("OnlyReachedAnnotations", func(t *testing.T) {
		one := dataset.NewSymSet(ds, []string{"f1"})
		report, err := eng.Background(context.Background(), keepAll(Fisher()), one, ds)
		require.NoError(t, err)
		assert.Equal(t, []string{"anno1"}, ids(report.Results))
	})

	t.Run("EmptyTestSet", func(t *testing.T) {
		empty := dataset.NewSymSet(ds, []string{"nobody"})
		report, err := eng.Background(context.Background(), Fisher(), empty, ds)
		require.NoError(t, err)
		assert.Empty(t, report.Results)
	})
}

func TestControl(t *testing.T) {
	ds := testutil.Canonical(t)
	males := dataset.NewSymSet(ds, testutil.Males())
	females := dataset.NewSymSet(ds, testutil.Females())
	eng := New()

	t.Run("Fisher", func(t *testing.T) {
		report, err := eng.Control(context.Background(), Fisher(), males, females, ds)
		require.NoError(t, err)

		require.Len(t, report.Results, 2)
		assert.Equal(t, []string{"anno1", "anno2"}, ids(report.Results))
		assert.Equal(t, Table{A: 1, B: 9, C: 11, D: 3}, report.Results[0].Table)
		assert.InDelta(t, 0.0013460761879122358, report.Results[0].Stat, 1e-12)
		assert.False(t, report.Results[0].Enriched)
		assert.Equal(t, Table{A: 11, B: 3, C: 1, D: 9}, report.Results[1].Table)
		assert.True(t, report.Results[1].Enriched)
	})

	t.Run("Fisher005", func(t *testing.T) {
		report, err := eng.Control(context.Background(), Fisher005(), males, females, ds)
		require.NoError(t, err)
		assert.Equal(t, "Fisher's Exact Test (P <= 0.005)", report.Test)
		assert.Len(t, report.Results, 2)
	})

	t.Run("FoldChange", func(t *testing.T) {
		report, err := eng.Control(context.Background(), FoldChange(), males, females, ds)
		require.NoError(t, err)

		require.Len(t, report.Results, 1)
		assert.Equal(t, "anno2", report.Results[0].AnnotationID)
		assert.InDelta(t, 11.0/3.0, report.Results[0].Stat, 1e-12)
	})
}

func TestFull(t *testing.T) {
	ds := testutil.Canonical(t)
	_, err := ds.AddAnnotation("anno3", "sports", "", []string{"f1", "f2", "f3", "f4", "f5"})
	require.NoError(t, err)

	males := dataset.NewSymSet(ds, testutil.Males())
	eng := New()

	report, err := eng.Full(context.Background(), keepAll(Fisher()), males, ds)
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.Equal(t, []string{"anno1", "anno2", "anno3"}, ids(report.Results))

	r3 := report.Results[2]
	assert.Equal(t, Table{A: 0, B: 5, C: 12, D: 19}, r3.Table)
	assert.InDelta(t, 0.11274509803921556, r3.Stat, 1e-12)
	assert.False(t, r3.Enriched)

	// anno3 is never reached by a male, so the background form skips it.
	bg, err := eng.Background(context.Background(), keepAll(Fisher()), males, ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"anno1", "anno2"}, ids(bg.Results))

	filtered, err := eng.Full(context.Background(), Fisher(), males, ds)
	require.NoError(t, err)
	assert.Len(t, filtered.Results, 2)
}

func TestLimit(t *testing.T) {
	ds := testutil.Canonical(t)
	males := dataset.NewSymSet(ds, testutil.Males())

	report, err := New(WithLimit(1)).Background(context.Background(), Fisher(), males, ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"anno1"}, ids(report.Results))

	assert.Equal(t, DefaultLimit, New().Limit())
}

func TestErrors(t *testing.T) {
	ds := testutil.Canonical(t)
	other := testutil.Canonical(t)
	males := dataset.NewSymSet(ds, testutil.Males())
	foreign := dataset.NewSymSet(other, testutil.Females())
	eng := New()

	t.Run("DatasetMismatch", func(t *testing.T) {
		_, err := eng.Background(context.Background(), Fisher(), foreign, ds)
		require.ErrorIs(t, err, ErrDatasetMismatch)

		_, err = eng.Control(context.Background(), Fisher(), males, foreign, ds)
		require.ErrorIs(t, err, ErrDatasetMismatch)

		_, err = eng.Control(context.Background(), Fisher(), males, nil, ds)
		require.ErrorIs(t, err, ErrDatasetMismatch)
	})

	t.Run("InvalidTest", func(t *testing.T) {
		_, err := eng.Full(context.Background(), Test{Name: "none"}, males, ds)
		require.ErrorIs(t, err, ErrInvalidTest)
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := eng.Background(ctx, Fisher(), males, ds)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRandomRanking(t *testing.T) {
	rng := testutil.NewRNG(99)
	ds := rng.Dataset(t, 400, 30, 5)
	hits := dataset.NewSymSet(ds, testutil.SymbolIDs(rng.Sample(400, 60)))
	eng := New(WithLimit(10))

	for _, name := range PresetNames() {
		tt := Presets()[name]
		report, err := eng.Background(context.Background(), keepAll(tt), hits, ds)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(report.Results), 10)
		assert.True(t, slices.IsSortedFunc(report.Results, tt.Less), name)
		for _, r := range report.Results {
			assert.Positive(t, r.Table.A, "reached annotations overlap the test set")
			assert.Equal(t, hits.Size(), r.Table.A+r.Table.C)
			assert.Equal(t, uint64(ds.TotalSymbols()), r.Table.B+r.Table.D)
		}
	}
}
