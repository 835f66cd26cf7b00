package promcollector

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.RecordLoad("go.anno.tsv", 40, 3*time.Millisecond, nil)
	c.RecordLoad("go.sym.tsv", 0, time.Millisecond, errors.New("boom"))
	c.RecordTest("Fold Change (Fold > 1)", 5, time.Millisecond, nil)

	assert.InDelta(t, 40, testutil.ToFloat64(c.loaded.WithLabelValues("go.anno.tsv")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.ops.WithLabelValues("load", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.ops.WithLabelValues("test", "success")), 0)

	expected := `
# HELP enriched_operations_total Completed operations
# TYPE enriched_operations_total counter
enriched_operations_total{op="load",status="error"} 1
enriched_operations_total{op="load",status="success"} 1
enriched_operations_total{op="test",status="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "enriched_operations_total"))

	n, err := testutil.GatherAndCount(reg, "enriched_test_results")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
