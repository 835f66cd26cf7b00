package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	assert.True(t, PValueAtMost(0.05)(Result{Stat: 0.05}))
	assert.False(t, PValueAtMost(0.05)(Result{Stat: 0.0500001}))
	assert.True(t, FoldAbove(1)(Result{Stat: 1.01}))
	assert.False(t, FoldAbove(1)(Result{Stat: 1}))
}

func TestOrders(t *testing.T) {
	lo, hi := Result{Stat: 0.1}, Result{Stat: 0.9}
	assert.Negative(t, Ascending(lo, hi))
	assert.Positive(t, Descending(lo, hi))
	assert.Zero(t, Ascending(lo, lo))
}

func TestPresets(t *testing.T) {
	p := Presets()
	assert.Len(t, p, len(PresetNames()))
	for _, name := range PresetNames() {
		assert.Contains(t, p, name)
		assert.NotNil(t, p[name].Statistic)
	}
	assert.Equal(t, "Fisher's Exact Test (P <= 0.01)", Fisher01().Name)
}
