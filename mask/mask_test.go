package mask

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask_Basic(t *testing.T) {
	m := New(16)

	require.NoError(t, m.Set(3))
	require.NoError(t, m.Set(15))
	require.NoError(t, m.Set(3))

	assert.True(t, m.Test(3))
	assert.True(t, m.Test(15))
	assert.False(t, m.Test(4))
	assert.Equal(t, uint64(2), m.Count())
	assert.Equal(t, uint32(16), m.Capacity())

	m.Unset(3)
	assert.False(t, m.Test(3))
	assert.Equal(t, uint64(1), m.Count())

	m.Clear()
	assert.True(t, m.IsEmpty())
}

func TestMask_OutOfRange(t *testing.T) {
	m := New(8)

	err := m.Set(8)
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.True(t, m.IsEmpty(), "failed Set must not change the mask")
	assert.False(t, m.Test(8))
	assert.False(t, m.Test(1<<20))

	_, err = FromIndices(8, 1, 2, 9)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestMask_SetAlgebra(t *testing.T) {
	a, err := FromIndices(32, 1, 2, 3, 10)
	require.NoError(t, err)
	b, err := FromIndices(32, 2, 3, 4, 20)
	require.NoError(t, err)

	and := a.And(b)
	assert.Equal(t, []uint32{2, 3}, and.ToArray())
	assert.Equal(t, uint64(2), a.AndCount(b))

	or := a.Or(b)
	assert.Equal(t, []uint32{1, 2, 3, 4, 10, 20}, or.ToArray())

	// Operands are untouched.
	assert.Equal(t, []uint32{1, 2, 3, 10}, a.ToArray())
	assert.Equal(t, []uint32{2, 3, 4, 20}, b.ToArray())
}

func TestMask_OrInPlaceRespectsCapacity(t *testing.T) {
	small := New(4)
	big, err := FromIndices(64, 1, 3, 40)
	require.NoError(t, err)

	small.OrInPlace(big)
	assert.Equal(t, []uint32{1, 3}, small.ToArray())
}

func TestMask_CloneAndEqual(t *testing.T) {
	a, err := FromIndices(16, 0, 5)
	require.NoError(t, err)

	c := a.Clone()
	assert.True(t, a.Equal(c))

	require.NoError(t, c.Set(6))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Test(6))

	other, err := FromIndices(32, 0, 5)
	require.NoError(t, err)
	assert.False(t, a.Equal(other), "different capacities are not equal")
	assert.False(t, a.Equal(nil))
}

func TestMask_All(t *testing.T) {
	m, err := FromIndices(100, 50, 7, 99)
	require.NoError(t, err)

	assert.Equal(t, []uint32{7, 50, 99}, slices.Collect(m.All()))

	var first []uint32
	for i := range m.All() {
		first = append(first, i)
		break
	}
	assert.Equal(t, []uint32{7}, first)
}
