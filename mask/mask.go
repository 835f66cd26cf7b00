package mask

import (
	"errors"
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrOutOfRange is returned when a bit index is not below the mask capacity.
var ErrOutOfRange = errors.New("bit index out of range")

// Mask is a capacity-bounded membership bitmask.
//
// The zero value is not usable; create masks with New.
type Mask struct {
	rb       *roaring.Bitmap
	capacity uint32
}

// New creates an empty mask that accepts bit indices in [0, capacity).
func New(capacity uint32) *Mask {
	return &Mask{
		rb:       roaring.New(),
		capacity: capacity,
	}
}

// FromIndices creates a mask with the given bits set.
// Indices outside the capacity cause ErrOutOfRange.
func FromIndices(capacity uint32, indices ...uint32) (*Mask, error) {
	m := New(capacity)
	for _, i := range indices {
		if err := m.Set(i); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Capacity returns the number of addressable bits.
func (m *Mask) Capacity() uint32 {
	return m.capacity
}

// Set sets bit i.
func (m *Mask) Set(i uint32) error {
	if i >= m.capacity {
		return fmt.Errorf("%w: %d >= %d", ErrOutOfRange, i, m.capacity)
	}
	m.rb.Add(i)
	return nil
}

// Unset clears bit i. Out-of-range indices are ignored.
func (m *Mask) Unset(i uint32) {
	m.rb.Remove(i)
}

// Test reports whether bit i is set.
func (m *Mask) Test(i uint32) bool {
	if i >= m.capacity {
		return false
	}
	return m.rb.Contains(i)
}

// Count returns the number of set bits.
func (m *Mask) Count() uint64 {
	return m.rb.GetCardinality()
}

// IsEmpty reports whether no bit is set.
func (m *Mask) IsEmpty() bool {
	return m.rb.IsEmpty()
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	return &Mask{
		rb:       m.rb.Clone(),
		capacity: m.capacity,
	}
}

// And returns the intersection of m and other as a new mask.
// The result keeps the capacity of m.
func (m *Mask) And(other *Mask) *Mask {
	return &Mask{
		rb:       roaring.And(m.rb, other.rb),
		capacity: m.capacity,
	}
}

// Or returns the union of m and other as a new mask.
//
// Bits of other at or beyond the capacity of m are not carried over.
func (m *Mask) Or(other *Mask) *Mask {
	out := m.Clone()
	out.OrInPlace(other)
	return out
}

// OrInPlace merges other into m.
func (m *Mask) OrInPlace(other *Mask) {
	m.rb.Or(other.rb)
	if other.capacity > m.capacity {
		m.rb.RemoveRange(uint64(m.capacity), uint64(other.capacity))
	}
}

// AndCount returns |m ∩ other| without materialising the intersection.
func (m *Mask) AndCount(other *Mask) uint64 {
	return m.rb.AndCardinality(other.rb)
}

// Equal reports whether both masks have the same capacity and bits.
func (m *Mask) Equal(other *Mask) bool {
	if other == nil {
		return false
	}
	return m.capacity == other.capacity && m.rb.Equals(other.rb)
}

// ToArray returns the set bit indices in ascending order.
func (m *Mask) ToArray() []uint32 {
	return m.rb.ToArray()
}

// All iterates over the set bit indices in ascending order.
func (m *Mask) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clear removes all bits.
func (m *Mask) Clear() {
	m.rb.Clear()
}

// String returns the set bits, e.g. "{1,4,6}".
func (m *Mask) String() string {
	return m.rb.String()
}
