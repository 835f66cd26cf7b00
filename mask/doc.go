// Package mask provides the fixed-capacity membership bitmask shared by
// symbols, annotations and sets.
//
// A Mask is a bit-vector over entity indices [0, Capacity). Bit i set on a
// symbol's mask means the symbol is linked to the annotation at index i, and
// vice versa. Unlike a plain bitset, a Mask never silently drops an
// out-of-range bit: Set reports ErrOutOfRange instead.
//
// Masks are backed by Roaring bitmaps, so sparse adjacency rows (the common
// case for gene annotations) stay small while population counts of
// intersections remain cheap:
//
//	m := mask.New(1 << 16)
//	_ = m.Set(3)
//	_ = m.Set(42)
//	overlap := m.AndCount(other) // |m ∩ other| without allocating
package mask
