package dataset

import "github.com/hupe1980/enriched/mask"

// set is the shared implementation of SymSet and AnnoSet. Both are
// structurally identical and differ only in which side they index.
type set struct {
	source     *Dataset
	side       Side
	indices    []uint32
	membership *mask.Mask
	mapped     *mask.Mask
	dropped    int
}

func newSet(ds *Dataset, side Side, keys []string) set {
	s := set{
		source:     ds,
		side:       side,
		indices:    make([]uint32, 0, len(keys)),
		membership: mask.New(ds.capacity),
		mapped:     mask.New(ds.capacity),
	}

	lookup := ds.syms.Index
	if side == Annotations {
		lookup = ds.annos.Index
	}

	for _, k := range keys {
		idx, ok := lookup(k)
		if !ok {
			s.dropped++
			continue
		}
		if s.membership.Test(idx) {
			continue
		}
		_ = s.membership.Set(idx)
		s.indices = append(s.indices, idx)
	}

	for _, idx := range s.indices {
		if side == Symbols {
			e, _ := ds.syms.At(idx)
			s.mapped.OrInPlace(e.links)
		} else {
			e, _ := ds.annos.At(idx)
			s.mapped.OrInPlace(e.links)
		}
	}
	return s
}

// Source returns the dataset the set was built from.
func (s *set) Source() *Dataset {
	return s.source
}

// Side returns the side the set indexes.
func (s *set) Side() Side {
	return s.side
}

// Len returns the number of resolved members.
func (s *set) Len() int {
	return len(s.indices)
}

// Dropped returns how many requested names could not be resolved.
func (s *set) Dropped() int {
	return s.dropped
}

// Indices returns the resolved member indices in request order.
func (s *set) Indices() []uint32 {
	out := make([]uint32, len(s.indices))
	copy(out, s.indices)
	return out
}

// MembershipMask returns a copy of the mask with one bit per member.
func (s *set) MembershipMask() *mask.Mask {
	return s.membership.Clone()
}

// MappedMask returns a copy of the union of the members' masks, i.e. the
// counterpart entities linked to at least one member.
func (s *set) MappedMask() *mask.Mask {
	return s.mapped.Clone()
}

// Size returns the population count of the membership mask.
func (s *set) Size() uint64 {
	return s.membership.Count()
}

// SymSet is an immutable subset of a dataset's symbols.
type SymSet struct {
	set
}

// NewSymSet resolves ids against ds. Unknown ids are dropped (see Dropped);
// repeated ids count once.
func NewSymSet(ds *Dataset, ids []string) *SymSet {
	return &SymSet{set: newSet(ds, Symbols, ids)}
}

// Members returns the resolved symbols in request order.
func (s *SymSet) Members() []Symbol {
	out := make([]Symbol, 0, len(s.indices))
	for _, idx := range s.indices {
		e, _ := s.source.syms.At(idx)
		out = append(out, e.rec)
	}
	return out
}

// AnnoSet is an immutable subset of a dataset's annotations.
type AnnoSet struct {
	set
}

// NewAnnoSet resolves ids against ds. Unknown ids are dropped (see Dropped);
// repeated ids count once.
func NewAnnoSet(ds *Dataset, ids []string) *AnnoSet {
	return &AnnoSet{set: newSet(ds, Annotations, ids)}
}

// Members returns the resolved annotations in request order.
func (s *AnnoSet) Members() []Annotation {
	out := make([]Annotation, 0, len(s.indices))
	for _, idx := range s.indices {
		e, _ := s.source.annos.At(idx)
		out = append(out, e.rec)
	}
	return out
}
