package dataset

import (
	"log/slog"

	"github.com/hupe1980/enriched/internal/registry"
	"github.com/hupe1980/enriched/mask"
)

// Dataset is the annotated universe: all symbols, all annotations and the
// links between them.
type Dataset struct {
	capacity uint32
	syms     *registry.Registry[*entry[Symbol]]
	annos    *registry.Registry[*entry[Annotation]]
	logger   *slog.Logger
}

// New creates an empty dataset. capacity bounds the number of symbols and the
// number of annotations; it is the width of every membership mask.
func New(capacity uint32, optFns ...Option) (*Dataset, error) {
	if capacity == 0 {
		return nil, ErrInvalidCapacity
	}
	o := applyOptions(optFns)
	return &Dataset{
		capacity: capacity,
		syms:     registry.New[*entry[Symbol]](),
		annos:    registry.New[*entry[Annotation]](),
		logger:   o.logger,
	}, nil
}

// Capacity returns the mask capacity.
func (d *Dataset) Capacity() uint32 {
	return d.capacity
}

// TotalSymbols returns the number of registered symbols.
func (d *Dataset) TotalSymbols() int {
	return d.syms.Len()
}

// TotalAnnotations returns the number of registered annotations.
func (d *Dataset) TotalAnnotations() int {
	return d.annos.Len()
}

// Remaining returns how many more records side can hold.
func (d *Dataset) Remaining(side Side) int {
	n := d.syms.Len()
	if side == Annotations {
		n = d.annos.Len()
	}
	return int(d.capacity) - n
}

// AddSymbol registers a symbol keyed by id.
//
// Each name in annotations that is already registered as an annotation ID
// sets the corresponding bit on the new symbol's mask. Unknown names are
// ignored and counted in Insert.Unresolved. Re-adding an existing id is a
// no-op.
func (d *Dataset) AddSymbol(id, name string, annotations []string) (Insert, error) {
	if idx, ok := d.syms.Index(id); ok {
		return Insert{Index: idx}, nil
	}
	if d.syms.Len() >= int(d.capacity) {
		return Insert{}, &CapacityError{Side: Symbols, Key: id, Capacity: d.capacity}
	}

	links, unresolved := resolve(d.capacity, d.annos, annotations)
	idx, _ := d.syms.Add(id, &entry[Symbol]{
		rec:   Symbol{ID: id, Name: name},
		links: links,
	})
	return Insert{Index: idx, Added: true, Unresolved: unresolved}, nil
}

// AddAnnotation registers an annotation keyed by id.
//
// Each name in symbols that is already registered as a symbol ID sets the
// corresponding bit on the new annotation's mask. Unknown names are ignored
// and counted in Insert.Unresolved. Re-adding an existing id is a no-op.
func (d *Dataset) AddAnnotation(id, name, description string, symbols []string) (Insert, error) {
	if idx, ok := d.annos.Index(id); ok {
		return Insert{Index: idx}, nil
	}
	if d.annos.Len() >= int(d.capacity) {
		return Insert{}, &CapacityError{Side: Annotations, Key: id, Capacity: d.capacity}
	}

	links, unresolved := resolve(d.capacity, d.syms, symbols)
	idx, _ := d.annos.Add(id, &entry[Annotation]{
		rec:   Annotation{ID: id, Name: name, Description: description},
		links: links,
	})
	return Insert{Index: idx, Added: true, Unresolved: unresolved}, nil
}

func resolve[T any](capacity uint32, r *registry.Registry[*entry[T]], keys []string) (*mask.Mask, int) {
	m := mask.New(capacity)
	unresolved := 0
	for _, k := range keys {
		idx, ok := r.Index(k)
		if !ok {
			unresolved++
			continue
		}
		// Registered indices are always below capacity.
		_ = m.Set(idx)
	}
	return m, unresolved
}

// HasSymbol reports whether a symbol with the given id exists.
func (d *Dataset) HasSymbol(id string) bool {
	return d.syms.Has(id)
}

// HasAnnotation reports whether an annotation with the given id exists.
func (d *Dataset) HasAnnotation(id string) bool {
	return d.annos.Has(id)
}

// SymbolIndex returns the index of the symbol with the given id.
func (d *Dataset) SymbolIndex(id string) (uint32, bool) {
	return d.syms.Index(id)
}

// AnnotationIndex returns the index of the annotation with the given id.
func (d *Dataset) AnnotationIndex(id string) (uint32, bool) {
	return d.annos.Index(id)
}

// Symbol returns the symbol at idx.
func (d *Dataset) Symbol(idx uint32) (Symbol, error) {
	e, ok := d.syms.At(idx)
	if !ok {
		return Symbol{}, &LookupError{Side: Symbols, Index: idx, ByIndex: true}
	}
	return e.rec, nil
}

// SymbolByKey returns the symbol registered under id.
func (d *Dataset) SymbolByKey(id string) (Symbol, error) {
	idx, ok := d.syms.Index(id)
	if !ok {
		return Symbol{}, &LookupError{Side: Symbols, Key: id}
	}
	return d.Symbol(idx)
}

// Annotation returns the annotation at idx.
func (d *Dataset) Annotation(idx uint32) (Annotation, error) {
	e, ok := d.annos.At(idx)
	if !ok {
		return Annotation{}, &LookupError{Side: Annotations, Index: idx, ByIndex: true}
	}
	return e.rec, nil
}

// AnnotationByKey returns the annotation registered under id.
func (d *Dataset) AnnotationByKey(id string) (Annotation, error) {
	idx, ok := d.annos.Index(id)
	if !ok {
		return Annotation{}, &LookupError{Side: Annotations, Key: id}
	}
	return d.Annotation(idx)
}

// SymbolMask returns a copy of the annotation mask of the symbol at idx.
func (d *Dataset) SymbolMask(idx uint32) (*mask.Mask, error) {
	e, ok := d.syms.At(idx)
	if !ok {
		return nil, &LookupError{Side: Symbols, Index: idx, ByIndex: true}
	}
	return e.links.Clone(), nil
}

// AnnotationMask returns a copy of the symbol mask of the annotation at idx.
func (d *Dataset) AnnotationMask(idx uint32) (*mask.Mask, error) {
	e, ok := d.annos.At(idx)
	if !ok {
		return nil, &LookupError{Side: Annotations, Index: idx, ByIndex: true}
	}
	return e.links.Clone(), nil
}

// AnnotationCount returns the number of symbols carrying the annotation at idx.
func (d *Dataset) AnnotationCount(idx uint32) (uint64, error) {
	e, ok := d.annos.At(idx)
	if !ok {
		return 0, &LookupError{Side: Annotations, Index: idx, ByIndex: true}
	}
	return e.links.Count(), nil
}

// AnnotationOverlap returns |m ∩ symbols(annotation idx)|.
func (d *Dataset) AnnotationOverlap(idx uint32, m *mask.Mask) (uint64, error) {
	e, ok := d.annos.At(idx)
	if !ok {
		return 0, &LookupError{Side: Annotations, Index: idx, ByIndex: true}
	}
	return e.links.AndCount(m), nil
}

// EncodeSymbols returns a mask with the bit of every known symbol id set.
// Unknown ids are skipped.
func (d *Dataset) EncodeSymbols(ids []string) *mask.Mask {
	m, _ := resolve(d.capacity, d.syms, ids)
	return m
}

// EncodeAnnotations returns a mask with the bit of every known annotation id
// set. Unknown ids are skipped.
func (d *Dataset) EncodeAnnotations(ids []string) *mask.Mask {
	m, _ := resolve(d.capacity, d.annos, ids)
	return m
}

// DecodeSymbols returns the symbols whose bits are set in m, in index order.
// Bits beyond the registered symbols are ignored.
func (d *Dataset) DecodeSymbols(m *mask.Mask) []Symbol {
	return decode(d.syms, m)
}

// DecodeAnnotations returns the annotations whose bits are set in m, in index
// order. Bits beyond the registered annotations are ignored.
func (d *Dataset) DecodeAnnotations(m *mask.Mask) []Annotation {
	return decode(d.annos, m)
}

func decode[T any](r *registry.Registry[*entry[T]], m *mask.Mask) []T {
	out := make([]T, 0, min(int(m.Count()), r.Len()))
	for i := range m.All() {
		e, ok := r.At(i)
		if !ok {
			break // bits are ascending; nothing further is registered
		}
		out = append(out, e.rec)
	}
	return out
}
