package dataset

import (
	"fmt"

	"github.com/hupe1980/enriched/internal/registry"
)

// Derivation reports what DeriveMissingMapping did.
type Derivation int

const (
	// DerivedNone means both sides were left untouched.
	DerivedNone Derivation = iota
	// DerivedSymbols means symbol masks were derived from annotation masks.
	DerivedSymbols
	// DerivedAnnotations means annotation masks were derived from symbol masks.
	DerivedAnnotations
)

// String returns a short name for the derivation.
func (d Derivation) String() string {
	switch d {
	case DerivedNone:
		return "none"
	case DerivedSymbols:
		return "symbols"
	case DerivedAnnotations:
		return "annotations"
	default:
		return "unknown"
	}
}

// DeriveMissingMapping mirrors the populated mapping direction into the empty
// one.
//
// If every symbol mask is empty and some annotation mask is not, symbol masks
// are rebuilt as the transpose of the annotation masks, and vice versa. If
// both sides carry links, or neither does, nothing changes: links supplied on
// both sides are never reconciled.
func (d *Dataset) DeriveMissingMapping() Derivation {
	if d.syms.Len() == 0 || d.annos.Len() == 0 {
		return DerivedNone
	}

	symEmpty := allEmpty(d.syms)
	annoEmpty := allEmpty(d.annos)

	var out Derivation
	switch {
	case symEmpty && !annoEmpty:
		transpose(d.annos, d.syms)
		out = DerivedSymbols
	case annoEmpty && !symEmpty:
		transpose(d.syms, d.annos)
		out = DerivedAnnotations
	default:
		out = DerivedNone
	}

	d.logger.Debug("mapping derivation",
		"derived", out.String(),
		"symbols", d.syms.Len(),
		"annotations", d.annos.Len(),
	)
	return out
}

// DeriveFrom rebuilds the masks of the side opposite to source as the
// transpose of source. Existing links on the opposite side are discarded.
func (d *Dataset) DeriveFrom(source Side) error {
	switch source {
	case Symbols:
		clearAll(d.annos)
		transpose(d.syms, d.annos)
	case Annotations:
		clearAll(d.syms)
		transpose(d.annos, d.syms)
	default:
		return fmt.Errorf("invalid side: %d", source)
	}

	d.logger.Debug("mapping rebuilt",
		"source", source.String(),
		"symbols", d.syms.Len(),
		"annotations", d.annos.Len(),
	)
	return nil
}

// Inconsistencies counts the links present on one side but missing from the
// other. It is zero after a successful derivation.
func (d *Dataset) Inconsistencies() int {
	return countMissing(d.syms, d.annos) + countMissing(d.annos, d.syms)
}

func allEmpty[T any](r *registry.Registry[*entry[T]]) bool {
	for _, e := range r.All() {
		if !e.links.IsEmpty() {
			return false
		}
	}
	return true
}

func clearAll[T any](r *registry.Registry[*entry[T]]) {
	for _, e := range r.All() {
		e.links.Clear()
	}
}

// transpose sets dst[j].links[i] for every bit j in src[i].links.
// Bits pointing past the registered dst records are skipped.
func transpose[S, D any](src *registry.Registry[*entry[S]], dst *registry.Registry[*entry[D]]) {
	for i, e := range src.All() {
		for j := range e.links.All() {
			target, ok := dst.At(j)
			if !ok {
				break
			}
			_ = target.links.Set(i)
		}
	}
}

func countMissing[S, D any](src *registry.Registry[*entry[S]], dst *registry.Registry[*entry[D]]) int {
	n := 0
	for i, e := range src.All() {
		for j := range e.links.All() {
			target, ok := dst.At(j)
			if !ok {
				n++
				continue
			}
			if !target.links.Test(i) {
				n++
			}
		}
	}
	return n
}
