package dataset

import "github.com/hupe1980/enriched/mask"

// Side selects one side of the symbol/annotation relation.
type Side int

const (
	// Symbols is the symbol side.
	Symbols Side = iota
	// Annotations is the annotation side.
	Annotations
)

// String returns "symbols" or "annotations".
func (s Side) String() string {
	switch s {
	case Symbols:
		return "symbols"
	case Annotations:
		return "annotations"
	default:
		return "unknown"
	}
}

func (s Side) singular() string {
	switch s {
	case Symbols:
		return "symbol"
	case Annotations:
		return "annotation"
	default:
		return "record"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Symbols {
		return Annotations
	}
	return Symbols
}

// Symbol is an item of interest, e.g. a gene.
type Symbol struct {
	ID   string
	Name string
}

// Annotation is a category, e.g. a pathway or GO term.
type Annotation struct {
	ID          string
	Name        string
	Description string
}

// entry pairs a record with its membership mask over the opposite side.
type entry[T any] struct {
	rec   T
	links *mask.Mask
}

// Insert reports the outcome of AddSymbol or AddAnnotation.
type Insert struct {
	// Index is the index of the record, new or pre-existing.
	Index uint32
	// Added is false when the ID was already registered.
	Added bool
	// Unresolved counts mapped names unknown on the opposite side.
	Unresolved int
}
