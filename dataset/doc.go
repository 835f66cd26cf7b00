// Package dataset implements the annotated-dataset registry used by the
// enrichment engine.
//
// A Dataset owns every Symbol (an item of interest, e.g. a gene) and every
// Annotation (a category, e.g. a pathway). Records are stored in insertion
// order and addressed by a stable integer index; every record carries a
// membership mask over the opposite side of the bipartite symbol/annotation
// relation.
//
// # Lifecycle
//
//	ds, _ := dataset.New(1 << 16)
//	_, _ = ds.AddAnnotation("GO:0008150", "biological_process", "...", nil)
//	_, _ = ds.AddSymbol("TP53", "TP53", []string{"GO:0008150"})
//	ds.DeriveMissingMapping() // seal: mirror the populated direction
//
//	hits := dataset.NewSymSet(ds, []string{"TP53", "BRCA1"})
//	hot := hits.MappedMask() // annotations touched by the set
//
// The Dataset is mutated only during loading. Once DeriveMissingMapping (or
// DeriveFrom) has been called it is treated as read-only, and Sets may be
// built from it. A Set keeps a non-owning reference to its Dataset; the
// Dataset must outlive every Set built from it. No locking is performed.
//
// # Mapping consistency
//
// The two mask directions are conceptually the transpose of one adjacency
// relation, but that is only enforced by derivation. DeriveMissingMapping
// mirrors one side into the other only when exactly one side is entirely
// empty. When both sides were populated by the caller, any disagreement
// persists; Inconsistencies reports it and DeriveFrom rebuilds one side from
// an explicitly chosen source of truth.
package dataset
