// Package enrichment ranks annotations by how strongly they are over- or
// under-represented in a set of symbols.
//
// For every candidate annotation the Engine builds a 2×2 contingency table
//
//	a = |test ∩ annotation|        c = |test| - a
//	b = |background ∩ annotation|  d = |background| - b
//
// evaluates a Test's statistic on it, drops results the Test does not keep,
// orders the survivors and truncates the list to the engine limit.
//
// Three forms are available:
//
//   - Background: test set against the whole dataset. Only annotations
//     reached by at least one test member are evaluated.
//   - Control: test set against a second symbol set.
//   - Full: like Background, but every annotation in the dataset is
//     evaluated, including those the test set never touches.
//
// # Usage
//
//	eng := enrichment.New(enrichment.WithLimit(50))
//	test := dataset.NewSymSet(ds, hits)
//	report, err := eng.Background(ctx, enrichment.Fisher(), test, ds)
package enrichment
