// Package testutil provides testing utilities for enriched.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic random source and ready-made datasets.
//
// # Random Generation
//
//	rng := testutil.NewRNG(seed)
//	ds := rng.Dataset(tb, 500, 40, 6) // 500 symbols, 40 annotations
//
// # Canonical Example
//
//	ds := testutil.Canonical(tb) // anno1/anno2 over m1..m12, f1..f12
//	males := testutil.Males()
package testutil
