// Package enriched provides set-enrichment analysis for Go.
//
// Given a universe of symbols (for example genes) each linked to zero or more
// annotations (for example pathways or GO terms) and a subset of symbols of
// interest, enriched finds the annotations that are over- or
// under-represented in that subset relative to a background: the whole
// universe or a second subset.
//
// # Quick Start
//
//	ctx := context.Background()
//	src := source.NewLocal("./data")
//	s, _ := enriched.Open(ctx, src, enriched.Config{
//	    AnnotationTable: "go.anno.tsv",
//	    SymbolTable:     "go.sym.tsv",
//	})
//
//	report, _ := s.Run(ctx, enrichment.Fisher(), hits, nil, false)
//	for _, r := range report.Results {
//	    fmt.Println(r.Annotation, r.Stat, r.Enriched)
//	}
//
// Cloud sources:
//
//	src, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("go/"))
//	s, _ := enriched.Open(ctx, src, cfg)
//
// # Building Blocks
//
// The Session ties together the lower level packages, which can be used on
// their own:
//
//   - dataset: the symbol/annotation registry and its bitmask encoding
//   - loader: table parsers with transparent decompression
//   - enrichment: the contingency table engine and its preset tests
//   - stats: Fisher's exact probability and fold change
//   - source: local, in-memory, S3 and MinIO table sources
//
// # Observability
//
// Loads and test runs are logged through a Logger (log/slog) and reported to
// a MetricsCollector. The promcollector package exports them to Prometheus.
package enriched
