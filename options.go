package enriched

import (
	"context"
	"log/slog"

	"github.com/hupe1980/enriched/enrichment"
	"github.com/hupe1980/enriched/loader"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	limit            int
	annotationLoader AnnotationLoader
}

// AnnotationLoader reads annotation records from somewhere other than the
// Session source, e.g. dynamo.Loader.
type AnnotationLoader func(ctx context.Context) ([]loader.AnnotationRecord, error)

// Option configures Open.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for loads and runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &enriched.BasicMetricsCollector{}
//	s, _ := enriched.Open(ctx, src, cfg, enriched.WithMetricsCollector(metrics))
//	// ... run tests ...
//	stats := metrics.GetStats()
//	fmt.Printf("Tests: %d, Avg latency: %dns\n", stats.TestCount, stats.TestAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := enriched.NewJSONLogger(slog.LevelInfo)
//	s, _ := enriched.Open(ctx, src, cfg, enriched.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithLimit caps the number of results per report (default 1000).
// Zero or less disables truncation.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithAnnotationLoader loads annotations through l instead of reading
// Config.AnnotationTable from the source. The table name still labels logs
// and metrics.
//
//	client, _ := dynamo.NewClient(ctx, "eu-central-1", "")
//	s, _ := enriched.Open(ctx, src, enriched.DefaultConfig("go-terms", "go.sym.tsv"),
//		enriched.WithAnnotationLoader(dynamo.Loader(client, "go-terms")))
func WithAnnotationLoader(l AnnotationLoader) Option {
	return func(o *options) {
		o.annotationLoader = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		limit:            enrichment.DefaultLimit,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
