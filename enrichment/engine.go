package enrichment

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"

	"github.com/hupe1980/enriched/dataset"
	"github.com/hupe1980/enriched/mask"
)

// DefaultLimit is the maximum number of results a report carries unless
// configured otherwise.
const DefaultLimit = 1000

var (
	// ErrDatasetMismatch is returned when a set was built over another dataset.
	ErrDatasetMismatch = errors.New("enrichment: set belongs to a different dataset")

	// ErrInvalidTest is returned when a test has no statistic.
	ErrInvalidTest = errors.New("enrichment: test has no statistic")
)

type options struct {
	limit  int
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*options)

// WithLimit caps the number of results per report. Zero or less disables
// truncation.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithLogger configures the logger used for per-test events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Engine evaluates Tests against a Dataset.
// An Engine holds no per-run state and may be shared.
type Engine struct {
	limit  int
	logger *slog.Logger
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := options{limit: DefaultLimit}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{limit: o.limit, logger: o.logger}
}

// Limit returns the configured result cap.
func (e *Engine) Limit() int {
	return e.limit
}

// background is the comparison side of a contingency table.
type background struct {
	members *mask.Mask // nil means the whole dataset
	total   uint64
}

func (bg background) count(ds *dataset.Dataset, idx uint32) (uint64, error) {
	if bg.members == nil {
		return ds.AnnotationCount(idx)
	}
	return ds.AnnotationOverlap(idx, bg.members)
}

// Background evaluates the test set against the whole dataset. Only
// annotations carried by at least one test member are considered.
func (e *Engine) Background(ctx context.Context, t Test, test *dataset.SymSet, ds *dataset.Dataset) (Report, error) {
	if err := check(t, ds, test); err != nil {
		return Report{}, err
	}
	bg := background{total: uint64(ds.TotalSymbols())}
	return e.run(ctx, t, "background", ds, test, bg, test.MappedMask().All())
}

// Control evaluates the test set against a control set.
func (e *Engine) Control(ctx context.Context, t Test, test, control *dataset.SymSet, ds *dataset.Dataset) (Report, error) {
	if err := check(t, ds, test, control); err != nil {
		return Report{}, err
	}
	bg := background{members: control.MembershipMask(), total: control.Size()}
	return e.run(ctx, t, "control", ds, test, bg, test.MappedMask().All())
}

// Full evaluates the test set against the whole dataset over every
// annotation, including those no test member carries.
func (e *Engine) Full(ctx context.Context, t Test, test *dataset.SymSet, ds *dataset.Dataset) (Report, error) {
	if err := check(t, ds, test); err != nil {
		return Report{}, err
	}
	bg := background{total: uint64(ds.TotalSymbols())}
	return e.run(ctx, t, "full", ds, test, bg, every(ds.TotalAnnotations()))
}

func check(t Test, ds *dataset.Dataset, sets ...*dataset.SymSet) error {
	if t.Statistic == nil {
		return ErrInvalidTest
	}
	for _, s := range sets {
		if s == nil || s.Source() != ds {
			return ErrDatasetMismatch
		}
	}
	return nil
}

func every(n int) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := range uint32(n) {
			if !yield(i) {
				return
			}
		}
	}
}

func (e *Engine) run(ctx context.Context, t Test, form string, ds *dataset.Dataset, test *dataset.SymSet, bg background, candidates iter.Seq[uint32]) (Report, error) {
	members := test.MembershipMask()
	totalTest := test.Size()

	evaluated := 0
	var results []Result
	for idx := range candidates {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		anno, err := ds.Annotation(idx)
		if err != nil {
			continue
		}

		a, err := ds.AnnotationOverlap(idx, members)
		if err != nil {
			return Report{}, err
		}
		b, err := bg.count(ds, idx)
		if err != nil {
			return Report{}, err
		}
		c := totalTest - a
		d := bg.total - b

		evaluated++
		r := Result{
			Annotation:   anno.Name,
			AnnotationID: anno.ID,
			Stat:         t.Statistic(a, b, c, d),
			Enriched:     float64(a)/float64(totalTest+1) > float64(b)/float64(bg.total+1),
			Table:        Table{A: a, B: b, C: c, D: d},
		}
		if t.Keep != nil && !t.Keep(r) {
			continue
		}
		results = append(results, r)
	}

	if t.Less != nil {
		slices.SortStableFunc(results, t.Less)
	}
	if e.limit > 0 && len(results) > e.limit {
		results = results[:e.limit]
	}

	e.logger.Debug("enrichment test",
		"test", t.Name,
		"form", form,
		"test_size", totalTest,
		"background_size", bg.total,
		"evaluated", evaluated,
		"kept", len(results),
	)

	return Report{Test: t.Name, Results: results}, nil
}
