package enriched

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/enriched/dataset"
	"github.com/hupe1980/enriched/enrichment"
	"github.com/hupe1980/enriched/loader"
	"github.com/hupe1980/enriched/source"
)

// Session is a loaded Dataset together with the engine that tests it.
//
// A Session is safe for concurrent runs once Open returns; the Dataset is
// never modified afterwards.
type Session struct {
	cfg     Config
	ds      *dataset.Dataset
	engine  *enrichment.Engine
	logger  *Logger
	metrics MetricsCollector
}

// Open fetches the configured tables from src, loads annotations first and
// symbol mappings second, and derives whichever mapping direction is missing.
//
// Without a symbol table the symbol lists of the annotation table define
// the universe. With one, those lists are ignored and the mapping table is
// the only source of links.
func Open(ctx context.Context, src source.Source, cfg Config, optFns ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(optFns)

	ds, err := dataset.New(cfg.Capacity, dataset.WithLogger(o.logger.Logger))
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:     cfg,
		ds:      ds,
		engine:  enrichment.New(enrichment.WithLimit(o.limit), enrichment.WithLogger(o.logger.Logger)),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}

	var names []string
	if o.annotationLoader == nil {
		names = append(names, cfg.AnnotationTable)
	}
	if cfg.SymbolTable != "" {
		names = append(names, cfg.SymbolTable)
	}

	start := time.Now()
	tables, err := source.FetchAll(ctx, src, names...)
	if err != nil {
		joined := strings.Join(names, ",")
		s.metrics.RecordLoad(joined, 0, time.Since(start), err)
		s.logger.WithTable(joined).LogLoad(ctx, loader.Summary{}, err)
		return nil, &LoadError{Table: joined, cause: err}
	}

	if err := s.load(ctx, cfg.AnnotationTable, start, func() (loader.Summary, error) {
		var (
			recs  []loader.AnnotationRecord
			lines int
			err   error
		)
		if o.annotationLoader != nil {
			recs, err = o.annotationLoader(ctx)
			lines = len(recs)
		} else {
			recs, lines, err = loader.ParseAnnotations(ctx, bytes.NewReader(tables[0]))
		}
		if err != nil {
			return loader.Summary{Lines: lines}, err
		}
		if cfg.SymbolTable != "" {
			recs = s.dropSymbolLists(ctx, cfg.AnnotationTable, recs)
		}
		summary, err := loader.ApplyAnnotations(ctx, ds, recs)
		summary.Lines = lines
		return summary, err
	}); err != nil {
		return nil, err
	}

	if cfg.SymbolTable != "" {
		if err := s.load(ctx, cfg.SymbolTable, time.Now(), func() (loader.Summary, error) {
			return loader.LoadSymbols(ctx, ds, bytes.NewReader(tables[len(tables)-1]))
		}); err != nil {
			return nil, err
		}
	}

	d := ds.DeriveMissingMapping()
	s.logger.LogDerive(ctx, d, ds.Inconsistencies())

	return s, nil
}

// dropSymbolLists returns recs without their symbol lists. With a symbol
// table configured the mapping table is the single source of links.
func (s *Session) dropSymbolLists(ctx context.Context, table string, recs []loader.AnnotationRecord) []loader.AnnotationRecord {
	out := make([]loader.AnnotationRecord, len(recs))
	dropped := 0
	for i, r := range recs {
		dropped += len(r.Symbols)
		r.Symbols = nil
		out[i] = r
	}
	if dropped > 0 {
		s.logger.WithTable(table).WarnContext(ctx, "annotation symbol lists ignored in favor of the symbol table",
			"dropped", dropped,
		)
	}
	return out
}

func (s *Session) load(ctx context.Context, table string, start time.Time, fn func() (loader.Summary, error)) error {
	summary, err := fn()
	s.metrics.RecordLoad(table, summary.Added+summary.Registered, time.Since(start), err)
	s.logger.WithTable(table).LogLoad(ctx, summary, err)
	if err != nil {
		return &LoadError{Table: table, cause: err}
	}
	return nil
}

// Config returns the validated configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Dataset returns the loaded dataset.
func (s *Session) Dataset() *dataset.Dataset {
	return s.ds
}

// SymbolSet builds a set over the session dataset. Unknown ids are dropped.
func (s *Session) SymbolSet(ids []string) *dataset.SymSet {
	return dataset.NewSymSet(s.ds, ids)
}

// Run evaluates t for the test ids. With control ids the two-set form is
// used; otherwise full selects between the full and the background form.
func (s *Session) Run(ctx context.Context, t enrichment.Test, testIDs, controlIDs []string, full bool) (enrichment.Report, error) {
	if full && controlIDs != nil {
		return enrichment.Report{}, ErrConflictingForms
	}

	test := s.SymbolSet(testIDs)
	if dropped := test.Dropped(); dropped > 0 {
		s.logger.WarnContext(ctx, "test set contains unknown symbols", "dropped", dropped)
	}

	start := time.Now()
	var (
		report enrichment.Report
		err    error
	)
	switch {
	case controlIDs != nil:
		control := s.SymbolSet(controlIDs)
		report, err = s.engine.Control(ctx, t, test, control, s.ds)
	case full:
		report, err = s.engine.Full(ctx, t, test, s.ds)
	default:
		report, err = s.engine.Background(ctx, t, test, s.ds)
	}

	s.metrics.RecordTest(t.Name, len(report.Results), time.Since(start), err)
	s.logger.LogTest(ctx, t.Name, test.Len(), report, err)
	if err != nil {
		return enrichment.Report{}, err
	}
	return report, nil
}

// RunNamed runs the named presets in order. The name "all" expands to every
// preset.
func (s *Session) RunNamed(ctx context.Context, names []string, testIDs, controlIDs []string, full bool) ([]enrichment.Report, error) {
	tests, err := Tests(names...)
	if err != nil {
		return nil, err
	}

	reports := make([]enrichment.Report, 0, len(tests))
	for _, t := range tests {
		r, err := s.Run(ctx, t, testIDs, controlIDs, full)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Tests resolves preset names ("fisher", "fisher01", "fisher005", "fold" or
// "all"). Without names it returns Fisher and FoldChange.
func Tests(names ...string) ([]enrichment.Test, error) {
	if len(names) == 0 {
		return []enrichment.Test{enrichment.Fisher(), enrichment.FoldChange()}, nil
	}

	presets := enrichment.Presets()
	var out []enrichment.Test
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "all" {
			for _, n := range enrichment.PresetNames() {
				out = append(out, presets[n])
			}
			continue
		}
		t, ok := presets[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTest, name)
		}
		out = append(out, t)
	}
	return out, nil
}
