package loader

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/enriched/dataset"
)

// ParseAnnotations reads an annotation table without touching a dataset.
func ParseAnnotations(ctx context.Context, r io.Reader) ([]AnnotationRecord, int, error) {
	rc, _, err := NewReader(r)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	var recs []AnnotationRecord
	lines, err := scan(ctx, newScanner(rc), func(line int, text string) error {
		fields := strings.Split(text, "\t")
		id := field(fields, 0)
		if id == "" {
			return &ParseError{Line: line, Reason: "empty annotation id"}
		}
		recs = append(recs, AnnotationRecord{
			ID:          id,
			Name:        field(fields, 1),
			Description: field(fields, 2),
			Symbols:     splitList(field(fields, 3)),
		})
		return nil
	})
	if err != nil {
		return nil, lines, fmt.Errorf("annotations: %w", err)
	}
	return recs, lines, nil
}

// ParseSymbols reads a symbol mapping table without touching a dataset.
func ParseSymbols(ctx context.Context, r io.Reader) ([]SymbolRecord, int, error) {
	rc, _, err := NewReader(r)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	var recs []SymbolRecord
	lines, err := scan(ctx, newScanner(rc), func(line int, text string) error {
		fields := strings.Split(text, "\t")
		id := field(fields, 0)
		if id == "" {
			return &ParseError{Line: line, Reason: "empty symbol id"}
		}
		name := field(fields, 2)
		if name == "" {
			name = id
		}
		recs = append(recs, SymbolRecord{
			ID:          id,
			Name:        name,
			Annotations: splitList(field(fields, 1)),
		})
		return nil
	})
	if err != nil {
		return nil, lines, fmt.Errorf("symbols: %w", err)
	}
	return recs, lines, nil
}

// LoadAnnotations parses an annotation table and adds its records to ds.
func LoadAnnotations(ctx context.Context, ds *dataset.Dataset, r io.Reader) (Summary, error) {
	recs, lines, err := ParseAnnotations(ctx, r)
	if err != nil {
		return Summary{Lines: lines}, err
	}
	s, err := ApplyAnnotations(ctx, ds, recs)
	s.Lines = lines
	return s, err
}

// LoadSymbols parses a symbol mapping table and adds its records to ds.
// Annotations must be loaded first for the mappings to resolve.
func LoadSymbols(ctx context.Context, ds *dataset.Dataset, r io.Reader) (Summary, error) {
	recs, lines, err := ParseSymbols(ctx, r)
	if err != nil {
		return Summary{Lines: lines}, err
	}
	s, err := ApplySymbols(ctx, ds, recs)
	s.Lines = lines
	return s, err
}

// ApplyAnnotations adds staged annotation records to ds. Symbol ids listed
// by a record that are not yet registered are added first, named by their
// id and without mappings, so the annotation masks resolve; deriving the
// missing mapping afterwards fills in the symbol side. Nothing is added if
// the new records do not fit.
func ApplyAnnotations(ctx context.Context, ds *dataset.Dataset, recs []AnnotationRecord) (Summary, error) {
	keys := make([]string, len(recs))
	var symbols []string
	for i, r := range recs {
		keys[i] = r.ID
		symbols = append(symbols, r.Symbols...)
	}
	if err := precheck(ctx, ds, dataset.Symbols, symbols, ds.HasSymbol); err != nil {
		return Summary{}, err
	}
	if err := precheck(ctx, ds, dataset.Annotations, keys, ds.HasAnnotation); err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, id := range symbols {
		ins, err := ds.AddSymbol(id, id, nil)
		if err != nil {
			return s, err
		}
		if ins.Added {
			s.Registered++
		}
	}
	for _, r := range recs {
		ins, err := ds.AddAnnotation(r.ID, r.Name, r.Description, r.Symbols)
		if err != nil {
			return s, err
		}
		s.count(ins)
	}
	return s, nil
}

// ApplySymbols adds staged symbol records to ds. Nothing is added if the new
// records do not fit.
func ApplySymbols(ctx context.Context, ds *dataset.Dataset, recs []SymbolRecord) (Summary, error) {
	keys := make([]string, len(recs))
	for i, r := range recs {
		keys[i] = r.ID
	}
	if err := precheck(ctx, ds, dataset.Symbols, keys, ds.HasSymbol); err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, r := range recs {
		ins, err := ds.AddSymbol(r.ID, r.Name, r.Annotations)
		if err != nil {
			return s, err
		}
		s.count(ins)
	}
	return s, nil
}

func (s *Summary) count(ins dataset.Insert) {
	if !ins.Added {
		s.Duplicates++
		return
	}
	s.Added++
	s.Unresolved += ins.Unresolved
}

// precheck fails with a CapacityError naming the first key that would not fit.
func precheck(ctx context.Context, ds *dataset.Dataset, side dataset.Side, keys []string, has func(string) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	remaining := ds.Remaining(side)
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok || has(k) {
			continue
		}
		seen[k] = struct{}{}
		if len(seen) > remaining {
			return &dataset.CapacityError{Side: side, Key: k, Capacity: ds.Capacity()}
		}
	}
	return nil
}

// ReadSymbolList reads newline separated symbol ids, skipping blank and
// comment lines.
func ReadSymbolList(r io.Reader) ([]string, error) {
	rc, _, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var names []string
	_, err = scan(context.Background(), newScanner(rc), func(_ int, text string) error {
		names = append(names, strings.TrimSpace(text))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("symbol list: %w", err)
	}
	return names, nil
}
