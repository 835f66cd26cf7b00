package loader

import (
	"bufio"
	"context"
	"io"
	"strings"
)

const maxLineSize = 1 << 20

// Summary describes the effect of a load.
type Summary struct {
	// Lines is the number of data lines read.
	Lines int
	// Added is the number of new records.
	Added int
	// Duplicates counts records whose id was already present.
	Duplicates int
	// Unresolved counts mapped names that matched no record.
	Unresolved int
	// Registered counts symbols created from annotation symbol lists.
	Registered int
}

// AnnotationRecord is a parsed annotation row.
type AnnotationRecord struct {
	ID          string
	Name        string
	Description string
	Symbols     []string
}

// SymbolRecord is a parsed symbol row.
type SymbolRecord struct {
	ID          string
	Name        string
	Annotations []string
}

// scan calls fn for every data line of r with its 1-based line number.
func scan(ctx context.Context, r *bufio.Scanner, fn func(line int, text string) error) (int, error) {
	n, lines := 0, 0
	for r.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return lines, err
		}
		text := strings.TrimRight(r.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines++
		if err := fn(n, text); err != nil {
			return lines, err
		}
	}
	return lines, r.Err()
}

func newScanner(src io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(src)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return s
}

// splitList splits a comma separated list, dropping empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func field(fields []string, i int) string {
	if i < len(fields) {
		return strings.TrimSpace(fields[i])
	}
	return ""
}
