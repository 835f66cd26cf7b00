package enrichment

import (
	"cmp"
	"fmt"

	"github.com/hupe1980/enriched/stats"
)

// Table holds the cells of the contingency table a result was computed from.
type Table struct {
	A, B, C, D uint64
}

// Result is the outcome of one annotation.
type Result struct {
	Annotation   string  `json:"annotation"`
	AnnotationID string  `json:"annotation_id"`
	Stat         float64 `json:"stat"`
	Enriched     bool    `json:"enriched"`
	Table        Table   `json:"table"`
}

// Report pairs a test label with its ranked results.
type Report struct {
	Test    string   `json:"test"`
	Results []Result `json:"results"`
}

// Test parameterizes the engine: the statistic, which results survive and
// how they are ranked.
type Test struct {
	Name      string
	Statistic stats.Statistic

	// Keep reports whether a result is retained. Nil keeps everything.
	Keep func(Result) bool

	// Less orders the retained results. Nil keeps evaluation order.
	Less func(x, y Result) int
}

// PValueAtMost keeps results whose statistic does not exceed alpha.
func PValueAtMost(alpha float64) func(Result) bool {
	return func(r Result) bool { return r.Stat <= alpha }
}

// FoldAbove keeps results whose statistic is strictly greater than threshold.
func FoldAbove(threshold float64) func(Result) bool {
	return func(r Result) bool { return r.Stat > threshold }
}

// Ascending ranks the smallest statistic first.
func Ascending(x, y Result) int { return cmp.Compare(x.Stat, y.Stat) }

// Descending ranks the largest statistic first.
func Descending(x, y Result) int { return cmp.Compare(y.Stat, x.Stat) }

func fisherAt(alpha float64, label string) Test {
	return Test{
		Name:      fmt.Sprintf("Fisher's Exact Test (P <= %s)", label),
		Statistic: stats.FisherT,
		Keep:      PValueAtMost(alpha),
		Less:      Ascending,
	}
}

// Fisher is Fisher's exact test at P <= 0.05.
func Fisher() Test { return fisherAt(0.05, "0.05") }

// Fisher01 is Fisher's exact test at P <= 0.01.
func Fisher01() Test { return fisherAt(0.01, "0.01") }

// Fisher005 is Fisher's exact test at P <= 0.005.
func Fisher005() Test { return fisherAt(0.005, "0.005") }

// FoldChange keeps fold changes above 1, largest first.
func FoldChange() Test {
	return Test{
		Name:      "Fold Change (Fold > 1)",
		Statistic: stats.FoldChange,
		Keep:      FoldAbove(1),
		Less:      Descending,
	}
}

// Presets returns the built-in tests keyed by their short name.
func Presets() map[string]Test {
	return map[string]Test{
		"fisher":    Fisher(),
		"fisher01":  Fisher01(),
		"fisher005": Fisher005(),
		"fold":      FoldChange(),
	}
}

// PresetNames lists the preset keys in report order.
func PresetNames() []string {
	return []string{"fisher", "fisher01", "fisher005", "fold"}
}
