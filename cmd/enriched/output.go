package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/enriched/codec"
	"github.com/hupe1980/enriched/enrichment"
)

// writeReports renders one block per report. Text blocks start with a
// "# <test>" header followed by tab-separated name, statistic and enriched
// flag; blocks are separated by a blank line.
func writeReports(w io.Writer, format string, reports []enrichment.Report) error {
	if format == "json" {
		if reports == nil {
			reports = []enrichment.Report{}
		}
		return codec.Encode(w, codec.Default, reports)
	}

	bw := bufio.NewWriter(w)
	for i, r := range reports {
		if i > 0 {
			_ = bw.WriteByte('\n')
		}
		_, _ = fmt.Fprintf(bw, "# %s\n", r.Test)
		for _, res := range r.Results {
			_, _ = fmt.Fprintf(bw, "%s\t%s\t%t\n", res.Annotation, formatStat(res.Stat), res.Enriched)
		}
	}
	return bw.Flush()
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
