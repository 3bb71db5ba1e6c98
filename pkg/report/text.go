/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: text.go
Description: Plain text data quality report. One block per input: run header, examined
row count, fields-per-line histogram and a tab separated pattern table.
*/

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/bytefreq/pkg/profile"
)

// TimestampLayout is the report header timestamp format
const TimestampLayout = "20060102 15:04:05"

// TextRenderer renders the classic tabular report
type TextRenderer struct {
	// HideSummary omits the pattern summary line
	HideSummary bool
}

// Render writes a report block per result
func (r *TextRenderer) Render(w io.Writer, results []*profile.Result) error {
	bw := bufio.NewWriter(w)
	for _, res := range results {
		r.renderOne(bw, res)
	}
	return bw.Flush()
}

func (r *TextRenderer) renderOne(w *bufio.Writer, res *profile.Result) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Data Profiling Report: %s\n", res.FinishedAt.Format(TimestampLayout))
	fmt.Fprintf(w, "Source: %s\n", res.Source)
	fmt.Fprintf(w, "Run: %s\n", res.RunID)
	fmt.Fprintf(w, "Examined rows: %d\n", res.RecordCount)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FieldsPerLine:")
	for _, k := range res.FieldCountKeys() {
		fmt.Fprintf(w, "%d fields: %d rows\n", k, res.FieldCounts[k])
	}
	fmt.Fprintln(w)

	if !r.HideSummary {
		s := Summarize(res)
		fmt.Fprintf(w, "Columns: %d  Patterns: %d  Patterns per column: mean %.2f, median %.1f, max %.0f\n",
			s.Columns, s.Patterns, s.MeanPatterns, s.MedianPatterns, s.MaxPatterns)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%-32s\t%-8s\t%-8s\t%-32s\n", "column", "count", "pattern", "example")
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 32), strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 32))

	for _, col := range res.Columns {
		for _, p := range col.Patterns {
			fmt.Fprintf(w, "col_%05d_%s\t%-8d\t%-8s\t%-32s\n", col.Index, col.Name, p.Count, p.Pattern, p.Example)
		}
	}
}
