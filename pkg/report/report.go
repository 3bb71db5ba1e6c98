/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: Report rendering for profiling results. Selects a renderer by output format
and computes the per-run summary shared by every renderer.
*/

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/kleascm/bytefreq/pkg/profile"
	"github.com/montanaflynn/stats"
)

// Format is a report output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a configuration string to a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatXLSX:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Extension is the file extension used when archiving a report
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXLSX:
		return "xlsx"
	default:
		return "txt"
	}
}

// Renderer writes one or more run results to w
type Renderer interface {
	Render(w io.Writer, results []*profile.Result) error
}

// NewRenderer returns the renderer for format
func NewRenderer(format Format) (Renderer, error) {
	switch format {
	case FormatText:
		return &TextRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{Indent: "  "}, nil
	case FormatXLSX:
		return &ExcelRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Summary describes the spread of distinct patterns across columns
type Summary struct {
	Columns        int     `json:"columns"`
	Patterns       int     `json:"patterns"`
	Observations   uint64  `json:"observations"`
	MeanPatterns   float64 `json:"mean_patterns"`
	MedianPatterns float64 `json:"median_patterns"`
	MaxPatterns    float64 `json:"max_patterns"`
}

// Summarize computes the Summary of res
func Summarize(res *profile.Result) Summary {
	s := Summary{Columns: len(res.Columns)}
	if len(res.Columns) == 0 {
		return s
	}

	data := make(stats.Float64Data, 0, len(res.Columns))
	for _, c := range res.Columns {
		s.Patterns += len(c.Patterns)
		s.Observations += c.Total
		data = append(data, float64(len(c.Patterns)))
	}

	// errors only occur on empty input, which is handled above
	s.MeanPatterns, _ = stats.Round(orZero(stats.Mean(data)), 2)
	s.MedianPatterns = orZero(stats.Median(data))
	s.MaxPatterns = orZero(stats.Max(data))
	return s
}

func orZero(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	return v
}
