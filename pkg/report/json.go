/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: json.go
Description: Machine readable JSON report.
*/

package report

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/kleascm/bytefreq/pkg/profile"
)

// Document is the top-level JSON report
type Document struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Reports     []RunDocument `json:"reports"`
}

// RunDocument pairs a result with its summary
type RunDocument struct {
	*profile.Result
	Summary Summary `json:"summary"`
}

// JSONRenderer renders results as one JSON document
type JSONRenderer struct {
	Indent string
}

// Render encodes results to w
func (r *JSONRenderer) Render(w io.Writer, results []*profile.Result) error {
	doc := Document{
		GeneratedAt: time.Now().UTC(),
		Reports:     make([]RunDocument, 0, len(results)),
	}
	for _, res := range results {
		doc.Reports = append(doc.Reports, RunDocument{Result: res, Summary: Summarize(res)})
	}

	enc := json.NewEncoder(w)
	// examples are raw input and must round-trip untouched
	enc.SetEscapeHTML(false)
	if r.Indent != "" {
		enc.SetIndent("", r.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}
	return nil
}
