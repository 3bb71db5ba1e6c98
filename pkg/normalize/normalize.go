/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: normalize.go
Description: Shared contracts for the input normalizers. A normalizer turns one input
line into a stream of (column, value) observations against a shared column registry.
*/

package normalize

import (
	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/sirupsen/logrus"
)

// Sink receives observations from a normalizer.
// Normalizers never read aggregate contents back.
type Sink interface {
	// Ensure creates aggregate storage for a newly registered column
	Ensure(column int)
	// Observe records raw as a value of column
	Observe(column int, raw string, grain mask.Grain)
}

// Normalizer consumes one non-empty input line at a time
type Normalizer interface {
	ProcessLine(line string)
}

// Stats are counters a normalizer keeps about what it recovered from
type Stats struct {
	Lines        uint64 `json:"lines"`
	Observations uint64 `json:"observations"`
	RaggedRows   uint64 `json:"ragged_rows"`
	ShortRows    uint64 `json:"short_rows"`
	SkippedLines uint64 `json:"skipped_lines"`
}

// Events receives recovery notices from a normalizer
type Events interface {
	// OnRaggedColumn fires once per synthesized overflow column
	OnRaggedColumn(column string, width int)
	// OnSkippedLine fires for every line that could not be parsed
	OnSkippedLine(line uint64, reason string)
}

type nopEvents struct{}

func (nopEvents) OnRaggedColumn(string, int)    {}
func (nopEvents) OnSkippedLine(uint64, string) {}

// discardLogger is used when no logger is supplied
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}
