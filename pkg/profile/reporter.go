/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter hooks for profiling runs. Lets the CLI observe progress and run
completion without the profiler depending on a particular logging backend.
*/

package profile

import (
	"github.com/kleascm/bytefreq/pkg/logging"
)

// Reporter is notified of run progress and completion
type Reporter interface {
	// OnProgress is called every ProgressEvery records
	OnProgress(source string, records uint64, columns int)
	// OnRaggedColumn is called when a row first overflows into column
	OnRaggedColumn(source, column string, width int)
	// OnSkippedLine is called for each unparseable line
	OnSkippedLine(source string, line uint64, reason string)
	// OnRunComplete is called once the input is exhausted
	OnRunComplete(res *Result)
}

type nopReporter struct{}

func (nopReporter) OnProgress(string, uint64, int)       {}
func (nopReporter) OnRaggedColumn(string, string, int)   {}
func (nopReporter) OnSkippedLine(string, uint64, string) {}
func (nopReporter) OnRunComplete(*Result)                {}

// sourceEvents binds normalizer events to the reporter of one source
type sourceEvents struct {
	source   string
	reporter Reporter
}

func (e sourceEvents) OnRaggedColumn(column string, width int) {
	e.reporter.OnRaggedColumn(e.source, column, width)
}

func (e sourceEvents) OnSkippedLine(line uint64, reason string) {
	e.reporter.OnSkippedLine(e.source, line, reason)
}

// LoggerReporter forwards run events to the structured logger
type LoggerReporter struct {
	logger *logging.Logger
}

// NewLoggerReporter creates a new LoggerReporter
func NewLoggerReporter(logger *logging.Logger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// OnProgress logs a progress update
func (r *LoggerReporter) OnProgress(source string, records uint64, columns int) {
	r.logger.LogProgress(source, records, columns, nil)
}

// OnRaggedColumn logs a synthesized overflow column
func (r *LoggerReporter) OnRaggedColumn(source, column string, width int) {
	r.logger.LogRaggedColumn(source, column, width, nil)
}

// OnSkippedLine logs a line that could not be parsed
func (r *LoggerReporter) OnSkippedLine(source string, line uint64, reason string) {
	r.logger.LogSkippedLine(source, line, reason, nil)
}

// OnRunComplete logs the run summary
func (r *LoggerReporter) OnRunComplete(res *Result) {
	var patterns int
	for _, c := range res.Columns {
		patterns += len(c.Patterns)
	}
	r.logger.LogRunSummary(res.Source, res.RecordCount, len(res.Columns), patterns, res.Duration(), map[string]interface{}{
		"run_id":        res.RunID,
		"skipped_lines": res.Stats.SkippedLines,
		"ragged_rows":   res.Stats.RaggedRows,
		"short_rows":    res.Stats.ShortRows,
	})
}
