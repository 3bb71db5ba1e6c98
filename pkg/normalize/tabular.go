/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tabular.go
Description: Tabular normalizer for delimited text. The first line defines the columns;
later lines are split, realigned against the header, and emitted field by field.
Extra trailing fields are recovered into synthetic RaggedErr columns.
*/

package normalize

import (
	"fmt"
	"strings"

	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/kleascm/bytefreq/pkg/registry"
	"github.com/sirupsen/logrus"
)

// DefaultDelimiter separates tabular fields unless configured otherwise
const DefaultDelimiter = "|"

// RaggedPrefix names columns synthesized for overflow fields
const RaggedPrefix = "RaggedErr"

// TabularState is the header state machine position
type TabularState int

const (
	AwaitingHeader TabularState = iota
	Streaming
)

func (s TabularState) String() string {
	switch s {
	case AwaitingHeader:
		return "awaiting_header"
	case Streaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// TabularOptions configures a Tabular normalizer
type TabularOptions struct {
	Delimiter string
	Grain     mask.Grain
	Logger    logrus.FieldLogger
	Events    Events
}

// Tabular normalizes delimited rows
type Tabular struct {
	delimiter string
	grain     mask.Grain
	registry  *registry.Registry
	sink      Sink
	logger    logrus.FieldLogger
	events    Events

	state       TabularState
	headerWidth int
	// positions maps a field position to its registry index
	positions   []int
	fieldCounts map[int]uint64
	stats       Stats
}

// NewTabular creates a tabular normalizer writing into reg and sink
func NewTabular(reg *registry.Registry, sink Sink, opts TabularOptions) *Tabular {
	if opts.Delimiter == "" {
		opts.Delimiter = DefaultDelimiter
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	if opts.Events == nil {
		opts.Events = nopEvents{}
	}
	return &Tabular{
		delimiter:   opts.Delimiter,
		grain:       opts.Grain,
		registry:    reg,
		sink:        sink,
		logger:      opts.Logger,
		events:      opts.Events,
		state:       AwaitingHeader,
		fieldCounts: make(map[int]uint64),
	}
}

// ProcessLine consumes one line. Empty lines are ignored.
func (t *Tabular) ProcessLine(line string) {
	if line == "" {
		return
	}
	t.stats.Lines++

	if t.state == AwaitingHeader {
		t.readHeader(line)
		t.state = Streaming
		return
	}
	t.readRow(line)
}

// readHeader registers one column per header field in left-to-right order.
// Repeated names resolve to the same column.
func (t *Tabular) readHeader(line string) {
	fields := strings.Split(line, t.delimiter)
	t.headerWidth = len(fields)
	t.positions = make([]int, 0, len(fields))

	for _, field := range fields {
		name := HeaderName(field)
		idx, created := t.registry.GetOrCreate(name)
		if created {
			t.sink.Ensure(idx)
		} else {
			t.logger.WithFields(logrus.Fields{
				"column": name,
				"index":  idx,
			}).Warn("Duplicate header name merged into existing column")
		}
		t.positions = append(t.positions, idx)
	}
}

func (t *Tabular) readRow(line string) {
	fields := strings.Split(line, t.delimiter)
	k := len(fields)

	switch {
	case k > t.headerWidth:
		t.stats.RaggedRows++
	case k < t.headerWidth:
		t.stats.ShortRows++
	}

	for i, value := range fields {
		t.sink.Observe(t.columnFor(i), value, t.grain)
		t.stats.Observations++
	}
	t.fieldCounts[k]++
}

// columnFor resolves the column of field position i, synthesizing a ragged
// column for positions beyond everything seen so far
func (t *Tabular) columnFor(i int) int {
	if i < len(t.positions) {
		return t.positions[i]
	}

	for len(t.positions) <= i {
		pos := len(t.positions)
		name := RaggedName(pos + 1 - t.headerWidth)
		idx, created := t.registry.GetOrCreate(name)
		if created {
			t.sink.Ensure(idx)
			t.events.OnRaggedColumn(name, pos+1)
		}
		t.positions = append(t.positions, idx)
	}
	return t.positions[i]
}

// FieldCounts returns a copy of the fields-per-row histogram
func (t *Tabular) FieldCounts() map[int]uint64 {
	out := make(map[int]uint64, len(t.fieldCounts))
	for k, v := range t.fieldCounts {
		out[k] = v
	}
	return out
}

// State returns the header state machine position
func (t *Tabular) State() TabularState {
	return t.state
}

// HeaderWidth returns the number of fields declared by the header
func (t *Tabular) HeaderWidth() int {
	return t.headerWidth
}

// Stats returns the normalizer counters
func (t *Tabular) Stats() Stats {
	return t.stats
}

// HeaderName normalizes a raw header field into a column name
func HeaderName(field string) string {
	return strings.ReplaceAll(strings.TrimSpace(field), " ", "_")
}

// RaggedName returns the synthetic column name for the n-th overflow field
func RaggedName(n int) string {
	return fmt.Sprintf("%s%d", RaggedPrefix, n)
}
