/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: profiler.go
Description: Profiling run driver. Wires the column registry, aggregator and the
configured normalizer together, counts records, and reads input line by line until
end of stream, producing a Result snapshot for the report renderers.
*/

package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/bytefreq/pkg/aggregate"
	"github.com/kleascm/bytefreq/pkg/input"
	"github.com/kleascm/bytefreq/pkg/normalize"
	"github.com/kleascm/bytefreq/pkg/registry"
	"github.com/sirupsen/logrus"
)

// Option customizes a Profiler
type Option func(*Profiler)

// WithLogger sets the logger handed to the normalizers
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Profiler) { p.logger = logger }
}

// WithSampler overrides the reservoir sampling source
func WithSampler(s aggregate.Sampler) Option {
	return func(p *Profiler) { p.sampler = s }
}

// WithReporter attaches a progress/completion reporter
func WithReporter(r Reporter) Option {
	return func(p *Profiler) { p.reporter = r }
}

// WithSource names the input in the Result
func WithSource(name string) Option {
	return func(p *Profiler) { p.source = name }
}

// Profiler accumulates a profile for one input stream.
// It is not safe for concurrent use; run one Profiler per stream.
type Profiler struct {
	config   Config
	logger   logrus.FieldLogger
	sampler  aggregate.Sampler
	reporter Reporter
	source   string
	runID    string

	registry   *registry.Registry
	aggregator *aggregate.Aggregator
	normalizer normalize.Normalizer
	tabular    *normalize.Tabular
	json       *normalize.JSON

	records uint64
	started time.Time
}

// New creates a Profiler for config
func New(config Config, opts ...Option) (*Profiler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile config: %w", err)
	}

	p := &Profiler{
		config:   config,
		source:   "stdin",
		runID:    uuid.New().String(),
		registry: registry.New(),
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		p.logger = l
	}
	if p.sampler == nil {
		p.sampler = aggregate.NewSampler(config.Seed)
	}
	if p.reporter == nil {
		p.reporter = nopReporter{}
	}

	p.aggregator = aggregate.New(p.sampler)
	logger := p.logger.WithField("source", p.source)
	events := sourceEvents{source: p.source, reporter: p.reporter}

	switch config.Format {
	case FormatJSON:
		p.json = normalize.NewJSON(p.registry, p.aggregator, normalize.JSONOptions{
			Grain:              config.Grain,
			PathDepth:          config.PathDepth,
			RemoveArrayNumbers: config.RemoveArrayNumbers,
			Logger:             logger,
			Events:             events,
		})
		p.normalizer = p.json
	default:
		p.tabular = normalize.NewTabular(p.registry, p.aggregator, normalize.TabularOptions{
			Delimiter: config.Delimiter,
			Grain:     config.Grain,
			Logger:    logger,
			Events:    events,
		})
		p.normalizer = p.tabular
	}

	return p, nil
}

// ProcessLine feeds one line to the normalizer. Empty lines are skipped and
// not counted; every other line counts as a record whether or not it parses.
func (p *Profiler) ProcessLine(line string) {
	if line == "" {
		return
	}
	p.normalizer.ProcessLine(line)
	p.records++

	if every := p.config.ProgressEvery; every > 0 && p.records%every == 0 {
		p.reporter.OnProgress(p.source, p.records, p.registry.Len())
	}
}

// Run reads r to the end and returns the final profile.
// A read failure or cancellation aborts the run and no Result is returned.
func (p *Profiler) Run(ctx context.Context, r io.Reader) (*Result, error) {
	lines := input.NewLineReader(r)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d of %s: %w", lines.Line()+1, p.source, err)
		}
		p.ProcessLine(line)
	}

	res := p.Result()
	p.reporter.OnRunComplete(res)
	return res, nil
}

// Records returns the number of records seen so far
func (p *Profiler) Records() uint64 {
	return p.records
}

// Registry exposes the column registry
func (p *Profiler) Registry() *registry.Registry {
	return p.registry
}

// Result snapshots the current aggregate state
func (p *Profiler) Result() *Result {
	res := &Result{
		RunID:       p.runID,
		Source:      p.source,
		Grain:       p.config.Grain,
		Format:      p.config.Format,
		StartedAt:   p.started,
		FinishedAt:  time.Now(),
		RecordCount: p.records,
		FieldCounts: map[int]uint64{},
	}

	switch {
	case p.tabular != nil:
		res.FieldCounts = p.tabular.FieldCounts()
		res.Stats = p.tabular.Stats()
	case p.json != nil:
		res.Stats = p.json.Stats()
	}

	for idx, name := range p.registry.Names() {
		res.Columns = append(res.Columns, ColumnProfile{
			Index:    idx,
			Name:     name,
			Total:    p.aggregator.Total(idx),
			Patterns: p.aggregator.Patterns(idx),
		})
	}
	return res
}
