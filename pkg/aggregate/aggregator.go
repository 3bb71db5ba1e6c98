/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: aggregator.go
Description: Per-column pattern frequency and example aggregator. Masks each observed
value, counts patterns, and keeps one uniformly sampled example per pattern using
size-one reservoir sampling.
*/

package aggregate

import (
	"sort"
	"sync"

	"github.com/kleascm/bytefreq/pkg/mask"
)

// PatternStat is one pattern row of a column profile
type PatternStat struct {
	Pattern string `json:"pattern"`
	Count   uint64 `json:"count"`
	Example string `json:"example"`
}

// columnAggregate is the unit of mutual exclusion for a column
type columnAggregate struct {
	mu       sync.Mutex
	counts   map[string]uint64
	examples map[string]string
}

func newColumnAggregate() *columnAggregate {
	return &columnAggregate{
		counts:   make(map[string]uint64),
		examples: make(map[string]string),
	}
}

// Aggregator owns the per-column pattern counts and retained examples
type Aggregator struct {
	mu      sync.RWMutex
	columns []*columnAggregate
	sampler Sampler
}

// New creates an aggregator drawing reservoir decisions from sampler.
// A nil sampler is replaced by a time-seeded one.
func New(sampler Sampler) *Aggregator {
	if sampler == nil {
		sampler = NewSampler(0)
	}
	return &Aggregator{sampler: sampler}
}

// Ensure creates empty aggregate storage for every index up to and including column
func (a *Aggregator) Ensure(column int) {
	a.column(column)
}

// Observe masks raw under grain and records it against column.
// The count increment and the example replacement happen under the column lock,
// so the retained example stays a uniform sample under concurrent callers.
func (a *Aggregator) Observe(column int, raw string, grain mask.Grain) {
	pattern := mask.Mask(raw, grain)
	col := a.column(column)

	col.mu.Lock()
	defer col.mu.Unlock()

	col.counts[pattern]++
	n := col.counts[pattern]
	if a.sampler.Float64() < 1.0/float64(n) {
		col.examples[pattern] = raw
	}
}

// Columns returns the number of columns with aggregate storage
func (a *Aggregator) Columns() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.columns)
}

// Count returns how often pattern was seen in column
func (a *Aggregator) Count(column int, pattern string) uint64 {
	col, ok := a.lookup(column)
	if !ok {
		return 0
	}
	col.mu.Lock()
	defer col.mu.Unlock()
	return col.counts[pattern]
}

// Example returns the retained example for pattern in column
func (a *Aggregator) Example(column int, pattern string) (string, bool) {
	col, ok := a.lookup(column)
	if !ok {
		return "", false
	}
	col.mu.Lock()
	defer col.mu.Unlock()
	ex, ok := col.examples[pattern]
	return ex, ok
}

// Total returns the number of observations recorded for column
func (a *Aggregator) Total(column int) uint64 {
	col, ok := a.lookup(column)
	if !ok {
		return 0
	}
	col.mu.Lock()
	defer col.mu.Unlock()
	var total uint64
	for _, c := range col.counts {
		total += c
	}
	return total
}

// Patterns returns the column's patterns sorted by descending count.
// Equal counts are ordered by pattern text so output is reproducible.
func (a *Aggregator) Patterns(column int) []PatternStat {
	col, ok := a.lookup(column)
	if !ok {
		return nil
	}

	col.mu.Lock()
	stats := make([]PatternStat, 0, len(col.counts))
	for pattern, count := range col.counts {
		stats = append(stats, PatternStat{
			Pattern: pattern,
			Count:   count,
			Example: col.examples[pattern],
		})
	}
	col.mu.Unlock()

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Pattern < stats[j].Pattern
	})
	return stats
}

func (a *Aggregator) lookup(column int) (*columnAggregate, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if column < 0 || column >= len(a.columns) {
		return nil, false
	}
	return a.columns[column], true
}

// column returns the aggregate for an index, growing storage as needed
func (a *Aggregator) column(column int) *columnAggregate {
	if col, ok := a.lookup(column); ok {
		return col
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for len(a.columns) <= column {
		a.columns = append(a.columns, newColumnAggregate())
	}
	return a.columns[column]
}
