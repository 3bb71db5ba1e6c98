/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: result.go
Description: Immutable snapshot of a profiling run consumed by the report renderers.
*/

package profile

import (
	"sort"
	"time"

	"github.com/kleascm/bytefreq/pkg/aggregate"
	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/kleascm/bytefreq/pkg/normalize"
)

// ColumnProfile is the pattern histogram of one column
type ColumnProfile struct {
	Index    int                     `json:"index"`
	Name     string                  `json:"name"`
	Total    uint64                  `json:"total"`
	Patterns []aggregate.PatternStat `json:"patterns"`
}

// Result is the final state of a run
type Result struct {
	RunID       string          `json:"run_id"`
	Source      string          `json:"source"`
	Grain       mask.Grain      `json:"grain"`
	Format      Format          `json:"format"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
	RecordCount uint64          `json:"record_count"`
	FieldCounts map[int]uint64  `json:"field_counts"`
	Columns     []ColumnProfile `json:"columns"`
	Stats       normalize.Stats `json:"stats"`
}

// FieldCountKeys returns the observed fields-per-row values in ascending order
func (r *Result) FieldCountKeys() []int {
	keys := make([]int, 0, len(r.FieldCounts))
	for k := range r.FieldCounts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Column returns the profile of the named column
func (r *Result) Column(name string) (ColumnProfile, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnProfile{}, false
}

// Duration is the wall time of the run
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
