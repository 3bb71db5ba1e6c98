/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: profiler_test.go
Description: End-to-end tests for profiling runs over tabular and JSON input.
*/

package profile_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kleascm/bytefreq/pkg/aggregate"
	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/kleascm/bytefreq/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstWins struct{}

func (firstWins) Float64() float64 { return 0.999999 }

type recordingReporter struct {
	progress []uint64
	ragged   []string
	skipped  []uint64
	complete *profile.Result
}

func (r *recordingReporter) OnProgress(_ string, records uint64, _ int) {
	r.progress = append(r.progress, records)
}

func (r *recordingReporter) OnRaggedColumn(_, column string, _ int) {
	r.ragged = append(r.ragged, column)
}

func (r *recordingReporter) OnSkippedLine(_ string, line uint64, _ string) {
	r.skipped = append(r.skipped, line)
}

func (r *recordingReporter) OnRunComplete(res *profile.Result) {
	r.complete = res
}

func tabularConfig(grain mask.Grain) profile.Config {
	cfg := profile.DefaultConfig()
	cfg.Grain = grain
	return cfg
}

func TestTabularRun(t *testing.T) {
	p, err := profile.New(tabularConfig(mask.GrainHigh), profile.WithSampler(firstWins{}), profile.WithSource("users.psv"))
	require.NoError(t, err)

	in := "name|password\nalice|password123\n\nbob|hunter2|extra\n"
	res, err := p.Run(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "users.psv", res.Source)
	assert.Equal(t, uint64(3), res.RecordCount, "header counts, empty line does not")
	assert.Equal(t, map[int]uint64{2: 1, 3: 1}, res.FieldCounts)
	assert.Equal(t, []int{2, 3}, res.FieldCountKeys())
	assert.Equal(t, uint64(1), res.Stats.RaggedRows)

	pw, ok := res.Column("password")
	require.True(t, ok)
	require.Len(t, pw.Patterns, 2)
	// equal counts fall back to pattern order
	assert.Equal(t, "aaaaaa9", pw.Patterns[0].Pattern)
	assert.Equal(t, "hunter2", pw.Patterns[0].Example)
	assert.Equal(t, "aaaaaaaa999", pw.Patterns[1].Pattern)
	assert.Equal(t, "password123", pw.Patterns[1].Example)

	ragged, ok := res.Column("RaggedErr1")
	require.True(t, ok)
	assert.Equal(t, 2, ragged.Index)
	assert.Equal(t, uint64(1), ragged.Total)
	assert.Equal(t, "aaaaa", ragged.Patterns[0].Pattern)
}

func TestTabularRunLowGrain(t *testing.T) {
	p, err := profile.New(tabularConfig(mask.GrainLow))
	require.NoError(t, err)

	res, err := p.Run(context.Background(), strings.NewReader("secret\npassword123\n"))
	require.NoError(t, err)

	col, ok := res.Column("secret")
	require.True(t, ok)
	assert.Equal(t, "a9", col.Patterns[0].Pattern)
}

func TestJSONRun(t *testing.T) {
	cfg := profile.DefaultConfig()
	cfg.Format = profile.FormatJSON
	cfg.RemoveArrayNumbers = true
	reporter := &recordingReporter{}

	p, err := profile.New(cfg, profile.WithReporter(reporter))
	require.NoError(t, err)

	in := `{"email":"EMAIL@example.com","tags":["a","b"]}` + "\n" + `{broken` + "\n"
	res, err := p.Run(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, uint64(2), res.RecordCount, "invalid documents still count as records")
	assert.Equal(t, uint64(1), res.Stats.SkippedLines)
	assert.Empty(t, res.FieldCounts)
	assert.Equal(t, []uint64{2}, reporter.skipped)

	email, ok := res.Column("email")
	require.True(t, ok)
	assert.Equal(t, `"A_a.a"`, email.Patterns[0].Pattern)

	tags, ok := res.Column("tags[]")
	require.True(t, ok)
	assert.Equal(t, uint64(2), tags.Total)
}

func TestRunReportsProgressAndCompletion(t *testing.T) {
	cfg := profile.DefaultConfig()
	cfg.ProgressEvery = 2
	reporter := &recordingReporter{}

	p, err := profile.New(cfg, profile.WithReporter(reporter))
	require.NoError(t, err)

	res, err := p.Run(context.Background(), strings.NewReader("a\n1\n2\n3|4\n5\n"))
	require.NoError(t, err)

	assert.Equal(t, []uint64{2, 4}, reporter.progress)
	assert.Equal(t, []string{"RaggedErr1"}, reporter.ragged)
	assert.Same(t, res, reporter.complete)
}

func TestRunCancelled(t *testing.T) {
	p, err := profile.New(profile.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Run(ctx, strings.NewReader("a|b\n1|2\n"))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

type brokenReader struct {
	sent bool
}

func (b *brokenReader) Read(p []byte) (int, error) {
	if !b.sent {
		b.sent = true
		return copy(p, "a|b\n"), nil
	}
	return 0, errors.New("connection reset")
}

func TestRunPropagatesReadErrors(t *testing.T) {
	p, err := profile.New(profile.DefaultConfig(), profile.WithSource("remote"))
	require.NoError(t, err)

	res, err := p.Run(context.Background(), &brokenReader{})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote")
	assert.Contains(t, err.Error(), "connection reset")
	assert.NotErrorIs(t, err, io.EOF)
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	in := "v\n" + strings.Repeat("aa\nbb\ncc\ndd\n", 50)

	examples := func() string {
		cfg := profile.DefaultConfig()
		cfg.Grain = mask.GrainLow
		cfg.Seed = 42
		p, err := profile.New(cfg)
		require.NoError(t, err)
		res, err := p.Run(context.Background(), strings.NewReader(in))
		require.NoError(t, err)
		col, _ := res.Column("v")
		return col.Patterns[0].Example
	}

	assert.Equal(t, examples(), examples())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cases := map[string]func(*profile.Config){
		"format":    func(c *profile.Config) { c.Format = "xml" },
		"delimiter": func(c *profile.Config) { c.Delimiter = "" },
		"pathdepth": func(c *profile.Config) { c.PathDepth = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := profile.DefaultConfig()
			mutate(&cfg)
			_, err := profile.New(cfg)
			assert.Error(t, err)
		})
	}
}

func TestJSONConfigAllowsEmptyDelimiter(t *testing.T) {
	cfg := profile.DefaultConfig()
	cfg.Format = profile.FormatJSON
	cfg.Delimiter = ""
	_, err := profile.New(cfg)
	assert.NoError(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := profile.ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, profile.FormatJSON, f)

	f, err = profile.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, profile.FormatTabular, f)

	_, err = profile.ParseFormat("avro")
	assert.Error(t, err)
}

func TestProcessLineCountsRecords(t *testing.T) {
	p, err := profile.New(profile.DefaultConfig(), profile.WithSampler(aggregate.NewSampler(1)))
	require.NoError(t, err)

	p.ProcessLine("h")
	p.ProcessLine("")
	p.ProcessLine("x")

	assert.Equal(t, uint64(2), p.Records())
	assert.Equal(t, []string{"h"}, p.Registry().Names())
	assert.Equal(t, uint64(1), p.Result().Columns[0].Total)
}
