/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: aggregator_test.go
Description: Tests for the aggregator: counting, deterministic reservoir outcomes with
a scripted sampler, statistical uniformity of retained examples and ordering.
*/

package aggregate_test

import (
	"sync"
	"testing"

	"github.com/kleascm/bytefreq/pkg/aggregate"
	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSampler always returns the same draw
type fixedSampler float64

func (f fixedSampler) Float64() float64 { return float64(f) }

// scriptedSampler replays draws in order
type scriptedSampler struct {
	draws []float64
	pos   int
}

func (s *scriptedSampler) Float64() float64 {
	d := s.draws[s.pos%len(s.draws)]
	s.pos++
	return d
}

func TestObserveCountsPatterns(t *testing.T) {
	agg := aggregate.New(fixedSampler(0.5))

	agg.Observe(0, "password123", mask.GrainLow)
	agg.Observe(0, "abc1", mask.GrainLow)
	agg.Observe(0, "Name", mask.GrainLow)

	assert.Equal(t, uint64(2), agg.Count(0, "a9"))
	assert.Equal(t, uint64(1), agg.Count(0, "Aa"))
	assert.Equal(t, uint64(3), agg.Total(0))
	assert.Equal(t, uint64(0), agg.Count(0, "missing"))
}

func TestFirstObservationIsAlwaysRetained(t *testing.T) {
	agg := aggregate.New(fixedSampler(0.999999))

	agg.Observe(0, "first", mask.GrainLow)
	agg.Observe(0, "second", mask.GrainLow)
	agg.Observe(0, "third", mask.GrainLow)

	ex, ok := agg.Example(0, "a")
	require.True(t, ok)
	assert.Equal(t, "first", ex)
}

func TestLowDrawsReplaceExample(t *testing.T) {
	agg := aggregate.New(fixedSampler(0))

	agg.Observe(0, "first", mask.GrainLow)
	agg.Observe(0, "second", mask.GrainLow)
	agg.Observe(0, "third", mask.GrainLow)

	ex, _ := agg.Example(0, "a")
	assert.Equal(t, "third", ex)
}

func TestScriptedReservoirOutcome(t *testing.T) {
	// n=1 keeps, n=2 draw 0.4 < 0.5 keeps, n=3 draw 0.5 >= 0.333 rejects
	agg := aggregate.New(&scriptedSampler{draws: []float64{0.9, 0.4, 0.5}})

	agg.Observe(2, "one", mask.GrainHigh)
	agg.Observe(2, "two", mask.GrainHigh)
	agg.Observe(2, "six", mask.GrainHigh)

	ex, ok := agg.Example(2, "aaa")
	require.True(t, ok)
	assert.Equal(t, "two", ex)
	assert.Equal(t, 3, agg.Columns())
}

func TestReservoirIsUniform(t *testing.T) {
	values := []string{"x1", "y2", "z3", "w4", "v5"}
	const runs = 20000

	sampler := aggregate.NewSampler(42)
	retained := make(map[string]int)
	for i := 0; i < runs; i++ {
		agg := aggregate.New(sampler)
		for _, v := range values {
			agg.Observe(0, v, mask.GrainLow)
		}
		ex, ok := agg.Example(0, "a9")
		require.True(t, ok)
		retained[ex]++
	}

	expected := float64(runs) / float64(len(values))
	for _, v := range values {
		assert.InDeltaf(t, expected, float64(retained[v]), expected*0.1, "value %s retained %d times", v, retained[v])
	}
}

func TestPatternsSortedByCount(t *testing.T) {
	agg := aggregate.New(fixedSampler(0.5))
	for _, v := range []string{"1", "22", "333", "a", "b", "c", "d", "Z"} {
		agg.Observe(0, v, mask.GrainLow)
	}

	stats := agg.Patterns(0)
	require.Len(t, stats, 3)
	assert.Equal(t, aggregate.PatternStat{Pattern: "a", Count: 4, Example: stats[0].Example}, stats[0])
	assert.Equal(t, "9", stats[1].Pattern)
	assert.Equal(t, uint64(3), stats[1].Count)
	assert.Equal(t, "A", stats[2].Pattern)
	assert.Equal(t, "Z", stats[2].Example)
	assert.Contains(t, []string{"a", "b", "c", "d"}, stats[0].Example)
}

func TestPatternsTieBrokenByPattern(t *testing.T) {
	agg := aggregate.New(fixedSampler(0.5))
	agg.Observe(0, "b", mask.GrainHigh)
	agg.Observe(0, "B", mask.GrainHigh)
	agg.Observe(0, "1", mask.GrainHigh)

	stats := agg.Patterns(0)
	require.Len(t, stats, 3)
	assert.Equal(t, []string{"9", "A", "a"}, []string{stats[0].Pattern, stats[1].Pattern, stats[2].Pattern})
}

func TestEnsureCreatesEmptyColumns(t *testing.T) {
	agg := aggregate.New(nil)
	agg.Ensure(3)
	assert.Equal(t, 4, agg.Columns())
	assert.Empty(t, agg.Patterns(1))
	assert.Nil(t, agg.Patterns(10))
}

func TestConcurrentObserveKeepsCounts(t *testing.T) {
	agg := aggregate.New(aggregate.NewSampler(7))
	agg.Ensure(3)

	var wg sync.WaitGroup
	for col := 0; col < 4; col++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				agg.Observe(col, "value", mask.GrainLowUnicode)
			}
		}(col)
	}
	wg.Wait()

	for col := 0; col < 4; col++ {
		assert.Equal(t, uint64(1000), agg.Count(col, "a"))
		ex, ok := agg.Example(col, "a")
		assert.True(t, ok)
		assert.Equal(t, "value", ex)
	}
}
