package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEmptyHistory(t *testing.T) {
	assert.Empty(t, Rank(nil))
	assert.Empty(t, Rank([][]string{}))
}

func TestRankSingleSequence(t *testing.T) {
	order := Rank([][]string{{"a", "b", "c"}})
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRankContradictoryHistory(t *testing.T) {
	// Trips [A,B,C] and [B,C,A]: B beats C twice, A and B split, A and C
	// split. Net scores rank B first; the A/C gap comes from B's wins.
	order := Rank([][]string{
		{"A", "B", "C"},
		{"B", "C", "A"},
	})
	assert.Equal(t, []string{"B", "A", "C"}, order)
}

func TestRankCycleResolvesDeterministically(t *testing.T) {
	// A>B, B>C, C>A is a perfect cycle: all net scores are zero, so the
	// tie-break falls back to first-ever appearance.
	order := Rank([][]string{
		{"A", "B"},
		{"B", "C"},
		{"C", "A"},
	})
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

func TestRankIsPureFunctionOfHistory(t *testing.T) {
	history := [][]string{
		{"milk", "bread", "eggs"},
		{"milk", "eggs", "bread"},
		{"bread", "milk", "eggs"},
	}

	first := Rank(history)
	second := Rank(history)
	assert.Equal(t, first, second, "same history must reproduce the same order")
}

func TestRankScoringIsCommutative(t *testing.T) {
	// With unambiguous precedence the result is independent of which trip
	// was recorded first.
	a := [][]string{{"x", "y", "z"}, {"x", "z", "y"}, {"x", "y", "z"}}
	b := [][]string{{"x", "y", "z"}, {"x", "y", "z"}, {"x", "z", "y"}}

	assert.Equal(t, Rank(a), Rank(b))
}

func TestRankStabilizesWithHistory(t *testing.T) {
	// One noisy trip cannot flip an order backed by many consistent trips.
	history := [][]string{
		{"a", "b"}, {"a", "b"}, {"a", "b"}, {"a", "b"},
		{"b", "a"},
	}
	order := Rank(history)
	require.Equal(t, []string{"a", "b"}, order)
}

func TestRankTieBreaksByFirstAppearance(t *testing.T) {
	// No pairwise information at all: both score zero, b was seen first.
	order := Rank([][]string{{"b"}, {"a"}})
	assert.Equal(t, []string{"b", "a"}, order)
}
