package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortestPath_SameNode(t *testing.T) {
	g := NewGraph([]string{"a"}, nil)
	path, weight, ok := ShortestPath(g, "a", "a")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, path)
	assert.Zero(t, weight)
}

func TestShortestPath_PicksLowerWeightRoute(t *testing.T) {
	g := NewGraph([]string{"a", "b", "c"}, []Edge{
		{Source: "a", Target: "b", Weight: 5},
		{Source: "a", Target: "c", Weight: 1},
		{Source: "c", Target: "b", Weight: 1},
	})
	path, weight, ok := ShortestPath(g, "a", "b")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c", "b"}, path)
	assert.Equal(t, 2.0, weight)
}

func TestShortestPath_Unreachable(t *testing.T) {
	g := NewGraph([]string{"a", "b"}, nil)
	_, _, ok := ShortestPath(g, "a", "b")
	assert.False(t, ok)
}

func TestShortestPath_RespectsDirection(t *testing.T) {
	g := NewGraph([]string{"a", "b"}, []Edge{{Source: "b", Target: "a", Weight: 1}})
	_, _, ok := ShortestPath(g, "a", "b")
	assert.False(t, ok, "edges are directed source->target only")
}
