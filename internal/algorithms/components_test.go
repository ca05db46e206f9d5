package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStronglyConnectedComponents_CycleIsOneComponent(t *testing.T) {
	g := NewGraph([]string{"a", "b", "c", "d"}, []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "c", Target: "a"},
		{Source: "c", Target: "d"},
	})
	got := StronglyConnectedComponents(g)

	require.Len(t, got, 2, "expected the 3-cycle and the singleton as separate components")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, got[0])
	assert.Equal(t, []string{"d"}, got[1])
}

func TestWeaklyConnectedComponents_IgnoresDirection(t *testing.T) {
	g := NewGraph([]string{"a", "b", "c"}, []Edge{
		{Source: "b", Target: "a"},
	})
	got := WeaklyConnectedComponents(g)

	require.Len(t, got, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, got[0])
	assert.Equal(t, []string{"c"}, got[1])
}

func TestWeaklyConnectedComponents_EmptyGraph(t *testing.T) {
	g := NewGraph(nil, nil)
	got := WeaklyConnectedComponents(g)
	assert.Empty(t, got)
}
