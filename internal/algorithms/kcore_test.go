package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKCoreDecomposition_Triangle(t *testing.T) {
	// A triangle is a 2-core: every node has degree 2 within it.
	g := NewGraph([]string{"a", "b", "c"}, []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "c", Target: "a"},
	})
	core := KCoreDecomposition(g)
	assert.Equal(t, 2, core["a"])
	assert.Equal(t, 2, core["b"])
	assert.Equal(t, 2, core["c"])
}

func TestKCoreDecomposition_PendantHasCoreOne(t *testing.T) {
	// d hangs off the triangle by a single edge, so it peels first at
	// degree 1 and never reaches the triangle's core.
	g := NewGraph([]string{"a", "b", "c", "d"}, []Edge{
		{Source: "a", Target: "b"},
		{Source: "b", Target: "c"},
		{Source: "c", Target: "a"},
		{Source: "c", Target: "d"},
	})
	core := KCoreDecomposition(g)
	assert.Equal(t, 1, core["d"])
	assert.Equal(t, 2, core["a"])
}

func TestKCoreDecomposition_EmptyGraph(t *testing.T) {
	g := NewGraph(nil, nil)
	assert.Empty(t, KCoreDecomposition(g))
}

func TestNodesAtLeastCore_Filters(t *testing.T) {
	core := map[string]int{"a": 2, "b": 2, "d": 1}
	got := NodesAtLeastCore(core, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}
