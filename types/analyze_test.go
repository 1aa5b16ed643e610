package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// listGraph is a minimal Graph used to exercise Analyze without the graph package.
type listGraph struct {
	n     int
	edges []Edge
}

func (g *listGraph) VertexCount() int { return g.n }
func (g *listGraph) EdgeCount() int   { return len(g.edges) }

func (g *listGraph) Weight(v, w Vertex) float64 {
	if v == w {
		return 0
	}
	for _, e := range g.edges {
		if e.Same(Edge{V: v, W: w}) {
			return e.Weight
		}
	}

	return NoEdge
}

func (g *listGraph) Connected(v, w Vertex) bool { return v != w && g.Weight(v, w) != NoEdge }

func (g *listGraph) HeadEdge() (Edge, bool) {
	if len(g.edges) == 0 {
		return Edge{}, false
	}

	return g.edges[0], true
}

func (g *listGraph) SortedEdges() []Edge { return append([]Edge(nil), g.edges...) }

func TestAnalyze(t *testing.T) {
	g := &listGraph{n: 4, edges: []Edge{
		{V: 0, W: 1, Weight: 5},
		{V: 2, W: 3, Weight: 4},
		{V: 1, W: 2, Weight: 3},
	}}

	t.Run("complete allocation", func(t *testing.T) {
		report := Analyze(g, CapacitySchedule{2, 2}, AllocationMap{{0, 1}, {2, 3}})

		require.True(t, report.Complete())
		require.Equal(t, 2, report.Groups)
		require.Equal(t, []Edge{{V: 1, W: 2, Weight: 3}}, report.Crossings)
		require.InDelta(t, 3.0, report.CutWeight, 1e-9)
		require.InDelta(t, 9.0, report.InternalWeight, 1e-9)
	})

	t.Run("reports unplaced and duplicated vertices", func(t *testing.T) {
		report := Analyze(g, CapacitySchedule{2, 2, 2}, AllocationMap{{0, 1}, {1}, {2}})

		require.False(t, report.Complete())
		require.Equal(t, []Vertex{3}, report.Unplaced)
		require.Equal(t, []Vertex{1}, report.Duplicated)
		require.Len(t, report.Crossings, 2)
	})

	t.Run("reports over-capacity and schedule overflow", func(t *testing.T) {
		report := Analyze(g, CapacitySchedule{3}, AllocationMap{{0, 1, 2, 3}, {}})

		require.Equal(t, []int{0, 1}, report.OverCapacity)
		require.False(t, report.Complete())
	})

	t.Run("reports out-of-range ids", func(t *testing.T) {
		report := Analyze(g, CapacitySchedule{4}, AllocationMap{{0, 1, 2, 3, 9}})

		require.Equal(t, []Vertex{9}, report.OutOfRange)
		require.Equal(t, []int{0}, report.OverCapacity)
	})

	t.Run("nil graph yields an empty report", func(t *testing.T) {
		report := Analyze(nil, CapacitySchedule{2}, AllocationMap{{0}})
		require.Equal(t, 1, report.Groups)
		require.Empty(t, report.Crossings)
	})
}
