package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/topoplace/types"
)

func TestNew(t *testing.T) {
	t.Run("initializes diagonal and sentinel", func(t *testing.T) {
		g, err := New(3, 2)
		require.NoError(t, err)
		require.Equal(t, 3, g.VertexCount())
		require.Equal(t, 2, g.EdgeCount())
		require.Equal(t, 0, g.StoredEdgeCount())

		m := g.Matrix()
		for i := range 3 {
			for j := range 3 {
				if i == j {
					require.InDelta(t, 0.0, m[i][j], 0)
				} else {
					require.InDelta(t, NoEdge, m[i][j], 0)
				}
			}
		}
	})

	t.Run("empty graph is valid", func(t *testing.T) {
		g, err := New(0, 0)
		require.NoError(t, err)
		require.Empty(t, g.Matrix())

		_, ok := g.HeadEdge()
		require.False(t, ok)
	})

	t.Run("rejects negative counts", func(t *testing.T) {
		_, err := New(-1, 0)
		require.ErrorIs(t, err, types.ErrInvalidInput)

		_, err = New(2, -3)
		require.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("rejects vertex counts above the maximum", func(t *testing.T) {
		for _, n := range []int{MaxVertices + 1, 4_000_000_000, math.MaxInt} {
			_, err := New(n, 0)
			require.ErrorIs(t, err, types.ErrInvalidInput, "vCount %d", n)
		}
	})

	t.Run("huge declared edge count does not size the list", func(t *testing.T) {
		g, err := New(3, math.MaxInt)
		require.NoError(t, err)
		require.Equal(t, math.MaxInt, g.EdgeCount())
		require.Equal(t, 0, g.StoredEdgeCount())
	})
}

func TestMaxPairs(t *testing.T) {
	require.Equal(t, 0, MaxPairs(0))
	require.Equal(t, 0, MaxPairs(1))
	require.Equal(t, 1, MaxPairs(2))
	require.Equal(t, 6, MaxPairs(4))
	require.Equal(t, MaxVertices*(MaxVertices-1)/2, MaxPairs(MaxVertices))
}

func TestAddEdge(t *testing.T) {
	t.Run("records weight symmetrically", func(t *testing.T) {
		g, err := New(4, 3)
		require.NoError(t, err)

		added, err := g.AddEdge(0, 3, 2.5)
		require.NoError(t, err)
		require.True(t, added)

		require.InDelta(t, 2.5, g.Weight(0, 3), 0)
		require.InDelta(t, 2.5, g.Weight(3, 0), 0)
		require.True(t, g.Connected(3, 0))
		require.False(t, g.Connected(0, 1))
		require.False(t, g.Connected(2, 2))
	})

	t.Run("duplicate pair is idempotent", func(t *testing.T) {
		g, err := New(3, 2)
		require.NoError(t, err)

		_, err = g.AddEdge(0, 1, 5)
		require.NoError(t, err)
		before := g.Matrix()
		beforeEdges := g.SortedEdges()

		for _, w := range []float64{5, 50, -7, math.NaN()} {
			added, err := g.AddEdge(1, 0, w)
			require.NoError(t, err)
			require.False(t, added)
		}

		require.Equal(t, before, g.Matrix())
		require.Equal(t, beforeEdges, g.SortedEdges())
	})

	t.Run("rejects self-loops", func(t *testing.T) {
		g, err := New(3, 1)
		require.NoError(t, err)

		_, err = g.AddEdge(1, 1, 4)
		require.ErrorIs(t, err, types.ErrInvalidInput)
		require.InDelta(t, 0.0, g.Weight(1, 1), 0)
	})

	t.Run("rejects out-of-range vertices", func(t *testing.T) {
		g, err := New(2, 1)
		require.NoError(t, err)

		_, err = g.AddEdge(0, 2, 1)
		require.ErrorIs(t, err, types.ErrInvalidInput)

		_, err = g.AddEdge(-1, 1, 1)
		require.ErrorIs(t, err, types.ErrInvalidInput)
	})

	t.Run("rejects unrepresentable weights", func(t *testing.T) {
		g, err := New(2, 1)
		require.NoError(t, err)

		for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), NoEdge} {
			_, err = g.AddEdge(0, 1, w)
			require.ErrorIs(t, err, types.ErrInvalidInput)
		}
		require.False(t, g.Connected(0, 1))
	})
}

func TestWeightedGraph_Invariants(t *testing.T) {
	g, err := New(6, 8)
	require.NoError(t, err)

	edges := []types.Edge{
		{V: 0, W: 1, Weight: 4}, {V: 1, W: 2, Weight: 9}, {V: 2, W: 3, Weight: 4},
		{V: 3, W: 4, Weight: 1}, {V: 4, W: 5, Weight: 9}, {V: 5, W: 0, Weight: 0},
		{V: 1, W: 4, Weight: -2}, {V: 2, W: 5, Weight: 6},
	}
	for _, e := range edges {
		_, err := g.AddEdge(e.V, e.W, e.Weight)
		require.NoError(t, err)
	}

	t.Run("matrix is symmetric", func(t *testing.T) {
		m := g.Matrix()
		for i := range m {
			for j := range m {
				require.InDelta(t, m[i][j], m[j][i], 0, "cell %d,%d", i, j)
			}
		}
	})

	t.Run("edge sequence is non-increasing", func(t *testing.T) {
		sorted := g.SortedEdges()
		require.Len(t, sorted, len(edges))
		for k := 1; k < len(sorted); k++ {
			require.GreaterOrEqual(t, sorted[k-1].Weight, sorted[k].Weight)
		}
	})

	t.Run("ties keep insertion order", func(t *testing.T) {
		sorted := g.SortedEdges()
		require.Equal(t, types.Edge{V: 1, W: 2, Weight: 9}, sorted[0])
		require.Equal(t, types.Edge{V: 4, W: 5, Weight: 9}, sorted[1])
		require.Equal(t, types.Edge{V: 0, W: 1, Weight: 4}, sorted[3])
		require.Equal(t, types.Edge{V: 2, W: 3, Weight: 4}, sorted[4])
	})

	t.Run("neighbors", func(t *testing.T) {
		require.Equal(t, []types.Vertex{0, 2, 4}, g.Neighbors(1))
		require.Nil(t, g.Neighbors(17))
	})

	t.Run("cursor walks heaviest first", func(t *testing.T) {
		c := g.Edges()
		first, ok := c.Next()
		require.True(t, ok)

		head, ok := g.HeadEdge()
		require.True(t, ok)
		require.Equal(t, head, first)
		require.Equal(t, len(edges)-1, c.Remaining())
	})

	t.Run("matrix copy is detached", func(t *testing.T) {
		m := g.Matrix()
		m[0][1] = 1000
		require.InDelta(t, 4.0, g.Weight(0, 1), 0)
	})

	t.Run("out of range lookups", func(t *testing.T) {
		require.InDelta(t, NoEdge, g.Weight(0, 99), 0)
		require.False(t, g.Connected(-1, 0))
	})
}
