package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/topoplace/types"
)

func TestStatic_LoadGraph(t *testing.T) {
	ctx := context.Background()

	t.Run("builds the graph", func(t *testing.T) {
		edges := []types.Edge{
			{V: 0, W: 1, Weight: 5},
			{V: 1, W: 2, Weight: 3},
			{V: 2, W: 3, Weight: 4},
		}
		src := NewStatic(4, edges)

		g, err := src.LoadGraph(ctx)
		require.NoError(t, err)
		require.Equal(t, 4, g.VertexCount())
		require.Equal(t, []types.Edge{edges[0], edges[2], edges[1]}, g.SortedEdges())
	})

	t.Run("does not alias the caller slice", func(t *testing.T) {
		edges := []types.Edge{{V: 0, W: 1, Weight: 1}}
		src := NewStatic(2, edges)
		edges[0].Weight = 99

		g, err := src.LoadGraph(ctx)
		require.NoError(t, err)
		require.InDelta(t, 1.0, g.Weight(0, 1), 0)
	})

	t.Run("rejects self-loops", func(t *testing.T) {
		src := NewStatic(2, []types.Edge{{V: 1, W: 1, Weight: 1}})

		g, err := src.LoadGraph(ctx)
		require.ErrorIs(t, err, types.ErrInvalidInput)
		require.Nil(t, g)
	})

	t.Run("update replaces the topology", func(t *testing.T) {
		src := NewStatic(2, []types.Edge{{V: 0, W: 1, Weight: 1}})
		src.Update(3, []types.Edge{{V: 1, W: 2, Weight: 7}})

		g, err := src.LoadGraph(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, g.VertexCount())
		require.False(t, g.Connected(0, 1))
		require.True(t, g.Connected(1, 2))
	})

	t.Run("honors cancellation", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewStatic(1, nil).LoadGraph(cctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
