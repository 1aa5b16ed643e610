package publisher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/topoplace/internal/election"
	"github.com/arloliu/topoplace/internal/logger"
	topotest "github.com/arloliu/topoplace/testing"
	"github.com/arloliu/topoplace/types"
)

func TestLeased_Publish(t *testing.T) {
	_, nc := topotest.StartEmbeddedNATS(t)
	placements := topotest.CreateJetStreamKV(t, nc, "leased-placement")
	leases := topotest.CreateJetStreamKV(t, nc, "leased-lease")
	ctx := context.Background()

	recA := logger.NewRecorder()
	a := NewLeased(NewKV(placements, "topology", nil, nil), election.NewLease(leases, "topology"), "planner-a", recA)
	b := NewLeased(NewKV(placements, "topology", nil, nil), election.NewLease(leases, "topology"), "planner-b", nil)

	version, err := a.Publish(ctx, testPlan("p1", []types.Vertex{0, 1}))
	require.NoError(t, err)
	require.Equal(t, int64(1), version)
	require.Contains(t, recA.Messages("info"), "publish lease acquired")

	_, err = b.Publish(ctx, testPlan("p2", []types.Vertex{1, 0}))
	require.ErrorIs(t, err, types.ErrNotLeaseHolder)

	version, err = a.Publish(ctx, testPlan("p3", []types.Vertex{0, 1}))
	require.NoError(t, err)
	require.Equal(t, int64(2), version)

	t.Run("takeover continues the version", func(t *testing.T) {
		require.NoError(t, a.Release(ctx))

		version, err := b.Publish(ctx, testPlan("p4", []types.Vertex{0, 1}))
		require.NoError(t, err)
		require.Equal(t, int64(3), version)

		_, err = a.Publish(ctx, testPlan("p5", []types.Vertex{0, 1}))
		require.ErrorIs(t, err, types.ErrNotLeaseHolder)

		summary, err := NewKV(placements, "topology", nil, nil).FetchSummary(ctx)
		require.NoError(t, err)
		require.Equal(t, "p4", summary.PlanID)
	})
}
