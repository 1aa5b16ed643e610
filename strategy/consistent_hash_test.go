package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/topoplace/types"
)

func TestConsistentHash_Partition(t *testing.T) {
	ch := NewConsistentHash(WithVirtualNodes(100))
	require.Equal(t, NameConsistentHash, ch.Name())

	g := mustGraph(t, 40, edge(0, 1, 1))
	caps := types.CapacitySchedule{20, 15, 10}

	alloc, err := ch.Partition(g, caps)
	require.NoError(t, err)
	require.Len(t, alloc, len(caps))

	report := types.Analyze(g, caps, alloc)
	require.True(t, report.Complete(), "report: %+v", report)

	again, err := ch.Partition(g, caps)
	require.NoError(t, err)
	require.Equal(t, alloc, again, "placement must be deterministic")
}

func TestConsistentHash_SpillsWhenTight(t *testing.T) {
	g := mustGraph(t, 12)
	caps := types.CapacitySchedule{4, 4, 4}

	alloc, err := NewConsistentHash(WithVirtualNodes(10)).Partition(g, caps)
	require.NoError(t, err)
	for d, group := range alloc {
		require.Len(t, group, caps[d], "device %d", d)
	}
	require.True(t, types.Analyze(g, caps, alloc).Complete())
}

func TestConsistentHash_SeedChangesPlacement(t *testing.T) {
	g := mustGraph(t, 60)
	caps := types.CapacitySchedule{30, 30, 30}

	a, err := NewConsistentHash().Partition(g, caps)
	require.NoError(t, err)
	b, err := NewConsistentHash(WithHashSeed(99)).Partition(g, caps)
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestConsistentHash_Errors(t *testing.T) {
	ch := NewConsistentHash()

	_, err := ch.Partition(mustGraph(t, 10), types.CapacitySchedule{3, 3})
	require.ErrorIs(t, err, types.ErrDeviceExhausted)

	_, err = ch.Partition(mustGraph(t, 3), types.CapacitySchedule{0})
	require.ErrorIs(t, err, types.ErrInvalidInput)
}
