package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocationMapClone(t *testing.T) {
	orig := AllocationMap{{0, 1}, {2}}
	clone := orig.Clone()

	require.Equal(t, orig, clone)

	clone[0][0] = 9
	clone[1] = append(clone[1], 3)
	require.Equal(t, AllocationMap{{0, 1}, {2}}, orig, "clone must not share backing arrays")

	require.Nil(t, AllocationMap(nil).Clone())
}

func TestAllocationMapLookups(t *testing.T) {
	m := AllocationMap{{0, 1}, {2, 3}, {4}}

	require.Equal(t, 5, m.VertexCount())
	require.Equal(t, 0, m.DeviceOf(1))
	require.Equal(t, 1, m.DeviceOf(3))
	require.Equal(t, 2, m.DeviceOf(4))
	require.Equal(t, -1, m.DeviceOf(5))
	require.True(t, m[1].Contains(2))
	require.False(t, m[1].Contains(4))
}

func TestCapacitySchedule(t *testing.T) {
	t.Run("total and bounds", func(t *testing.T) {
		caps := CapacitySchedule{4, 3, 3}

		require.Equal(t, 10, caps.Total())

		c, ok := caps.At(1)
		require.True(t, ok)
		require.Equal(t, 3, c)

		_, ok = caps.At(3)
		require.False(t, ok)
		_, ok = caps.At(-1)
		require.False(t, ok)
	})

	t.Run("total saturates", func(t *testing.T) {
		require.Equal(t, math.MaxInt, CapacitySchedule{math.MaxInt, 1}.Total())
		require.Equal(t, math.MaxInt, CapacitySchedule{1 << 62, 1 << 62}.Total())
	})

	t.Run("non-increasing order", func(t *testing.T) {
		require.True(t, CapacitySchedule{4, 4, 2, 1}.NonIncreasing())
		require.True(t, CapacitySchedule{}.NonIncreasing())
		require.False(t, CapacitySchedule{2, 3}.NonIncreasing())
	})
}

func TestPlanClone(t *testing.T) {
	orig := &Plan{
		ID:         "abc",
		Capacities: CapacitySchedule{2, 2},
		Allocation: AllocationMap{{0, 1}, {2}},
		Report:     Report{Groups: 2, Unplaced: []Vertex{3}, Crossings: []Edge{{V: 1, W: 2, Weight: 1}}},
	}

	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone.Capacities[0] = 9
	clone.Allocation[0][0] = 9
	clone.Report.Unplaced[0] = 9
	clone.Report.Crossings[0].Weight = 9

	require.Equal(t, CapacitySchedule{2, 2}, orig.Capacities)
	require.Equal(t, Vertex(0), orig.Allocation[0][0])
	require.Equal(t, []Vertex{3}, orig.Report.Unplaced)
	require.InDelta(t, 1.0, orig.Report.Crossings[0].Weight, 1e-9)

	require.Nil(t, (*Plan)(nil).Clone())
}
