package strategy

import (
	"fmt"

	"github.com/arloliu/topoplace/types"
)

// validateInput applies the checks every strategy shares.
func validateInput(g types.Graph, capacities types.CapacitySchedule, logger types.Logger) error {
	if g == nil {
		return fmt.Errorf("%w: nil graph", types.ErrInvalidInput)
	}
	if g.VertexCount() < 0 {
		return fmt.Errorf("%w: negative vertex count %d", types.ErrInvalidInput, g.VertexCount())
	}
	if len(capacities) == 0 {
		return fmt.Errorf("%w: empty capacity schedule", types.ErrInvalidInput)
	}
	for i, c := range capacities {
		if c <= 0 {
			return fmt.Errorf("%w: device %d capacity %d must be positive", types.ErrInvalidInput, i, c)
		}
	}
	if !capacities.NonIncreasing() {
		logger.Warn("capacity schedule is not non-increasing", "capacities", []int(capacities))
	}

	return nil
}

// singleGroup returns one group holding vertices 0..n-1.
func singleGroup(n int) types.AllocationMap {
	g := make(types.Group, n)
	for v := range n {
		g[v] = v
	}

	return types.AllocationMap{g}
}

// singletons returns n groups holding one vertex each, in ascending order.
func singletons(n int) types.AllocationMap {
	m := make(types.AllocationMap, n)
	for v := range n {
		m[v] = types.Group{v}
	}

	return m
}
