package strategy

import (
	"fmt"
	"time"

	"github.com/arloliu/topoplace/types"
)

// NameRoundRobin is the configuration name of RoundRobin.
const NameRoundRobin = "round-robin"

// RoundRobin deals vertices across devices in id order, ignoring edges.
type RoundRobin struct {
	logger  types.Logger
	metrics types.MetricsCollector
}

var _ types.Partitioner = (*RoundRobin)(nil)

// NewRoundRobin creates a new round-robin strategy.
//
// The strategy distributes vertices evenly across devices, skipping devices
// that are already full. This provides predictable placement but ignores
// communication cost entirely; it serves as a baseline for GreedyEdge.
//
// Parameters:
//   - opts: Optional configuration (WithLogger, WithMetrics)
//
// Returns:
//   - *RoundRobin: Initialized round-robin strategy
func NewRoundRobin(opts ...Option) *RoundRobin {
	o := applyOptions(opts)

	return &RoundRobin{logger: o.logger, metrics: o.metrics}
}

// Name returns "round-robin".
func (rr *RoundRobin) Name() string {
	return NameRoundRobin
}

// Partition deals vertex v to the next device with room after the device
// that received v-1.
//
// The map has one group per device, except that with fewer vertices than
// devices only the first VertexCount() devices are used.
//
// Parameters:
//   - g: Graph to partition (only VertexCount is used)
//   - capacities: Non-empty schedule of positive device capacities
//
// Returns:
//   - types.AllocationMap: Groups in device order
//   - error: types.ErrInvalidInput, or types.ErrDeviceExhausted when the
//     schedule cannot hold every vertex
func (rr *RoundRobin) Partition(g types.Graph, capacities types.CapacitySchedule) (alloc types.AllocationMap, err error) {
	start := time.Now()
	defer func() {
		rr.metrics.RecordPartitionDuration(NameRoundRobin, time.Since(start).Seconds())
		rr.metrics.RecordPartitionAttempt(NameRoundRobin, err == nil)
	}()

	if err := validateInput(g, capacities, rr.logger); err != nil {
		return nil, err
	}

	n := g.VertexCount()
	if total := capacities.Total(); n > total {
		return nil, fmt.Errorf("%w: %d vertices exceed total capacity %d",
			types.ErrDeviceExhausted, n, total)
	}

	devices := min(n, len(capacities))
	alloc = make(types.AllocationMap, devices)
	for d := range alloc {
		alloc[d] = make(types.Group, 0, min(capacities[d], n))
	}

	d := 0
	for v := range n {
		for len(alloc[d]) >= capacities[d] {
			d = (d + 1) % devices
		}
		alloc[d] = append(alloc[d], v)
		d = (d + 1) % devices
	}

	return alloc, nil
}
