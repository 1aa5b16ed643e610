package strategy

import (
	"fmt"
	"time"

	"github.com/arloliu/topoplace/internal/hash"
	"github.com/arloliu/topoplace/types"
)

// NameConsistentHash is the configuration name of ConsistentHash.
const NameConsistentHash = "consistent-hash"

// ConsistentHash places vertices on a device hash ring with virtual nodes.
type ConsistentHash struct {
	logger       types.Logger
	metrics      types.MetricsCollector
	virtualNodes int
	hashSeed     uint64
}

var _ types.Partitioner = (*ConsistentHash)(nil)

// NewConsistentHash creates a new consistent hash strategy.
//
// Each vertex hashes to a position on a ring holding virtual nodes for every
// device in the schedule. A vertex whose device is full spills over to the
// next device clockwise with room. Placements stay stable when devices are
// appended to the schedule.
//
// Parameters:
//   - opts: Optional configuration (WithVirtualNodes, WithHashSeed, WithLogger, WithMetrics)
//
// Returns:
//   - *ConsistentHash: Initialized consistent hash strategy
//
// Example:
//
//	p := strategy.NewConsistentHash(strategy.WithVirtualNodes(300))
func NewConsistentHash(opts ...Option) *ConsistentHash {
	o := applyOptions(opts)

	return &ConsistentHash{
		logger:       o.logger,
		metrics:      o.metrics,
		virtualNodes: o.virtualNodes,
		hashSeed:     o.hashSeed,
	}
}

// Name returns "consistent-hash".
func (ch *ConsistentHash) Name() string {
	return NameConsistentHash
}

// Partition assigns every vertex to a device using the hash ring.
//
// The map has exactly one group per device; a device the ring never picked
// has an empty group.
//
// Parameters:
//   - g: Graph to partition (only VertexCount is used)
//   - capacities: Non-empty schedule of positive device capacities
//
// Returns:
//   - types.AllocationMap: Groups in device order
//   - error: types.ErrInvalidInput, or types.ErrDeviceExhausted when the
//     schedule cannot hold every vertex
func (ch *ConsistentHash) Partition(g types.Graph, capacities types.CapacitySchedule) (alloc types.AllocationMap, err error) {
	start := time.Now()
	defer func() {
		ch.metrics.RecordPartitionDuration(NameConsistentHash, time.Since(start).Seconds())
		ch.metrics.RecordPartitionAttempt(NameConsistentHash, err == nil)
	}()

	if err := validateInput(g, capacities, ch.logger); err != nil {
		return nil, err
	}

	n := g.VertexCount()
	if total := capacities.Total(); n > total {
		return nil, fmt.Errorf("%w: %d vertices exceed total capacity %d",
			types.ErrDeviceExhausted, n, total)
	}

	ring := hash.NewRing(len(capacities), ch.virtualNodes, ch.hashSeed)

	alloc = make(types.AllocationMap, len(capacities))
	for d := range alloc {
		alloc[d] = types.Group{}
	}

	spilled := 0
	for v := range n {
		placed := false
		for d := range ring.Successors(v) {
			if len(alloc[d]) < capacities[d] {
				alloc[d] = append(alloc[d], v)
				placed = true

				break
			}
			spilled++
		}
		if !placed {
			// unreachable while total capacity covers n
			return nil, fmt.Errorf("%w: no device has room for vertex %d", types.ErrDeviceExhausted, v)
		}
	}

	if spilled > 0 {
		ch.logger.Debug("vertices spilled past full devices", "hops", spilled)
	}

	return alloc, nil
}
