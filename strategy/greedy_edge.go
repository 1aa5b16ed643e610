package strategy

import (
	"fmt"
	"time"

	"github.com/arloliu/topoplace/types"
)

// NameGreedyEdge is the configuration name of GreedyEdge.
const NameGreedyEdge = "greedy-edge"

// GreedyEdge co-locates the endpoints of heavy edges on the same device.
//
// Devices are filled strictly in schedule order. Edges are visited from the
// heaviest down; each edge either finds both endpoints already placed, adds
// its missing endpoint next to its partner, or opens a new group for the
// pair. The result is a bounded-effort heuristic, not an optimal cut.
type GreedyEdge struct {
	logger        types.Logger
	metrics       types.MetricsCollector
	mergePolicy   MergePolicy
	placeIsolated bool
}

var _ types.Partitioner = (*GreedyEdge)(nil)

// NewGreedyEdge creates a new greedy edge partitioner.
//
// Parameters:
//   - opts: Optional configuration (WithLogger, WithMetrics, WithMergePolicy, WithPlaceIsolated)
//
// Returns:
//   - *GreedyEdge: Initialized partitioner, safe for concurrent use
//
// Example:
//
//	p := strategy.NewGreedyEdge(strategy.WithMergePolicy(strategy.MergeWhenFits))
//	alloc, err := p.Partition(g, types.CapacitySchedule{4, 4, 2})
func NewGreedyEdge(opts ...Option) *GreedyEdge {
	o := applyOptions(opts)

	return &GreedyEdge{
		logger:        o.logger,
		metrics:       o.metrics,
		mergePolicy:   o.mergePolicy,
		placeIsolated: o.placeIsolated,
	}
}

// Name returns "greedy-edge".
func (p *GreedyEdge) Name() string {
	return NameGreedyEdge
}

// Partition assigns the vertices of g to devices.
//
// Trivial cases are checked first, in order:
//  1. VertexCount() <= capacities[0]: one group holding every vertex
//  2. capacities[0] == 1: one singleton group per vertex
//  3. no edges: types.ErrEmptyGraph
//
// Otherwise the heaviest edge seeds group 0 and the remaining edges are
// walked in descending weight order. Group i is bound to device i and
// device i closes once its group reaches capacities[i]; closed groups never
// receive new vertices.
//
// Parameters:
//   - g: Graph to partition
//   - capacities: Non-empty schedule of positive device capacities
//
// Returns:
//   - types.AllocationMap: Groups in device order
//   - error: types.ErrInvalidInput, types.ErrEmptyGraph, types.ErrDeviceExhausted
//     or types.ErrSeedCapacity; no partial map is returned
func (p *GreedyEdge) Partition(g types.Graph, capacities types.CapacitySchedule) (alloc types.AllocationMap, err error) {
	start := time.Now()
	defer func() {
		p.metrics.RecordPartitionDuration(NameGreedyEdge, time.Since(start).Seconds())
		p.metrics.RecordPartitionAttempt(NameGreedyEdge, err == nil)
	}()

	if err := validateInput(g, capacities, p.logger); err != nil {
		return nil, err
	}

	n := g.VertexCount()
	if n <= capacities[0] {
		return singleGroup(n), nil
	}
	if capacities[0] == 1 {
		return singletons(n), nil
	}

	head, ok := g.HeadEdge()
	if !ok {
		return nil, fmt.Errorf("%w: %d vertices exceed device 0 capacity %d",
			types.ErrEmptyGraph, n, capacities[0])
	}

	f := newFrontier(n, capacities, func(device int) {
		p.logger.Debug("device closed", "device", device, "capacity", capacities[device])
		p.metrics.RecordFrontierAdvance(device)
	})

	if err := p.walk(f, head, g.SortedEdges()); err != nil {
		return nil, err
	}

	if p.placeIsolated {
		if err := f.placeRemaining(); err != nil {
			return nil, err
		}
	}

	return f.allocation(), nil
}

// walk seeds the frontier with head and places every following edge.
func (p *GreedyEdge) walk(f *frontier, head types.Edge, edges []types.Edge) error {
	if err := f.checkVertex(head.V); err != nil {
		return err
	}
	if err := f.checkVertex(head.W); err != nil {
		return err
	}

	p.logger.Debug("seed edge", "edge", head.String())
	if err := f.seed(head); err != nil {
		return err
	}

	for i, e := range edges {
		if i == 0 && e.Same(head) {
			continue
		}
		if err := p.place(f, e); err != nil {
			return fmt.Errorf("edge %s: %w", e, err)
		}
	}

	return nil
}

func (p *GreedyEdge) place(f *frontier, e types.Edge) error {
	if err := f.checkVertex(e.V); err != nil {
		return err
	}
	if err := f.checkVertex(e.W); err != nil {
		return err
	}
	if e.IsSelfLoop() {
		return fmt.Errorf("%w: self-loop on vertex %d", types.ErrInvalidInput, e.V)
	}

	vClosed, wClosed := f.closed(e.V), f.closed(e.W)
	switch {
	case vClosed && wClosed:
		return nil
	case vClosed:
		return f.placeOne(e.W)
	case wClosed:
		return f.placeOne(e.V)
	}

	gv, gw := f.openGroupOf(e.V), f.openGroupOf(e.W)
	switch {
	case gv < 0 && gw < 0:
		return f.placePair(e.V, e.W)
	case gv < 0:
		return f.join(gw, e.V)
	case gw < 0:
		return f.join(gv, e.W)
	case gv == gw:
		return nil
	}

	if p.mergePolicy == MergeWhenFits && f.merge(gv, gw) {
		p.logger.Debug("groups merged", "edge", e.String(), "into", min(gv, gw))
		p.metrics.RecordGroupMerge()

		return nil
	}

	p.logger.Debug("unmerged crossing", "edge", e.String(), "groups", []int{gv, gw})
	p.metrics.RecordUnmergedCrossing()

	return nil
}
