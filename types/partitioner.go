package types

// Partitioner assigns the vertices of a graph onto an ordered pool of devices.
//
// Strategies implement different placement algorithms:
//   - GreedyEdge: co-locates endpoints of heavy edges first (affinity-aware)
//   - RoundRobin: sequential packing by vertex id (affinity-unaware baseline)
//   - ConsistentHash: hash-ring placement with capacity spill-over (baseline)
//
// Partitioner implementations should:
//   - Be deterministic (same input → same output)
//   - Treat the graph and schedule as read-only
//   - Return a fresh AllocationMap owned by the caller
//   - Return a sentinel error (wrapped with context) instead of a partial map
type Partitioner interface {
	// Partition computes the allocation map for g against the schedule.
	//
	// Parameters:
	//   - g: Read-only weighted graph
	//   - capacities: Device capacities in fill order
	//
	// Returns:
	//   - AllocationMap: Groups in device order
	//   - error: ErrInvalidInput, ErrEmptyGraph, ErrDeviceExhausted or ErrSeedCapacity
	Partition(g Graph, capacities CapacitySchedule) (AllocationMap, error)

	// Name returns the strategy name used in plans, metrics and logs.
	Name() string
}
