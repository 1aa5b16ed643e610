// Package strategy provides the built-in partitioners that map graph
// vertices onto an ordered schedule of device capacities.
//
// The package includes three built-in strategies:
//
//   - GreedyEdge: co-locates endpoints of heavy edges, walking edges in
//     descending weight order (recommended)
//   - ConsistentHash: places each vertex on a device hash ring with capacity spill-over
//   - RoundRobin: deals vertices across devices in id order
//
// # Strategy Selection Guide
//
// GreedyEdge:
//   - Use when edge weights reflect communication cost between vertices
//   - Fills devices strictly in schedule order; later devices stay unused
//     when earlier ones suffice
//   - Vertices with no edges are left unplaced unless WithPlaceIsolated is set
//   - Configuration: merge policy, isolated vertex placement
//
// ConsistentHash:
//   - Use as a topology-oblivious baseline with stable placements
//   - Configuration: virtual nodes, hash seed
//
// RoundRobin:
//   - Use as the simplest capacity-respecting baseline
//
// All strategies validate the schedule the same way: it must be non-empty
// and every capacity positive. A schedule that is not non-increasing is
// accepted with a warning.
//
// Custom strategies can be implemented by satisfying the types.Partitioner interface.
package strategy
