// Package types provides core type definitions and interfaces for the topoplace library.
//
// This package contains shared types that are used across multiple packages in the
// library. By keeping these types in a separate package, we avoid import cycles
// between the root topoplace package, the graph model and the strategies.
//
// Key types:
//   - Vertex, Edge: Graph primitives
//   - Graph: Read-only weighted graph view consumed by partitioners
//   - AllocationMap, Group, CapacitySchedule: Partitioning input and output
//   - Plan, Report: Computed allocation with completeness and cut statistics
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
