package topoplace

import "github.com/arloliu/topoplace/types"

// Re-export types from the types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing strategy and
// source packages to depend on `types` without depending on the root
// `topoplace` package, while still providing `topoplace.Plan`,
// `topoplace.Logger`, etc. for users.
type (
	Vertex           = types.Vertex
	Edge             = types.Edge
	Group            = types.Group
	AllocationMap    = types.AllocationMap
	CapacitySchedule = types.CapacitySchedule
	Plan             = types.Plan
	Report           = types.Report
)

// Re-export interfaces from the types package for convenience.
type (
	Graph            = types.Graph
	GraphSource      = types.GraphSource
	Partitioner      = types.Partitioner
	PlanPublisher    = types.PlanPublisher
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Analyze checks an allocation map against the graph it was computed for.
func Analyze(g Graph, capacities CapacitySchedule, alloc AllocationMap) Report {
	return types.Analyze(g, capacities, alloc)
}
