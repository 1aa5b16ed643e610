// Package topoplace places the vertices of a weighted communication graph
// onto an ordered pool of capacity-limited devices.
//
// The default strategy walks edges from heaviest to lightest and keeps both
// endpoints of each edge on the same device whenever capacity allows, so that
// heavily communicating vertices end up co-located. Devices are filled in
// schedule order; once a device is full it is closed for good.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import (
//	    "github.com/arloliu/topoplace"
//	    "github.com/arloliu/topoplace/source"
//	)
//
//	cfg := topoplace.DefaultConfig()
//	cfg.Capacities = []int{4, 4, 2}
//
//	planner, err := topoplace.NewPlanner(&cfg, source.NewFile("graph.txt"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer planner.Close()
//
//	plan, err := planner.Plan(ctx)
//
// # Key Features
//
//   - Greedy edge placement: heavy edges first, device frontier advances as devices fill
//   - Plan reports: unplaced vertices, cross-device edges and cut weight for every plan
//   - Baseline strategies: round-robin dealing and consistent hashing for comparison
//   - Plan cache: unchanged graphs are not partitioned twice
//   - Placement publishing: versioned per-device records in a NATS JetStream KV bucket
//
// # Architecture
//
// A Planner loads a graph from a GraphSource, partitions it with a
// Partitioner, analyzes the result and optionally publishes it:
//
//	GraphSource → Partitioner → Analyze → cache → PlanPublisher
//
// # Advanced Usage
//
// Custom strategy with options:
//
//	import (
//	    "github.com/arloliu/topoplace"
//	    "github.com/arloliu/topoplace/strategy"
//	)
//
//	greedy := strategy.NewGreedyEdge(
//	    strategy.WithMergePolicy(strategy.MergeWhenFits),
//	    strategy.WithPlaceIsolated(),
//	)
//
//	planner, err := topoplace.NewPlanner(&cfg, src,
//	    topoplace.WithPartitioner(greedy),
//	    topoplace.WithPublisher(publisher.NewKV(kv, "topology", logger, nil)),
//	)
//
// See the examples/ directory for complete working examples.
package topoplace
