package types

import (
	"errors"
	"strings"
)

// Sentinel errors for the topoplace library.
//
// These errors provide type-safe error checking using errors.Is().
// Components return these sentinels for known error conditions and wrap them
// with context using fmt.Errorf("%s: %w", msg, err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Graph, Partitioner, Planner, Publisher)
//   - Use consistent messages across similar error types

// Graph construction errors - returned while building a weighted graph.
var (
	// ErrInvalidInput is returned for negative vertex/edge counts, self-loops,
	// vertex ids outside [0, vertexCount), or an unusable capacity schedule.
	// Construction aborts and no partially built graph is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedEdgeCount is returned when a graph source supplies fewer or
	// more edge triples than its header declares.
	ErrMalformedEdgeCount = errors.New("malformed edge count")
)

// Partitioner errors - returned by partitioning strategies.
var (
	// ErrEmptyGraph is returned when capacities force multi-device placement
	// but the graph has no edge to drive the greedy choice.
	ErrEmptyGraph = errors.New("graph has no edges to partition")

	// ErrDeviceExhausted is returned when placement needs more devices than
	// the capacity schedule supplies.
	ErrDeviceExhausted = errors.New("capacity schedule exhausted")

	// ErrSeedCapacity is returned when device 0 cannot hold the two endpoints
	// of the seed edge.
	ErrSeedCapacity = errors.New("first device cannot hold the seed edge")
)

// Planner errors - returned by the plan orchestration layer.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGraphSourceRequired is returned when the graph source is nil.
	ErrGraphSourceRequired = errors.New("graph source is required")

	// ErrPartitionerRequired is returned when the partitioner is nil.
	ErrPartitionerRequired = errors.New("partitioner is required")

	// ErrPlanNotFound is returned when a plan id is not in the cache.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrUnknownStrategy is returned when a strategy name cannot be resolved.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Publisher errors - returned by placement publishers.
var (
	// ErrPublishFailed is returned when writing a plan to the KV store fails.
	ErrPublishFailed = errors.New("failed to publish plan")

	// ErrNotLeaseHolder is returned when another planner holds the publish
	// lease. The plan was computed but not published.
	ErrNotLeaseHolder = errors.New("publish lease held by another planner")

	// ErrNoKeysFound is returned when the KV store has no keys (expected condition).
	ErrNoKeysFound = errors.New("no keys found")
)

// IsNoKeysFoundError checks if an error indicates that no keys were found in NATS KV.
//
// NATS reports an empty bucket either directly ("nats: no keys found") or
// wrapped by a caller, so the message is matched as well as the sentinel.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error indicates no keys were found, false otherwise
func IsNoKeysFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoKeysFound) {
		return true
	}

	return strings.Contains(err.Error(), "no keys found")
}
