package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Planners may be called from many goroutines, so all methods must be
// thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	PartitionMetrics
	PlannerMetrics
	PublisherMetrics
}

// PartitionMetrics defines metrics for partitioning strategies.
type PartitionMetrics interface {
	// RecordPartitionDuration records the time taken by one Partition call.
	//
	// Parameters:
	//   - strategy: Strategy name ("greedy-edge", "round-robin", "consistent-hash")
	//   - duration: Time taken in seconds
	RecordPartitionDuration(strategy string, duration float64)

	// RecordPartitionAttempt records a partition attempt (success or failure).
	//
	// Parameters:
	//   - strategy: Strategy name
	//   - success: true if the call returned an allocation map
	RecordPartitionAttempt(strategy string, success bool)

	// RecordFrontierAdvance records a device being closed by the greedy frontier.
	//
	// Parameters:
	//   - device: Index of the device that was closed
	RecordFrontierAdvance(device int)

	// RecordUnmergedCrossing records an edge left crossing two open groups.
	RecordUnmergedCrossing()

	// RecordGroupMerge records two open groups merged into one.
	RecordGroupMerge()
}

// PlannerMetrics defines metrics for plan computation.
type PlannerMetrics interface {
	// RecordPlanCache records a plan cache lookup.
	//
	// Parameters:
	//   - hit: true when a cached plan was returned
	RecordPlanCache(hit bool)

	// RecordPlanQuality records the quality of a computed plan (gauge metrics).
	//
	// Parameters:
	//   - groups: Number of device groups used
	//   - cutWeight: Total weight of cross-device edges
	//   - unplaced: Number of vertices missing from the allocation
	RecordPlanQuality(groups int, cutWeight float64, unplaced int)
}

// PublisherMetrics defines metrics for publishing plans to the placement layer.
type PublisherMetrics interface {
	// RecordPublish records a published plan version.
	//
	// Parameters:
	//   - devices: Number of device records written
	//   - version: Published version
	RecordPublish(devices int, version int64)

	// RecordKVOperationDuration records NATS KV operation latency.
	//
	// Parameters:
	//   - operation: Operation type ("get", "put", "delete", "keys")
	//   - duration: Time taken in seconds
	RecordKVOperationDuration(operation string, duration float64)
}
