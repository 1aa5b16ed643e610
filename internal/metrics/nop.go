package metrics

import "github.com/arloliu/topoplace/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	metrics := metrics.NewNop()
//	planner, err := topoplace.NewPlanner(&cfg, src, topoplace.WithMetrics(metrics))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// PartitionMetrics implementation

// RecordPartitionDuration is a no-op.
func (n *NopMetrics) RecordPartitionDuration(_ /* strategy */ string, _ /* duration */ float64) {}

// RecordPartitionAttempt is a no-op.
func (n *NopMetrics) RecordPartitionAttempt(_ /* strategy */ string, _ /* success */ bool) {}

// RecordFrontierAdvance is a no-op.
func (n *NopMetrics) RecordFrontierAdvance(_ /* device */ int) {}

// RecordUnmergedCrossing is a no-op.
func (n *NopMetrics) RecordUnmergedCrossing() {}

// RecordGroupMerge is a no-op.
func (n *NopMetrics) RecordGroupMerge() {}

// PlannerMetrics implementation

// RecordPlanCache is a no-op.
func (n *NopMetrics) RecordPlanCache(_ /* hit */ bool) {}

// RecordPlanQuality is a no-op.
func (n *NopMetrics) RecordPlanQuality(_ /* groups */ int, _ /* cutWeight */ float64, _ /* unplaced */ int) {
}

// PublisherMetrics implementation

// RecordPublish is a no-op.
func (n *NopMetrics) RecordPublish(_ /* devices */ int, _ /* version */ int64) {}

// RecordKVOperationDuration is a no-op.
func (n *NopMetrics) RecordKVOperationDuration(_ /* operation */ string, _ /* duration */ float64) {}
