package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/topoplace/types"
)

func TestNewNop(t *testing.T) {
	metrics := NewNop()

	require.NotNil(t, metrics)
	require.IsType(t, &NopMetrics{}, metrics)
}

func TestNopMetrics_PartitionMetrics(t *testing.T) {
	metrics := NewNop()

	require.NotPanics(t, func() {
		metrics.RecordPartitionDuration("greedy-edge", 0.25)
		metrics.RecordPartitionDuration("", -1)
		metrics.RecordPartitionAttempt("round-robin", true)
		metrics.RecordPartitionAttempt("round-robin", false)
		metrics.RecordFrontierAdvance(3)
		metrics.RecordUnmergedCrossing()
		metrics.RecordGroupMerge()
	})
}

func TestNopMetrics_PlannerMetrics(t *testing.T) {
	metrics := NewNop()

	require.NotPanics(t, func() {
		metrics.RecordPlanCache(true)
		metrics.RecordPlanCache(false)
		metrics.RecordPlanQuality(4, 12.5, 0)
		metrics.RecordPlanQuality(0, 0, -1)
	})
}

func TestNopMetrics_PublisherMetrics(t *testing.T) {
	metrics := NewNop()

	require.NotPanics(t, func() {
		metrics.RecordPublish(3, 7)
		metrics.RecordKVOperationDuration("put", 0.002)
	})
}

func TestNopMetrics_ImplementsInterface(_ *testing.T) {
	var _ types.MetricsCollector = (*NopMetrics)(nil)
}

func BenchmarkNopMetrics(b *testing.B) {
	metrics := NewNop()

	for b.Loop() {
		metrics.RecordPartitionDuration("greedy-edge", 0.001)
		metrics.RecordFrontierAdvance(1)
	}
}
