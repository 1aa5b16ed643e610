package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/topoplace/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// a PrometheusCollector that is never exercised registers nothing.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Partition metrics
	partitionDuration *prometheus.HistogramVec
	partitionAttempts *prometheus.CounterVec
	frontierAdvances  *prometheus.CounterVec
	unmergedCrossings prometheus.Counter
	groupMerges       prometheus.Counter

	// Planner metrics
	planCache     *prometheus.CounterVec
	planGroups    prometheus.Gauge
	planCutWeight prometheus.Gauge
	planUnplaced  prometheus.Gauge

	// Publisher metrics
	publishedDevices prometheus.Gauge
	publishedVersion prometheus.Gauge
	kvOpDuration     *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "topoplace" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "topoplace"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.partitionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "duration_seconds",
			Help:      "Duration of Partition calls in seconds by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100us .. ~26s
		}, []string{"strategy"})

		p.partitionAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "attempts_total",
			Help:      "Total Partition calls by strategy and result (success,failure).",
		}, []string{"strategy", "result"})

		p.frontierAdvances = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "frontier_advances_total",
			Help:      "Total devices closed by the greedy frontier, by device index.",
		}, []string{"device"})

		p.unmergedCrossings = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "unmerged_crossings_total",
			Help:      "Edges left crossing two open groups.",
		})

		p.groupMerges = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "group_merges_total",
			Help:      "Open groups merged into an earlier open group.",
		})

		p.planCache = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "cache_lookups_total",
			Help:      "Plan cache lookups by result (hit,miss).",
		}, []string{"result"})

		p.planGroups = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "groups",
			Help:      "Number of device groups in the latest computed plan.",
		})

		p.planCutWeight = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "cut_weight",
			Help:      "Total weight of cross-device edges in the latest computed plan.",
		})

		p.planUnplaced = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "planner",
			Name:      "unplaced_vertices",
			Help:      "Vertices missing from the latest computed plan.",
		})

		p.publishedDevices = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "publisher",
			Name:      "devices",
			Help:      "Device records written by the latest publish.",
		})

		p.publishedVersion = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "publisher",
			Name:      "version",
			Help:      "Latest published plan version.",
		})

		p.kvOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "publisher",
			Name:      "kv_operation_seconds",
			Help:      "Latency of KV operations in seconds by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		}, []string{"op"})

		p.reg.MustRegister(p.partitionDuration)
		p.reg.MustRegister(p.partitionAttempts)
		p.reg.MustRegister(p.frontierAdvances)
		p.reg.MustRegister(p.unmergedCrossings)
		p.reg.MustRegister(p.groupMerges)
		p.reg.MustRegister(p.planCache)
		p.reg.MustRegister(p.planGroups)
		p.reg.MustRegister(p.planCutWeight)
		p.reg.MustRegister(p.planUnplaced)
		p.reg.MustRegister(p.publishedDevices)
		p.reg.MustRegister(p.publishedVersion)
		p.reg.MustRegister(p.kvOpDuration)
	})
}

// PartitionMetrics implementation

// RecordPartitionDuration observes the duration of a Partition call.
func (p *PrometheusCollector) RecordPartitionDuration(strategy string, duration float64) {
	p.ensureRegistered()
	p.partitionDuration.WithLabelValues(strategy).Observe(duration)
}

// RecordPartitionAttempt counts a Partition call outcome.
func (p *PrometheusCollector) RecordPartitionAttempt(strategy string, success bool) {
	p.ensureRegistered()
	p.partitionAttempts.WithLabelValues(strategy, resultLabel(success)).Inc()
}

// RecordFrontierAdvance counts a device closed by the frontier.
func (p *PrometheusCollector) RecordFrontierAdvance(device int) {
	p.ensureRegistered()
	p.frontierAdvances.WithLabelValues(strconv.Itoa(device)).Inc()
}

// RecordUnmergedCrossing increments the unmerged crossing counter.
func (p *PrometheusCollector) RecordUnmergedCrossing() {
	p.ensureRegistered()
	p.unmergedCrossings.Inc()
}

// RecordGroupMerge increments the group merge counter.
func (p *PrometheusCollector) RecordGroupMerge() {
	p.ensureRegistered()
	p.groupMerges.Inc()
}

// PlannerMetrics implementation

// RecordPlanCache counts a plan cache lookup.
func (p *PrometheusCollector) RecordPlanCache(hit bool) {
	p.ensureRegistered()
	if hit {
		p.planCache.WithLabelValues("hit").Inc()
	} else {
		p.planCache.WithLabelValues("miss").Inc()
	}
}

// RecordPlanQuality sets the plan quality gauges.
func (p *PrometheusCollector) RecordPlanQuality(groups int, cutWeight float64, unplaced int) {
	p.ensureRegistered()
	p.planGroups.Set(float64(groups))
	p.planCutWeight.Set(cutWeight)
	p.planUnplaced.Set(float64(unplaced))
}

// PublisherMetrics implementation

// RecordPublish sets the published device count and version gauges.
func (p *PrometheusCollector) RecordPublish(devices int, version int64) {
	p.ensureRegistered()
	p.publishedDevices.Set(float64(devices))
	p.publishedVersion.Set(float64(version))
}

// RecordKVOperationDuration observes KV operation latency.
func (p *PrometheusCollector) RecordKVOperationDuration(operation string, duration float64) {
	p.ensureRegistered()
	p.kvOpDuration.WithLabelValues(operation).Observe(duration)
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}

	return "failure"
}
