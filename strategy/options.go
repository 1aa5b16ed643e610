package strategy

import (
	"github.com/arloliu/topoplace/internal/logger"
	"github.com/arloliu/topoplace/internal/metrics"
	"github.com/arloliu/topoplace/types"
)

// Option configures a strategy. Options that do not apply to a strategy are
// ignored by it.
type Option func(*options)

type options struct {
	logger        types.Logger
	metrics       types.MetricsCollector
	mergePolicy   MergePolicy
	placeIsolated bool
	virtualNodes  int
	hashSeed      uint64
}

func defaultOptions() options {
	return options{
		logger:       logger.NewNop(),
		metrics:      metrics.NewNop(),
		mergePolicy:  MergeNever,
		virtualNodes: 150,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithLogger sets the logger used for frontier and validation events.
//
// Parameters:
//   - l: Logger implementation (nil keeps the no-op default)
//
// Returns:
//   - Option: Configuration option
func WithLogger(l types.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
//
// Parameters:
//   - m: Metrics collector (nil keeps the no-op default)
//
// Returns:
//   - Option: Configuration option
func WithMetrics(m types.MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithMergePolicy sets how GreedyEdge treats an edge joining two different
// open groups (default MergeNever).
func WithMergePolicy(p MergePolicy) Option {
	return func(o *options) {
		o.mergePolicy = p
	}
}

// WithPlaceIsolated makes GreedyEdge place vertices that no edge reaches
// after the edge walk, into the earliest open groups with room.
func WithPlaceIsolated() Option {
	return func(o *options) {
		o.placeIsolated = true
	}
}

// WithVirtualNodes sets the number of virtual nodes per device for
// ConsistentHash.
//
// Higher values provide better distribution but increase memory usage.
// Recommended range: 100-300 (default: 150).
func WithVirtualNodes(nodes int) Option {
	return func(o *options) {
		o.virtualNodes = nodes
	}
}

// WithHashSeed sets a custom hash seed for ConsistentHash.
func WithHashSeed(seed uint64) Option {
	return func(o *options) {
		o.hashSeed = seed
	}
}
