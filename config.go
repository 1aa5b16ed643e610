package topoplace

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/topoplace/graph"
	"github.com/arloliu/topoplace/strategy"
)

// KVConfig configures the NATS JetStream KV bucket plans are published to.
type KVConfig struct {
	// Bucket is the KV bucket name for placements.
	Bucket string `yaml:"bucket"`

	// KeyPrefix prefixes every key written by the publisher
	// (e.g., "topology" produces "topology.device-0", "topology.summary").
	KeyPrefix string `yaml:"keyPrefix"`

	// TTL is how long placement records remain in KV (0 = no expiration).
	// Records should outlive planner restarts for version continuity.
	TTL time.Duration `yaml:"ttl"`

	// OperationTimeout bounds one publish round trip.
	OperationTimeout time.Duration `yaml:"operationTimeout"`

	// LeaseBucket is the bucket holding the publish lease shared by planners
	// that publish to the same KeyPrefix.
	LeaseBucket string `yaml:"leaseBucket"`

	// LeaseTTL is how long a publish lease survives without renewal.
	// Should be longer than the re-plan interval.
	LeaseTTL time.Duration `yaml:"leaseTtl"`
}

// Config is the configuration for the Planner.
//
// All duration fields accept standard Go duration strings like "30s", "5m", "1h".
type Config struct {
	// Capacities lists device capacities in fill order. Greedy placement
	// expects the schedule to be non-increasing.
	Capacities []int `yaml:"capacities"`

	// Strategy names the partitioner: "greedy-edge", "round-robin" or
	// "consistent-hash".
	Strategy string `yaml:"strategy"`

	// EdgeConvention selects how many triples a text graph carries after its
	// header: "exact" (eCount) or "doubled" (2*eCount).
	EdgeConvention string `yaml:"edgeConvention"`

	// MergePolicy controls how greedy-edge handles an edge whose endpoints sit
	// in two different open groups: "never" or "when-fits".
	MergePolicy string `yaml:"mergePolicy"`

	// PlaceIsolated places vertices no edge reaches after the greedy walk.
	PlaceIsolated bool `yaml:"placeIsolated"`

	// CacheSize is the maximum number of cached plans.
	CacheSize int `yaml:"cacheSize"`

	// LogLevel is the level used by the command-line tool ("debug", "info",
	// "warn", "error").
	LogLevel string `yaml:"logLevel"`

	// KV controls the placement bucket.
	KV KVConfig `yaml:"kv"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// The capacity schedule has no default; callers must supply one.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		Strategy:       strategy.NameGreedyEdge,
		EdgeConvention: graph.ConventionExact.String(),
		MergePolicy:    strategy.MergeNever.String(),
		CacheSize:      256,
		LogLevel:       "info",
		KV: KVConfig{
			Bucket:           "topoplace-placement",
			KeyPrefix:        "topology",
			TTL:              0, // No TTL - records persist for version continuity
			OperationTimeout: 10 * time.Second,
			LeaseBucket:      "topoplace-lease",
			LeaseTTL:         30 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values with defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.EdgeConvention == "" {
		cfg.EdgeConvention = defaults.EdgeConvention
	}
	if cfg.MergePolicy == "" {
		cfg.MergePolicy = defaults.MergePolicy
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = defaults.CacheSize
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.KV.Bucket == "" {
		cfg.KV.Bucket = defaults.KV.Bucket
	}
	if cfg.KV.KeyPrefix == "" {
		cfg.KV.KeyPrefix = defaults.KV.KeyPrefix
	}
	if cfg.KV.OperationTimeout == 0 {
		cfg.KV.OperationTimeout = defaults.KV.OperationTimeout
	}
	if cfg.KV.LeaseBucket == "" {
		cfg.KV.LeaseBucket = defaults.KV.LeaseBucket
	}
	if cfg.KV.LeaseTTL == 0 {
		cfg.KV.LeaseTTL = defaults.KV.LeaseTTL
	}
	// Note: TTL of 0 is valid (no expiration), so we don't apply default
}

// Validate checks configuration constraints.
//
// Hard Validation Rules:
//   - At least one capacity, every capacity > 0
//   - Strategy, EdgeConvention and MergePolicy name known values
//   - CacheSize > 0
//   - KV.Bucket and KV.KeyPrefix are set, KV.TTL >= 0
//   - KV.LeaseBucket is set and differs from KV.Bucket, KV.LeaseTTL > 0
//
// Returns:
//   - error: ErrInvalidConfig wrapping every violation, nil if valid
func (cfg *Config) Validate() error {
	var errs []error

	if len(cfg.Capacities) == 0 {
		errs = append(errs, errors.New("capacities must list at least one device"))
	}
	for i, c := range cfg.Capacities {
		if c <= 0 {
			errs = append(errs, fmt.Errorf("capacities[%d] must be > 0, got %d", i, c))
		}
	}

	if !strategy.Known(cfg.Strategy) {
		errs = append(errs, fmt.Errorf("strategy %q is not one of %v", cfg.Strategy, strategy.Names()))
	}
	if _, err := graph.ParseConvention(cfg.EdgeConvention); err != nil {
		errs = append(errs, err)
	}
	if _, err := strategy.ParseMergePolicy(cfg.MergePolicy); err != nil {
		errs = append(errs, err)
	}

	if cfg.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("cacheSize must be > 0, got %d", cfg.CacheSize))
	}
	if cfg.KV.Bucket == "" {
		errs = append(errs, errors.New("kv.bucket is required"))
	}
	if cfg.KV.KeyPrefix == "" {
		errs = append(errs, errors.New("kv.keyPrefix is required"))
	}
	if cfg.KV.TTL < 0 {
		errs = append(errs, fmt.Errorf("kv.ttl must be >= 0, got %v", cfg.KV.TTL))
	}
	if cfg.KV.LeaseBucket == "" || cfg.KV.LeaseBucket == cfg.KV.Bucket {
		errs = append(errs, errors.New("kv.leaseBucket must be set and differ from kv.bucket"))
	}
	if cfg.KV.LeaseTTL <= 0 {
		errs = append(errs, fmt.Errorf("kv.leaseTtl must be > 0, got %v", cfg.KV.LeaseTTL))
	}
	if cfg.KV.OperationTimeout <= 0 {
		errs = append(errs, fmt.Errorf("kv.operationTimeout must be > 0, got %v", cfg.KV.OperationTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// ValidateWithWarnings logs warnings for values that are valid but unlikely
// to do what the operator expects.
//
// This is called after Validate() in NewPlanner() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if !CapacitySchedule(cfg.Capacities).NonIncreasing() {
		logger.Warn(
			"capacity schedule is not non-increasing, greedy placement may open devices early",
			"capacities", cfg.Capacities,
		)
	}

	if cfg.Strategy != strategy.NameGreedyEdge {
		if policy, _ := strategy.ParseMergePolicy(cfg.MergePolicy); policy != strategy.MergeNever {
			logger.Warn("mergePolicy only affects greedy-edge", "strategy", cfg.Strategy, "mergePolicy", cfg.MergePolicy)
		}
		if cfg.PlaceIsolated {
			logger.Warn("placeIsolated only affects greedy-edge", "strategy", cfg.Strategy)
		}
	}
}

// Convention returns the parsed edge convention.
//
// Unknown names fall back to the exact convention; Validate reports them.
func (cfg *Config) Convention() graph.Convention {
	c, err := graph.ParseConvention(cfg.EdgeConvention)
	if err != nil {
		return graph.ConventionExact
	}

	return c
}

// StrategyOptions builds the partitioner options described by the config.
//
// Parameters:
//   - logger: Logger handed to the strategy
//   - metrics: Metrics collector handed to the strategy
//
// Returns:
//   - []strategy.Option: Options for strategy.New
func (cfg *Config) StrategyOptions(logger Logger, metrics MetricsCollector) []strategy.Option {
	opts := []strategy.Option{
		strategy.WithLogger(logger),
		strategy.WithMetrics(metrics),
	}

	if policy, err := strategy.ParseMergePolicy(cfg.MergePolicy); err == nil {
		opts = append(opts, strategy.WithMergePolicy(policy))
	}
	if cfg.PlaceIsolated {
		opts = append(opts, strategy.WithPlaceIsolated())
	}

	return opts
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - *Config: Loaded configuration
//   - error: I/O, decode or validation error
//
// Example:
//
//	cfg, err := topoplace.LoadConfig("topoplace.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalidConfig, path, err)
	}

	SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// TestConfig returns a small configuration for tests.
//
// Returns:
//   - Config: Two devices of capacity 2 with defaults applied
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.Capacities = []int{2, 2}
	cfg.CacheSize = 8

	return cfg
}
