package topoplace

// Option configures a Planner with optional dependencies.
type Option func(*plannerOptions)

// plannerOptions holds optional Planner configuration.
type plannerOptions struct {
	partitioner    Partitioner
	partitionerSet bool
	hooks       *Hooks
	metrics     MetricsCollector
	logger      Logger
	publisher   PlanPublisher
}

// WithPartitioner sets the partitioner, overriding Config.Strategy.
// A nil partitioner makes NewPlanner fail with ErrPartitionerRequired.
//
// Parameters:
//   - p: Partitioner implementation
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	p := strategy.NewGreedyEdge(strategy.WithMergePolicy(strategy.MergeWhenFits))
//	planner, err := topoplace.NewPlanner(&cfg, src, topoplace.WithPartitioner(p))
func WithPartitioner(p Partitioner) Option {
	return func(o *plannerOptions) {
		o.partitioner = p
		o.partitionerSet = true
	}
}

// WithHooks sets plan event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	hooks := &topoplace.Hooks{
//	    OnPlanComputed: func(ctx context.Context, plan *topoplace.Plan) error {
//	        log.Printf("plan %s uses %d devices", plan.ID, len(plan.Allocation))
//	        return nil
//	    },
//	}
//	planner, err := topoplace.NewPlanner(&cfg, src, topoplace.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *plannerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// The collector is shared with the partitioner built from Config.Strategy.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewPlanner
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *plannerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewPlanner
func WithLogger(logger Logger) Option {
	return func(o *plannerOptions) {
		o.logger = logger
	}
}

// WithPublisher publishes every newly computed plan.
//
// Parameters:
//   - p: PlanPublisher implementation (e.g., publisher.KV)
//
// Returns:
//   - Option: Functional option for NewPlanner
//
// Example:
//
//	pub := publisher.NewKV(kv, cfg.KV.KeyPrefix, logger, nil)
//	planner, err := topoplace.NewPlanner(&cfg, src, topoplace.WithPublisher(pub))
func WithPublisher(p PlanPublisher) Option {
	return func(o *plannerOptions) {
		o.publisher = p
	}
}
