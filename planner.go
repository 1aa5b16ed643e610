package topoplace

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/singleflight"

	"github.com/arloliu/topoplace/graph"
	"github.com/arloliu/topoplace/internal/hooks"
	"github.com/arloliu/topoplace/internal/logger"
	"github.com/arloliu/topoplace/internal/metrics"
	"github.com/arloliu/topoplace/strategy"
)

// Planner computes, caches and publishes device placements for a graph source.
//
// Plan is safe for concurrent use. Plans are cached by a fingerprint of the
// graph and the capacity schedule, so repeated calls on an unchanged source
// return the cached plan without partitioning again.
type Planner struct {
	cfg         Config
	source      GraphSource
	partitioner Partitioner
	publisher   PlanPublisher

	hooks   Hooks
	metrics MetricsCollector
	logger  Logger

	cache  *xsync.Map[string, *Plan]
	flight singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	hookMu sync.Mutex // guards wg.Add against Close
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewPlanner creates a new Planner.
//
// The partitioner is built from cfg.Strategy unless WithPartitioner is given.
//
// Parameters:
//   - cfg: Configuration (defaults applied to a copy)
//   - src: Graph source loaded on every Plan call
//   - opts: Optional dependencies (partitioner, hooks, metrics, logger, publisher)
//
// Returns:
//   - *Planner: Initialized planner
//   - error: ErrInvalidConfig, ErrGraphSourceRequired or ErrPartitionerRequired
//
// Example:
//
//	cfg := topoplace.DefaultConfig()
//	cfg.Capacities = []int{4, 4, 2}
//	planner, err := topoplace.NewPlanner(&cfg, source.NewFile("graph.txt"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer planner.Close()
//	plan, err := planner.Plan(ctx)
func NewPlanner(cfg *Config, src GraphSource, opts ...Option) (*Planner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}
	if src == nil {
		return nil, ErrGraphSourceRequired
	}

	c := *cfg
	c.Capacities = append([]int(nil), cfg.Capacities...)
	SetDefaults(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	options := &plannerOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.partitionerSet && options.partitioner == nil {
		return nil, ErrPartitionerRequired
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	c.ValidateWithWarnings(loggerInstance)

	partitioner := options.partitioner
	if partitioner == nil {
		p, err := strategy.New(c.Strategy, c.StrategyOptions(loggerInstance, metricsCollector)...)
		if err != nil {
			return nil, err
		}
		partitioner = p
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Planner{
		cfg:         c,
		source:      src,
		partitioner: partitioner,
		publisher:   options.publisher,
		hooks:       hooks.Fill(options.hooks),
		metrics:     metricsCollector,
		logger:      loggerInstance,
		cache:       xsync.NewMap[string, *Plan](),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// Plan loads the graph and returns its placement plan.
//
// A cached plan is returned when the graph and schedule are unchanged.
// Otherwise the graph is partitioned, analyzed, handed to OnPlanComputed and
// published when a publisher is configured. The plan is cached only after
// the publish succeeds, so a failed publish is retried by the next call.
// Concurrent calls for the same graph share one computation and its result,
// running under the context of the call that started it.
//
// Parameters:
//   - ctx: Context for graph loading and publishing
//
// Returns:
//   - *Plan: Copy of the plan, owned by the caller
//   - error: Source, partitioner or publisher error
func (p *Planner) Plan(ctx context.Context) (*Plan, error) {
	if p.closed.Load() {
		return nil, ErrPlannerClosed
	}

	g, err := p.source.LoadGraph(ctx)
	if err != nil {
		return nil, p.fail(fmt.Errorf("failed to load graph: %w", err))
	}

	caps := CapacitySchedule(p.cfg.Capacities)
	id := strconv.FormatUint(graph.Fingerprint(g, caps), 16)

	if cached, ok := p.cache.Load(id); ok {
		p.metrics.RecordPlanCache(true)
		p.logger.Debug("plan cache hit", "plan", id)

		return cached.Clone(), nil
	}
	p.metrics.RecordPlanCache(false)

	v, err, shared := p.flight.Do(id, func() (any, error) {
		// An earlier flight for this id may have finished since the lookup.
		if cached, ok := p.cache.Load(id); ok {
			return cached, nil
		}

		return p.compute(ctx, id, g, caps)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.logger.Debug("plan shared with a concurrent call", "plan", id)
	}

	return v.(*Plan).Clone(), nil
}

// compute partitions g, publishes the plan and caches it.
func (p *Planner) compute(ctx context.Context, id string, g Graph, caps CapacitySchedule) (*Plan, error) {
	alloc, err := p.partitioner.Partition(g, caps)
	if err != nil {
		return nil, p.fail(fmt.Errorf("partition with %s: %w", p.partitioner.Name(), err))
	}

	plan := &Plan{
		ID:         id,
		Strategy:   p.partitioner.Name(),
		Capacities: slices.Clone(caps),
		Allocation: alloc,
		Report:     Analyze(g, caps, alloc),
		CreatedAt:  time.Now(),
	}

	p.metrics.RecordPlanQuality(plan.Report.Groups, plan.Report.CutWeight, len(plan.Report.Unplaced))
	p.logger.Info("plan computed",
		"plan", id,
		"strategy", plan.Strategy,
		"groups", plan.Report.Groups,
		"cut_weight", plan.Report.CutWeight,
		"unplaced", len(plan.Report.Unplaced),
	)
	if !plan.Report.Complete() {
		p.logger.Warn("plan is incomplete",
			"plan", id,
			"unplaced", plan.Report.Unplaced,
			"duplicated", plan.Report.Duplicated,
			"over_capacity", plan.Report.OverCapacity,
		)
	}

	p.runHook("plan computed", func(ctx context.Context) error {
		return p.hooks.OnPlanComputed(ctx, plan.Clone())
	})

	if p.publisher != nil {
		if err := p.publish(ctx, plan); err != nil {
			return nil, p.fail(err)
		}
	}

	if p.cache.Size() >= p.cfg.CacheSize {
		p.logger.Debug("plan cache full, clearing", "size", p.cache.Size())
		p.cache.Clear()
	}
	p.cache.Store(id, plan)

	return plan, nil
}

// Lookup returns a cached plan by id.
//
// Returns:
//   - *Plan: Copy of the cached plan
//   - error: ErrPlanNotFound when the id is not cached
func (p *Planner) Lookup(id string) (*Plan, error) {
	plan, ok := p.cache.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}

	return plan.Clone(), nil
}

// Invalidate drops every cached plan.
func (p *Planner) Invalidate() {
	p.cache.Clear()
	p.logger.Debug("plan cache invalidated")
}

// CachedPlans returns the number of cached plans.
func (p *Planner) CachedPlans() int {
	return p.cache.Size()
}

// Partitioner returns the partitioner in use.
func (p *Planner) Partitioner() Partitioner {
	return p.partitioner
}

// Close stops accepting Plan calls and waits for running hooks.
//
// Hooks still running observe a cancelled context. Close is idempotent.
func (p *Planner) Close() error {
	p.hookMu.Lock()
	if !p.closed.CompareAndSwap(false, true) {
		p.hookMu.Unlock()
		return nil
	}
	p.hookMu.Unlock()

	p.cancel()
	p.wg.Wait()

	return nil
}

func (p *Planner) publish(ctx context.Context, plan *Plan) error {
	pubCtx, cancel := context.WithTimeout(ctx, p.cfg.KV.OperationTimeout)
	defer cancel()

	version, err := p.publisher.Publish(pubCtx, plan)
	if err != nil {
		return fmt.Errorf("publish plan %s: %w", plan.ID, err)
	}

	p.runHook("plan published", func(ctx context.Context) error {
		return p.hooks.OnPlanPublished(ctx, plan.Clone(), version)
	})

	return nil
}

// fail reports err through OnError and returns it.
func (p *Planner) fail(err error) error {
	p.logger.Error("plan failed", "error", err)
	p.runHook("error", func(ctx context.Context) error {
		return p.hooks.OnError(ctx, err)
	})

	return err
}

// runHook runs fn in the background, tracked by Close. Hooks requested
// after Close are dropped.
func (p *Planner) runHook(name string, fn func(ctx context.Context) error) {
	p.hookMu.Lock()
	defer p.hookMu.Unlock()
	if p.closed.Load() {
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := fn(p.ctx); err != nil {
			p.logger.Error("hook error", "hook", name, "error", err)
		}
	}()
}
