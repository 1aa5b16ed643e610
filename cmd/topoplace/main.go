// Command topoplace partitions a communication graph onto devices and prints
// the resulting plan as JSON.
//
// Usage:
//
//	topoplace -graph graph.txt -capacities 4,4,2
//	topoplace -config topoplace.yaml -graph graph.yaml -format yaml -nats nats://localhost:4222
//	topoplace -graph graph.txt -capacities 4,4 -watch 30s -metrics-addr :9090
//	topoplace -graph graph.txt -capacities 4,4 -watch 10s -nats nats://localhost:4222 -lease-holder "$(hostname)"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arloliu/topoplace"
	"github.com/arloliu/topoplace/graph"
	"github.com/arloliu/topoplace/internal/election"
	"github.com/arloliu/topoplace/internal/kvutil"
	"github.com/arloliu/topoplace/internal/logging"
	"github.com/arloliu/topoplace/internal/metrics"
	"github.com/arloliu/topoplace/publisher"
	"github.com/arloliu/topoplace/source"
	"github.com/arloliu/topoplace/types"
)

type flags struct {
	configPath  string
	graphPath   string
	format      string
	capacities  string
	strategy    string
	dump        bool
	natsURL     string
	logLevel    string
	watch       time.Duration
	metricsAddr string
	leaseHolder string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to YAML configuration file")
	flag.StringVar(&f.graphPath, "graph", "", "Path to the graph file (required)")
	flag.StringVar(&f.format, "format", "text", "Graph file format: text or yaml")
	flag.StringVar(&f.capacities, "capacities", "", "Comma-separated device capacities, overrides the config")
	flag.StringVar(&f.strategy, "strategy", "", "Partitioning strategy, overrides the config")
	flag.BoolVar(&f.dump, "dump", false, "Print the adjacency dump of the graph and exit")
	flag.StringVar(&f.natsURL, "nats", "", "NATS URL to publish placements to (disabled when empty)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the config)")
	flag.DurationVar(&f.watch, "watch", 0, "Re-plan at this interval until interrupted (0 = plan once)")
	flag.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.StringVar(&f.leaseHolder, "lease-holder", "", "Publish only while holding the lease under this id (disabled when empty)")
	flag.Parse()

	return f
}

func main() {
	f := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, f); err != nil {
		fmt.Fprintf(os.Stderr, "topoplace: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	if f.graphPath == "" {
		return errors.New("-graph is required")
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewText(os.Stderr, level)

	src, err := graphSource(f, cfg)
	if err != nil {
		return err
	}

	if f.dump {
		return dump(ctx, src)
	}

	var collector types.MetricsCollector = metrics.NewNop()
	if f.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		collector = metrics.NewPrometheus(reg, "")
		srv := serveMetrics(f.metricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	opts := []topoplace.Option{
		topoplace.WithLogger(logger),
		topoplace.WithMetrics(collector),
	}

	if f.natsURL != "" {
		nc, err := nats.Connect(f.natsURL)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer nc.Close()

		pub, release, err := newPublisher(ctx, nc, cfg, f.leaseHolder, logger, collector)
		if err != nil {
			return err
		}
		defer release()
		opts = append(opts, topoplace.WithPublisher(pub))
	}

	planner, err := topoplace.NewPlanner(cfg, src, opts...)
	if err != nil {
		return err
	}
	defer planner.Close()

	if f.watch <= 0 {
		_, err := printPlan(ctx, planner, "")
		return err
	}

	return watch(ctx, planner, f.watch, logger)
}

func loadConfig(f flags) (*topoplace.Config, error) {
	cfg := topoplace.DefaultConfig()
	if f.configPath != "" {
		loaded, err := topoplace.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if f.capacities != "" {
		caps, err := parseCapacities(f.capacities)
		if err != nil {
			return nil, err
		}
		cfg.Capacities = caps
	}
	if f.strategy != "" {
		cfg.Strategy = f.strategy
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	topoplace.SetDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// parseCapacities parses "4,4,2".
func parseCapacities(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	caps := make([]int, 0, len(fields))
	for _, field := range fields {
		c, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid capacity %q: %w", field, err)
		}
		caps = append(caps, c)
	}

	return caps, nil
}

func graphSource(f flags, cfg *topoplace.Config) (types.GraphSource, error) {
	switch strings.ToLower(f.format) {
	case "", "text":
		return source.NewFile(f.graphPath, source.WithConvention(cfg.Convention())), nil
	case "yaml", "yml":
		return source.NewYAMLFile(f.graphPath), nil
	default:
		return nil, fmt.Errorf("unknown graph format %q", f.format)
	}
}

func dump(ctx context.Context, src types.GraphSource) error {
	g, err := src.LoadGraph(ctx)
	if err != nil {
		return err
	}

	wg, ok := g.(*graph.WeightedGraph)
	if !ok {
		return fmt.Errorf("graph source returned %T, cannot dump", g)
	}

	return graph.WriteAdjacency(os.Stdout, wg)
}

// newPublisher opens the placement bucket and, when holder is set, guards the
// publisher with the publish lease. The returned func releases the lease.
func newPublisher(
	ctx context.Context,
	nc *nats.Conn,
	cfg *topoplace.Config,
	holder string,
	logger types.Logger,
	collector types.MetricsCollector,
) (types.PlanPublisher, func(), error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get JetStream: %w", err)
	}

	setupCtx, cancel := context.WithTimeout(ctx, cfg.KV.OperationTimeout)
	defer cancel()

	kv, err := kvutil.EnsureBucket(setupCtx, js, kvutil.PlacementBucketConfig(cfg.KV.Bucket, cfg.KV.TTL), 3)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open placement bucket: %w", err)
	}

	pub := publisher.NewKV(kv, cfg.KV.KeyPrefix, logger, collector)
	if err := pub.DiscoverHighestVersion(setupCtx); err != nil {
		return nil, nil, err
	}

	if holder == "" {
		return pub, func() {}, nil
	}

	leaseKV, err := kvutil.EnsureBucket(setupCtx, js, election.BucketConfig(cfg.KV.LeaseBucket, cfg.KV.LeaseTTL), 3)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open lease bucket: %w", err)
	}

	leased := publisher.NewLeased(pub, election.NewLease(leaseKV, cfg.KV.KeyPrefix), holder, logger)
	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), cfg.KV.OperationTimeout)
		defer cancel()
		if err := leased.Release(releaseCtx); err != nil && !errors.Is(err, election.ErrNotHolder) {
			logger.Warn("failed to release publish lease", "error", err)
		}
	}

	return leased, release, nil
}

// printPlan prints the plan unless its id equals lastID and returns the id
// of the last printed plan.
func printPlan(ctx context.Context, planner *topoplace.Planner, lastID string) (string, error) {
	plan, err := planner.Plan(ctx)
	if err != nil {
		return lastID, err
	}
	if plan.ID == lastID {
		return lastID, nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return lastID, err
	}

	return plan.ID, nil
}

func watch(ctx context.Context, planner *topoplace.Planner, interval time.Duration, logger types.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastID := ""
	for {
		id, err := printPlan(ctx, planner, lastID)
		switch {
		case err == nil:
		case errors.Is(err, topoplace.ErrNotLeaseHolder):
			logger.Debug("another planner holds the publish lease, standing by")
		case kvutil.IsConnectivityError(err):
			logger.Warn("placement layer unreachable, retrying on next tick", "error", err)
		default:
			logger.Error("plan failed, retrying on next tick", "error", err)
		}
		lastID = id

		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

func serveMetrics(addr string, reg *prometheus.Registry, logger types.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()
	logger.Info("metrics server started", "addr", addr)

	return srv
}
