package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/arloliu/topoplace/internal/hash"
	"github.com/arloliu/topoplace/internal/logger"
	"github.com/arloliu/topoplace/internal/metrics"
	"github.com/arloliu/topoplace/types"
)

const summaryKey = "summary"

// KV publishes plans to a NATS JetStream KV bucket.
//
// Version monotonicity holds across restarts and across several planners
// sharing a bucket, as long as DiscoverHighestVersion runs before the first
// Publish.
type KV struct {
	kv        jetstream.KeyValue
	prefix    string
	keyPrefix string // cached "prefix."

	mu             sync.Mutex
	currentVersion int64

	logger  types.Logger
	metrics types.PublisherMetrics
}

var _ types.PlanPublisher = (*KV)(nil)

// NewKV creates a new KV publisher.
//
// Parameters:
//   - kv: NATS KV bucket for placements
//   - prefix: Key prefix (e.g., "topology")
//   - l: Logger for publishing events (nil for no-op)
//   - m: Metrics collector (nil for no-op)
//
// Returns:
//   - *KV: A new publisher instance
func NewKV(kv jetstream.KeyValue, prefix string, l types.Logger, m types.PublisherMetrics) *KV {
	if l == nil {
		l = logger.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}

	return &KV{
		kv:        kv,
		prefix:    prefix,
		keyPrefix: prefix + ".",
		logger:    l,
		metrics:   m,
	}
}

// DeviceKey returns the KV key of device d.
func (p *KV) DeviceKey(d int) string {
	return p.keyPrefix + hash.DeviceKey(d)
}

// SummaryKey returns the KV key of the summary record.
func (p *KV) SummaryKey() string {
	return p.keyPrefix + summaryKey
}

// DiscoverHighestVersion scans the bucket for the highest published version.
//
// Keys outside the prefix and records that cannot be decoded are skipped. An
// empty bucket leaves the version at 0.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - error: Nil on success, error on KV access failure
func (p *KV) DiscoverHighestVersion(ctx context.Context) error {
	keys, err := p.keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list KV keys: %w", err)
	}

	highest := int64(0)
	checked := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, p.keyPrefix) {
			continue
		}

		checked++
		entry, err := p.get(ctx, key)
		if err != nil {
			p.logger.Debug("failed to read placement key", "key", key, "error", err)
			continue
		}

		var rec versioned
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			p.logger.Debug("failed to decode placement record", "key", key, "error", err)
			continue
		}
		highest = max(highest, rec.Version)
	}

	p.mu.Lock()
	p.currentVersion = max(p.currentVersion, highest)
	p.mu.Unlock()

	if highest > 0 {
		p.logger.Info("discovered existing placements", "highest_version", highest, "checked_keys", checked)
	}

	return nil
}

// Publish writes one record per device group followed by the summary.
//
// Device keys left over from an earlier plan with more groups are deleted
// before the new records are written.
//
// Parameters:
//   - ctx: Context for cancellation
//   - plan: Plan to publish
//
// Returns:
//   - int64: Version the plan was published under
//   - error: types.ErrPublishFailed wrapping the cause
func (p *KV) Publish(ctx context.Context, plan *types.Plan) (int64, error) {
	if plan == nil {
		return 0, fmt.Errorf("%w: nil plan", types.ErrPublishFailed)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.currentVersion++
	version := p.currentVersion
	now := time.Now().UTC()

	if err := p.cleanupStale(ctx, len(plan.Allocation)); err != nil {
		p.logger.Warn("stale placement cleanup failed, continuing with publish", "error", err)
	}

	for d, group := range plan.Allocation {
		capacity, _ := plan.Capacities.At(d)
		rec := DeviceAssignment{
			Version:     version,
			PlanID:      plan.ID,
			Device:      d,
			Capacity:    capacity,
			Vertices:    append([]types.Vertex{}, group...),
			PublishedAt: now,
		}
		if err := p.put(ctx, p.DeviceKey(d), rec); err != nil {
			return 0, err
		}
	}

	summary := Summary{
		Version:     version,
		PlanID:      plan.ID,
		Strategy:    plan.Strategy,
		Devices:     len(plan.Allocation),
		Capacities:  plan.Capacities,
		Unplaced:    plan.Report.Unplaced,
		CutWeight:   plan.Report.CutWeight,
		PublishedAt: now,
	}
	if err := p.put(ctx, p.SummaryKey(), summary); err != nil {
		return 0, err
	}

	p.metrics.RecordPublish(len(plan.Allocation), version)
	p.logger.Info("plan published", "plan", plan.ID, "version", version, "devices", len(plan.Allocation))

	return version, nil
}

// Fetch reads the record of one device.
//
// Returns:
//   - *DeviceAssignment: The stored record
//   - error: jetstream.ErrKeyNotFound (wrapped) when the device has no record
func (p *KV) Fetch(ctx context.Context, device int) (*DeviceAssignment, error) {
	var rec DeviceAssignment
	if err := p.read(ctx, p.DeviceKey(device), &rec); err != nil {
		return nil, fmt.Errorf("device %d: %w", device, err)
	}

	return &rec, nil
}

// FetchSummary reads the summary record.
func (p *KV) FetchSummary(ctx context.Context) (*Summary, error) {
	var s Summary
	if err := p.read(ctx, p.SummaryKey(), &s); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	return &s, nil
}

// CleanupAll deletes every key under the prefix. The version counter is kept.
func (p *KV) CleanupAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.logger.Info("cleaning up all placements from KV", "prefix", p.prefix)

	return p.cleanup(ctx, func(string) bool { return true })
}

// CurrentVersion returns the last published or discovered version.
//
// This method is thread-safe and can be called concurrently.
func (p *KV) CurrentVersion() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.currentVersion
}

// cleanupStale removes device keys with an index >= devices.
func (p *KV) cleanupStale(ctx context.Context, devices int) error {
	return p.cleanup(ctx, func(suffix string) bool {
		idx, ok := deviceIndex(suffix)
		return ok && idx >= devices
	})
}

func (p *KV) cleanup(ctx context.Context, shouldDelete func(suffix string) bool) error {
	keys, err := p.keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	deleted := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, p.keyPrefix) || !shouldDelete(strings.TrimPrefix(key, p.keyPrefix)) {
			continue
		}

		start := time.Now()
		err := p.kv.Delete(ctx, key)
		p.metrics.RecordKVOperationDuration("delete", time.Since(start).Seconds())
		if err != nil {
			p.logger.Warn("failed to delete stale placement", "key", key, "error", err)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		p.logger.Info("cleaned up stale placements", "deleted_count", deleted)
	}

	return nil
}

func (p *KV) keys(ctx context.Context) ([]string, error) {
	start := time.Now()
	keys, err := p.kv.Keys(ctx)
	p.metrics.RecordKVOperationDuration("keys", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) || types.IsNoKeysFoundError(err) {
			return nil, nil
		}

		return nil, err
	}

	return keys, nil
}

func (p *KV) get(ctx context.Context, key string) (jetstream.KeyValueEntry, error) {
	start := time.Now()
	entry, err := p.kv.Get(ctx, key)
	p.metrics.RecordKVOperationDuration("get", time.Since(start).Seconds())

	return entry, err
}

func (p *KV) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %w", types.ErrPublishFailed, key, err)
	}

	start := time.Now()
	_, err = p.kv.Put(ctx, key, data)
	p.metrics.RecordKVOperationDuration("put", time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("%w: put %s: %w", types.ErrPublishFailed, key, err)
	}

	return nil
}

func (p *KV) read(ctx context.Context, key string, v any) error {
	entry, err := p.get(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal(entry.Value(), v)
}

// deviceIndex parses "device-<i>".
func deviceIndex(suffix string) (int, bool) {
	rest, ok := strings.CutPrefix(suffix, "device-")
	if !ok {
		return 0, false
	}

	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}

	return idx, true
}
