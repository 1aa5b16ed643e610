package election

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Common errors for lease operations.
var (
	ErrNotHolder  = errors.New("not the lease holder")
	ErrLeaseLost  = errors.New("lease was lost")
	ErrEmptyOwner = errors.New("lease holder id is empty")
)

// BucketConfig returns the KV configuration for a lease bucket.
//
// The TTL is the lease duration and must be > 0 for failover to happen.
func BucketConfig(bucket string, ttl time.Duration) jetstream.KeyValueConfig {
	return jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "topoplace publish lease",
		TTL:         ttl,
	}
}

// Lease implements a single-holder lease on a NATS KV key.
//
// All fields are protected by mu for thread-safe concurrent access.
type Lease struct {
	kv  jetstream.KeyValue
	key string

	mu       sync.RWMutex
	holder   string
	revision uint64
	held     bool
}

// NewLease creates a new lease on key.
//
// Parameters:
//   - kv: KV bucket with a TTL (see BucketConfig)
//   - key: Lease key, typically the placement key prefix
//
// Returns:
//   - *Lease: New lease instance, not yet held
func NewLease(kv jetstream.KeyValue, key string) *Lease {
	return &Lease{kv: kv, key: key}
}

// Acquire acquires the lease for holder, or renews it when holder already
// has it.
//
// Parameters:
//   - ctx: Context for timeout
//   - holder: Planner instance id
//
// Returns:
//   - bool: true if the lease is held after the call
//   - error: KV error or context cancellation; a lease held by someone else is not an error
func (l *Lease) Acquire(ctx context.Context, holder string) (bool, error) {
	if holder == "" {
		return false, ErrEmptyOwner
	}

	held, current, _ := l.state()
	if held && current == holder {
		err := l.Renew(ctx)
		if err == nil {
			return true, nil
		}
		l.clear()
	}

	revision, err := l.kv.Create(ctx, l.key, l.value(holder))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return false, nil
		}

		return false, fmt.Errorf("failed to create lease key: %w", err)
	}

	l.set(true, holder, revision)

	return true, nil
}

// Renew extends the held lease.
//
// Returns:
//   - error: ErrNotHolder if not held, ErrLeaseLost if another holder took over
func (l *Lease) Renew(ctx context.Context) error {
	held, holder, revision := l.state()
	if !held {
		return ErrNotHolder
	}

	newRevision, err := l.kv.Update(ctx, l.key, l.value(holder), revision)
	if err != nil {
		l.clear()

		return fmt.Errorf("%w: %w", ErrLeaseLost, err)
	}

	l.mu.Lock()
	l.revision = newRevision
	l.mu.Unlock()

	return nil
}

// Release deletes the lease key so another planner can take over at once.
//
// Returns:
//   - error: ErrNotHolder if not held, or the KV error
func (l *Lease) Release(ctx context.Context) error {
	held, _, _ := l.state()
	if !held {
		return ErrNotHolder
	}

	err := l.kv.Delete(ctx, l.key)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("failed to delete lease key: %w", err)
	}

	l.set(false, "", 0)

	return nil
}

// Held verifies against KV that this instance still holds the lease.
func (l *Lease) Held(ctx context.Context) (bool, error) {
	held, _, revision := l.state()
	if !held {
		return false, nil
	}

	entry, err := l.kv.Get(ctx, l.key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			l.clear()

			return false, nil
		}

		return false, fmt.Errorf("failed to get lease key: %w", err)
	}

	if entry.Revision() != revision {
		l.clear()

		return false, nil
	}

	return true, nil
}

// Holder returns the holder id while the lease is held, empty otherwise.
func (l *Lease) Holder() string {
	held, holder, _ := l.state()
	if !held {
		return ""
	}

	return holder
}

func (l *Lease) value(holder string) []byte {
	return fmt.Appendf(nil, "%s:%d", holder, time.Now().Unix())
}

func (l *Lease) state() (held bool, holder string, revision uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.held, l.holder, l.revision
}

func (l *Lease) set(held bool, holder string, revision uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.held = held
	l.holder = holder
	l.revision = revision
}

func (l *Lease) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.held = false
}
