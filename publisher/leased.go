package publisher

import (
	"context"
	"fmt"
	"sync"

	"github.com/arloliu/topoplace/internal/election"
	"github.com/arloliu/topoplace/internal/logger"
	"github.com/arloliu/topoplace/types"
)

// Leased publishes through next only while holding the publish lease.
//
// Every Publish acquires or renews the lease first. Planners that do not hold
// it get types.ErrNotLeaseHolder and publish nothing.
type Leased struct {
	next   types.PlanPublisher
	lease  *election.Lease
	holder string
	logger types.Logger

	// discover runs once per lease acquisition so a new holder continues
	// from the previous holder's version.
	discover func(ctx context.Context) error

	mu      sync.Mutex
	wasHeld bool
}

var _ types.PlanPublisher = (*Leased)(nil)

// NewLeased wraps a KV publisher with a publish lease.
//
// Parameters:
//   - next: Publisher to guard
//   - lease: Lease shared by every planner publishing to the same prefix
//   - holder: Id of this planner instance (e.g., hostname-pid)
//   - l: Logger (nil for no-op)
//
// Returns:
//   - *Leased: Guarded publisher
func NewLeased(next *KV, lease *election.Lease, holder string, l types.Logger) *Leased {
	if l == nil {
		l = logger.NewNop()
	}

	return &Leased{
		next:     next,
		lease:    lease,
		holder:   holder,
		logger:   l,
		discover: next.DiscoverHighestVersion,
	}
}

// Publish acquires the lease and publishes the plan.
//
// Returns:
//   - int64: Published version
//   - error: types.ErrNotLeaseHolder when another planner holds the lease,
//     otherwise the lease or publish error
func (p *Leased) Publish(ctx context.Context, plan *types.Plan) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	held, err := p.lease.Acquire(ctx, p.holder)
	if err != nil {
		p.wasHeld = false
		return 0, fmt.Errorf("%w: %w", types.ErrPublishFailed, err)
	}
	if !held {
		if p.wasHeld {
			p.logger.Warn("publish lease lost", "holder", p.holder)
		}
		p.wasHeld = false

		return 0, types.ErrNotLeaseHolder
	}

	if !p.wasHeld {
		p.logger.Info("publish lease acquired", "holder", p.holder)
		if err := p.discover(ctx); err != nil {
			return 0, fmt.Errorf("%w: %w", types.ErrPublishFailed, err)
		}
		p.wasHeld = true
	}

	return p.next.Publish(ctx, plan)
}

// Release gives up the lease so another planner can publish at once.
func (p *Leased) Release(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wasHeld = false
	return p.lease.Release(ctx)
}
