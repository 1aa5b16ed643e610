package types

import "context"

// Hooks defines callbacks for Planner events.
//
// All hooks are optional and called asynchronously in background goroutines
// so that Plan returns without waiting on user code. Planner.Close waits for
// hooks that are still running.
//
// Hook execution behavior:
//   - Hooks run concurrently and may observe plans out of order
//   - Hook errors are logged but don't fail Plan calls
//   - Plans passed to hooks are copies; mutating them has no effect
//
// Example:
//
//	hooks := &topoplace.Hooks{
//	    OnPlanComputed: func(ctx context.Context, plan *topoplace.Plan) error {
//	        if !plan.Report.Complete() {
//	            return fmt.Errorf("plan %s leaves %d vertices unplaced", plan.ID, len(plan.Report.Unplaced))
//	        }
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnPlanComputed is called after a plan is computed (cache misses only).
	OnPlanComputed func(ctx context.Context, plan *Plan) error

	// OnPlanPublished is called after a plan is written to the placement layer.
	OnPlanPublished func(ctx context.Context, plan *Plan, version int64) error

	// OnError is called when Plan fails.
	OnError func(ctx context.Context, err error) error
}
