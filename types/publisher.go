package types

import "context"

// PlanPublisher hands a computed plan to the placement layer.
type PlanPublisher interface {
	// Publish writes the plan and returns the version it was published under.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - plan: Plan to publish
	//
	// Returns:
	//   - int64: Published version (monotonically increasing)
	//   - error: ErrPublishFailed wrapping the underlying cause
	Publish(ctx context.Context, plan *Plan) (int64, error)
}
