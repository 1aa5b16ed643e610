// Package hooks provides default Planner hook implementations.
package hooks

import (
	"context"

	"github.com/arloliu/topoplace/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, *types.Plan) error        = (*NopHooks)(nil).OnPlanComputed
	_ func(context.Context, *types.Plan, int64) error = (*NopHooks)(nil).OnPlanPublished
	_ func(context.Context, error) error              = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnPlanComputed:  h.OnPlanComputed,
		OnPlanPublished: h.OnPlanPublished,
		OnError:         h.OnError,
	}
}

// Fill returns h with every nil callback replaced by its no-op version.
func Fill(h *types.Hooks) types.Hooks {
	nop := NewNop()
	if h == nil {
		return nop
	}

	out := *h
	if out.OnPlanComputed == nil {
		out.OnPlanComputed = nop.OnPlanComputed
	}
	if out.OnPlanPublished == nil {
		out.OnPlanPublished = nop.OnPlanPublished
	}
	if out.OnError == nil {
		out.OnError = nop.OnError
	}

	return out
}

// OnPlanComputed is a no-op implementation.
func (h *NopHooks) OnPlanComputed(_ context.Context, _ *types.Plan) error {
	return nil
}

// OnPlanPublished is a no-op implementation.
func (h *NopHooks) OnPlanPublished(_ context.Context, _ *types.Plan, _ int64) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
