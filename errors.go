package topoplace

import (
	"errors"

	"github.com/arloliu/topoplace/types"
)

// Re-exported sentinel errors. See types/errors.go for their meaning.
var (
	ErrInvalidInput        = types.ErrInvalidInput
	ErrMalformedEdgeCount  = types.ErrMalformedEdgeCount
	ErrEmptyGraph          = types.ErrEmptyGraph
	ErrDeviceExhausted     = types.ErrDeviceExhausted
	ErrSeedCapacity        = types.ErrSeedCapacity
	ErrInvalidConfig       = types.ErrInvalidConfig
	ErrGraphSourceRequired = types.ErrGraphSourceRequired
	ErrPartitionerRequired = types.ErrPartitionerRequired
	ErrPlanNotFound        = types.ErrPlanNotFound
	ErrUnknownStrategy     = types.ErrUnknownStrategy
	ErrPublishFailed       = types.ErrPublishFailed
	ErrNotLeaseHolder      = types.ErrNotLeaseHolder
)

// Sentinel errors returned by the Planner.
var (
	// ErrPlannerClosed is returned when Plan is called after Close.
	ErrPlannerClosed = errors.New("planner closed")
)
