package types

import (
	"math"
	"slices"
	"time"
)

// Group is the ordered list of vertices assigned to one device slot.
type Group []Vertex

// Contains reports whether v is a member of the group.
func (g Group) Contains(v Vertex) bool {
	return slices.Contains(g, v)
}

// Clone returns an independent copy of the group.
func (g Group) Clone() Group {
	if g == nil {
		return nil
	}

	return append(Group(nil), g...)
}

// AllocationMap is the ordered sequence of groups produced by a partitioner.
//
// Group i is placed on device i of the capacity schedule it was computed for.
type AllocationMap []Group

// Clone returns a deep copy of the allocation map.
func (m AllocationMap) Clone() AllocationMap {
	if m == nil {
		return nil
	}

	out := make(AllocationMap, len(m))
	for i, g := range m {
		out[i] = g.Clone()
	}

	return out
}

// VertexCount returns the number of placements across all groups.
// A vertex placed twice is counted twice.
func (m AllocationMap) VertexCount() int {
	n := 0
	for _, g := range m {
		n += len(g)
	}

	return n
}

// DeviceOf returns the index of the first group containing v, or -1.
func (m AllocationMap) DeviceOf(v Vertex) int {
	for i, g := range m {
		if g.Contains(v) {
			return i
		}
	}

	return -1
}

// CapacitySchedule lists the vertex capacity of device 0, device 1, ... in
// the order devices are filled. Callers are expected to supply a non-empty,
// non-increasing sequence of positive capacities.
type CapacitySchedule []int

// Total returns the sum of all capacities, saturating at math.MaxInt.
func (c CapacitySchedule) Total() int {
	total := 0
	for _, n := range c {
		if n > math.MaxInt-total {
			return math.MaxInt
		}
		total += n
	}

	return total
}

// At returns the capacity of device i and whether i is inside the schedule.
func (c CapacitySchedule) At(i int) (int, bool) {
	if i < 0 || i >= len(c) {
		return 0, false
	}

	return c[i], true
}

// NonIncreasing reports whether every capacity is >= the one after it.
func (c CapacitySchedule) NonIncreasing() bool {
	for i := 1; i < len(c); i++ {
		if c[i] > c[i-1] {
			return false
		}
	}

	return true
}

// Plan is a computed allocation together with its quality report.
type Plan struct {
	// ID is the hex fingerprint of the graph and capacity schedule the plan
	// was computed for. Identical inputs produce identical IDs.
	ID string `json:"id"`

	// Strategy is the name of the partitioner that produced the plan.
	Strategy string `json:"strategy"`

	// Capacities is the schedule the plan was computed against.
	Capacities CapacitySchedule `json:"capacities"`

	// Allocation holds the device groups in fill order.
	Allocation AllocationMap `json:"allocation"`

	// Report describes placement completeness and cross-device traffic.
	Report Report `json:"report"`

	// CreatedAt is the time the plan was computed.
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}

	out := *p
	out.Capacities = slices.Clone(p.Capacities)
	out.Allocation = p.Allocation.Clone()
	out.Report = p.Report.Clone()

	return &out
}
