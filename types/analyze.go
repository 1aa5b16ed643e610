package types

import "slices"

// Report summarizes how well an allocation map covers a graph.
//
// The greedy partitioner does not guarantee that every vertex is placed
// exactly once: vertices without edges are never visited, and edges whose
// endpoints already sit in different open groups are left crossing. Report
// makes those gaps visible to the placement layer.
type Report struct {
	// Groups is the number of device slots used.
	Groups int `json:"groups"`

	// Unplaced lists vertices that appear in no group, ascending.
	Unplaced []Vertex `json:"unplaced,omitempty"`

	// Duplicated lists vertices that appear in more than one group, ascending.
	Duplicated []Vertex `json:"duplicated,omitempty"`

	// OutOfRange lists placed ids outside [0, vertexCount), ascending.
	OutOfRange []Vertex `json:"outOfRange,omitempty"`

	// OverCapacity lists group indexes whose size exceeds their device
	// capacity, or that have no device in the schedule at all.
	OverCapacity []int `json:"overCapacity,omitempty"`

	// Crossings lists edges whose endpoints are not co-located, in the
	// graph's descending weight order. Edges touching an unplaced vertex are
	// included.
	Crossings []Edge `json:"crossings,omitempty"`

	// CutWeight is the total weight of Crossings.
	CutWeight float64 `json:"cutWeight"`

	// InternalWeight is the total weight of edges kept inside one group.
	InternalWeight float64 `json:"internalWeight"`
}

// Complete reports whether every vertex is placed exactly once and no group
// exceeds its device capacity.
func (r Report) Complete() bool {
	return len(r.Unplaced) == 0 &&
		len(r.Duplicated) == 0 &&
		len(r.OutOfRange) == 0 &&
		len(r.OverCapacity) == 0
}

// Analyze checks an allocation map against the graph it was computed for.
//
// Parameters:
//   - g: Graph the allocation was computed from
//   - capacities: Capacity schedule the allocation was computed against
//   - alloc: Allocation map to check
//
// Returns:
//   - Report: Completeness and cut statistics (zero Report for a nil graph)
func Analyze(g Graph, capacities CapacitySchedule, alloc AllocationMap) Report {
	report := Report{Groups: len(alloc)}
	if g == nil {
		return report
	}

	n := g.VertexCount()
	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}

	dup := make(map[Vertex]struct{})
	outOfRange := make(map[Vertex]struct{})
	for gi, group := range alloc {
		if c, ok := capacities.At(gi); !ok || len(group) > c {
			report.OverCapacity = append(report.OverCapacity, gi)
		}

		for _, v := range group {
			if v < 0 || v >= n {
				outOfRange[v] = struct{}{}
				continue
			}
			if owner[v] >= 0 {
				dup[v] = struct{}{}
				continue
			}
			owner[v] = gi
		}
	}

	for v, gi := range owner {
		if gi < 0 {
			report.Unplaced = append(report.Unplaced, v)
		}
	}
	report.Duplicated = sortedKeys(dup)
	report.OutOfRange = sortedKeys(outOfRange)

	for _, e := range g.SortedEdges() {
		if owner[e.V] >= 0 && owner[e.V] == owner[e.W] {
			report.InternalWeight += e.Weight
			continue
		}

		report.Crossings = append(report.Crossings, e)
		report.CutWeight += e.Weight
	}

	return report
}

func sortedKeys(set map[Vertex]struct{}) []Vertex {
	if len(set) == 0 {
		return nil
	}

	out := make([]Vertex, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)

	return out
}

// Clone returns a deep copy of the report.
func (r Report) Clone() Report {
	out := r
	out.Unplaced = slices.Clone(r.Unplaced)
	out.Duplicated = slices.Clone(r.Duplicated)
	out.OutOfRange = slices.Clone(r.OutOfRange)
	out.OverCapacity = slices.Clone(r.OverCapacity)
	out.Crossings = slices.Clone(r.Crossings)

	return out
}
