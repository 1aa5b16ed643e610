package source

import (
	"context"
	"sync"

	"github.com/arloliu/topoplace/graph"
	"github.com/arloliu/topoplace/types"
)

// Static implements a graph source over an in-memory edge list.
type Static struct {
	mu       sync.RWMutex
	vertices int
	edges    []types.Edge
}

var _ types.GraphSource = (*Static)(nil)

// NewStatic creates a new static graph source.
//
// The graph is rebuilt from the edge list on every LoadGraph call, so each
// caller gets its own read-only graph. Useful for testing and for embedding
// topologies that are known at startup.
//
// Parameters:
//   - vertices: Number of vertices
//   - edges: Edges in insertion order; later duplicates of a pair are ignored
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic(4, []types.Edge{
//	    {V: 0, W: 1, Weight: 5},
//	    {V: 2, W: 3, Weight: 4},
//	})
//	planner, err := topoplace.NewPlanner(&cfg, src)
func NewStatic(vertices int, edges []types.Edge) *Static {
	return &Static{
		vertices: vertices,
		edges:    append([]types.Edge(nil), edges...),
	}
}

// LoadGraph builds the graph.
//
// Returns:
//   - types.Graph: A *graph.WeightedGraph
//   - error: types.ErrInvalidInput for a negative vertex count, a self-loop,
//     an out-of-range id or an unrepresentable weight; or the context error
func (s *Static) LoadGraph(ctx context.Context) (types.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := graph.New(s.vertices, len(s.edges))
	if err != nil {
		return nil, err
	}
	for _, e := range s.edges {
		if _, err := g.AddEdge(e.V, e.W, e.Weight); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Update replaces the vertex count and edge list.
//
// This allows the static source to simulate a topology change, which is
// useful for testing plan invalidation.
//
// Parameters:
//   - vertices: New vertex count
//   - edges: New edge list
func (s *Static) Update(vertices int, edges []types.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vertices = vertices
	s.edges = append([]types.Edge(nil), edges...)
}
