package graph

import (
	"fmt"
	"math"

	"github.com/arloliu/topoplace/types"
)

// NoEdge marks an unconnected pair in the weight matrix.
const NoEdge = types.NoEdge

// MaxVertices is the largest vertex count New accepts. The dense matrix for
// MaxVertices vertices takes 512 MiB.
const MaxVertices = 1 << 13

// WeightedGraph is an undirected graph stored as a symmetric weight matrix
// plus an edge list sorted by non-increasing weight.
//
// Invariants:
//   - weight[i][j] == weight[j][i]
//   - weight[i][i] == 0 (self-loops are rejected)
//   - the edge list holds at most one entry per unordered pair
type WeightedGraph struct {
	vCount int
	eCount int
	weight [][]float64
	edges  *EdgeList
}

var _ types.Graph = (*WeightedGraph)(nil)

// New allocates a graph with vCount vertices and no edges.
//
// The diagonal is set to 0 and every other cell to NoEdge. eCount is the
// declared edge count reported by EdgeCount; it does not limit AddEdge.
//
// Parameters:
//   - vCount: Number of vertices (>= 0)
//   - eCount: Declared number of edges (>= 0)
//
// Returns:
//   - *WeightedGraph: Empty graph
//   - error: types.ErrInvalidInput if a count is negative or vCount exceeds
//     MaxVertices
func New(vCount, eCount int) (*WeightedGraph, error) {
	if vCount < 0 || eCount < 0 {
		return nil, fmt.Errorf("%w: vertex count %d and edge count %d must be non-negative",
			types.ErrInvalidInput, vCount, eCount)
	}
	if vCount > MaxVertices {
		return nil, fmt.Errorf("%w: vertex count %d exceeds the maximum of %d",
			types.ErrInvalidInput, vCount, MaxVertices)
	}

	weight := make([][]float64, vCount)
	cells := make([]float64, vCount*vCount)
	for i := range weight {
		row := cells[i*vCount : (i+1)*vCount]
		for j := range row {
			row[j] = NoEdge
		}
		row[i] = 0
		weight[i] = row
	}

	return &WeightedGraph{
		vCount: vCount,
		eCount: eCount,
		weight: weight,
		edges:  NewEdgeList(min(eCount, MaxPairs(vCount))),
	}, nil
}

// MaxPairs returns the number of unordered vertex pairs, the most edges a
// graph with vCount vertices can store.
func MaxPairs(vCount int) int {
	if vCount < 2 {
		return 0
	}

	return vCount * (vCount - 1) / 2
}

// AddEdge connects v and w with the given weight.
//
// Both matrix cells are set and the edge is inserted into the sorted list
// after any existing edges of the same weight. An already connected pair is
// left untouched, whatever the new weight.
//
// Parameters:
//   - v, w: Distinct vertex ids in [0, VertexCount())
//   - weight: Edge weight
//
// Returns:
//   - bool: true if the edge was added, false if the pair was already connected
//   - error: types.ErrInvalidInput for a self-loop, an out-of-range id, or a
//     weight that is NaN, infinite or equal to the NoEdge sentinel
func (g *WeightedGraph) AddEdge(v, w types.Vertex, weight float64) (bool, error) {
	if err := g.checkPair(v, w); err != nil {
		return false, err
	}
	if g.weight[v][w] != NoEdge {
		return false, nil
	}
	if err := checkWeight(v, w, weight); err != nil {
		return false, err
	}

	g.weight[v][w] = weight
	g.weight[w][v] = weight
	g.edges.Insert(types.Edge{V: v, W: w, Weight: weight})

	return true, nil
}

func (g *WeightedGraph) checkPair(v, w types.Vertex) error {
	if v < 0 || v >= g.vCount || w < 0 || w >= g.vCount {
		return fmt.Errorf("%w: edge %d-%d outside vertex range [0, %d)", types.ErrInvalidInput, v, w, g.vCount)
	}
	if v == w {
		return fmt.Errorf("%w: self-loop on vertex %d", types.ErrInvalidInput, v)
	}

	return nil
}

// checkWeight rejects weights the matrix cannot represent.
func checkWeight(v, w types.Vertex, weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: edge %d-%d has non-finite weight", types.ErrInvalidInput, v, w)
	}
	if weight == NoEdge {
		return fmt.Errorf("%w: edge %d-%d weight collides with the no-edge sentinel %v",
			types.ErrInvalidInput, v, w, NoEdge)
	}

	return nil
}

// VertexCount returns the number of vertices.
func (g *WeightedGraph) VertexCount() int {
	return g.vCount
}

// EdgeCount returns the declared edge count.
func (g *WeightedGraph) EdgeCount() int {
	return g.eCount
}

// StoredEdgeCount returns the number of distinct edges actually stored.
func (g *WeightedGraph) StoredEdgeCount() int {
	return g.edges.Len()
}

// Weight returns the matrix cell for v and w, or NoEdge when either id is
// out of range.
func (g *WeightedGraph) Weight(v, w types.Vertex) float64 {
	if v < 0 || v >= g.vCount || w < 0 || w >= g.vCount {
		return NoEdge
	}

	return g.weight[v][w]
}

// Connected reports whether v and w share an edge.
func (g *WeightedGraph) Connected(v, w types.Vertex) bool {
	return v != w && g.Weight(v, w) != NoEdge
}

// Neighbors returns the vertices connected to v in ascending order.
func (g *WeightedGraph) Neighbors(v types.Vertex) []types.Vertex {
	if v < 0 || v >= g.vCount {
		return nil
	}

	var out []types.Vertex
	for j, wt := range g.weight[v] {
		if j != v && wt != NoEdge {
			out = append(out, j)
		}
	}

	return out
}

// Matrix returns a deep copy of the weight matrix.
func (g *WeightedGraph) Matrix() [][]float64 {
	out := make([][]float64, g.vCount)
	for i, row := range g.weight {
		out[i] = append([]float64(nil), row...)
	}

	return out
}

// Edges returns a forward cursor over the edge list, heaviest first.
func (g *WeightedGraph) Edges() *Cursor {
	return g.edges.Cursor()
}

// HeadEdge returns the heaviest edge, or false when the graph has none.
func (g *WeightedGraph) HeadEdge() (types.Edge, bool) {
	return g.edges.Head()
}

// SortedEdges returns a copy of the edge list in non-increasing weight order.
func (g *WeightedGraph) SortedEdges() []types.Edge {
	return g.edges.Slice()
}
