package types

import (
	"fmt"
	"strconv"
)

// Vertex identifies a topology node. Valid ids are in [0, vertexCount).
type Vertex = int

// Edge is a weighted affinity between two vertices.
//
// Identity is by the unordered pair: (1, 2) and (2, 1) describe the same edge
// regardless of weight. Higher weight favors co-location.
type Edge struct {
	// V is the first endpoint as supplied by the graph source.
	V Vertex `json:"v" yaml:"v"`

	// W is the second endpoint as supplied by the graph source.
	W Vertex `json:"w" yaml:"w"`

	// Weight is the communication affinity between V and W.
	Weight float64 `json:"weight" yaml:"weight"`
}

// EdgeKey is the normalized unordered pair of an edge, smaller id first.
type EdgeKey struct {
	Lo Vertex
	Hi Vertex
}

// Key returns the normalized unordered pair identifying the edge.
func (e Edge) Key() EdgeKey {
	if e.V <= e.W {
		return EdgeKey{Lo: e.V, Hi: e.W}
	}

	return EdgeKey{Lo: e.W, Hi: e.V}
}

// Same reports whether both edges connect the same unordered pair.
// Weights are not compared.
func (e Edge) Same(other Edge) bool {
	return e.Key() == other.Key()
}

// IsSelfLoop reports whether both endpoints are the same vertex.
func (e Edge) IsSelfLoop() bool {
	return e.V == e.W
}

// Has reports whether v is one of the edge endpoints.
func (e Edge) Has(v Vertex) bool {
	return e.V == v || e.W == v
}

// String formats the edge as "v-w weight", the same layout used by the
// adjacency dump.
func (e Edge) String() string {
	return fmt.Sprintf("%d-%d %s", e.V, e.W, strconv.FormatFloat(e.Weight, 'g', -1, 64))
}

// Graph is the read-only view of a weighted undirected graph consumed by
// partitioners.
//
// Implementations must keep the weight matrix symmetric and return edges
// sorted by non-increasing weight, with at most one entry per unordered pair.
// Equal weights keep insertion order.
type Graph interface {
	// VertexCount returns the number of vertices.
	VertexCount() int

	// EdgeCount returns the declared edge count of the graph.
	EdgeCount() int

	// Weight returns the weight between v and w, 0 when v == w and NoEdge
	// when the pair is not connected or out of range.
	Weight(v, w Vertex) float64

	// Connected reports whether v and w share an edge.
	Connected(v, w Vertex) bool

	// HeadEdge returns the heaviest edge, or false when the graph has none.
	HeadEdge() (Edge, bool)

	// SortedEdges returns a copy of all edges in non-increasing weight order.
	SortedEdges() []Edge
}

// NoEdge marks "no edge" between two distinct vertices in a weight matrix.
const NoEdge = -1.0
