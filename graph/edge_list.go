package graph

import (
	"iter"
	"sort"

	"github.com/arloliu/topoplace/types"
)

// EdgeList is an index-addressed sequence of edges kept in non-increasing
// weight order.
type EdgeList struct {
	edges []types.Edge
}

// NewEdgeList creates an empty list with room for capacity edges.
func NewEdgeList(capacity int) *EdgeList {
	if capacity < 0 {
		capacity = 0
	}

	return &EdgeList{edges: make([]types.Edge, 0, capacity)}
}

// Insert places e after every edge whose weight is >= e.Weight.
//
// The position is found by binary search over the sorted slice, so equal
// weights keep insertion order.
//
// Returns:
//   - int: Index at which e was stored
func (l *EdgeList) Insert(e types.Edge) int {
	idx := sort.Search(len(l.edges), func(i int) bool {
		return l.edges[i].Weight < e.Weight
	})

	l.edges = append(l.edges, types.Edge{})
	copy(l.edges[idx+1:], l.edges[idx:])
	l.edges[idx] = e

	return idx
}

// Len returns the number of edges.
func (l *EdgeList) Len() int {
	return len(l.edges)
}

// At returns the edge at index i. It panics if i is out of range.
func (l *EdgeList) At(i int) types.Edge {
	return l.edges[i]
}

// Head returns the heaviest edge, or false when the list is empty.
func (l *EdgeList) Head() (types.Edge, bool) {
	if len(l.edges) == 0 {
		return types.Edge{}, false
	}

	return l.edges[0], true
}

// All iterates the edges from heaviest to lightest.
func (l *EdgeList) All() iter.Seq2[int, types.Edge] {
	return func(yield func(int, types.Edge) bool) {
		for i, e := range l.edges {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Slice returns a copy of the edges in list order.
func (l *EdgeList) Slice() []types.Edge {
	return append([]types.Edge(nil), l.edges...)
}

// Cursor returns a forward cursor positioned before the head edge.
func (l *EdgeList) Cursor() *Cursor {
	return &Cursor{list: l}
}

// Cursor walks an EdgeList from heaviest to lightest edge.
type Cursor struct {
	list *EdgeList
	pos  int
}

// Next returns the next edge, or false when the list is exhausted.
func (c *Cursor) Next() (types.Edge, bool) {
	if c.pos >= len(c.list.edges) {
		return types.Edge{}, false
	}

	e := c.list.edges[c.pos]
	c.pos++

	return e, true
}

// Remaining returns how many edges Next will still yield.
func (c *Cursor) Remaining() int {
	return len(c.list.edges) - c.pos
}
