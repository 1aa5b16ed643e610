// Package graph provides the weighted, undirected communication graph consumed
// by the partitioning strategies.
//
// A WeightedGraph owns two views of the same topology:
//
//   - a symmetric vertexCount×vertexCount weight matrix, with 0 on the diagonal
//     and NoEdge (-1) marking unconnected pairs
//   - an EdgeList holding every edge once, sorted by non-increasing weight
//
// Equal weights keep insertion order in the EdgeList. The greedy partitioner
// seeds on the head edge and scans the rest in list order, so the tie-break is
// part of the contract.
//
// Graphs are built once (New + AddEdge, or FromTriples) and treated as
// read-only afterwards. Accessors return copies.
package graph
