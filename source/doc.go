// Package source provides built-in graph source implementations.
//
// Graph sources load the communication graph that a Planner partitions.
// The package includes:
//
//   - Text: the plain "vCount eCount" header followed by "v w weight" triples
//   - YAML: a structured graph document
//   - Static: in-memory edges, for tests and embedding
//
// Text and YAML sources re-read their input on every LoadGraph call, so a
// file edited between calls is picked up by the next plan.
//
// Custom sources can be implemented by satisfying the types.GraphSource interface.
package source
