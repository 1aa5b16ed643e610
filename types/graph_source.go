package types

import "context"

// GraphSource loads the communication graph of a topology.
//
// Implementations can read from various backends:
//   - Text: the legacy "vCount eCount" + triples format
//   - YAML: a structured graph document
//   - Static: in-memory edges for tests and embedding
//
// The Planner calls LoadGraph on every Plan call; sources that are expensive to
// read should cache internally.
type GraphSource interface {
	// LoadGraph builds the graph.
	//
	// Implementations should:
	//   - Fail fast and return no partial graph on malformed input
	//   - Handle context cancellation gracefully
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - Graph: Fully constructed, read-only graph
	//   - error: ErrInvalidInput, ErrMalformedEdgeCount or an I/O error
	LoadGraph(ctx context.Context) (Graph, error)
}
