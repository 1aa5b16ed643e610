package strategy

import (
	"fmt"
	"slices"

	"github.com/arloliu/topoplace/types"
)

// Names lists the built-in strategy names accepted by New.
func Names() []string {
	return []string{NameGreedyEdge, NameRoundRobin, NameConsistentHash}
}

// New builds the built-in strategy registered under name.
//
// Parameters:
//   - name: "greedy-edge", "round-robin" or "consistent-hash"; empty selects greedy-edge
//   - opts: Options forwarded to the strategy constructor
//
// Returns:
//   - types.Partitioner: The strategy
//   - error: types.ErrUnknownStrategy for any other name
func New(name string, opts ...Option) (types.Partitioner, error) {
	switch name {
	case "", NameGreedyEdge:
		return NewGreedyEdge(opts...), nil
	case NameRoundRobin:
		return NewRoundRobin(opts...), nil
	case NameConsistentHash:
		return NewConsistentHash(opts...), nil
	default:
		return nil, fmt.Errorf("%w %q (known: %v)", types.ErrUnknownStrategy, name, Names())
	}
}

// Known reports whether name selects a built-in strategy.
func Known(name string) bool {
	return name == "" || slices.Contains(Names(), name)
}
