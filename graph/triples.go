package graph

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/arloliu/topoplace/types"
)

// Triple is one "v w weight" record of a graph source.
type Triple struct {
	V      types.Vertex
	W      types.Vertex
	Weight float64
}

// TripleReader yields edge triples one at a time.
//
// ReadTriple returns io.EOF once the source is exhausted, and
// io.ErrUnexpectedEOF when the source ends in the middle of a triple.
type TripleReader interface {
	ReadTriple() (Triple, error)
}

// TripleReaderFunc adapts a function to TripleReader.
type TripleReaderFunc func() (Triple, error)

// ReadTriple calls f.
func (f TripleReaderFunc) ReadTriple() (Triple, error) {
	return f()
}

// SliceReader returns a TripleReader over an in-memory slice.
func SliceReader(triples []Triple) TripleReader {
	i := 0

	return TripleReaderFunc(func() (Triple, error) {
		if i >= len(triples) {
			return Triple{}, io.EOF
		}
		t := triples[i]
		i++

		return t, nil
	})
}

// Convention selects how many triples a source carries for a declared edge count.
type Convention int

const (
	// ConventionExact expects exactly eCount triples.
	ConventionExact Convention = iota

	// ConventionDoubled expects 2*eCount triples, each undirected edge
	// listed once per direction. Only the first occurrence of a pair is kept.
	ConventionDoubled
)

// String returns the configuration name of the convention.
func (c Convention) String() string {
	switch c {
	case ConventionExact:
		return "exact"
	case ConventionDoubled:
		return "doubled"
	default:
		return "unknown"
	}
}

// Expected returns the number of triples a source must supply for eCount edges.
// A doubled count that would overflow saturates at math.MaxInt.
func (c Convention) Expected(eCount int) int {
	if c == ConventionDoubled {
		if eCount > math.MaxInt/2 {
			return math.MaxInt
		}

		return 2 * eCount
	}

	return eCount
}

// ParseConvention parses "exact" or "doubled" (case-insensitive). An empty
// string selects ConventionExact.
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return ConventionExact, nil
	case "doubled":
		return ConventionDoubled, nil
	default:
		return ConventionExact, fmt.Errorf("%w: unknown edge convention %q", types.ErrInvalidInput, s)
	}
}

// BuildOption configures FromTriples.
type BuildOption func(*buildOptions)

type buildOptions struct {
	convention    Convention
	allowTrailing bool
}

// WithConvention sets the triple-count convention (default ConventionExact).
func WithConvention(c Convention) BuildOption {
	return func(o *buildOptions) {
		o.convention = c
	}
}

// WithTrailingData stops FromTriples from reading past the expected triples.
// Extra records are then left unread instead of failing the build.
func WithTrailingData() BuildOption {
	return func(o *buildOptions) {
		o.allowTrailing = true
	}
}

// FromTriples builds a graph from a stream of edge triples.
//
// The first triple seeds the edge list. The remaining expected-1 triples are
// then consumed in order:
//   - v == w fails the build with types.ErrInvalidInput
//   - an unconnected pair is recorded in the matrix and inserted into the list
//   - an already connected pair is discarded
//
// A declared edge count of 0 reads no triples and yields an edgeless graph.
//
// Parameters:
//   - vCount: Number of vertices
//   - eCount: Declared number of edges
//   - r: Triple stream
//   - opts: Optional configuration (WithConvention, WithTrailingData)
//
// Returns:
//   - *WeightedGraph: Fully built graph
//   - error: types.ErrInvalidInput or types.ErrMalformedEdgeCount; no partial graph is returned
func FromTriples(vCount, eCount int, r TripleReader, opts ...BuildOption) (*WeightedGraph, error) {
	options := buildOptions{convention: ConventionExact}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	g, err := New(vCount, eCount)
	if err != nil {
		return nil, err
	}

	expected := options.convention.Expected(eCount)
	for i := range expected {
		t, err := r.ReadTriple()
		if err != nil {
			return nil, countError(err, expected, i)
		}

		if _, err := g.AddEdge(t.V, t.W, t.Weight); err != nil {
			return nil, fmt.Errorf("triple %d: %w", i, err)
		}
	}

	if options.allowTrailing {
		return g, nil
	}

	_, err = r.ReadTriple()
	switch {
	case errors.Is(err, io.EOF):
		return g, nil
	case err == nil, errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: expected %d triples (%s convention), found more",
			types.ErrMalformedEdgeCount, expected, options.convention)
	default:
		return nil, err
	}
}

func countError(err error, expected, got int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: expected %d triples, got %d", types.ErrMalformedEdgeCount, expected, got)
	}

	return err
}
