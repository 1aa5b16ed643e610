package source

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/arloliu/topoplace/graph"
	"github.com/arloliu/topoplace/types"
)

// TextOption configures a Text source.
type TextOption func(*Text)

// WithConvention sets the triple-count convention (default graph.ConventionExact).
//
// Parameters:
//   - c: graph.ConventionExact or graph.ConventionDoubled
//
// Returns:
//   - TextOption: Configuration option
func WithConvention(c graph.Convention) TextOption {
	return func(t *Text) {
		t.convention = c
	}
}

// Text loads graphs in the plain text format:
//
//	vCount eCount
//	v w weight
//	...
//
// All tokens are whitespace separated; line breaks carry no meaning.
type Text struct {
	open       func() (io.ReadCloser, error)
	convention graph.Convention
}

var _ types.GraphSource = (*Text)(nil)

// NewText creates a source that parses the given text on every load.
//
// Example:
//
//	src := source.NewText("4 3\n0 1 5\n1 2 3\n2 3 4\n")
//	g, err := src.LoadGraph(ctx)
func NewText(text string, opts ...TextOption) *Text {
	return newText(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(text)), nil
	}, opts)
}

// NewFile creates a source that reads the text file at path on every load.
//
// Parameters:
//   - path: Path to a text graph file
//   - opts: Optional configuration (WithConvention)
//
// Returns:
//   - *Text: Initialized file source
func NewFile(path string, opts ...TextOption) *Text {
	return newText(func() (io.ReadCloser, error) {
		return os.Open(path)
	}, opts)
}

func newText(open func() (io.ReadCloser, error), opts []TextOption) *Text {
	t := &Text{open: open, convention: graph.ConventionExact}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t
}

// LoadGraph parses the input and builds the graph.
//
// Returns:
//   - types.Graph: A *graph.WeightedGraph
//   - error: types.ErrInvalidInput, types.ErrMalformedEdgeCount, an I/O error
//     or the context error
func (t *Text) LoadGraph(ctx context.Context) (types.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := t.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	g, err := Parse(ctx, rc, t.convention)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// Parse reads one text graph from r.
//
// The context is checked before every triple, so a cancelled context stops
// a long read promptly.
//
// Parameters:
//   - ctx: Context for cancellation
//   - r: Text input
//   - convention: Triple-count convention
//
// Returns:
//   - *graph.WeightedGraph: The graph
//   - error: types.ErrInvalidInput, types.ErrMalformedEdgeCount, an I/O error
//     or the context error
func Parse(ctx context.Context, r io.Reader, convention graph.Convention) (*graph.WeightedGraph, error) {
	tok := NewTokenizer(r)

	vCount, eCount, err := tok.ReadHeader()
	if err != nil {
		return nil, err
	}

	next := graph.TripleReaderFunc(func() (graph.Triple, error) {
		if err := ctx.Err(); err != nil {
			return graph.Triple{}, err
		}

		return tok.ReadTriple()
	})

	return graph.FromTriples(vCount, eCount, next, graph.WithConvention(convention))
}
