package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/topoplace/graph"
	"github.com/arloliu/topoplace/types"
)

// Document is the YAML form of a graph.
//
//	vertices: 4
//	edges:
//	  - {v: 0, w: 1, weight: 5}
//	  - {v: 1, w: 2, weight: 3}
//
// edgeCount is optional; when present it must equal len(edges).
type Document struct {
	Vertices  int          `yaml:"vertices"`
	EdgeCount *int         `yaml:"edgeCount,omitempty"`
	Edges     []types.Edge `yaml:"edges"`
}

// YAML loads graphs from YAML documents.
type YAML struct {
	read func() ([]byte, error)
}

var _ types.GraphSource = (*YAML)(nil)

// NewYAML creates a source over an in-memory YAML document.
func NewYAML(data []byte) *YAML {
	buf := bytes.Clone(data)

	return &YAML{read: func() ([]byte, error) { return buf, nil }}
}

// NewYAMLFile creates a source that reads the YAML file at path on every load.
func NewYAMLFile(path string) *YAML {
	return &YAML{read: func() ([]byte, error) { return os.ReadFile(path) }}
}

// LoadGraph decodes the document and builds the graph.
//
// Unknown fields are rejected. Duplicate pairs keep their first weight.
//
// Returns:
//   - types.Graph: A *graph.WeightedGraph
//   - error: types.ErrInvalidInput, types.ErrMalformedEdgeCount, an I/O error
//     or the context error
func (y *YAML) LoadGraph(ctx context.Context) (types.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := y.read()
	if err != nil {
		return nil, err
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}

	g, err := doc.Build()
	if err != nil {
		return nil, err
	}

	return g, nil
}

// DecodeDocument parses a YAML graph document in strict mode.
func DecodeDocument(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty graph document", types.ErrInvalidInput)
		}

		return nil, fmt.Errorf("%w: %w", types.ErrInvalidInput, err)
	}

	return &doc, nil
}

// Build constructs the graph described by the document.
func (d *Document) Build() (*graph.WeightedGraph, error) {
	if d.EdgeCount != nil && *d.EdgeCount != len(d.Edges) {
		return nil, fmt.Errorf("%w: edgeCount %d but %d edges listed",
			types.ErrMalformedEdgeCount, *d.EdgeCount, len(d.Edges))
	}

	triples := make([]graph.Triple, len(d.Edges))
	for i, e := range d.Edges {
		triples[i] = graph.Triple{V: e.V, W: e.W, Weight: e.Weight}
	}

	return graph.FromTriples(d.Vertices, len(d.Edges), graph.SliceReader(triples))
}

// Encode renders g as a YAML document.
func Encode(w io.Writer, g types.Graph) error {
	edges := g.SortedEdges()
	n := len(edges)
	doc := Document{Vertices: g.VertexCount(), EdgeCount: &n, Edges: edges}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}

	return enc.Close()
}
