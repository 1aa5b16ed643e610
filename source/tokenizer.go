package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/topoplace/graph"
	"github.com/arloliu/topoplace/types"
)

// Tokenizer reads the whitespace-separated text graph format.
//
// Tokenizer implements graph.TripleReader once the header has been read.
type Tokenizer struct {
	scanner *bufio.Scanner
	tokens  int
}

var _ graph.TripleReader = (*Tokenizer)(nil)

// NewTokenizer creates a tokenizer over r.
func NewTokenizer(r io.Reader) *Tokenizer {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)

	return &Tokenizer{scanner: s}
}

// ReadHeader reads the vertex and edge counts.
//
// Returns:
//   - vCount, eCount: Declared counts
//   - error: types.ErrInvalidInput when the header is missing or not numeric
func (t *Tokenizer) ReadHeader() (vCount, eCount int, err error) {
	if vCount, err = t.nextInt(); err != nil {
		return 0, 0, headerError(err)
	}
	if eCount, err = t.nextInt(); err != nil {
		return 0, 0, headerError(err)
	}

	return vCount, eCount, nil
}

// ReadTriple reads one "v w weight" record.
//
// Returns io.EOF when no tokens remain and io.ErrUnexpectedEOF when the
// input stops inside a record.
func (t *Tokenizer) ReadTriple() (graph.Triple, error) {
	v, err := t.nextInt()
	if err != nil {
		return graph.Triple{}, err
	}

	w, err := t.nextInt()
	if err != nil {
		return graph.Triple{}, unexpected(err)
	}

	tok, err := t.next()
	if err != nil {
		return graph.Triple{}, unexpected(err)
	}
	weight, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return graph.Triple{}, fmt.Errorf("%w: token %d: weight %q is not a number",
			types.ErrInvalidInput, t.tokens, tok)
	}

	return graph.Triple{V: v, W: w, Weight: weight}, nil
}

func (t *Tokenizer) next() (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}
	t.tokens++

	return t.scanner.Text(), nil
}

func (t *Tokenizer) nextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d: %q is not an integer", types.ErrInvalidInput, t.tokens, tok)
	}

	return n, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}

func headerError(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: missing \"vertexCount edgeCount\" header", types.ErrInvalidInput)
	}

	return err
}
