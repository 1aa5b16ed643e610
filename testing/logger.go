package testing

import (
	"testing"

	"github.com/arloliu/topoplace/internal/logger"
	"github.com/arloliu/topoplace/types"
)

// NewTestLogger creates a logger that writes through tb.Log, prefixed with
// the component name when one is given.
//
// Fatal marks the test as failed without stopping it, so the logger is safe
// to hand to planners and publishers that log from background goroutines.
//
// Example:
//
//	pub := publisher.NewKV(kv, "topology", topotest.NewTestLogger(t, "publisher"), nil)
func NewTestLogger(tb testing.TB, component ...string) types.Logger {
	l := logger.NewTest(tb)
	if len(component) > 0 && component[0] != "" {
		return l.Named(component[0])
	}

	return l
}
