// Package testing provides test utilities for topoplace users.
//
// It follows Go's convention of shipping testing helpers in a dedicated
// package (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single in-process NATS server with JetStream
//   - CreateJetStreamKV: In-memory KV bucket for publisher tests
//   - NewTestLogger: types.Logger that writes through testing.TB, optionally named
//
// Example usage:
//
//	import (
//	    "testing"
//	    topotest "github.com/arloliu/topoplace/testing"
//	)
//
//	func TestPlacement(t *testing.T) {
//	    _, nc := topotest.StartEmbeddedNATS(t)
//	    kv := topotest.CreateJetStreamKV(t, nc, "placements")
//	    _ = kv
//	}
package testing
