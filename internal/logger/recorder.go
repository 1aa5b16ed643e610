package logger

import (
	"sync"

	"github.com/arloliu/topoplace/types"
)

// Entry is one message captured by a Recorder.
type Entry struct {
	Level         string
	Msg           string
	KeysAndValues []any
}

// Recorder captures log entries in memory so tests can assert on them.
//
// Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ types.Logger = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Debug records a debug entry.
func (r *Recorder) Debug(msg string, keysAndValues ...any) { r.add("debug", msg, keysAndValues) }

// Info records an info entry.
func (r *Recorder) Info(msg string, keysAndValues ...any) { r.add("info", msg, keysAndValues) }

// Warn records a warn entry.
func (r *Recorder) Warn(msg string, keysAndValues ...any) { r.add("warn", msg, keysAndValues) }

// Error records an error entry.
func (r *Recorder) Error(msg string, keysAndValues ...any) { r.add("error", msg, keysAndValues) }

// Fatal records a fatal entry and does not exit.
func (r *Recorder) Fatal(msg string, keysAndValues ...any) { r.add("fatal", msg, keysAndValues) }

// Entries returns a copy of the captured entries in log order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Entry(nil), r.entries...)
}

// Messages returns the messages logged at level, in log order.
func (r *Recorder) Messages(level string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, e := range r.entries {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}

	return out
}

func (r *Recorder) add(level, msg string, kv []any) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KeysAndValues: append([]any(nil), kv...)})
	r.mu.Unlock()
}
