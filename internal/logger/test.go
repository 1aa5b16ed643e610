package logger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/arloliu/topoplace/types"
)

// TestLogger implements types.Logger on top of testing.TB so log lines show
// up next to the test that produced them.
//
// Unlike t.Fatalf, Fatal only marks the test as failed. Planner hooks and
// publishers log from background goroutines, where FailNow is not allowed.
type TestLogger struct {
	tb          testing.TB
	name        string
	fields      []any
	failOnError bool
}

// Compile-time assertion that TestLogger implements Logger.
var _ types.Logger = (*TestLogger)(nil)

// NewTest creates a test logger that writes through tb.Logf.
//
// Parameters:
//   - tb: The test or benchmark to write logs to
//
// Returns:
//   - *TestLogger: Logger with no name and no fields
//
// Example:
//
//	func TestPublish(t *testing.T) {
//	    log := logger.NewTest(t).Named("publisher").With("bucket", "placements")
//	    log.Info("plan published", "version", 3)
//	    // INFO [publisher] plan published bucket=placements version=3
//	}
func NewTest(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

// Named returns a copy that prefixes every line with [name].
func (l *TestLogger) Named(name string) *TestLogger {
	c := l.clone()
	c.name = name

	return c
}

// With returns a copy that appends keysAndValues to every line.
func (l *TestLogger) With(keysAndValues ...any) *TestLogger {
	c := l.clone()
	c.fields = append(c.fields, keysAndValues...)

	return c
}

// FailOnError returns a copy whose Error calls fail the test.
func (l *TestLogger) FailOnError() *TestLogger {
	c := l.clone()
	c.failOnError = true

	return c
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.tb.Helper()
	l.tb.Log(l.line("DEBUG", msg, keysAndValues))
}

// Info logs an info-level message with optional key-value pairs.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.tb.Helper()
	l.tb.Log(l.line("INFO", msg, keysAndValues))
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.tb.Helper()
	l.tb.Log(l.line("WARN", msg, keysAndValues))
}

// Error logs an error-level message. With FailOnError the test is marked
// as failed.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.tb.Helper()
	if l.failOnError {
		l.tb.Error(l.line("ERROR", msg, keysAndValues))
		return
	}
	l.tb.Log(l.line("ERROR", msg, keysAndValues))
}

// Fatal logs a fatal-level message and marks the test as failed. It does
// not stop the test goroutine.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.tb.Helper()
	l.tb.Error(l.line("FATAL", msg, keysAndValues))
}

func (l *TestLogger) clone() *TestLogger {
	c := *l
	c.fields = append([]any(nil), l.fields...)

	return &c
}

func (l *TestLogger) line(level, msg string, keysAndValues []any) string {
	var b strings.Builder
	b.WriteString(level)
	if l.name != "" {
		b.WriteString(" [")
		b.WriteString(l.name)
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(msg)
	writeKeyValues(&b, l.fields)
	writeKeyValues(&b, keysAndValues)

	return b.String()
}

// writeKeyValues appends " k=v" pairs; a trailing key without a value is
// written as k=<missing>.
func writeKeyValues(b *strings.Builder, keysAndValues []any) {
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(b, " %v=<missing>", keysAndValues[i])
		}
	}
}
