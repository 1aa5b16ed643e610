// Package logger provides lightweight types.Logger implementations for
// defaults and tests.
package logger

import "github.com/arloliu/topoplace/types"

// NopLogger is a no-op logger that discards all log messages.
//
// It is the default logger of every strategy and of the Planner.
//
// Example:
//
//	p := strategy.NewGreedyEdge(strategy.WithLogger(logger.NewNop()))
type NopLogger struct{}

// Compile-time assertion that NopLogger implements Logger.
var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger that discards all messages.
//
// Returns:
//   - *NopLogger: Logger that performs no operations
func NewNop() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (n *NopLogger) Debug(_ /* msg */ string, _ /* keysAndValues */ ...any) {}

// Info discards the message.
func (n *NopLogger) Info(_ /* msg */ string, _ /* keysAndValues */ ...any) {}

// Warn discards the message.
func (n *NopLogger) Warn(_ /* msg */ string, _ /* keysAndValues */ ...any) {}

// Error discards the message.
func (n *NopLogger) Error(_ /* msg */ string, _ /* keysAndValues */ ...any) {}

// Fatal discards the message and does not exit.
func (n *NopLogger) Fatal(_ /* msg */ string, _ /* keysAndValues */ ...any) {}
