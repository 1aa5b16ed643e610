package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/topoplace/types"
)

func TestSlogLogger_ImplementsInterface(_ *testing.T) {
	var _ types.Logger = (*SlogLogger)(nil)
}

func TestNewSlogDefault(t *testing.T) {
	logger := NewSlogDefault()

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *SlogLogger)
		want  []string
		level slog.Level
	}{
		{
			name:  "debug",
			log:   func(l *SlogLogger) { l.Debug("seed edge", "v", 0) },
			want:  []string{"seed edge", "v=0", "level=DEBUG"},
			level: slog.LevelDebug,
		},
		{
			name:  "info",
			log:   func(l *SlogLogger) { l.Info("plan computed", "groups", 2) },
			want:  []string{"plan computed", "groups=2", "level=INFO"},
			level: slog.LevelInfo,
		},
		{
			name:  "warn",
			log:   func(l *SlogLogger) { l.Warn("unmerged crossing", "edge", "1-2") },
			want:  []string{"unmerged crossing", "edge=1-2", "level=WARN"},
			level: slog.LevelWarn,
		},
		{
			name:  "error",
			log:   func(l *SlogLogger) { l.Error("publish failed", "error", "timeout") },
			want:  []string{"publish failed", "error=timeout", "level=ERROR"},
			level: slog.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.log(NewText(buf, tt.level))

			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewText(buf, slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	assert.Empty(t, buf.String())

	logger.Warn("warn message")
	logger.Error("error message")
	assert.Contains(t, buf.String(), "warn message")
	assert.Contains(t, buf.String(), "error message")
}

func TestSlogLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewText(buf, slog.LevelInfo).With("strategy", "greedy-edge")

	logger.Info("partition complete", "groups", 3)

	assert.Contains(t, buf.String(), "strategy=greedy-edge")
	assert.Contains(t, buf.String(), "groups=3")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
