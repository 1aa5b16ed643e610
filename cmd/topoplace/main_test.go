package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/topoplace"
	"github.com/arloliu/topoplace/source"
)

func TestParseCapacities(t *testing.T) {
	caps, err := parseCapacities("4, 4,2")
	require.NoError(t, err)
	require.Equal(t, []int{4, 4, 2}, caps)

	_, err = parseCapacities("4,x")
	require.ErrorContains(t, err, `"x"`)
}

func TestLoadConfig(t *testing.T) {
	t.Run("flags only", func(t *testing.T) {
		cfg, err := loadConfig(flags{capacities: "3,1", strategy: "round-robin", logLevel: "debug"})
		require.NoError(t, err)
		require.Equal(t, []int{3, 1}, cfg.Capacities)
		require.Equal(t, "round-robin", cfg.Strategy)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("flags override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		require.NoError(t, os.WriteFile(path, []byte("capacities: [2, 2]\nstrategy: consistent-hash\n"), 0o600))

		cfg, err := loadConfig(flags{configPath: path, capacities: "5"})
		require.NoError(t, err)
		require.Equal(t, []int{5}, cfg.Capacities)
		require.Equal(t, "consistent-hash", cfg.Strategy)
	})

	t.Run("no capacities", func(t *testing.T) {
		_, err := loadConfig(flags{})
		require.ErrorIs(t, err, topoplace.ErrInvalidConfig)
	})
}

func TestGraphSource(t *testing.T) {
	cfg := topoplace.TestConfig()

	src, err := graphSource(flags{graphPath: "g.txt"}, &cfg)
	require.NoError(t, err)
	require.IsType(t, &source.Text{}, src)

	src, err = graphSource(flags{graphPath: "g.yaml", format: "yaml"}, &cfg)
	require.NoError(t, err)
	require.IsType(t, &source.YAML{}, src)

	_, err = graphSource(flags{graphPath: "g", format: "csv"}, &cfg)
	require.Error(t, err)
}

func TestRun_PlansTextGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	require.NoError(t, os.WriteFile(path, []byte("4 3\n0 1 5\n2 3 4\n1 2 1\n"), 0o600))

	require.NoError(t, run(context.Background(), flags{graphPath: path, capacities: "2,2", logLevel: "error"}))
	require.NoError(t, run(context.Background(), flags{graphPath: path, capacities: "2,2", dump: true}))

	require.Error(t, run(context.Background(), flags{capacities: "2,2"}))
}
