package kvutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"

	topotest "github.com/arloliu/topoplace/testing"
)

func TestPlacementBucketConfig(t *testing.T) {
	cfg := PlacementBucketConfig("placements", time.Minute)

	require.Equal(t, "placements", cfg.Bucket)
	require.Equal(t, time.Minute, cfg.TTL)
	require.Equal(t, uint8(5), cfg.History)
}

func TestEnsureBucket(t *testing.T) {
	_, nc := topotest.StartEmbeddedNATS(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	t.Run("creates the bucket", func(t *testing.T) {
		kv, err := EnsureBucket(ctx, js, PlacementBucketConfig("fresh", 0), 3)
		require.NoError(t, err)
		require.Equal(t, "fresh", kv.Bucket())
	})

	t.Run("opens an existing bucket", func(t *testing.T) {
		first, err := EnsureBucket(ctx, js, PlacementBucketConfig("shared", 0), 3)
		require.NoError(t, err)
		_, err = first.Put(ctx, "topology.summary", []byte("v1"))
		require.NoError(t, err)

		second, err := EnsureBucket(ctx, js, PlacementBucketConfig("shared", 0), 3)
		require.NoError(t, err)

		entry, err := second.Get(ctx, "topology.summary")
		require.NoError(t, err)
		require.Equal(t, "v1", string(entry.Value()))
	})

	t.Run("concurrent bootstrap", func(t *testing.T) {
		const planners = 5

		var wg sync.WaitGroup
		kvs := make([]jetstream.KeyValue, planners)
		errs := make([]error, planners)
		for i := range planners {
			wg.Add(1)
			go func() {
				defer wg.Done()
				kvs[i], errs[i] = EnsureBucket(ctx, js, PlacementBucketConfig("race", 0), 5)
			}()
		}
		wg.Wait()

		for i := range planners {
			require.NoError(t, errs[i], "planner %d", i)
			require.NotNil(t, kvs[i], "planner %d", i)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, ccancel := context.WithCancel(ctx)
		ccancel()

		_, err := EnsureBucket(cctx, js, PlacementBucketConfig("never", 0), 3)
		require.Error(t, err)
	})

	t.Run("invalid bucket name fails fast", func(t *testing.T) {
		start := time.Now()
		_, err := EnsureBucket(ctx, js, PlacementBucketConfig("bad name!", 0), 5)
		require.ErrorIs(t, err, jetstream.ErrInvalidBucketName)
		require.Less(t, time.Since(start), time.Second)
	})
}

func TestIsConnectivityError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", nats.ErrTimeout, true},
		{"wrapped no servers", fmt.Errorf("connect: %w", nats.ErrNoServers), true},
		{"deadline", context.DeadlineExceeded, true},
		{"refused text", errors.New("dial tcp: connection refused"), true},
		{"bucket exists", jetstream.ErrBucketExists, false},
		{"other", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsConnectivityError(tt.err))
		})
	}
}
