package election

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	topotest "github.com/arloliu/topoplace/testing"
)

func TestBucketConfig(t *testing.T) {
	cfg := BucketConfig("lease", 30*time.Second)

	require.Equal(t, "lease", cfg.Bucket)
	require.Equal(t, 30*time.Second, cfg.TTL)
}

func TestLease_Acquire(t *testing.T) {
	t.Run("acquires when free", func(t *testing.T) {
		ctx := t.Context()

		_, nc := topotest.StartEmbeddedNATS(t)
		kv := topotest.CreateJetStreamKV(t, nc, "lease-acquire-1")

		lease := NewLease(kv, "topology")

		held, err := lease.Acquire(ctx, "planner-a")
		require.NoError(t, err)
		require.True(t, held)
		require.Equal(t, "planner-a", lease.Holder())
	})

	t.Run("second holder is refused", func(t *testing.T) {
		ctx := t.Context()

		_, nc := topotest.StartEmbeddedNATS(t)
		kv := topotest.CreateJetStreamKV(t, nc, "lease-acquire-2")

		first := NewLease(kv, "topology")
		held, err := first.Acquire(ctx, "planner-a")
		require.NoError(t, err)
		require.True(t, held)

		second := NewLease(kv, "topology")
		held, err = second.Acquire(ctx, "planner-b")
		require.NoError(t, err)
		require.False(t, held)
		require.Empty(t, second.Holder())
	})

	t.Run("acquire again renews", func(t *testing.T) {
		ctx := t.Context()

		_, nc := topotest.StartEmbeddedNATS(t)
		kv := topotest.CreateJetStreamKV(t, nc, "lease-acquire-3")

		lease := NewLease(kv, "topology")
		_, err := lease.Acquire(ctx, "planner-a")
		require.NoError(t, err)

		entry, err := kv.Get(ctx, "topology")
		require.NoError(t, err)

		held, err := lease.Acquire(ctx, "planner-a")
		require.NoError(t, err)
		require.True(t, held)

		renewed, err := kv.Get(ctx, "topology")
		require.NoError(t, err)
		require.Greater(t, renewed.Revision(), entry.Revision())
	})

	t.Run("empty holder", func(t *testing.T) {
		_, nc := topotest.StartEmbeddedNATS(t)
		kv := topotest.CreateJetStreamKV(t, nc, "lease-acquire-4")

		held, err := NewLease(kv, "topology").Acquire(t.Context(), "")
		require.ErrorIs(t, err, ErrEmptyOwner)
		require.False(t, held)
	})
}

func TestLease_Renew(t *testing.T) {
	t.Run("not held", func(t *testing.T) {
		_, nc := topotest.StartEmbeddedNATS(t)
		kv := topotest.CreateJetStreamKV(t, nc, "lease-renew-1")

		require.ErrorIs(t, NewLease(kv, "topology").Renew(t.Context()), ErrNotHolder)
	})

	t.Run("lost after expiry", func(t *testing.T) {
		ctx := t.Context()

		_, nc := topotest.StartEmbeddedNATS(t)
		kv := topotest.CreateJetStreamKV(t, nc, "lease-renew-2")

		first := NewLease(kv, "topology")
		_, err := first.Acquire(ctx, "planner-a")
		require.NoError(t, err)

		// Simulate TTL expiry and a takeover.
		require.NoError(t, kv.Delete(ctx, "topology"))
		second := NewLease(kv, "topology")
		held, err := second.Acquire(ctx, "planner-b")
		require.NoError(t, err)
		require.True(t, held)

		require.ErrorIs(t, first.Renew(ctx), ErrLeaseLost)
		require.Empty(t, first.Holder())

		held, err = first.Acquire(ctx, "planner-a")
		require.NoError(t, err)
		require.False(t, held)
	})
}

func TestLease_Release(t *testing.T) {
	ctx := t.Context()

	_, nc := topotest.StartEmbeddedNATS(t)
	kv := topotest.CreateJetStreamKV(t, nc, "lease-release")

	first := NewLease(kv, "topology")
	require.ErrorIs(t, first.Release(ctx), ErrNotHolder)

	_, err := first.Acquire(ctx, "planner-a")
	require.NoError(t, err)
	require.NoError(t, first.Release(ctx))
	require.Empty(t, first.Holder())

	second := NewLease(kv, "topology")
	held, err := second.Acquire(ctx, "planner-b")
	require.NoError(t, err)
	require.True(t, held, "released lease is free at once")
}

func TestLease_Held(t *testing.T) {
	ctx := t.Context()

	_, nc := topotest.StartEmbeddedNATS(t)
	kv := topotest.CreateJetStreamKV(t, nc, "lease-held")

	lease := NewLease(kv, "topology")
	held, err := lease.Held(ctx)
	require.NoError(t, err)
	require.False(t, held)

	_, err = lease.Acquire(ctx, "planner-a")
	require.NoError(t, err)

	held, err = lease.Held(ctx)
	require.NoError(t, err)
	require.True(t, held)

	require.NoError(t, kv.Delete(ctx, "topology"))
	held, err = lease.Held(ctx)
	require.NoError(t, err)
	require.False(t, held)
}
