// Package kvutil bootstraps the NATS JetStream KV bucket that holds published
// placements.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// PlacementBucketConfig returns the KV configuration for a placement bucket.
//
// History keeps a few previous placements per device for inspection. A zero
// ttl keeps records until they are overwritten or deleted.
func PlacementBucketConfig(bucket string, ttl time.Duration) jetstream.KeyValueConfig {
	return jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "topoplace device placements",
		History:     5,
		TTL:         ttl,
	}
}

// EnsureBucket creates or opens a KV bucket with retry logic.
//
// Several planners may bootstrap the same bucket at once; losing the create
// race opens the existing bucket instead. Transient failures are retried with
// exponential backoff; other errors fail fast.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - config: KV bucket configuration
//   - maxRetries: Maximum number of attempts (<= 0 selects 3)
//
// Returns:
//   - jetstream.KeyValue: The KV bucket instance
//   - error: The last error once all attempts failed, or the context error
//
// Example:
//
//	kv, err := kvutil.EnsureBucket(ctx, js, kvutil.PlacementBucketConfig("placements", 0), 3)
func EnsureBucket(
	ctx context.Context,
	js jetstream.JetStream,
	config jetstream.KeyValueConfig,
	maxRetries int,
) (jetstream.KeyValue, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := range maxRetries {
		kv, err := js.CreateKeyValue(ctx, config)
		if err == nil {
			return kv, nil
		}

		if errors.Is(err, jetstream.ErrBucketExists) {
			kv, openErr := js.KeyValue(ctx, config.Bucket)
			if openErr == nil {
				return kv, nil
			}
			lastErr = fmt.Errorf("bucket exists but failed to open: %w", openErr)
		} else {
			if !IsConnectivityError(err) {
				return nil, fmt.Errorf("failed to create KV bucket %s: %w", config.Bucket, err)
			}
			lastErr = err
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled during KV bucket creation: %w", ctx.Err())
		}

		// 10ms, 20ms, 40ms...
		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * 10 * time.Millisecond //nolint:gosec // attempt is bounded by maxRetries
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to create/open KV bucket %s after %d attempts: %w",
		config.Bucket, maxRetries, lastErr)
}
