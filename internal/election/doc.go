// Package election provides the publish lease for topoplace planners.
//
// Several planners may watch the same graph and share one placement bucket.
// The lease makes sure exactly one of them writes placements at any given
// time, so device records never interleave versions from two planners.
//
// # NATS KV Lease
//
// The lease lives in its own NATS KV bucket:
//   - Create (atomic): acquire the lease if the key doesn't exist
//   - Update (with revision): renew the lease while still holding it
//   - Delete: release the lease
//
// The bucket TTL bounds the lease. A planner that crashes stops renewing and
// the key expires, after which another planner acquires it.
//
// # Usage
//
//	kv, _ := kvutil.EnsureBucket(ctx, js, election.BucketConfig("topoplace-lease", 30*time.Second), 3)
//	lease := election.NewLease(kv, "topology")
//
//	held, err := lease.Acquire(ctx, "planner-a")
//	if err != nil {
//	    log.Fatalf("Failed to acquire lease: %v", err)
//	}
//	if held {
//	    // publish placements...
//	}
//	defer lease.Release(ctx)
//
// Acquire renews when the lease is already held, so calling it before every
// publish keeps the lease alive as long as publishes happen more often than
// the bucket TTL.
//
// # Concurrency Safety
//
// Lease state is guarded by a mutex; methods may be called concurrently.
package election
