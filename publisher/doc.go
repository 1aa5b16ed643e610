// Package publisher writes computed plans to the placement layer.
//
// KV publishes one record per device to a NATS JetStream KV bucket under
// "<prefix>.device-<i>", plus a "<prefix>.summary" record. Every publish
// carries a version one higher than the highest version already present in
// the bucket, so consumers can discard out-of-order records.
package publisher
