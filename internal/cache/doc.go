// Package cache provides an in-memory LRU for immutable blob contents.
//
// ShardedLRU spreads entries over 64 shards selected by a maphash of the key,
// each guarded by its own mutex. When a resource.Controller is supplied every
// cached byte is reserved against its memory budget, so cached snapshots and
// reconstruction scratch space share one limit.
package cache
