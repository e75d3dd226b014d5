package cache

import (
	"hash/maphash"
	"sync"

	"github.com/hupe1980/implicit/resource"
)

const numShards = 64

// ShardedLRU distributes entries across 64 LRU shards to reduce lock
// contention. Each shard holds capacity/64 bytes.
type ShardedLRU struct {
	shards [numShards]*LRU
	seed   maphash.Seed
}

var _ Cache = (*ShardedLRU)(nil)

// NewShardedLRU creates a new sharded LRU cache.
// The capacity is divided evenly across all shards.
func NewShardedLRU(capacity int64, rc *resource.Controller) *ShardedLRU {
	shardCapacity := max(capacity/numShards, 1)

	s := &ShardedLRU{seed: maphash.MakeSeed()}
	for i := range numShards {
		s.shards[i] = NewLRU(shardCapacity, rc)
	}
	return s
}

func (s *ShardedLRU) shard(key string) *LRU {
	return s.shards[maphash.String(s.seed, key)%numShards]
}

// Get returns a cached value.
func (s *ShardedLRU) Get(key string) ([]byte, bool) {
	return s.shard(key).Get(key)
}

// Set caches a value.
func (s *ShardedLRU) Set(key string, b []byte) {
	s.shard(key).Set(key, b)
}

// Remove drops key if present.
func (s *ShardedLRU) Remove(key string) {
	s.shard(key).Remove(key)
}

// Invalidate removes entries matching the predicate.
// This visits every shard, which is expensive but rare.
func (s *ShardedLRU) Invalidate(predicate func(key string) bool) {
	var wg sync.WaitGroup
	wg.Add(numShards)

	for i := range numShards {
		go func(shard *LRU) {
			defer wg.Done()
			shard.Invalidate(predicate)
		}(s.shards[i])
	}

	wg.Wait()
}

// Stats returns aggregated hit/miss statistics.
func (s *ShardedLRU) Stats() (hits, misses int64) {
	for i := range numShards {
		h, m := s.shards[i].Stats()
		hits += h
		misses += m
	}
	return hits, misses
}

// Size returns the total size across all shards.
func (s *ShardedLRU) Size() int64 {
	var total int64
	for i := range numShards {
		total += s.shards[i].Size()
	}
	return total
}

// ShardStats describes one shard.
type ShardStats struct {
	ShardID int
	Size    int64
	Entries int
	Hits    int64
	Misses  int64
}

// ShardStats returns per-shard statistics.
func (s *ShardedLRU) ShardStats() []ShardStats {
	stats := make([]ShardStats, numShards)
	for i := range numShards {
		h, m := s.shards[i].Stats()
		stats[i] = ShardStats{
			ShardID: i,
			Size:    s.shards[i].Size(),
			Entries: s.shards[i].Len(),
			Hits:    h,
			Misses:  m,
		}
	}
	return stats
}
