package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/implicit/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU(30, nil)

	c.Set("a", make([]byte, 10))
	c.Set("b", make([]byte, 10))
	c.Set("c", make([]byte, 10))
	_, ok := c.Get("a") // a becomes most recent
	require.True(t, ok)

	c.Set("d", make([]byte, 10))
	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	for _, k := range []string{"a", "c", "d"} {
		_, ok := c.Get(k)
		assert.True(t, ok, k)
	}
	assert.Equal(t, int64(30), c.Size())
	assert.Equal(t, 3, c.Len())
}

func TestLRU_EdgeCases(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 100})
	c := NewLRU(50, rc)

	c.Set("k", make([]byte, 60))
	_, ok := c.Get("k")
	assert.False(t, ok, "value larger than capacity should not be cached")
	assert.Zero(t, rc.MemoryUsage())

	c.Set("k", make([]byte, 10))
	assert.Equal(t, int64(10), c.Size())
	c.Set("k", make([]byte, 20))
	assert.Equal(t, int64(20), c.Size())
	c.Set("k", make([]byte, 5))
	assert.Equal(t, int64(5), c.Size())
	assert.Equal(t, int64(5), rc.MemoryUsage())

	c.Set("k", make([]byte, 60))
	_, ok = c.Get("k")
	assert.False(t, ok, "oversized update drops the entry")
	assert.Zero(t, rc.MemoryUsage())
}

func TestLRU_ControllerDeniesGrowth(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 10})
	c := NewLRU(50, rc)

	c.Set("k", make([]byte, 8))
	c.Set("k", make([]byte, 12))

	val, ok := c.Get("k")
	require.True(t, ok)
	assert.Len(t, val, 8, "update should have been rejected by the controller")

	c.Set("other", make([]byte, 4))
	_, ok = c.Get("other")
	assert.False(t, ok)
	assert.Equal(t, int64(8), rc.MemoryUsage())
}

func TestLRU_RemoveAndInvalidate(t *testing.T) {
	rc := resource.NewController(resource.Config{})
	c := NewLRU(100, rc)
	c.Set("grids/a.igrd", []byte("a"))
	c.Set("grids/b.igrd", []byte("b"))
	c.Set("CURRENT", []byte("grids/b.igrd"))

	c.Remove("CURRENT")
	c.Remove("missing")
	_, ok := c.Get("CURRENT")
	assert.False(t, ok)

	c.Invalidate(func(k string) bool { return k == "grids/a.igrd" })
	_, ok = c.Get("grids/a.igrd")
	assert.False(t, ok)
	_, ok = c.Get("grids/b.igrd")
	assert.True(t, ok)
	assert.Equal(t, int64(1), rc.MemoryUsage())
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU(100, nil)
	c.Set("k", []byte{1})
	c.Get("k")
	c.Get("missing")

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestShardedLRU(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		c := NewShardedLRU(1<<20, nil)
		c.Set("grids/frame-0001.igrd", []byte("payload"))

		got, ok := c.Get("grids/frame-0001.igrd")
		require.True(t, ok)
		assert.Equal(t, "payload", string(got))

		_, ok = c.Get("grids/frame-0002.igrd")
		assert.False(t, ok)

		c.Remove("grids/frame-0001.igrd")
		_, ok = c.Get("grids/frame-0001.igrd")
		assert.False(t, ok)
	})

	t.Run("Distribution", func(t *testing.T) {
		c := NewShardedLRU(64<<20, nil)
		for i := range 1000 {
			c.Set(fmt.Sprintf("grids/frame-%04d.igrd", i), make([]byte, 1024))
		}

		nonEmpty := 0
		entries := 0
		for _, s := range c.ShardStats() {
			if s.Size > 0 {
				nonEmpty++
			}
			entries += s.Entries
		}
		assert.Equal(t, 1000, entries)
		assert.GreaterOrEqual(t, nonEmpty, 30, "poor shard distribution")
		assert.Equal(t, int64(1000*1024), c.Size())
	})

	t.Run("Invalidate", func(t *testing.T) {
		c := NewShardedLRU(1<<20, nil)
		for i := range 100 {
			c.Set(fmt.Sprintf("k%d", i), []byte{byte(i)})
		}
		c.Invalidate(func(string) bool { return true })
		assert.Zero(t, c.Size())
	})

	t.Run("Concurrent", func(t *testing.T) {
		rc := resource.NewController(resource.Config{})
		c := NewShardedLRU(1<<20, rc)

		var wg sync.WaitGroup
		for g := range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 200 {
					key := fmt.Sprintf("g%d-%d", g, i%20)
					if v, ok := c.Get(key); ok {
						assert.Len(t, v, 64)
						continue
					}
					c.Set(key, make([]byte, 64))
				}
			}()
		}
		wg.Wait()

		hits, misses := c.Stats()
		assert.Equal(t, int64(16*200), hits+misses)
		assert.Equal(t, c.Size(), rc.MemoryUsage())
	})
}

func BenchmarkShardedLRU_Get(b *testing.B) {
	c := NewShardedLRU(64<<20, nil)
	keys := make([]string, 1024)
	for i := range keys {
		keys[i] = fmt.Sprintf("grids/frame-%04d.igrd", i)
		c.Set(keys[i], make([]byte, 256))
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			c.Get(keys[i%len(keys)])
			i++
		}
	})
}
