package blobstore

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/implicit/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	BlobStore
	opens atomic.Int64
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	s.opens.Add(1)
	return s.BlobStore.Open(ctx, name)
}

func TestCachingStore(t *testing.T) {
	ctx := context.Background()

	t.Run("ReadThrough", func(t *testing.T) {
		inner := &countingStore{BlobStore: NewMemoryStore()}
		rc := resource.NewController(resource.Config{})
		s := NewCachingStore(inner, 1<<20, rc)

		require.NoError(t, s.Put(ctx, "grids/a.igrd", []byte("snapshot a")))
		for range 3 {
			data, err := Get(ctx, s, "grids/a.igrd")
			require.NoError(t, err)
			assert.Equal(t, "snapshot a", string(data))
		}
		assert.Equal(t, int64(1), inner.opens.Load())

		hits, misses := s.Stats()
		assert.Equal(t, int64(2), hits)
		assert.Equal(t, int64(1), misses)
		assert.Equal(t, int64(len("snapshot a")), s.CachedBytes())
		assert.Equal(t, s.CachedBytes(), rc.MemoryUsage())
	})

	t.Run("WritesInvalidate", func(t *testing.T) {
		s := NewCachingStore(NewMemoryStore(), 1<<20, nil)
		require.NoError(t, s.Put(ctx, "grids/a.igrd", []byte("v1")))
		_, err := Get(ctx, s, "grids/a.igrd")
		require.NoError(t, err)

		require.NoError(t, s.Put(ctx, "grids/a.igrd", []byte("v2")))
		data, err := Get(ctx, s, "grids/a.igrd")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(data))

		w, err := s.Create(ctx, "grids/a.igrd")
		require.NoError(t, err)
		_, err = w.Write([]byte("v3"))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		data, err = Get(ctx, s, "grids/a.igrd")
		require.NoError(t, err)
		assert.Equal(t, "v3", string(data))

		require.NoError(t, s.Delete(ctx, "grids/a.igrd"))
		_, err = s.Open(ctx, "grids/a.igrd")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, s.CachedBytes())
	})

	t.Run("CurrentNotCached", func(t *testing.T) {
		inner := &countingStore{BlobStore: NewMemoryStore()}
		s := NewCachingStore(inner, 1<<20, nil)
		require.NoError(t, inner.Put(ctx, "grids/CURRENT", []byte("grids/a.igrd")))

		for range 2 {
			_, err := Get(ctx, s, "grids/CURRENT")
			require.NoError(t, err)
		}
		assert.Equal(t, int64(2), inner.opens.Load())

		require.NoError(t, inner.Put(ctx, "grids/CURRENT", []byte("grids/b.igrd")))
		data, err := Get(ctx, s, "grids/CURRENT")
		require.NoError(t, err)
		assert.Equal(t, "grids/b.igrd", string(data))
	})

	t.Run("NoCacheOption", func(t *testing.T) {
		inner := &countingStore{BlobStore: NewMemoryStore()}
		s := NewCachingStore(inner, 1<<20, nil, nil, WithNoCache(func(string) bool { return true }))
		require.NoError(t, s.Put(ctx, "x", []byte("x")))
		for range 2 {
			_, err := Get(ctx, s, "x")
			require.NoError(t, err)
		}
		assert.Equal(t, int64(2), inner.opens.Load())
	})

	t.Run("OverBudgetStillServes", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 4})
		s := NewCachingStore(NewMemoryStore(), 1<<20, rc)
		require.NoError(t, s.Put(ctx, "big", []byte("0123456789")))

		data, err := Get(ctx, s, "big")
		require.NoError(t, err)
		assert.Equal(t, "0123456789", string(data))
		assert.Zero(t, s.CachedBytes())
		assert.Zero(t, rc.MemoryUsage())
	})

	t.Run("AbortDiscards", func(t *testing.T) {
		s := NewCachingStore(NewLocalStore(t.TempDir()), 1<<20, nil)
		w, err := s.Create(ctx, "partial")
		require.NoError(t, err)
		_, err = w.Write([]byte("half"))
		require.NoError(t, err)
		require.NoError(t, Abort(w))

		_, err = s.Open(ctx, "partial")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		s := NewCachingStore(NewMemoryStore(), 1<<20, nil)
		require.NoError(t, s.Put(ctx, "grids/b", nil))
		require.NoError(t, s.Put(ctx, "grids/a", nil))
		names, err := s.List(ctx, "grids/")
		require.NoError(t, err)
		assert.Equal(t, []string{"grids/a", "grids/b"}, names)
	})
}
