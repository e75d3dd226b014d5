package blobstore

import (
	"context"
	"strings"

	"github.com/hupe1980/implicit/internal/cache"
	"github.com/hupe1980/implicit/resource"
)

// CachingStore keeps recently opened blobs in memory in front of a slower
// BlobStore, typically S3 or MinIO. Blobs are immutable except for the
// commit pointer, so writes and deletes through the store invalidate the
// affected name.
//
// Writes made to the inner store by other processes are not observed until
// the entry is evicted; NoCache names bypass the cache entirely.
type CachingStore struct {
	inner   BlobStore
	cache   *cache.ShardedLRU
	noCache func(name string) bool
}

var _ BlobStore = (*CachingStore)(nil)

// CachingOption configures a CachingStore.
type CachingOption func(*CachingStore)

// WithNoCache excludes names matching fn from caching.
func WithNoCache(fn func(name string) bool) CachingOption {
	return func(s *CachingStore) {
		s.noCache = fn
	}
}

// NewCachingStore wraps inner with an in-memory cache of capacity bytes.
// Cached bytes are reserved against rc's memory budget when rc is non-nil.
// By default the CURRENT commit pointer is never cached.
func NewCachingStore(inner BlobStore, capacity int64, rc *resource.Controller, opts ...CachingOption) *CachingStore {
	s := &CachingStore{
		inner:   inner,
		cache:   cache.NewShardedLRU(capacity, rc),
		noCache: func(name string) bool { return strings.HasSuffix(name, "CURRENT") },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Open returns the cached blob or reads it fully from the inner store.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if s.noCache != nil && s.noCache(name) {
		return s.inner.Open(ctx, name)
	}
	if data, ok := s.cache.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}

	data, err := Get(ctx, s.inner, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, data)
	return &memoryBlob{data: data}, nil
}

// Create starts a write on the inner store. The name is invalidated now and
// again when the write is published.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.cache.Remove(name)
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &invalidatingWriter{WritableBlob: w, store: s, name: name}, nil
}

// Put writes through to the inner store.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Remove(name)
	return s.inner.Put(ctx, name, data)
}

// Delete removes the blob from the cache and the inner store.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Remove(name)
	return s.inner.Delete(ctx, name)
}

// List is always served by the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hit and miss counts.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

// CachedBytes returns the bytes currently held in memory.
func (s *CachingStore) CachedBytes() int64 {
	return s.cache.Size()
}

type invalidatingWriter struct {
	WritableBlob
	store *CachingStore
	name  string
}

func (w *invalidatingWriter) Close() error {
	err := w.WritableBlob.Close()
	w.store.cache.Remove(w.name)
	return err
}

func (w *invalidatingWriter) Abort() error {
	return Abort(w.WritableBlob)
}
