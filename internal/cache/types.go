package cache

// Cache is a byte-oriented cache for immutable blobs keyed by name.
// Returned slices must be treated as read-only.
type Cache interface {
	// Get returns a cached value. ok=false if missing.
	Get(key string) (b []byte, ok bool)
	// Set caches a value. The caller must not mutate b afterwards.
	Set(key string, b []byte)
	// Remove drops key if present.
	Remove(key string)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key string) bool)
	// Stats returns cache statistics.
	Stats() (hits, misses int64)
	// Size returns the cached bytes.
	Size() int64
}
