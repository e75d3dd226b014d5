package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]BlobStore {
	return map[string]BlobStore{
		"memory": NewMemoryStore(),
		"local":  NewLocalStore(t.TempDir()),
	}
}

func TestBlobStore_Lifecycle(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			data := []byte("grid snapshot payload 0123456789")

			w, err := store.Create(ctx, "grids/sdf-000001.igrd")
			require.NoError(t, err)
			n, err := w.Write(data[:10])
			require.NoError(t, err)
			require.Equal(t, 10, n)
			_, err = w.Write(data[10:])
			require.NoError(t, err)
			require.NoError(t, w.Sync())
			require.NoError(t, w.Close())

			blob, err := store.Open(ctx, "grids/sdf-000001.igrd")
			require.NoError(t, err)
			require.Equal(t, int64(len(data)), blob.Size())

			buf := make([]byte, 8)
			n, err = blob.ReadAt(ctx, buf, 5)
			require.NoError(t, err)
			assert.Equal(t, 8, n)
			assert.Equal(t, "snapshot", string(buf))

			n, err = blob.ReadAt(ctx, make([]byte, 20), int64(len(data)-4))
			assert.Equal(t, 4, n)
			assert.ErrorIs(t, err, io.EOF)

			all, err := ReadAll(ctx, blob)
			require.NoError(t, err)
			assert.Equal(t, data, all)
			require.NoError(t, blob.Close())

			require.NoError(t, store.Put(ctx, "grids/sdf-000002.igrd", []byte("second")))
			require.NoError(t, store.Put(ctx, "CURRENT", []byte("grids/sdf-000002.igrd")))

			names, err := store.List(ctx, "grids/")
			require.NoError(t, err)
			assert.Equal(t, []string{"grids/sdf-000001.igrd", "grids/sdf-000002.igrd"}, names)

			all, err = Get(ctx, store, "CURRENT")
			require.NoError(t, err)
			assert.Equal(t, "grids/sdf-000002.igrd", string(all))

			require.NoError(t, store.Delete(ctx, "grids/sdf-000001.igrd"))
			require.NoError(t, store.Delete(ctx, "grids/sdf-000001.igrd"))

			_, err = store.Open(ctx, "grids/sdf-000001.igrd")
			assert.ErrorIs(t, err, ErrNotFound)

			names, err = store.List(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, []string{"CURRENT", "grids/sdf-000002.igrd"}, names)
		})
	}
}

func TestBlobStore_EmptyBlob(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "empty", nil))

			data, err := Get(ctx, store, "empty")
			require.NoError(t, err)
			assert.Empty(t, data)
		})
	}
}

func TestBlobStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "CURRENT", []byte("a")))
			require.NoError(t, store.Put(ctx, "CURRENT", []byte("bb")))

			data, err := Get(ctx, store, "CURRENT")
			require.NoError(t, err)
			assert.Equal(t, "bb", string(data))
		})
	}
}

func TestMemoryStore_PutCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", data))
	data[0] = 'x'

	got, err := Get(ctx, store, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("grid-%02d", i)
			assert.NoError(t, store.Put(ctx, name, []byte(name)))
			got, err := Get(ctx, store, name)
			assert.NoError(t, err)
			assert.Equal(t, name, string(got))
		}()
	}
	wg.Wait()

	names, err := store.List(ctx, "grid-")
	require.NoError(t, err)
	assert.Len(t, names, 16)
}

func TestLocalStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)

	require.NoError(t, store.Put(ctx, "a/b.igrd", []byte("x")))

	entries, err := os.ReadDir(filepath.Join(root, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.igrd", entries[0].Name())
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewLocalStore(t.TempDir())
	_, err := store.Create(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
