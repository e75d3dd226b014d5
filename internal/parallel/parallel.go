// Package parallel provides the data-parallel loops used by grid fills,
// solver sweeps and neighbor-list builds.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny loops on the calling goroutine.
const minChunk = 256

// Workers resolves a worker count; values <= 0 mean GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// ForRange splits [0, n) into contiguous chunks and calls fn for each chunk
// on up to workers goroutines. It returns after every chunk has finished.
func ForRange(n, workers int, fn func(begin, end int)) {
	_ = ForRangeContext(context.Background(), n, workers, func(_ context.Context, begin, end int) error {
		fn(begin, end)
		return nil
	})
}

// For calls fn for every index in [0, n).
func For(n, workers int, fn func(i int)) {
	ForRange(n, workers, func(begin, end int) {
		for i := begin; i < end; i++ {
			fn(i)
		}
	})
}

// ForRangeContext is ForRange with cancellation and error propagation. The
// first error cancels the remaining chunks.
func ForRangeContext(ctx context.Context, n, workers int, fn func(ctx context.Context, begin, end int) error) error {
	if n <= 0 {
		return nil
	}
	workers = Workers(workers)
	if workers == 1 || n <= minChunk {
		return fn(ctx, 0, n)
	}

	chunks := workers * 4
	size := (n + chunks - 1) / chunks
	if size < minChunk {
		size = minChunk
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for begin := 0; begin < n; begin += size {
		end := min(begin+size, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, begin, end)
		})
	}
	return g.Wait()
}
