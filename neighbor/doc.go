// Package neighbor answers "which points lie within radius r of x" over a
// static point set.
//
// Every Searcher follows the same life cycle: Build takes a snapshot of the
// points, after which ForEachNearbyPoint and HasNearbyPoint are read-only and
// safe for concurrent use. Querying before Build finds nothing. Build itself
// must not run concurrently with queries on the same instance; use Clone to
// hand independent copies to other goroutines.
//
// Implementations:
//   - HashGrid3 / HashGrid2: bucketed spatial hash with incremental Add.
//   - ParallelHashGrid3: sort-based spatial hash built in parallel.
//   - KdTree3 / KdTree2: gonum k-d tree.
//   - List3 / List2: brute-force reference.
package neighbor
