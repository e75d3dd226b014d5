package neighbor

import (
	"cmp"
	"slices"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/internal/parallel"
)

// ParallelHashGrid3 is a spatial hash stored as points sorted by bucket key
// with per-bucket [start, end) ranges. Build runs on all available cores.
type ParallelHashGrid3 struct {
	space  hashSpace3
	points []geom.Vector3 // sorted by key
	keys   []int
	order  []int // order[s] is the input index of points[s]
	start  []int
	end    []int
}

var _ Searcher3 = (*ParallelHashGrid3)(nil)

// NewParallelHashGrid3 creates an empty searcher with res buckets per axis,
// each gridSpacing wide.
func NewParallelHashGrid3(res Resolution3, gridSpacing float64) *ParallelHashGrid3 {
	return &ParallelHashGrid3{space: newHashSpace3(res, gridSpacing)}
}

// Build hashes points in parallel and sorts them by bucket key, so that
// every bucket is a contiguous run of the sorted slice. Ties keep input order,
// which makes the layout deterministic regardless of the worker count.
func (g *ParallelHashGrid3) Build(points []geom.Vector3) {
	n := len(points)
	keys := make([]int, n)
	order := make([]int, n)
	parallel.For(n, 0, func(i int) {
		keys[i] = g.space.keyOf(points[i])
		order[i] = i
	})
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(keys[a], keys[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	g.points = make([]geom.Vector3, n)
	g.keys = make([]int, n)
	parallel.For(n, 0, func(s int) {
		g.points[s] = points[order[s]]
		g.keys[s] = keys[order[s]]
	})
	g.order = order

	buckets := g.space.buckets()
	g.start = make([]int, buckets)
	g.end = make([]int, buckets)
	for s := 0; s < n; s++ {
		if s == 0 || g.keys[s] != g.keys[s-1] {
			g.start[g.keys[s]] = s
			if s > 0 {
				g.end[g.keys[s-1]] = s
			}
		}
	}
	if n > 0 {
		g.end[g.keys[n-1]] = n
	}
}

// Len returns the number of indexed points.
func (g *ParallelHashGrid3) Len() int { return len(g.points) }

// SortedIndices maps sorted slots back to input indices.
func (g *ParallelHashGrid3) SortedIndices() []int { return g.order }

// ForEachNearbyPoint reports input indices, not sorted slots.
func (g *ParallelHashGrid3) ForEachNearbyPoint(origin geom.Vector3, radius float64, visit func(int, geom.Vector3)) {
	if len(g.points) == 0 {
		return
	}
	r2 := radius * radius
	g.space.forEachKey(origin, radius, func(key int) {
		for s := g.start[key]; s < g.end[key]; s++ {
			p := g.points[s]
			if p.DistanceSquaredTo(origin) <= r2 {
				visit(g.order[s], p)
			}
		}
	})
}

func (g *ParallelHashGrid3) HasNearbyPoint(origin geom.Vector3, radius float64) bool {
	if len(g.points) == 0 {
		return false
	}
	r2 := radius * radius
	found := false
	g.space.forEachKey(origin, radius, func(key int) {
		for s := g.start[key]; !found && s < g.end[key]; s++ {
			found = g.points[s].DistanceSquaredTo(origin) <= r2
		}
	})
	return found
}

// Clone returns a deep copy.
func (g *ParallelHashGrid3) Clone() Searcher3 {
	return &ParallelHashGrid3{
		space:  g.space,
		points: slices.Clone(g.points),
		keys:   slices.Clone(g.keys),
		order:  slices.Clone(g.order),
		start:  slices.Clone(g.start),
		end:    slices.Clone(g.end),
	}
}
