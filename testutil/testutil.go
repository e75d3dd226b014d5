package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"
	"testing"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
	"github.com/stretchr/testify/require"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Range returns a pseudo-random number in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + (hi-lo)*r.rand.Float64()
}

// PointsInBox3 returns n points uniformly distributed in box.
// Locks only once per call (preferred over calling Range in a loop).
func (r *RNG) PointsInBox3(n int, box geom.BoundingBox3) []geom.Vector3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]geom.Vector3, n)
	for i := range pts {
		pts[i] = geom.Vector3{
			X: box.Lower.X + box.Width()*r.rand.Float64(),
			Y: box.Lower.Y + box.Height()*r.rand.Float64(),
			Z: box.Lower.Z + box.Depth()*r.rand.Float64(),
		}
	}
	return pts
}

// PointsInBox2 returns n points uniformly distributed in box.
func (r *RNG) PointsInBox2(n int, box geom.BoundingBox2) []geom.Vector2 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]geom.Vector2, n)
	for i := range pts {
		pts[i] = geom.Vector2{
			X: box.Lower.X + box.Width()*r.rand.Float64(),
			Y: box.Lower.Y + box.Height()*r.rand.Float64(),
		}
	}
	return pts
}

// PointsOnSphere3 returns n points uniformly distributed on a sphere.
// Directions come from normalized Gaussian samples.
func (r *RNG) PointsOnSphere3(n int, center geom.Vector3, radius float64) []geom.Vector3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]geom.Vector3, 0, n)
	for len(pts) < n {
		d := geom.Vector3{X: r.rand.NormFloat64(), Y: r.rand.NormFloat64(), Z: r.rand.NormFloat64()}
		l := d.Length()
		if l < 1e-12 {
			continue
		}
		pts = append(pts, center.Add(d.Scale(radius/l)))
	}
	return pts
}

// PointsOnCircle2 returns n points uniformly distributed on a circle.
func (r *RNG) PointsOnCircle2(n int, center geom.Vector2, radius float64) []geom.Vector2 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]geom.Vector2, n)
	for i := range pts {
		a := 2 * math.Pi * r.rand.Float64()
		pts[i] = center.Add(geom.Vector2{X: math.Cos(a), Y: math.Sin(a)}.Scale(radius))
	}
	return pts
}

// ClusteredPoints3 returns n points drawn from clusters Gaussian blobs
// with the given spread, centered uniformly in box.
func (r *RNG) ClusteredPoints3(n, clusters int, spread float64, box geom.BoundingBox3) []geom.Vector3 {
	centers := r.PointsInBox3(clusters, box)

	r.mu.Lock()
	defer r.mu.Unlock()

	pts := make([]geom.Vector3, n)
	for i := range pts {
		c := centers[r.rand.Intn(clusters)]
		pts[i] = c.Add(geom.Vector3{
			X: r.rand.NormFloat64() * spread,
			Y: r.rand.NormFloat64() * spread,
			Z: r.rand.NormFloat64() * spread,
		})
	}
	return pts
}

// UnitBox3 is the box [0, 1]^3.
func UnitBox3() geom.BoundingBox3 {
	return geom.NewBoundingBox3(geom.Vector3{}, geom.Vector3{X: 1, Y: 1, Z: 1})
}

// UnitBox2 is the box [0, 1]^2.
func UnitBox2() geom.BoundingBox2 {
	return geom.NewBoundingBox2(geom.Vector2{}, geom.Vector2{X: 1, Y: 1})
}

// UnitGrid3 allocates a zeroed vertex-centered n^3 grid spanning [0, 1]^3.
func UnitGrid3(t testing.TB, n int) *grid.ScalarGrid3 {
	t.Helper()
	h := 1 / float64(n)
	g, err := grid.NewVertexCenteredScalarGrid3(grid.Size3{X: n, Y: n, Z: n}, geom.Vector3{X: h, Y: h, Z: h}, geom.Vector3{})
	require.NoError(t, err)
	return g
}

// UnitGrid2 allocates a zeroed vertex-centered n^2 grid spanning [0, 1]^2.
func UnitGrid2(t testing.TB, n int) *grid.ScalarGrid2 {
	t.Helper()
	h := 1 / float64(n)
	g, err := grid.NewVertexCenteredScalarGrid2(grid.Size2{X: n, Y: n}, geom.Vector2{X: h, Y: h}, geom.Vector2{})
	require.NoError(t, err)
	return g
}

// SphereGrid3 returns UnitGrid3 filled with the exact distance to a sphere.
func SphereGrid3(t testing.TB, n int, center geom.Vector3, radius float64) *grid.ScalarGrid3 {
	t.Helper()
	g := UnitGrid3(t, n)
	g.Fill(func(p geom.Vector3) float64 { return p.DistanceTo(center) - radius })
	return g
}

// CircleGrid2 returns UnitGrid2 filled with the exact distance to a circle.
func CircleGrid2(t testing.TB, n int, center geom.Vector2, radius float64) *grid.ScalarGrid2 {
	t.Helper()
	g := UnitGrid2(t, n)
	g.Fill(func(p geom.Vector2) float64 { return p.DistanceTo(center) - radius })
	return g
}

// MaxAbsDiff3 returns the largest absolute sample difference of two grids
// with the same shape over samples where mask is nil or returns true.
func MaxAbsDiff3(a, b *grid.ScalarGrid3, mask func(p geom.Vector3) bool) float64 {
	worst := 0.0
	a.ForEachDataPointIndex(func(i, j, k int) {
		if mask != nil && !mask(a.DataPosition(i, j, k)) {
			return
		}
		worst = max(worst, math.Abs(a.At(i, j, k)-b.At(i, j, k)))
	})
	return worst
}

// MaxAbsDiff2 is the 2-D counterpart of MaxAbsDiff3.
func MaxAbsDiff2(a, b *grid.ScalarGrid2, mask func(p geom.Vector2) bool) float64 {
	worst := 0.0
	a.ForEachDataPointIndex(func(i, j int) {
		if mask != nil && !mask(a.DataPosition(i, j)) {
			return
		}
		worst = max(worst, math.Abs(a.At(i, j)-b.At(i, j)))
	})
	return worst
}

// BruteForceNearby3 returns the sorted indices of points within radius of
// origin, for ground truth.
func BruteForceNearby3(points []geom.Vector3, origin geom.Vector3, radius float64) []int {
	r2 := radius * radius
	var out []int
	for i, p := range points {
		if p.DistanceSquaredTo(origin) <= r2 {
			out = append(out, i)
		}
	}
	return out
}

// BruteForceNearby2 is the 2-D counterpart of BruteForceNearby3.
func BruteForceNearby2(points []geom.Vector2, origin geom.Vector2, radius float64) []int {
	r2 := radius * radius
	var out []int
	for i, p := range points {
		if p.DistanceSquaredTo(origin) <= r2 {
			out = append(out, i)
		}
	}
	return out
}

// ComputeRecall returns the fraction of groundTruth indices present in got.
func ComputeRecall(groundTruth, got []int) float64 {
	if len(groundTruth) == 0 {
		if len(got) == 0 {
			return 1.0
		}
		return 0.0
	}

	truthSet := make(map[int]struct{}, len(groundTruth))
	for _, id := range groundTruth {
		truthSet[id] = struct{}{}
	}

	hits := 0
	for _, id := range got {
		if _, ok := truthSet[id]; ok {
			hits++
		}
	}

	return float64(hits) / float64(len(groundTruth))
}

// Sorted returns a sorted copy of ids.
func Sorted(ids []int) []int {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
