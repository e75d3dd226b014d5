package neighbor

import (
	"math"

	"github.com/hupe1980/implicit/geom"
)

// Resolution3 is the number of hash buckets per axis.
type Resolution3 struct {
	X, Y, Z int
}

// Resolution2 is the number of hash buckets per axis.
type Resolution2 struct {
	X, Y int
}

// hashSpace3 maps positions to wrapped bucket keys.
type hashSpace3 struct {
	res     Resolution3
	spacing float64
}

func newHashSpace3(res Resolution3, spacing float64) hashSpace3 {
	res.X, res.Y, res.Z = max(res.X, 1), max(res.Y, 1), max(res.Z, 1)
	if !(spacing > 0) {
		spacing = 1
	}
	return hashSpace3{res: res, spacing: spacing}
}

func (h hashSpace3) buckets() int { return h.res.X * h.res.Y * h.res.Z }

func (h hashSpace3) cell(v float64) int { return int(math.Floor(v / h.spacing)) }

func (h hashSpace3) key(i, j, k int) int {
	i, j, k = wrap(i, h.res.X), wrap(j, h.res.Y), wrap(k, h.res.Z)
	return (k*h.res.Y+j)*h.res.X + i
}

func (h hashSpace3) keyOf(p geom.Vector3) int {
	return h.key(h.cell(p.X), h.cell(p.Y), h.cell(p.Z))
}

// forEachKey visits every distinct bucket overlapping the query ball.
func (h hashSpace3) forEachKey(origin geom.Vector3, radius float64, fn func(key int)) {
	i0, i1 := span(h.cell(origin.X-radius), h.cell(origin.X+radius), h.res.X)
	j0, j1 := span(h.cell(origin.Y-radius), h.cell(origin.Y+radius), h.res.Y)
	k0, k1 := span(h.cell(origin.Z-radius), h.cell(origin.Z+radius), h.res.Z)
	for k := k0; k <= k1; k++ {
		for j := j0; j <= j1; j++ {
			for i := i0; i <= i1; i++ {
				fn(h.key(i, j, k))
			}
		}
	}
}

type hashSpace2 struct {
	res     Resolution2
	spacing float64
}

func newHashSpace2(res Resolution2, spacing float64) hashSpace2 {
	res.X, res.Y = max(res.X, 1), max(res.Y, 1)
	if !(spacing > 0) {
		spacing = 1
	}
	return hashSpace2{res: res, spacing: spacing}
}

func (h hashSpace2) buckets() int { return h.res.X * h.res.Y }

func (h hashSpace2) cell(v float64) int { return int(math.Floor(v / h.spacing)) }

func (h hashSpace2) key(i, j int) int {
	return wrap(j, h.res.Y)*h.res.X + wrap(i, h.res.X)
}

func (h hashSpace2) keyOf(p geom.Vector2) int { return h.key(h.cell(p.X), h.cell(p.Y)) }

func (h hashSpace2) forEachKey(origin geom.Vector2, radius float64, fn func(key int)) {
	i0, i1 := span(h.cell(origin.X-radius), h.cell(origin.X+radius), h.res.X)
	j0, j1 := span(h.cell(origin.Y-radius), h.cell(origin.Y+radius), h.res.Y)
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			fn(h.key(i, j))
		}
	}
}

// span limits a bucket range to at most n buckets so wrapped keys are not
// visited twice.
func span(lo, hi, n int) (int, int) {
	if hi-lo+1 > n {
		return lo, lo + n - 1
	}
	return lo, hi
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
