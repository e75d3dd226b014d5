// Package kdindex adapts gonum's k-d tree to indexed 2-D and 3-D point sets.
package kdindex

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// point is a tree entry that remembers its position in the input slice.
type point struct {
	c     [3]float64
	dims  int
	index int
}

var _ kdtree.Comparable = point{}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.c[d] - c.(point).c[d]
}

func (p point) Dims() int { return p.dims }

// Distance is the squared Euclidean distance, as kdtree expects.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for i := 0; i < p.dims; i++ {
		d := p.c[i] - q.c[i]
		sum += d * d
	}
	return sum
}

type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }
func (p points) Pivot(d kdtree.Dim) int {
	pl := plane{points: p, dim: d}
	return kdtree.Partition(pl, kdtree.MedianOfMedians(pl))
}

// plane orders points along one dimension for median selection.
type plane struct {
	points
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool { return p.points[i].c[p.dim] < p.points[j].c[p.dim] }
func (p plane) Swap(i, j int)      { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{points: p.points[start:end], dim: p.dim}
}

// Index is an immutable k-d tree over a point set.
type Index struct {
	tree *kdtree.Tree
	dims int
	n    int
}

// New3 indexes 3-D coordinates.
func New3(coords [][3]float64) *Index { return build(coords, 3) }

// New2 indexes 2-D coordinates; the third component is ignored.
func New2(coords [][3]float64) *Index { return build(coords, 2) }

func build(coords [][3]float64, dims int) *Index {
	pts := make(points, len(coords))
	for i, c := range coords {
		pts[i] = point{c: c, dims: dims, index: i}
	}
	ix := &Index{dims: dims, n: len(pts)}
	if len(pts) > 0 {
		ix.tree = kdtree.New(pts, false)
	}
	return ix
}

// Len is the number of indexed points.
func (ix *Index) Len() int { return ix.n }

// WithinRadius calls fn with the input index of every point within r of q.
func (ix *Index) WithinRadius(q [3]float64, r float64, fn func(i int)) {
	if ix == nil || ix.n == 0 || r < 0 {
		return
	}
	keep := kdtree.NewDistKeeper(r * r)
	ix.tree.NearestSet(keep, point{c: q, dims: ix.dims})
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue
		}
		fn(cd.Comparable.(point).index)
	}
}

// Nearest returns the input index of the point closest to q and its distance.
// It returns -1 and +Inf on an empty index.
func (ix *Index) Nearest(q [3]float64) (int, float64) {
	if ix == nil || ix.n == 0 {
		return -1, math.Inf(1)
	}
	c, d2 := ix.tree.Nearest(point{c: q, dims: ix.dims})
	if c == nil {
		return -1, math.Inf(1)
	}
	return c.(point).index, math.Sqrt(d2)
}
