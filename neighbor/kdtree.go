package neighbor

import (
	"slices"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/internal/kdindex"
)

// KdTree3 answers radius queries with a gonum k-d tree.
type KdTree3 struct {
	points []geom.Vector3
	index  *kdindex.Index
}

var _ Searcher3 = (*KdTree3)(nil)

// NewKdTree3 creates an empty k-d tree searcher.
func NewKdTree3() *KdTree3 { return &KdTree3{} }

// Build indexes a copy of points.
func (t *KdTree3) Build(points []geom.Vector3) {
	t.points = slices.Clone(points)
	coords := make([][3]float64, len(points))
	for i, p := range points {
		coords[i] = [3]float64{p.X, p.Y, p.Z}
	}
	t.index = kdindex.New3(coords)
}

// ForEachNearbyPoint calls visit for every point within radius of origin.
func (t *KdTree3) ForEachNearbyPoint(origin geom.Vector3, radius float64, visit func(int, geom.Vector3)) {
	if t.index == nil {
		return
	}
	t.index.WithinRadius([3]float64{origin.X, origin.Y, origin.Z}, radius, func(i int) {
		visit(i, t.points[i])
	})
}

// HasNearbyPoint answers with a single nearest-neighbor query.
func (t *KdTree3) HasNearbyPoint(origin geom.Vector3, radius float64) bool {
	if t.index == nil {
		return false
	}
	i, d := t.index.Nearest([3]float64{origin.X, origin.Y, origin.Z})
	return i >= 0 && d <= radius
}

// Nearest returns the index of the point closest to origin, or -1 when empty.
func (t *KdTree3) Nearest(origin geom.Vector3) (int, float64) {
	if t.index == nil {
		return -1, 0
	}
	return t.index.Nearest([3]float64{origin.X, origin.Y, origin.Z})
}

// Clone rebuilds the tree over a copy of the points so the clone shares no
// state with t.
func (t *KdTree3) Clone() Searcher3 {
	c := NewKdTree3()
	if t.index != nil {
		c.Build(t.points)
	}
	return c
}

// KdTree2 is the 2-D counterpart of KdTree3.
type KdTree2 struct {
	points []geom.Vector2
	index  *kdindex.Index
}

var _ Searcher2 = (*KdTree2)(nil)

// NewKdTree2 creates an empty 2-D k-d tree searcher.
func NewKdTree2() *KdTree2 { return &KdTree2{} }

// Build indexes a copy of points lifted to z = 0.
func (t *KdTree2) Build(points []geom.Vector2) {
	t.points = slices.Clone(points)
	coords := make([][3]float64, len(points))
	for i, p := range points {
		coords[i] = [3]float64{p.X, p.Y, 0}
	}
	t.index = kdindex.New2(coords)
}

// ForEachNearbyPoint calls visit for every point within radius of origin.
func (t *KdTree2) ForEachNearbyPoint(origin geom.Vector2, radius float64, visit func(int, geom.Vector2)) {
	if t.index == nil {
		return
	}
	t.index.WithinRadius([3]float64{origin.X, origin.Y, 0}, radius, func(i int) {
		visit(i, t.points[i])
	})
}

func (t *KdTree2) HasNearbyPoint(origin geom.Vector2, radius float64) bool {
	if t.index == nil {
		return false
	}
	i, d := t.index.Nearest([3]float64{origin.X, origin.Y, 0})
	return i >= 0 && d <= radius
}

// Clone rebuilds the tree over a copy of the points.
func (t *KdTree2) Clone() Searcher2 {
	c := NewKdTree2()
	if t.index != nil {
		c.Build(t.points)
	}
	return c
}
