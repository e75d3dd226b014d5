package neighbor

import (
	"slices"

	"github.com/hupe1980/implicit/geom"
)

// List3 scans every point on each query.
type List3 struct {
	points []geom.Vector3
}

var _ Searcher3 = (*List3)(nil)

// NewList3 creates an empty brute-force searcher.
func NewList3() *List3 { return &List3{} }

// Build stores a copy of points.
func (l *List3) Build(points []geom.Vector3) { l.points = slices.Clone(points) }

// ForEachNearbyPoint scans all points and calls visit for those within radius
// of origin, in input order.
func (l *List3) ForEachNearbyPoint(origin geom.Vector3, radius float64, visit func(int, geom.Vector3)) {
	r2 := radius * radius
	for i, p := range l.points {
		if p.DistanceSquaredTo(origin) <= r2 {
			visit(i, p)
		}
	}
}

// HasNearbyPoint stops at the first point within radius of origin.
func (l *List3) HasNearbyPoint(origin geom.Vector3, radius float64) bool {
	r2 := radius * radius
	for _, p := range l.points {
		if p.DistanceSquaredTo(origin) <= r2 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (l *List3) Clone() Searcher3 { return &List3{points: slices.Clone(l.points)} }

// List2 scans every point on each query.
type List2 struct {
	points []geom.Vector2
}

var _ Searcher2 = (*List2)(nil)

// NewList2 creates an empty brute-force searcher.
func NewList2() *List2 { return &List2{} }

// Build stores a copy of points.
func (l *List2) Build(points []geom.Vector2) { l.points = slices.Clone(points) }

func (l *List2) ForEachNearbyPoint(origin geom.Vector2, radius float64, visit func(int, geom.Vector2)) {
	r2 := radius * radius
	for i, p := range l.points {
		if p.DistanceSquaredTo(origin) <= r2 {
			visit(i, p)
		}
	}
}

func (l *List2) HasNearbyPoint(origin geom.Vector2, radius float64) bool {
	r2 := radius * radius
	for _, p := range l.points {
		if p.DistanceSquaredTo(origin) <= r2 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (l *List2) Clone() Searcher2 { return &List2{points: slices.Clone(l.points)} }
