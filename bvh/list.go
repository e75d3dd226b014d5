package bvh

import (
	"slices"

	"github.com/hupe1980/implicit/geom"
)

// List3 tests every item on every query.
type List3[T any] struct {
	items []T
}

var _ Engine3[int] = (*List3[int])(nil)

// NewList3 copies items into a brute-force engine.
func NewList3[T any](items []T) *List3[T] { return &List3[T]{items: slices.Clone(items)} }

// Len returns the number of items.
func (l *List3[T]) Len() int { return len(l.items) }

// Intersects reports whether test accepts any item.
func (l *List3[T]) Intersects(box geom.BoundingBox3, test BoxTest[T]) bool {
	for _, it := range l.items {
		if test(it, box) {
			return true
		}
	}
	return false
}

func (l *List3[T]) IntersectsRay(ray geom.Ray3, test RayTest[T]) bool {
	for _, it := range l.items {
		if test(it, ray) {
			return true
		}
	}
	return false
}

// ForEachIntersectingItem calls visit for every item test accepts, in input
// order.
func (l *List3[T]) ForEachIntersectingItem(box geom.BoundingBox3, test BoxTest[T], visit func(T)) {
	for _, it := range l.items {
		if test(it, box) {
			visit(it)
		}
	}
}

func (l *List3[T]) ForEachRayIntersectingItem(ray geom.Ray3, test RayTest[T], visit func(T)) {
	for _, it := range l.items {
		if test(it, ray) {
			visit(it)
		}
	}
}

// ClosestIntersection returns the item with the smallest eval distance.
func (l *List3[T]) ClosestIntersection(ray geom.Ray3, eval RayDistance[T]) Hit[T] {
	best := noHit[T]()
	for _, it := range l.items {
		if d := eval(it, ray); d < best.Distance {
			best = Hit[T]{Item: it, Distance: d, Found: true}
		}
	}
	return best
}

// Nearest returns the item closest to p under dist.
func (l *List3[T]) Nearest(p geom.Vector3, dist PointDistance[T]) Hit[T] {
	best := noHit[T]()
	for _, it := range l.items {
		if d := dist(it, p); d < best.Distance {
			best = Hit[T]{Item: it, Distance: d, Found: true}
		}
	}
	return best
}
