package bvh

import (
	"math"

	"github.com/hupe1980/implicit/geom"
)

// BoxTest reports whether item intersects box.
type BoxTest[T any] func(item T, box geom.BoundingBox3) bool

// RayTest reports whether item intersects ray.
type RayTest[T any] func(item T, ray geom.Ray3) bool

// RayDistance returns the distance along ray to item, or +Inf on a miss.
type RayDistance[T any] func(item T, ray geom.Ray3) float64

// PointDistance returns the distance from p to item.
type PointDistance[T any] func(item T, p geom.Vector3) float64

// Hit is the result of a closest-intersection or nearest query. When nothing
// qualifies, Found is false and Distance is +Inf.
type Hit[T any] struct {
	Item     T
	Distance float64
	Found    bool
}

func noHit[T any]() Hit[T] { return Hit[T]{Distance: math.Inf(1)} }

// Engine3 is the query contract shared by BVH3 and List3.
type Engine3[T any] interface {
	Intersects(box geom.BoundingBox3, test BoxTest[T]) bool
	IntersectsRay(ray geom.Ray3, test RayTest[T]) bool
	ForEachIntersectingItem(box geom.BoundingBox3, test BoxTest[T], visit func(T))
	ForEachRayIntersectingItem(ray geom.Ray3, test RayTest[T], visit func(T))
	ClosestIntersection(ray geom.Ray3, eval RayDistance[T]) Hit[T]
	Nearest(p geom.Vector3, dist PointDistance[T]) Hit[T]
}
