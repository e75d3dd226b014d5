package surface

import (
	"math"

	"github.com/hupe1980/implicit/bvh"
	"github.com/hupe1980/implicit/geom"
)

// Set3 is the union of several surfaces. Normal queries go through a BVH
// over the members.
type Set3 struct {
	surfaces []ImplicitSurface3
	tree     *bvh.BVH3[ImplicitSurface3]
}

var _ Geometry3 = (*Set3)(nil)

// NewSet3 builds the union of surfaces.
func NewSet3(surfaces ...ImplicitSurface3) *Set3 {
	return &Set3{
		surfaces: surfaces,
		tree:     bvh.Build(surfaces, func(s ImplicitSurface3) geom.BoundingBox3 { return s.BoundingBox() }),
	}
}

// Len returns the number of members.
func (s *Set3) Len() int { return len(s.surfaces) }

// SignedDistance is the minimum member distance; +Inf for an empty set.
func (s *Set3) SignedDistance(p geom.Vector3) float64 {
	d := math.Inf(1)
	for _, m := range s.surfaces {
		d = math.Min(d, m.SignedDistance(p))
	}
	return d
}

// Normal is the normal of the member closest to p.
func (s *Set3) Normal(p geom.Vector3) geom.Vector3 {
	hit := s.tree.Nearest(p, func(m ImplicitSurface3, q geom.Vector3) float64 {
		return m.ClosestDistance(q)
	})
	if !hit.Found {
		return geom.Vector3{}
	}
	return hit.Item.ClosestNormal(p)
}

// BoundingBox is the union of the member bounds.
func (s *Set3) BoundingBox() geom.BoundingBox3 { return s.tree.BoundingBox() }
