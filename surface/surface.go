package surface

import (
	"math"

	"github.com/hupe1980/implicit/geom"
)

// ImplicitSurface3 is the world-space implicit surface contract.
type ImplicitSurface3 interface {
	// SignedDistance is negative inside the surface.
	SignedDistance(p geom.Vector3) float64
	// ClosestDistance is |SignedDistance(p)|.
	ClosestDistance(p geom.Vector3) float64
	// IsInside reports SignedDistance(p) < 0.
	IsInside(p geom.Vector3) bool
	// ClosestNormal is the outward unit normal at the surface point closest to p.
	ClosestNormal(p geom.Vector3) geom.Vector3
	BoundingBox() geom.BoundingBox3
}

// Geometry3 is a shape expressed in its own local frame.
type Geometry3 interface {
	SignedDistance(p geom.Vector3) float64
	Normal(p geom.Vector3) geom.Vector3
	BoundingBox() geom.BoundingBox3
}

// Surface3 places a Geometry3 in world space.
type Surface3 struct {
	Geometry        Geometry3
	Transform       geom.Transform3
	IsNormalFlipped bool
}

var _ ImplicitSurface3 = Surface3{}

// New3 wraps g with the identity transform.
func New3(g Geometry3) Surface3 { return Surface3{Geometry: g} }

// SignedDistance evaluates the geometry at the local-frame image of p and
// negates the result when IsNormalFlipped is set. Transform is rigid, so the
// local distance is also the world distance.
func (s Surface3) SignedDistance(p geom.Vector3) float64 {
	d := s.Geometry.SignedDistance(s.Transform.ToLocal(p))
	if s.IsNormalFlipped {
		return -d
	}
	return d
}

// ClosestDistance returns |SignedDistance(p)|.
func (s Surface3) ClosestDistance(p geom.Vector3) float64 { return math.Abs(s.SignedDistance(p)) }

// IsInside reports whether p lies strictly inside.
func (s Surface3) IsInside(p geom.Vector3) bool { return s.SignedDistance(p) < 0 }

// ClosestNormal maps the local normal back to world space.
func (s Surface3) ClosestNormal(p geom.Vector3) geom.Vector3 {
	n := s.Transform.ToWorldDirection(s.Geometry.Normal(s.Transform.ToLocal(p)))
	if s.IsNormalFlipped {
		return n.Neg()
	}
	return n
}

// ClosestPoint projects p onto the surface along the normal.
func (s Surface3) ClosestPoint(p geom.Vector3) geom.Vector3 {
	d := s.SignedDistance(p)
	return p.Sub(s.ClosestNormal(p).Scale(d))
}

// BoundingBox transforms the local bounds into world space.
func (s Surface3) BoundingBox() geom.BoundingBox3 {
	return s.Transform.ToWorldBox(s.Geometry.BoundingBox())
}

// ImplicitSurface2 is the 2-D world-space implicit surface contract.
type ImplicitSurface2 interface {
	SignedDistance(p geom.Vector2) float64
	ClosestDistance(p geom.Vector2) float64
	IsInside(p geom.Vector2) bool
	ClosestNormal(p geom.Vector2) geom.Vector2
	BoundingBox() geom.BoundingBox2
}

// Geometry2 is a 2-D shape expressed in its own local frame.
type Geometry2 interface {
	SignedDistance(p geom.Vector2) float64
	Normal(p geom.Vector2) geom.Vector2
	BoundingBox() geom.BoundingBox2
}

// Surface2 places a Geometry2 in world space.
type Surface2 struct {
	Geometry        Geometry2
	Transform       geom.Transform2
	IsNormalFlipped bool
}

var _ ImplicitSurface2 = Surface2{}

// New2 wraps g with the identity transform.
func New2(g Geometry2) Surface2 { return Surface2{Geometry: g} }

// SignedDistance is the 2-D counterpart of Surface3.SignedDistance.
func (s Surface2) SignedDistance(p geom.Vector2) float64 {
	d := s.Geometry.SignedDistance(s.Transform.ToLocal(p))
	if s.IsNormalFlipped {
		return -d
	}
	return d
}

func (s Surface2) ClosestDistance(p geom.Vector2) float64 { return math.Abs(s.SignedDistance(p)) }

func (s Surface2) IsInside(p geom.Vector2) bool { return s.SignedDistance(p) < 0 }

// ClosestNormal maps the local normal back to world space.
func (s Surface2) ClosestNormal(p geom.Vector2) geom.Vector2 {
	n := s.Transform.ToWorldDirection(s.Geometry.Normal(s.Transform.ToLocal(p)))
	if s.IsNormalFlipped {
		return n.Neg()
	}
	return n
}

// BoundingBox merges the four transformed corners of the local bounds.
func (s Surface2) BoundingBox() geom.BoundingBox2 {
	b := s.Geometry.BoundingBox()
	out := geom.EmptyBoundingBox2()
	for _, c := range []geom.Vector2{b.Lower, b.Upper, {X: b.Lower.X, Y: b.Upper.Y}, {X: b.Upper.X, Y: b.Lower.Y}} {
		out = out.MergePoint(s.Transform.ToWorld(c))
	}
	return out
}
