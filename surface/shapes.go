package surface

import (
	"math"

	"github.com/hupe1980/implicit/geom"
)

// Sphere3 is a ball centered at Center.
type Sphere3 struct {
	Center geom.Vector3
	Radius float64
}

// SignedDistance is the distance to Center minus Radius.
func (s Sphere3) SignedDistance(p geom.Vector3) float64 { return p.DistanceTo(s.Center) - s.Radius }

// Normal points away from Center. At Center itself it returns +X.
func (s Sphere3) Normal(p geom.Vector3) geom.Vector3 {
	d := p.Sub(s.Center)
	if d.LengthSquared() == 0 {
		return geom.Vec3(1, 0, 0)
	}
	return d.Normalized()
}

// BoundingBox returns the cube circumscribing the sphere.
func (s Sphere3) BoundingBox() geom.BoundingBox3 {
	r := geom.Vec3(s.Radius, s.Radius, s.Radius)
	return geom.BoundingBox3{Lower: s.Center.Sub(r), Upper: s.Center.Add(r)}
}

// Plane3 is the half-space behind the plane through Point whose outward
// normal is Direction.
type Plane3 struct {
	Point     geom.Vector3
	Direction geom.Vector3
}

// SignedDistance is positive on the side Direction points to.
func (pl Plane3) SignedDistance(p geom.Vector3) float64 {
	return p.Sub(pl.Point).Dot(pl.Direction.Normalized())
}

// Normal returns Direction normalized.
func (pl Plane3) Normal(geom.Vector3) geom.Vector3 { return pl.Direction.Normalized() }

// BoundingBox is unbounded except along an axis-aligned normal.
func (pl Plane3) BoundingBox() geom.BoundingBox3 {
	inf := math.MaxFloat64
	b := geom.BoundingBox3{Lower: geom.Vec3(-inf, -inf, -inf), Upper: geom.Vec3(inf, inf, inf)}
	n := pl.Direction.Normalized()
	switch {
	case n.Y == 0 && n.Z == 0:
		b.Lower.X, b.Upper.X = pl.Point.X, pl.Point.X
	case n.X == 0 && n.Z == 0:
		b.Lower.Y, b.Upper.Y = pl.Point.Y, pl.Point.Y
	case n.X == 0 && n.Y == 0:
		b.Lower.Z, b.Upper.Z = pl.Point.Z, pl.Point.Z
	}
	return b
}

// Box3 is a solid axis-aligned box in local space.
type Box3 struct {
	Bound geom.BoundingBox3
}

// SignedDistance is exact both inside and outside the box.
func (b Box3) SignedDistance(p geom.Vector3) float64 {
	c := b.Bound.Center()
	half := b.Bound.Upper.Sub(c)
	q := geom.Vec3(math.Abs(p.X-c.X), math.Abs(p.Y-c.Y), math.Abs(p.Z-c.Z)).Sub(half)
	outside := geom.MaxVec3(q, geom.Vector3{}).Length()
	inside := math.Min(q.Max(), 0)
	return outside + inside
}

// Normal points from the nearest boundary feature towards p outside the box.
// Inside, it is the normal of the closest face; ties prefer X, then Y.
func (b Box3) Normal(p geom.Vector3) geom.Vector3 {
	c := b.Bound.Center()
	half := b.Bound.Upper.Sub(c)
	d := p.Sub(c)
	q := geom.Vec3(math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)).Sub(half)
	sign := geom.Vec3(math.Copysign(1, d.X), math.Copysign(1, d.Y), math.Copysign(1, d.Z))
	if q.Max() > 0 {
		out := geom.MaxVec3(q, geom.Vector3{}).Mul(sign)
		return out.Normalized()
	}
	var n geom.Vector3
	switch {
	case q.X >= q.Y && q.X >= q.Z:
		n.X = sign.X
	case q.Y >= q.Z:
		n.Y = sign.Y
	default:
		n.Z = sign.Z
	}
	return n
}

// BoundingBox returns Bound.
func (b Box3) BoundingBox() geom.BoundingBox3 { return b.Bound }

// Sphere2 is a disk centered at Center.
type Sphere2 struct {
	Center geom.Vector2
	Radius float64
}

// SignedDistance is the distance to Center minus Radius.
func (s Sphere2) SignedDistance(p geom.Vector2) float64 { return p.DistanceTo(s.Center) - s.Radius }

// Normal points away from Center. At Center itself it returns +X.
func (s Sphere2) Normal(p geom.Vector2) geom.Vector2 {
	d := p.Sub(s.Center)
	if d.LengthSquared() == 0 {
		return geom.Vec2(1, 0)
	}
	return d.Normalized()
}

func (s Sphere2) BoundingBox() geom.BoundingBox2 {
	r := geom.Vec2(s.Radius, s.Radius)
	return geom.BoundingBox2{Lower: s.Center.Sub(r), Upper: s.Center.Add(r)}
}

// Box2 is a solid axis-aligned rectangle in local space.
type Box2 struct {
	Bound geom.BoundingBox2
}

// SignedDistance is exact both inside and outside the rectangle.
func (b Box2) SignedDistance(p geom.Vector2) float64 {
	c := b.Bound.Center()
	half := b.Bound.Upper.Sub(c)
	q := geom.Vec2(math.Abs(p.X-c.X), math.Abs(p.Y-c.Y)).Sub(half)
	return geom.MaxVec2(q, geom.Vector2{}).Length() + math.Min(q.Max(), 0)
}

// Normal is the 2-D counterpart of Box3.Normal.
func (b Box2) Normal(p geom.Vector2) geom.Vector2 {
	c := b.Bound.Center()
	half := b.Bound.Upper.Sub(c)
	d := p.Sub(c)
	q := geom.Vec2(math.Abs(d.X), math.Abs(d.Y)).Sub(half)
	sign := geom.Vec2(math.Copysign(1, d.X), math.Copysign(1, d.Y))
	if q.Max() > 0 {
		return geom.MaxVec2(q, geom.Vector2{}).Mul(sign).Normalized()
	}
	if q.X >= q.Y {
		return geom.Vec2(sign.X, 0)
	}
	return geom.Vec2(0, sign.Y)
}

func (b Box2) BoundingBox() geom.BoundingBox2 { return b.Bound }
