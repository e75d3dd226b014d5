package geom

import "math"

// BoundingBox2 is an axis-aligned rectangle.
type BoundingBox2 struct {
	Lower, Upper Vector2
}

// NewBoundingBox2 builds a box from two arbitrary corners.
func NewBoundingBox2(a, b Vector2) BoundingBox2 {
	return BoundingBox2{Lower: MinVec2(a, b), Upper: MaxVec2(a, b)}
}

// EmptyBoundingBox2 returns an inverted box that any Merge call replaces.
func EmptyBoundingBox2() BoundingBox2 {
	inf := math.Inf(1)
	return BoundingBox2{Lower: Vector2{inf, inf}, Upper: Vector2{-inf, -inf}}
}

func (b BoundingBox2) Width() float64  { return b.Upper.X - b.Lower.X }
func (b BoundingBox2) Height() float64 { return b.Upper.Y - b.Lower.Y }

// Length returns the extent along axis i.
func (b BoundingBox2) Length(i int) float64 { return b.Upper.At(i) - b.Lower.At(i) }

// IsEmpty reports whether any extent is non-positive.
func (b BoundingBox2) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

func (b BoundingBox2) Center() Vector2 { return b.Lower.Add(b.Upper).Scale(0.5) }

// Contains reports whether p lies inside b, boundary included.
func (b BoundingBox2) Contains(p Vector2) bool {
	return p.X >= b.Lower.X && p.X <= b.Upper.X && p.Y >= b.Lower.Y && p.Y <= b.Upper.Y
}

func (b BoundingBox2) Overlaps(o BoundingBox2) bool {
	return b.Upper.X >= o.Lower.X && b.Lower.X <= o.Upper.X &&
		b.Upper.Y >= o.Lower.Y && b.Lower.Y <= o.Upper.Y
}

func (b BoundingBox2) MergePoint(p Vector2) BoundingBox2 {
	return BoundingBox2{Lower: MinVec2(b.Lower, p), Upper: MaxVec2(b.Upper, p)}
}

func (b BoundingBox2) Merge(o BoundingBox2) BoundingBox2 {
	return BoundingBox2{Lower: MinVec2(b.Lower, o.Lower), Upper: MaxVec2(b.Upper, o.Upper)}
}

// Expand grows the box by delta on every side.
func (b BoundingBox2) Expand(delta float64) BoundingBox2 {
	return BoundingBox2{Lower: b.Lower.AddScalar(-delta), Upper: b.Upper.AddScalar(delta)}
}

// Clamp returns the point of b closest to p.
func (b BoundingBox2) Clamp(p Vector2) Vector2 { return MaxVec2(b.Lower, MinVec2(b.Upper, p)) }

// BoundingBox3 is an axis-aligned box.
type BoundingBox3 struct {
	Lower, Upper Vector3
}

// NewBoundingBox3 builds a box from two arbitrary corners.
func NewBoundingBox3(a, b Vector3) BoundingBox3 {
	return BoundingBox3{Lower: MinVec3(a, b), Upper: MaxVec3(a, b)}
}

// EmptyBoundingBox3 returns an inverted box that any Merge call replaces.
func EmptyBoundingBox3() BoundingBox3 {
	inf := math.Inf(1)
	return BoundingBox3{Lower: Vector3{inf, inf, inf}, Upper: Vector3{-inf, -inf, -inf}}
}

func (b BoundingBox3) Width() float64  { return b.Upper.X - b.Lower.X }
func (b BoundingBox3) Height() float64 { return b.Upper.Y - b.Lower.Y }
func (b BoundingBox3) Depth() float64  { return b.Upper.Z - b.Lower.Z }

// Length returns the extent along axis i.
func (b BoundingBox3) Length(i int) float64 { return b.Upper.At(i) - b.Lower.At(i) }

// IsEmpty reports whether any extent is non-positive.
func (b BoundingBox3) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0 || b.Depth() <= 0
}

func (b BoundingBox3) Center() Vector3 { return b.Lower.Add(b.Upper).Scale(0.5) }

// DiagonalLength is the distance between the two corners.
func (b BoundingBox3) DiagonalLength() float64 { return b.Upper.DistanceTo(b.Lower) }

// Contains reports whether p lies inside b, boundary included.
func (b BoundingBox3) Contains(p Vector3) bool {
	return p.X >= b.Lower.X && p.X <= b.Upper.X &&
		p.Y >= b.Lower.Y && p.Y <= b.Upper.Y &&
		p.Z >= b.Lower.Z && p.Z <= b.Upper.Z
}

func (b BoundingBox3) Overlaps(o BoundingBox3) bool {
	return b.Upper.X >= o.Lower.X && b.Lower.X <= o.Upper.X &&
		b.Upper.Y >= o.Lower.Y && b.Lower.Y <= o.Upper.Y &&
		b.Upper.Z >= o.Lower.Z && b.Lower.Z <= o.Upper.Z
}

func (b BoundingBox3) MergePoint(p Vector3) BoundingBox3 {
	return BoundingBox3{Lower: MinVec3(b.Lower, p), Upper: MaxVec3(b.Upper, p)}
}

func (b BoundingBox3) Merge(o BoundingBox3) BoundingBox3 {
	return BoundingBox3{Lower: MinVec3(b.Lower, o.Lower), Upper: MaxVec3(b.Upper, o.Upper)}
}

// Expand grows the box by delta on every side.
func (b BoundingBox3) Expand(delta float64) BoundingBox3 {
	return BoundingBox3{Lower: b.Lower.AddScalar(-delta), Upper: b.Upper.AddScalar(delta)}
}

// Clamp returns the point of b closest to p.
func (b BoundingBox3) Clamp(p Vector3) Vector3 { return MaxVec3(b.Lower, MinVec3(b.Upper, p)) }

// Corner returns corner idx in 0..7; bit 0 selects X, bit 1 Y, bit 2 Z.
func (b BoundingBox3) Corner(idx int) Vector3 {
	c := b.Lower
	if idx&1 != 0 {
		c.X = b.Upper.X
	}
	if idx&2 != 0 {
		c.Y = b.Upper.Y
	}
	if idx&4 != 0 {
		c.Z = b.Upper.Z
	}
	return c
}

// IntersectRay returns the entry and exit parameters of r against b using the
// slab method. ok is false when the ray misses or the box lies behind it.
func (b BoundingBox3) IntersectRay(r Ray3) (tMin, tMax float64, ok bool) {
	tMin, tMax = 0, math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin.At(axis), r.Direction.At(axis)
		lo, hi := b.Lower.At(axis), b.Upper.At(axis)
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d
		t0, t1 := (lo-o)*inv, (hi-o)*inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}
