package geom

import "math"

// Vector2 is a 2-D vector of float64 components.
type Vector2 struct {
	X, Y float64
}

// Vec2 is shorthand for Vector2{x, y}.
func Vec2(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

func (v Vector2) Add(o Vector2) Vector2       { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2       { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Mul(o Vector2) Vector2       { return Vector2{v.X * o.X, v.Y * o.Y} }
func (v Vector2) Div(o Vector2) Vector2       { return Vector2{v.X / o.X, v.Y / o.Y} }
func (v Vector2) Scale(s float64) Vector2     { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) AddScalar(s float64) Vector2 { return Vector2{v.X + s, v.Y + s} }
func (v Vector2) Neg() Vector2                { return Vector2{-v.X, -v.Y} }
func (v Vector2) Dot(o Vector2) float64       { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3-D cross product.
func (v Vector2) Cross(o Vector2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vector2) LengthSquared() float64 { return v.Dot(v) }
func (v Vector2) Length() float64        { return math.Sqrt(v.LengthSquared()) }

// Normalized returns the unit vector with the direction of v. The zero vector
// is returned unchanged.
func (v Vector2) Normalized() Vector2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vector2) DistanceTo(o Vector2) float64        { return v.Sub(o).Length() }
func (v Vector2) DistanceSquaredTo(o Vector2) float64 { return v.Sub(o).LengthSquared() }

func (v Vector2) Min() float64 { return math.Min(v.X, v.Y) }
func (v Vector2) Max() float64 { return math.Max(v.X, v.Y) }

// At returns the i-th component (0 = X, 1 = Y).
func (v Vector2) At(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

// IsSimilar reports whether every component differs by at most eps.
func (v Vector2) IsSimilar(o Vector2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// MinVec2 returns the component-wise minimum.
func MinVec2(a, b Vector2) Vector2 { return Vector2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)} }

// MaxVec2 returns the component-wise maximum.
func MaxVec2(a, b Vector2) Vector2 { return Vector2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)} }

// Lerp2 interpolates linearly between a and b.
func Lerp2(a, b Vector2, t float64) Vector2 { return a.Add(b.Sub(a).Scale(t)) }

// Vector3 is a 3-D vector of float64 components.
type Vector3 struct {
	X, Y, Z float64
}

// Vec3 is shorthand for Vector3{x, y, z}.
func Vec3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (v Vector3) Add(o Vector3) Vector3       { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3       { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Mul(o Vector3) Vector3       { return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vector3) Div(o Vector3) Vector3       { return Vector3{v.X / o.X, v.Y / o.Y, v.Z / o.Z} }
func (v Vector3) Scale(s float64) Vector3     { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) AddScalar(s float64) Vector3 { return Vector3{v.X + s, v.Y + s, v.Z + s} }
func (v Vector3) Neg() Vector3                { return Vector3{-v.X, -v.Y, -v.Z} }
func (v Vector3) Dot(o Vector3) float64       { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) LengthSquared() float64 { return v.Dot(v) }
func (v Vector3) Length() float64        { return math.Sqrt(v.LengthSquared()) }

// Normalized returns the unit vector with the direction of v. The zero vector
// is returned unchanged.
func (v Vector3) Normalized() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

func (v Vector3) DistanceTo(o Vector3) float64        { return v.Sub(o).Length() }
func (v Vector3) DistanceSquaredTo(o Vector3) float64 { return v.Sub(o).LengthSquared() }

func (v Vector3) Min() float64 { return math.Min(v.X, math.Min(v.Y, v.Z)) }
func (v Vector3) Max() float64 { return math.Max(v.X, math.Max(v.Y, v.Z)) }

// At returns the i-th component (0 = X, 1 = Y, 2 = Z).
func (v Vector3) At(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// DominantAxis returns the index of the component with the largest magnitude.
func (v Vector3) DominantAxis() int {
	x, y, z := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	if x > y {
		if x > z {
			return 0
		}
		return 2
	}
	if y > z {
		return 1
	}
	return 2
}

// IsSimilar reports whether every component differs by at most eps.
func (v Vector3) IsSimilar(o Vector3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// MinVec3 returns the component-wise minimum.
func MinVec3(a, b Vector3) Vector3 {
	return Vector3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// MaxVec3 returns the component-wise maximum.
func MaxVec3(a, b Vector3) Vector3 {
	return Vector3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Lerp3 interpolates linearly between a and b.
func Lerp3(a, b Vector3, t float64) Vector3 { return a.Add(b.Sub(a).Scale(t)) }
