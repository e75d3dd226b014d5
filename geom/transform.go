package geom

import "math"

// Transform2 is a rigid 2-D transform: a rotation by Orientation radians
// followed by a translation.
type Transform2 struct {
	Translation Vector2
	Orientation float64
}

// Identity2 is the identity transform.
func Identity2() Transform2 { return Transform2{} }

// ToLocal maps a world-space point into local space.
func (t Transform2) ToLocal(p Vector2) Vector2 {
	d := p.Sub(t.Translation)
	c, s := math.Cos(-t.Orientation), math.Sin(-t.Orientation)
	return Vector2{c*d.X - s*d.Y, s*d.X + c*d.Y}
}

// ToLocalDirection rotates a world-space direction into local space.
func (t Transform2) ToLocalDirection(d Vector2) Vector2 {
	c, s := math.Cos(-t.Orientation), math.Sin(-t.Orientation)
	return Vector2{c*d.X - s*d.Y, s*d.X + c*d.Y}
}

// ToWorld maps a local-space point into world space.
func (t Transform2) ToWorld(p Vector2) Vector2 {
	return t.ToWorldDirection(p).Add(t.Translation)
}

// ToWorldDirection rotates a local-space direction into world space.
func (t Transform2) ToWorldDirection(d Vector2) Vector2 {
	c, s := math.Cos(t.Orientation), math.Sin(t.Orientation)
	return Vector2{c*d.X - s*d.Y, s*d.X + c*d.Y}
}

// Matrix3 is a row-major 3x3 matrix.
type Matrix3 [3][3]float64

// IdentityMatrix3 returns the identity matrix.
func IdentityMatrix3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// RotationMatrix3 returns the rotation of angle radians about axis.
func RotationMatrix3(axis Vector3, angle float64) Matrix3 {
	a := axis.Normalized()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	return Matrix3{
		{t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y},
		{t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X},
		{t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c},
	}
}

// Apply returns m*v.
func (m Matrix3) Apply(v Vector3) Vector3 {
	return Vector3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transposed returns the transpose of m.
func (m Matrix3) Transposed() Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Determinant returns det(m).
func (m Matrix3) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Transform3 is a rigid 3-D transform. Rotation must be orthonormal; the zero
// value is treated as the identity.
type Transform3 struct {
	Translation Vector3
	Rotation    Matrix3
}

// Identity3 is the identity transform.
func Identity3() Transform3 { return Transform3{Rotation: IdentityMatrix3()} }

// NewTransform3 builds a transform from a translation and an axis-angle rotation.
func NewTransform3(translation, axis Vector3, angle float64) Transform3 {
	return Transform3{Translation: translation, Rotation: RotationMatrix3(axis, angle)}
}

func (t Transform3) rotation() Matrix3 {
	if t.Rotation == (Matrix3{}) {
		return IdentityMatrix3()
	}
	return t.Rotation
}

// ToLocal maps a world-space point into local space.
func (t Transform3) ToLocal(p Vector3) Vector3 {
	return t.rotation().Transposed().Apply(p.Sub(t.Translation))
}

// ToLocalDirection rotates a world-space direction into local space.
func (t Transform3) ToLocalDirection(d Vector3) Vector3 {
	return t.rotation().Transposed().Apply(d)
}

// ToWorld maps a local-space point into world space.
func (t Transform3) ToWorld(p Vector3) Vector3 {
	return t.rotation().Apply(p).Add(t.Translation)
}

// ToWorldDirection rotates a local-space direction into world space.
func (t Transform3) ToWorldDirection(d Vector3) Vector3 {
	return t.rotation().Apply(d)
}

// ToWorldBox returns the world-space bounding box of a local-space box.
func (t Transform3) ToWorldBox(b BoundingBox3) BoundingBox3 {
	out := EmptyBoundingBox3()
	for i := 0; i < 8; i++ {
		out = out.MergePoint(t.ToWorld(b.Corner(i)))
	}
	return out
}
