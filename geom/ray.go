package geom

// Ray2 is a half-line in the plane.
type Ray2 struct {
	Origin, Direction Vector2
}

// PointAt returns Origin + t*Direction.
func (r Ray2) PointAt(t float64) Vector2 { return r.Origin.Add(r.Direction.Scale(t)) }

// Ray3 is a half-line in space. Direction is expected to be normalized when
// distances along the ray are interpreted as world lengths.
type Ray3 struct {
	Origin, Direction Vector3
}

// NewRay3 builds a ray with a normalized direction.
func NewRay3(origin, direction Vector3) Ray3 {
	return Ray3{Origin: origin, Direction: direction.Normalized()}
}

// PointAt returns Origin + t*Direction.
func (r Ray3) PointAt(t float64) Vector3 { return r.Origin.Add(r.Direction.Scale(t)) }
