package surface

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/hupe1980/implicit/geom"
)

// SDFX3 adapts a github.com/deadsy/sdfx solid to Geometry3.
type SDFX3 struct {
	SDF sdf.SDF3
	// Eps is the central-difference step for normals; zero selects a step
	// proportional to the solid's size.
	Eps float64
}

// SignedDistance evaluates the wrapped solid.
func (s SDFX3) SignedDistance(p geom.Vector3) float64 { return s.SDF.Evaluate(toV3(p)) }

// Normal estimates the gradient of the solid by central differences. sdfx
// solids expose no analytic normal.
func (s SDFX3) Normal(p geom.Vector3) geom.Vector3 {
	h := s.Eps
	if h <= 0 {
		h = 1e-5 * s.BoundingBox().DiagonalLength()
	}
	return numericNormal3(s.SignedDistance, p, h)
}

// BoundingBox converts the solid's bounds.
func (s SDFX3) BoundingBox() geom.BoundingBox3 {
	bb := s.SDF.BoundingBox()
	return geom.BoundingBox3{Lower: fromV3(bb.Min), Upper: fromV3(bb.Max)}
}

// ToSDFX exposes any implicit surface as an sdfx solid, e.g. for meshing.
func ToSDFX(s ImplicitSurface3) sdf.SDF3 { return sdfxSolid{s} }

type sdfxSolid struct {
	s ImplicitSurface3
}

func (a sdfxSolid) Evaluate(p v3.Vec) float64 { return a.s.SignedDistance(fromV3(p)) }

func (a sdfxSolid) BoundingBox() sdf.Box3 {
	b := a.s.BoundingBox()
	return sdf.Box3{Min: toV3(b.Lower), Max: toV3(b.Upper)}
}

func toV3(p geom.Vector3) v3.Vec   { return v3.Vec{X: p.X, Y: p.Y, Z: p.Z} }
func fromV3(p v3.Vec) geom.Vector3 { return geom.Vector3{X: p.X, Y: p.Y, Z: p.Z} }
