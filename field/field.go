package field

import "github.com/hupe1980/implicit/geom"

// ScalarField3 is a scalar function of 3-D position.
type ScalarField3 interface {
	Sample(p geom.Vector3) float64
	Gradient(p geom.Vector3) geom.Vector3
	Laplacian(p geom.Vector3) float64
	Sampler() func(geom.Vector3) float64
}

// VectorField3 is a vector function of 3-D position.
type VectorField3 interface {
	Sample(p geom.Vector3) geom.Vector3
	Divergence(p geom.Vector3) float64
	Curl(p geom.Vector3) geom.Vector3
	Sampler() func(geom.Vector3) geom.Vector3
}

// ScalarField2 is a scalar function of 2-D position.
type ScalarField2 interface {
	Sample(p geom.Vector2) float64
	Gradient(p geom.Vector2) geom.Vector2
	Laplacian(p geom.Vector2) float64
	Sampler() func(geom.Vector2) float64
}

// VectorField2 is a vector function of 2-D position. Curl is the
// out-of-plane component.
type VectorField2 interface {
	Sample(p geom.Vector2) geom.Vector2
	Divergence(p geom.Vector2) float64
	Curl(p geom.Vector2) float64
	Sampler() func(geom.Vector2) geom.Vector2
}

// NoDerivatives3 supplies zero derivative operators for 3-D fields.
type NoDerivatives3 struct{}

// Gradient returns the zero vector.
func (NoDerivatives3) Gradient(geom.Vector3) geom.Vector3 { return geom.Vector3{} }

// Laplacian returns 0.
func (NoDerivatives3) Laplacian(geom.Vector3) float64 { return 0 }

// Divergence returns 0.
func (NoDerivatives3) Divergence(geom.Vector3) float64 { return 0 }

// Curl returns the zero vector.
func (NoDerivatives3) Curl(geom.Vector3) geom.Vector3 { return geom.Vector3{} }

// NoDerivatives2 supplies zero derivative operators for 2-D fields.
type NoDerivatives2 struct{}

// Gradient returns the zero vector.
func (NoDerivatives2) Gradient(geom.Vector2) geom.Vector2 { return geom.Vector2{} }

// Laplacian returns 0.
func (NoDerivatives2) Laplacian(geom.Vector2) float64 { return 0 }

// Divergence returns 0.
func (NoDerivatives2) Divergence(geom.Vector2) float64 { return 0 }

// Curl returns 0.
func (NoDerivatives2) Curl(geom.Vector2) float64 { return 0 }
