package field

import "github.com/hupe1980/implicit/geom"

// ConstantScalarField3 returns Value everywhere.
type ConstantScalarField3 struct {
	NoDerivatives3
	Value float64
}

// Sample returns f.Value.
func (f ConstantScalarField3) Sample(geom.Vector3) float64 { return f.Value }

// Sampler returns a closure over a copy of f.Value.
func (f ConstantScalarField3) Sampler() func(geom.Vector3) float64 {
	v := f.Value
	return func(geom.Vector3) float64 { return v }
}

// ConstantVectorField3 returns Value everywhere.
type ConstantVectorField3 struct {
	NoDerivatives3
	Value geom.Vector3
}

// Sample returns f.Value.
func (f ConstantVectorField3) Sample(geom.Vector3) geom.Vector3 { return f.Value }

// Sampler returns a closure over a copy of f.Value.
func (f ConstantVectorField3) Sampler() func(geom.Vector3) geom.Vector3 {
	v := f.Value
	return func(geom.Vector3) geom.Vector3 { return v }
}

// ConstantScalarField2 returns Value everywhere.
type ConstantScalarField2 struct {
	NoDerivatives2
	Value float64
}

// Sample returns f.Value.
func (f ConstantScalarField2) Sample(geom.Vector2) float64 { return f.Value }

// Sampler returns a closure over a copy of f.Value.
func (f ConstantScalarField2) Sampler() func(geom.Vector2) float64 {
	v := f.Value
	return func(geom.Vector2) float64 { return v }
}

// ConstantVectorField2 returns Value everywhere.
type ConstantVectorField2 struct {
	NoDerivatives2
	Value geom.Vector2
}

// Sample returns f.Value.
func (f ConstantVectorField2) Sample(geom.Vector2) geom.Vector2 { return f.Value }

// Sampler returns a closure over a copy of f.Value.
func (f ConstantVectorField2) Sampler() func(geom.Vector2) geom.Vector2 {
	v := f.Value
	return func(geom.Vector2) geom.Vector2 { return v }
}
