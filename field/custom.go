package field

import "github.com/hupe1980/implicit/geom"

// CustomScalarField3 wraps a sampling function. GradientFunc and
// LaplacianFunc are optional; missing operators evaluate to zero.
type CustomScalarField3 struct {
	SampleFunc    func(geom.Vector3) float64
	GradientFunc  func(geom.Vector3) geom.Vector3
	LaplacianFunc func(geom.Vector3) float64
}

// Sample calls SampleFunc.
func (f CustomScalarField3) Sample(p geom.Vector3) float64 { return f.SampleFunc(p) }

// Gradient calls GradientFunc, or returns the zero vector when it is nil.
func (f CustomScalarField3) Gradient(p geom.Vector3) geom.Vector3 {
	if f.GradientFunc == nil {
		return geom.Vector3{}
	}
	return f.GradientFunc(p)
}

// Laplacian calls LaplacianFunc, or returns 0 when it is nil.
func (f CustomScalarField3) Laplacian(p geom.Vector3) float64 {
	if f.LaplacianFunc == nil {
		return 0
	}
	return f.LaplacianFunc(p)
}

// Sampler returns SampleFunc itself.
func (f CustomScalarField3) Sampler() func(geom.Vector3) float64 { return f.SampleFunc }

// CustomVectorField3 wraps a sampling function with optional divergence and
// curl operators.
type CustomVectorField3 struct {
	SampleFunc     func(geom.Vector3) geom.Vector3
	DivergenceFunc func(geom.Vector3) float64
	CurlFunc       func(geom.Vector3) geom.Vector3
}

// Sample calls SampleFunc.
func (f CustomVectorField3) Sample(p geom.Vector3) geom.Vector3 { return f.SampleFunc(p) }

// Divergence calls DivergenceFunc, or returns 0 when it is nil.
func (f CustomVectorField3) Divergence(p geom.Vector3) float64 {
	if f.DivergenceFunc == nil {
		return 0
	}
	return f.DivergenceFunc(p)
}

// Curl calls CurlFunc, or returns the zero vector when it is nil.
func (f CustomVectorField3) Curl(p geom.Vector3) geom.Vector3 {
	if f.CurlFunc == nil {
		return geom.Vector3{}
	}
	return f.CurlFunc(p)
}

// Sampler returns SampleFunc itself.
func (f CustomVectorField3) Sampler() func(geom.Vector3) geom.Vector3 { return f.SampleFunc }

// CustomScalarField2 is the 2-D counterpart of CustomScalarField3.
type CustomScalarField2 struct {
	SampleFunc    func(geom.Vector2) float64
	GradientFunc  func(geom.Vector2) geom.Vector2
	LaplacianFunc func(geom.Vector2) float64
}

// Sample calls SampleFunc.
func (f CustomScalarField2) Sample(p geom.Vector2) float64 { return f.SampleFunc(p) }

// Gradient calls GradientFunc, or returns the zero vector when it is nil.
func (f CustomScalarField2) Gradient(p geom.Vector2) geom.Vector2 {
	if f.GradientFunc == nil {
		return geom.Vector2{}
	}
	return f.GradientFunc(p)
}

// Laplacian calls LaplacianFunc, or returns 0 when it is nil.
func (f CustomScalarField2) Laplacian(p geom.Vector2) float64 {
	if f.LaplacianFunc == nil {
		return 0
	}
	return f.LaplacianFunc(p)
}

// Sampler returns SampleFunc itself.
func (f CustomScalarField2) Sampler() func(geom.Vector2) float64 { return f.SampleFunc }

// CustomVectorField2 is the 2-D counterpart of CustomVectorField3.
type CustomVectorField2 struct {
	SampleFunc     func(geom.Vector2) geom.Vector2
	DivergenceFunc func(geom.Vector2) float64
	CurlFunc       func(geom.Vector2) float64
}

// Sample calls SampleFunc.
func (f CustomVectorField2) Sample(p geom.Vector2) geom.Vector2 { return f.SampleFunc(p) }

// Divergence calls DivergenceFunc, or returns 0 when it is nil.
func (f CustomVectorField2) Divergence(p geom.Vector2) float64 {
	if f.DivergenceFunc == nil {
		return 0
	}
	return f.DivergenceFunc(p)
}

// Curl calls CurlFunc, or returns 0 when it is nil.
func (f CustomVectorField2) Curl(p geom.Vector2) float64 {
	if f.CurlFunc == nil {
		return 0
	}
	return f.CurlFunc(p)
}

// Sampler returns SampleFunc itself.
func (f CustomVectorField2) Sampler() func(geom.Vector2) geom.Vector2 { return f.SampleFunc }
