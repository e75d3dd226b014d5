package grid

import (
	"fmt"

	"github.com/hupe1980/implicit/geom"
)

// ScalarGrid3 stores one float64 per sample of a 3-D lattice.
type ScalarGrid3 struct {
	Shape3
	data []float64
}

// NewScalarGrid3 allocates a grid filled with initial.
func NewScalarGrid3(layout Layout, resolution Size3, spacing, origin geom.Vector3, initial float64) (*ScalarGrid3, error) {
	shape, err := NewShape3(layout, resolution, spacing, origin)
	if err != nil {
		return nil, err
	}
	return NewScalarGrid3FromShape(shape, initial), nil
}

// NewScalarGrid3FromShape allocates a grid over an existing shape.
func NewScalarGrid3FromShape(shape Shape3, initial float64) *ScalarGrid3 {
	g := &ScalarGrid3{Shape3: shape, data: make([]float64, shape.DataSize().Len())}
	if initial != 0 {
		g.FillValue(initial)
	}
	return g
}

// NewCellCenteredScalarGrid3 allocates a zeroed cell-centered grid.
func NewCellCenteredScalarGrid3(resolution Size3, spacing, origin geom.Vector3) (*ScalarGrid3, error) {
	return NewScalarGrid3(CellCentered, resolution, spacing, origin, 0)
}

// NewVertexCenteredScalarGrid3 allocates a zeroed vertex-centered grid.
func NewVertexCenteredScalarGrid3(resolution Size3, spacing, origin geom.Vector3) (*ScalarGrid3, error) {
	return NewScalarGrid3(VertexCentered, resolution, spacing, origin, 0)
}

// Shape returns the lattice description.
func (g *ScalarGrid3) Shape() Shape3 { return g.Shape3 }

// At returns sample (i, j, k).
func (g *ScalarGrid3) At(i, j, k int) float64 { return g.data[g.Index(i, j, k)] }

// Set overwrites sample (i, j, k).
func (g *ScalarGrid3) Set(i, j, k int, v float64) { g.data[g.Index(i, j, k)] = v }

// AtClamped returns the sample at the nearest valid index.
func (g *ScalarGrid3) AtClamped(i, j, k int) float64 {
	n := g.DataSize()
	return g.data[g.Index(clamp(i, n.X), clamp(j, n.Y), clamp(k, n.Z))]
}

// Data exposes the backing slice, i fastest.
func (g *ScalarGrid3) Data() []float64 { return g.data }

// Fill evaluates fn at every sample position in parallel.
func (g *ScalarGrid3) Fill(fn func(geom.Vector3) float64) {
	g.ParallelForEachDataPointIndex(func(i, j, k int) {
		g.data[g.Index(i, j, k)] = fn(g.DataPosition(i, j, k))
	})
}

// FillValue sets every sample to v.
func (g *ScalarGrid3) FillValue(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy.
func (g *ScalarGrid3) Clone() *ScalarGrid3 {
	return &ScalarGrid3{Shape3: g.Shape3, data: append([]float64(nil), g.data...)}
}

// Swap exchanges shape and storage with other. Neither grid keeps a reference
// to its previous buffer.
func (g *ScalarGrid3) Swap(other *ScalarGrid3) {
	g.Shape3, other.Shape3 = other.Shape3, g.Shape3
	g.data, other.data = other.data, g.data
}

// CopyFrom overwrites the samples of g with those of src.
func (g *ScalarGrid3) CopyFrom(src *ScalarGrid3) error {
	if !g.HasSameShape(src.Shape3) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, g.DataSize(), src.DataSize())
	}
	copy(g.data, src.data)
	return nil
}

// Sample interpolates trilinearly; positions outside the lattice clamp to
// the nearest boundary sample.
func (g *ScalarGrid3) Sample(p geom.Vector3) float64 {
	n := g.DataSize()
	if n.Len() == 0 {
		return 0
	}
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	k0, k1, fz := locate(p.Z, o.Z, h.Z, n.Z)

	c00 := lerp(g.At(i0, j0, k0), g.At(i1, j0, k0), fx)
	c10 := lerp(g.At(i0, j1, k0), g.At(i1, j1, k0), fx)
	c01 := lerp(g.At(i0, j0, k1), g.At(i1, j0, k1), fx)
	c11 := lerp(g.At(i0, j1, k1), g.At(i1, j1, k1), fx)
	return lerp(lerp(c00, c10, fy), lerp(c01, c11, fy), fz)
}

// Sampler returns Sample as a function value.
func (g *ScalarGrid3) Sampler() func(geom.Vector3) float64 { return g.Sample }

// GradientAtDataPoint is the central-difference gradient with clamped
// neighbors.
func (g *ScalarGrid3) GradientAtDataPoint(i, j, k int) geom.Vector3 {
	h := g.spacing
	return geom.Vector3{
		X: (g.AtClamped(i+1, j, k) - g.AtClamped(i-1, j, k)) / (2 * h.X),
		Y: (g.AtClamped(i, j+1, k) - g.AtClamped(i, j-1, k)) / (2 * h.Y),
		Z: (g.AtClamped(i, j, k+1) - g.AtClamped(i, j, k-1)) / (2 * h.Z),
	}
}

// LaplacianAtDataPoint is the 7-point Laplacian with clamped neighbors.
func (g *ScalarGrid3) LaplacianAtDataPoint(i, j, k int) float64 {
	h := g.spacing
	c := g.At(i, j, k)
	return (g.AtClamped(i+1, j, k)-2*c+g.AtClamped(i-1, j, k))/(h.X*h.X) +
		(g.AtClamped(i, j+1, k)-2*c+g.AtClamped(i, j-1, k))/(h.Y*h.Y) +
		(g.AtClamped(i, j, k+1)-2*c+g.AtClamped(i, j, k-1))/(h.Z*h.Z)
}

// Gradient interpolates the data-point gradients trilinearly.
func (g *ScalarGrid3) Gradient(p geom.Vector3) geom.Vector3 {
	n := g.DataSize()
	if n.Len() == 0 {
		return geom.Vector3{}
	}
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	k0, k1, fz := locate(p.Z, o.Z, h.Z, n.Z)

	l := func(a, b geom.Vector3, t float64) geom.Vector3 { return geom.Lerp3(a, b, t) }
	c00 := l(g.GradientAtDataPoint(i0, j0, k0), g.GradientAtDataPoint(i1, j0, k0), fx)
	c10 := l(g.GradientAtDataPoint(i0, j1, k0), g.GradientAtDataPoint(i1, j1, k0), fx)
	c01 := l(g.GradientAtDataPoint(i0, j0, k1), g.GradientAtDataPoint(i1, j0, k1), fx)
	c11 := l(g.GradientAtDataPoint(i0, j1, k1), g.GradientAtDataPoint(i1, j1, k1), fx)
	return l(l(c00, c10, fy), l(c01, c11, fy), fz)
}

// Laplacian interpolates the data-point Laplacians trilinearly.
func (g *ScalarGrid3) Laplacian(p geom.Vector3) float64 {
	n := g.DataSize()
	if n.Len() == 0 {
		return 0
	}
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	k0, k1, fz := locate(p.Z, o.Z, h.Z, n.Z)

	c00 := lerp(g.LaplacianAtDataPoint(i0, j0, k0), g.LaplacianAtDataPoint(i1, j0, k0), fx)
	c10 := lerp(g.LaplacianAtDataPoint(i0, j1, k0), g.LaplacianAtDataPoint(i1, j1, k0), fx)
	c01 := lerp(g.LaplacianAtDataPoint(i0, j0, k1), g.LaplacianAtDataPoint(i1, j0, k1), fx)
	c11 := lerp(g.LaplacianAtDataPoint(i0, j1, k1), g.LaplacianAtDataPoint(i1, j1, k1), fx)
	return lerp(lerp(c00, c10, fy), lerp(c01, c11, fy), fz)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
