package grid

import (
	"fmt"

	"github.com/hupe1980/implicit/geom"
)

// ScalarGrid2 stores one float64 per sample of a 2-D lattice.
type ScalarGrid2 struct {
	Shape2
	data []float64
}

// NewScalarGrid2 allocates a grid filled with initial.
func NewScalarGrid2(layout Layout, resolution Size2, spacing, origin geom.Vector2, initial float64) (*ScalarGrid2, error) {
	shape, err := NewShape2(layout, resolution, spacing, origin)
	if err != nil {
		return nil, err
	}
	return NewScalarGrid2FromShape(shape, initial), nil
}

// NewScalarGrid2FromShape allocates a grid over an existing shape.
func NewScalarGrid2FromShape(shape Shape2, initial float64) *ScalarGrid2 {
	g := &ScalarGrid2{Shape2: shape, data: make([]float64, shape.DataSize().Len())}
	if initial != 0 {
		g.FillValue(initial)
	}
	return g
}

// NewCellCenteredScalarGrid2 allocates a zeroed cell-centered grid.
func NewCellCenteredScalarGrid2(resolution Size2, spacing, origin geom.Vector2) (*ScalarGrid2, error) {
	return NewScalarGrid2(CellCentered, resolution, spacing, origin, 0)
}

// NewVertexCenteredScalarGrid2 allocates a zeroed vertex-centered grid.
func NewVertexCenteredScalarGrid2(resolution Size2, spacing, origin geom.Vector2) (*ScalarGrid2, error) {
	return NewScalarGrid2(VertexCentered, resolution, spacing, origin, 0)
}

// Shape returns the sampling layout.
func (g *ScalarGrid2) Shape() Shape2 { return g.Shape2 }

func (g *ScalarGrid2) At(i, j int) float64 { return g.data[g.Index(i, j)] }

func (g *ScalarGrid2) Set(i, j int, v float64) { g.data[g.Index(i, j)] = v }

// AtClamped returns the sample at the nearest valid index.
func (g *ScalarGrid2) AtClamped(i, j int) float64 {
	n := g.DataSize()
	return g.data[g.Index(clamp(i, n.X), clamp(j, n.Y))]
}

// Data exposes the backing slice, i fastest.
func (g *ScalarGrid2) Data() []float64 { return g.data }

// Fill evaluates fn at every sample position in parallel.
func (g *ScalarGrid2) Fill(fn func(geom.Vector2) float64) {
	g.ParallelForEachDataPointIndex(func(i, j int) {
		g.data[g.Index(i, j)] = fn(g.DataPosition(i, j))
	})
}

// FillValue sets every sample to v.
func (g *ScalarGrid2) FillValue(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy.
func (g *ScalarGrid2) Clone() *ScalarGrid2 {
	return &ScalarGrid2{Shape2: g.Shape2, data: append([]float64(nil), g.data...)}
}

// Swap exchanges shape and storage with other.
func (g *ScalarGrid2) Swap(other *ScalarGrid2) {
	g.Shape2, other.Shape2 = other.Shape2, g.Shape2
	g.data, other.data = other.data, g.data
}

// CopyFrom overwrites the samples of g with those of src.
func (g *ScalarGrid2) CopyFrom(src *ScalarGrid2) error {
	if !g.HasSameShape(src.Shape2) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, g.DataSize(), src.DataSize())
	}
	copy(g.data, src.data)
	return nil
}

// Sample interpolates bilinearly with clamping at the lattice boundary.
func (g *ScalarGrid2) Sample(p geom.Vector2) float64 {
	n := g.DataSize()
	if n.Len() == 0 {
		return 0
	}
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	return lerp(lerp(g.At(i0, j0), g.At(i1, j0), fx), lerp(g.At(i0, j1), g.At(i1, j1), fx), fy)
}

func (g *ScalarGrid2) Sampler() func(geom.Vector2) float64 { return g.Sample }

// GradientAtDataPoint is the central-difference gradient with clamped
// neighbors.
func (g *ScalarGrid2) GradientAtDataPoint(i, j int) geom.Vector2 {
	h := g.spacing
	return geom.Vector2{
		X: (g.AtClamped(i+1, j) - g.AtClamped(i-1, j)) / (2 * h.X),
		Y: (g.AtClamped(i, j+1) - g.AtClamped(i, j-1)) / (2 * h.Y),
	}
}

// LaplacianAtDataPoint is the 5-point Laplacian with clamped neighbors.
func (g *ScalarGrid2) LaplacianAtDataPoint(i, j int) float64 {
	h := g.spacing
	c := g.At(i, j)
	return (g.AtClamped(i+1, j)-2*c+g.AtClamped(i-1, j))/(h.X*h.X) +
		(g.AtClamped(i, j+1)-2*c+g.AtClamped(i, j-1))/(h.Y*h.Y)
}

// Gradient interpolates the data-point gradients bilinearly.
func (g *ScalarGrid2) Gradient(p geom.Vector2) geom.Vector2 {
	n := g.DataSize()
	if n.Len() == 0 {
		return geom.Vector2{}
	}
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	lo := geom.Lerp2(g.GradientAtDataPoint(i0, j0), g.GradientAtDataPoint(i1, j0), fx)
	hi := geom.Lerp2(g.GradientAtDataPoint(i0, j1), g.GradientAtDataPoint(i1, j1), fx)
	return geom.Lerp2(lo, hi, fy)
}

// Laplacian interpolates the data-point Laplacians bilinearly.
func (g *ScalarGrid2) Laplacian(p geom.Vector2) float64 {
	n := g.DataSize()
	if n.Len() == 0 {
		return 0
	}
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	lo := lerp(g.LaplacianAtDataPoint(i0, j0), g.LaplacianAtDataPoint(i1, j0), fx)
	hi := lerp(g.LaplacianAtDataPoint(i0, j1), g.LaplacianAtDataPoint(i1, j1), fx)
	return lerp(lo, hi, fy)
}
