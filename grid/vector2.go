package grid

import (
	"fmt"

	"github.com/hupe1980/implicit/geom"
)

// VectorGrid2 stores one vector per sample of a 2-D lattice (collocated).
type VectorGrid2 struct {
	Shape2
	data []geom.Vector2
}

// NewVectorGrid2 allocates a grid filled with initial.
func NewVectorGrid2(layout Layout, resolution Size2, spacing, origin geom.Vector2, initial geom.Vector2) (*VectorGrid2, error) {
	shape, err := NewShape2(layout, resolution, spacing, origin)
	if err != nil {
		return nil, err
	}
	return NewVectorGrid2FromShape(shape, initial), nil
}

// NewVectorGrid2FromShape allocates a grid over an existing shape.
func NewVectorGrid2FromShape(shape Shape2, initial geom.Vector2) *VectorGrid2 {
	g := &VectorGrid2{Shape2: shape, data: make([]geom.Vector2, shape.DataSize().Len())}
	if initial != (geom.Vector2{}) {
		g.FillValue(initial)
	}
	return g
}

// Shape returns the sampling layout.
func (g *VectorGrid2) Shape() Shape2 { return g.Shape2 }

func (g *VectorGrid2) At(i, j int) geom.Vector2 { return g.data[g.Index(i, j)] }

func (g *VectorGrid2) Set(i, j int, v geom.Vector2) { g.data[g.Index(i, j)] = v }

// AtClamped returns the sample at the nearest valid index.
func (g *VectorGrid2) AtClamped(i, j int) geom.Vector2 {
	n := g.DataSize()
	return g.data[g.Index(clamp(i, n.X), clamp(j, n.Y))]
}

// Data exposes the backing slice, i fastest.
func (g *VectorGrid2) Data() []geom.Vector2 { return g.data }

// Fill evaluates fn at every sample position in parallel.
func (g *VectorGrid2) Fill(fn func(geom.Vector2) geom.Vector2) {
	g.ParallelForEachDataPointIndex(func(i, j int) {
		g.data[g.Index(i, j)] = fn(g.DataPosition(i, j))
	})
}

// FillValue sets every sample to v.
func (g *VectorGrid2) FillValue(v geom.Vector2) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy.
func (g *VectorGrid2) Clone() *VectorGrid2 {
	return &VectorGrid2{Shape2: g.Shape2, data: append([]geom.Vector2(nil), g.data...)}
}

// Swap exchanges shape and storage with other.
func (g *VectorGrid2) Swap(other *VectorGrid2) {
	g.Shape2, other.Shape2 = other.Shape2, g.Shape2
	g.data, other.data = other.data, g.data
}

// CopyFrom copies src's samples. It fails with ErrShapeMismatch unless both
// lattices coincide.
func (g *VectorGrid2) CopyFrom(src *VectorGrid2) error {
	if !g.HasSameShape(src.Shape2) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, g.DataSize(), src.DataSize())
	}
	copy(g.data, src.data)
	return nil
}

// Component copies axis c (0 or 1) into a scalar grid of the same shape.
func (g *VectorGrid2) Component(c int) *ScalarGrid2 {
	out := NewScalarGrid2FromShape(g.Shape2, 0)
	for i, v := range g.data {
		out.data[i] = v.At(c)
	}
	return out
}

// SetComponent overwrites axis c from a scalar grid of the same shape.
func (g *VectorGrid2) SetComponent(c int, src *ScalarGrid2) error {
	if !g.HasSameShape(src.Shape2) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, g.DataSize(), src.DataSize())
	}
	for i, s := range src.data {
		if c == 0 {
			g.data[i].X = s
		} else {
			g.data[i].Y = s
		}
	}
	return nil
}

// Sample interpolates bilinearly with clamping at the lattice boundary.
func (g *VectorGrid2) Sample(p geom.Vector2) geom.Vector2 {
	n := g.DataSize()
	if n.Len() == 0 {
		return geom.Vector2{}
	}
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	lo := geom.Lerp2(g.At(i0, j0), g.At(i1, j0), fx)
	hi := geom.Lerp2(g.At(i0, j1), g.At(i1, j1), fx)
	return geom.Lerp2(lo, hi, fy)
}

func (g *VectorGrid2) Sampler() func(geom.Vector2) geom.Vector2 { return g.Sample }

// DivergenceAtDataPoint uses central differences. Neighbors past the
// boundary are clamped to the edge sample.
func (g *VectorGrid2) DivergenceAtDataPoint(i, j int) float64 {
	h := g.spacing
	return (g.AtClamped(i+1, j).X-g.AtClamped(i-1, j).X)/(2*h.X) +
		(g.AtClamped(i, j+1).Y-g.AtClamped(i, j-1).Y)/(2*h.Y)
}

// CurlAtDataPoint returns the out-of-plane curl component.
func (g *VectorGrid2) CurlAtDataPoint(i, j int) float64 {
	h := g.spacing
	return (g.AtClamped(i+1, j).Y-g.AtClamped(i-1, j).Y)/(2*h.X) -
		(g.AtClamped(i, j+1).X-g.AtClamped(i, j-1).X)/(2*h.Y)
}

// Divergence samples the nearest data point's divergence.
func (g *VectorGrid2) Divergence(p geom.Vector2) float64 {
	if g.DataSize().Len() == 0 {
		return 0
	}
	i, j := g.nearest(p)
	return g.DivergenceAtDataPoint(i, j)
}

// Curl samples the nearest data point's curl.
func (g *VectorGrid2) Curl(p geom.Vector2) float64 {
	if g.DataSize().Len() == 0 {
		return 0
	}
	i, j := g.nearest(p)
	return g.CurlAtDataPoint(i, j)
}

func (g *VectorGrid2) nearest(p geom.Vector2) (int, int) {
	n := g.DataSize()
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	if fx > 0.5 {
		i0 = i1
	}
	if fy > 0.5 {
		j0 = j1
	}
	return i0, j0
}
