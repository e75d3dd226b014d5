package grid

import (
	"fmt"

	"github.com/hupe1980/implicit/geom"
)

// VectorGrid3 stores one vector per sample of a 3-D lattice (collocated).
type VectorGrid3 struct {
	Shape3
	data []geom.Vector3
}

// NewVectorGrid3 allocates a grid filled with initial.
func NewVectorGrid3(layout Layout, resolution Size3, spacing, origin geom.Vector3, initial geom.Vector3) (*VectorGrid3, error) {
	shape, err := NewShape3(layout, resolution, spacing, origin)
	if err != nil {
		return nil, err
	}
	return NewVectorGrid3FromShape(shape, initial), nil
}

// NewVectorGrid3FromShape allocates a grid over an existing shape.
func NewVectorGrid3FromShape(shape Shape3, initial geom.Vector3) *VectorGrid3 {
	g := &VectorGrid3{Shape3: shape, data: make([]geom.Vector3, shape.DataSize().Len())}
	if initial != (geom.Vector3{}) {
		g.FillValue(initial)
	}
	return g
}

// Shape returns the sampling layout.
func (g *VectorGrid3) Shape() Shape3 { return g.Shape3 }

func (g *VectorGrid3) At(i, j, k int) geom.Vector3 { return g.data[g.Index(i, j, k)] }

func (g *VectorGrid3) Set(i, j, k int, v geom.Vector3) { g.data[g.Index(i, j, k)] = v }

// AtClamped returns the sample at the nearest valid index.
func (g *VectorGrid3) AtClamped(i, j, k int) geom.Vector3 {
	n := g.DataSize()
	return g.data[g.Index(clamp(i, n.X), clamp(j, n.Y), clamp(k, n.Z))]
}

// Data exposes the backing slice, i fastest.
func (g *VectorGrid3) Data() []geom.Vector3 { return g.data }

// Fill evaluates fn at every sample position in parallel.
func (g *VectorGrid3) Fill(fn func(geom.Vector3) geom.Vector3) {
	g.ParallelForEachDataPointIndex(func(i, j, k int) {
		g.data[g.Index(i, j, k)] = fn(g.DataPosition(i, j, k))
	})
}

// FillValue sets every sample to v.
func (g *VectorGrid3) FillValue(v geom.Vector3) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy.
func (g *VectorGrid3) Clone() *VectorGrid3 {
	return &VectorGrid3{Shape3: g.Shape3, data: append([]geom.Vector3(nil), g.data...)}
}

// Swap exchanges shape and storage with other.
func (g *VectorGrid3) Swap(other *VectorGrid3) {
	g.Shape3, other.Shape3 = other.Shape3, g.Shape3
	g.data, other.data = other.data, g.data
}

// CopyFrom overwrites the samples of g with those of src.
func (g *VectorGrid3) CopyFrom(src *VectorGrid3) error {
	if !g.HasSameShape(src.Shape3) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, g.DataSize(), src.DataSize())
	}
	copy(g.data, src.data)
	return nil
}

// Component copies axis c (0, 1 or 2) into a scalar grid of the same shape.
func (g *VectorGrid3) Component(c int) *ScalarGrid3 {
	out := NewScalarGrid3FromShape(g.Shape3, 0)
	for i, v := range g.data {
		out.data[i] = v.At(c)
	}
	return out
}

// SetComponent overwrites axis c from a scalar grid of the same shape.
func (g *VectorGrid3) SetComponent(c int, src *ScalarGrid3) error {
	if !g.HasSameShape(src.Shape3) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, g.DataSize(), src.DataSize())
	}
	for i, s := range src.data {
		switch c {
		case 0:
			g.data[i].X = s
		case 1:
			g.data[i].Y = s
		default:
			g.data[i].Z = s
		}
	}
	return nil
}

// Sample interpolates trilinearly with clamping at the lattice boundary.
func (g *VectorGrid3) Sample(p geom.Vector3) geom.Vector3 {
	n := g.DataSize()
	if n.Len() == 0 {
		return geom.Vector3{}
	}
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	k0, k1, fz := locate(p.Z, o.Z, h.Z, n.Z)

	c00 := geom.Lerp3(g.At(i0, j0, k0), g.At(i1, j0, k0), fx)
	c10 := geom.Lerp3(g.At(i0, j1, k0), g.At(i1, j1, k0), fx)
	c01 := geom.Lerp3(g.At(i0, j0, k1), g.At(i1, j0, k1), fx)
	c11 := geom.Lerp3(g.At(i0, j1, k1), g.At(i1, j1, k1), fx)
	return geom.Lerp3(geom.Lerp3(c00, c10, fy), geom.Lerp3(c01, c11, fy), fz)
}

func (g *VectorGrid3) Sampler() func(geom.Vector3) geom.Vector3 { return g.Sample }

// DivergenceAtDataPoint uses central differences with clamped neighbors.
func (g *VectorGrid3) DivergenceAtDataPoint(i, j, k int) float64 {
	h := g.spacing
	return (g.AtClamped(i+1, j, k).X-g.AtClamped(i-1, j, k).X)/(2*h.X) +
		(g.AtClamped(i, j+1, k).Y-g.AtClamped(i, j-1, k).Y)/(2*h.Y) +
		(g.AtClamped(i, j, k+1).Z-g.AtClamped(i, j, k-1).Z)/(2*h.Z)
}

// CurlAtDataPoint uses central differences with clamped neighbors.
func (g *VectorGrid3) CurlAtDataPoint(i, j, k int) geom.Vector3 {
	h := g.spacing
	l, r := g.AtClamped(i-1, j, k), g.AtClamped(i+1, j, k)
	d, u := g.AtClamped(i, j-1, k), g.AtClamped(i, j+1, k)
	b, f := g.AtClamped(i, j, k-1), g.AtClamped(i, j, k+1)

	fxYm, fxYp := d.X, u.X
	fxZm, fxZp := b.X, f.X
	fyXm, fyXp := l.Y, r.Y
	fyZm, fyZp := b.Y, f.Y
	fzXm, fzXp := l.Z, r.Z
	fzYm, fzYp := d.Z, u.Z

	return geom.Vector3{
		X: (fzYp-fzYm)/(2*h.Y) - (fyZp-fyZm)/(2*h.Z),
		Y: (fxZp-fxZm)/(2*h.Z) - (fzXp-fzXm)/(2*h.X),
		Z: (fyXp-fyXm)/(2*h.X) - (fxYp-fxYm)/(2*h.Y),
	}
}

// Divergence samples the nearest data point's divergence.
func (g *VectorGrid3) Divergence(p geom.Vector3) float64 {
	if g.DataSize().Len() == 0 {
		return 0
	}
	i, j, k := g.nearest(p)
	return g.DivergenceAtDataPoint(i, j, k)
}

// Curl samples the nearest data point's curl.
func (g *VectorGrid3) Curl(p geom.Vector3) geom.Vector3 {
	if g.DataSize().Len() == 0 {
		return geom.Vector3{}
	}
	i, j, k := g.nearest(p)
	return g.CurlAtDataPoint(i, j, k)
}

func (g *VectorGrid3) nearest(p geom.Vector3) (int, int, int) {
	n := g.DataSize()
	o, h := g.DataOrigin(), g.spacing
	i0, i1, fx := locate(p.X, o.X, h.X, n.X)
	j0, j1, fy := locate(p.Y, o.Y, h.Y, n.Y)
	k0, k1, fz := locate(p.Z, o.Z, h.Z, n.Z)
	pick := func(a, b int, f float64) int {
		if f > 0.5 {
			return b
		}
		return a
	}
	return pick(i0, i1, fx), pick(j0, j1, fy), pick(k0, k1, fz)
}
