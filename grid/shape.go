package grid

import (
	"fmt"
	"math"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/internal/parallel"
)

// Layout selects where samples sit inside a cell.
type Layout uint8

const (
	// CellCentered stores one sample per cell at the cell center.
	CellCentered Layout = iota
	// VertexCentered stores one sample per cell corner.
	VertexCentered
)

func (l Layout) String() string {
	switch l {
	case CellCentered:
		return "cell-centered"
	case VertexCentered:
		return "vertex-centered"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

// Size2 is a 2-D integer extent.
type Size2 struct {
	X, Y int
}

// Len is the number of entries covered.
func (s Size2) Len() int { return s.X * s.Y }

// Size3 is a 3-D integer extent.
type Size3 struct {
	X, Y, Z int
}

// Len is the number of entries covered.
func (s Size3) Len() int { return s.X * s.Y * s.Z }

// Shape3 is the lattice description shared by all 3-D grids.
type Shape3 struct {
	resolution Size3
	spacing    geom.Vector3
	origin     geom.Vector3
	layout     Layout
}

// NewShape3 describes a 3-D lattice. Negative resolution components are
// clamped to zero.
func NewShape3(layout Layout, resolution Size3, spacing, origin geom.Vector3) (Shape3, error) {
	if spacing.X <= 0 || spacing.Y <= 0 || spacing.Z <= 0 {
		return Shape3{}, fmt.Errorf("%w: %v", ErrInvalidSpacing, spacing)
	}
	resolution.X = max(resolution.X, 0)
	resolution.Y = max(resolution.Y, 0)
	resolution.Z = max(resolution.Z, 0)
	return Shape3{resolution: resolution, spacing: spacing, origin: origin, layout: layout}, nil
}

func (s Shape3) Resolution() Size3         { return s.resolution }
func (s Shape3) GridSpacing() geom.Vector3 { return s.spacing }
func (s Shape3) Origin() geom.Vector3      { return s.origin }
func (s Shape3) Layout() Layout            { return s.layout }

// BoundingBox spans the cells of the grid.
func (s Shape3) BoundingBox() geom.BoundingBox3 {
	ext := geom.Vec3(float64(s.resolution.X), float64(s.resolution.Y), float64(s.resolution.Z))
	return geom.BoundingBox3{Lower: s.origin, Upper: s.origin.Add(s.spacing.Mul(ext))}
}

// DataSize is the extent of the sample lattice.
func (s Shape3) DataSize() Size3 {
	if s.layout == VertexCentered && s.resolution.Len() > 0 {
		return Size3{s.resolution.X + 1, s.resolution.Y + 1, s.resolution.Z + 1}
	}
	return s.resolution
}

// DataOrigin is the world position of sample (0, 0, 0).
func (s Shape3) DataOrigin() geom.Vector3 {
	if s.layout == CellCentered {
		return s.origin.Add(s.spacing.Scale(0.5))
	}
	return s.origin
}

// DataPosition returns the world position of sample (i, j, k).
func (s Shape3) DataPosition(i, j, k int) geom.Vector3 {
	o := s.DataOrigin()
	return geom.Vector3{
		X: o.X + s.spacing.X*float64(i),
		Y: o.Y + s.spacing.Y*float64(j),
		Z: o.Z + s.spacing.Z*float64(k),
	}
}

// Index flattens (i, j, k) with i varying fastest.
func (s Shape3) Index(i, j, k int) int {
	n := s.DataSize()
	return i + n.X*(j+n.Y*k)
}

// Coords is the inverse of Index.
func (s Shape3) Coords(idx int) (i, j, k int) {
	n := s.DataSize()
	i = idx % n.X
	idx /= n.X
	return i, idx % n.Y, idx / n.Y
}

// HasSameShape reports whether both lattices coincide.
func (s Shape3) HasSameShape(o Shape3) bool {
	return s.DataSize() == o.DataSize() &&
		s.spacing.IsSimilar(o.spacing, 1e-12) &&
		s.DataOrigin().IsSimilar(o.DataOrigin(), 1e-12)
}

// ForEachDataPointIndex visits every sample index serially, i fastest.
func (s Shape3) ForEachDataPointIndex(fn func(i, j, k int)) {
	n := s.DataSize()
	for k := 0; k < n.Z; k++ {
		for j := 0; j < n.Y; j++ {
			for i := 0; i < n.X; i++ {
				fn(i, j, k)
			}
		}
	}
}

// ParallelForEachDataPointIndex visits every sample index once, spread over
// all available workers. fn must only write state owned by (i, j, k).
func (s Shape3) ParallelForEachDataPointIndex(fn func(i, j, k int)) {
	n := s.DataSize()
	parallel.ForRange(n.Len(), 0, func(begin, end int) {
		i, j, k := s.Coords(begin)
		for idx := begin; idx < end; idx++ {
			fn(i, j, k)
			if i++; i == n.X {
				i = 0
				if j++; j == n.Y {
					j = 0
					k++
				}
			}
		}
	})
}

// locate returns the lower sample index and fraction of p along one axis.
func locate(p, origin, spacing float64, n int) (int, int, float64) {
	if n <= 1 {
		return 0, 0, 0
	}
	x := (p - origin) / spacing
	s := math.Floor(x)
	i := int(s)
	f := x - s
	switch {
	case i < 0:
		return 0, 1, 0
	case i > n-2:
		return n - 2, n - 1, 1
	}
	return i, i + 1, f
}

// Shape2 is the lattice description shared by all 2-D grids.
type Shape2 struct {
	resolution Size2
	spacing    geom.Vector2
	origin     geom.Vector2
	layout     Layout
}

// NewShape2 describes a 2-D lattice. Negative resolution components are
// clamped to zero.
func NewShape2(layout Layout, resolution Size2, spacing, origin geom.Vector2) (Shape2, error) {
	if spacing.X <= 0 || spacing.Y <= 0 {
		return Shape2{}, fmt.Errorf("%w: %v", ErrInvalidSpacing, spacing)
	}
	resolution.X = max(resolution.X, 0)
	resolution.Y = max(resolution.Y, 0)
	return Shape2{resolution: resolution, spacing: spacing, origin: origin, layout: layout}, nil
}

func (s Shape2) Resolution() Size2         { return s.resolution }
func (s Shape2) GridSpacing() geom.Vector2 { return s.spacing }
func (s Shape2) Origin() geom.Vector2      { return s.origin }
func (s Shape2) Layout() Layout            { return s.layout }

// BoundingBox spans the cells of the grid.
func (s Shape2) BoundingBox() geom.BoundingBox2 {
	ext := geom.Vec2(float64(s.resolution.X), float64(s.resolution.Y))
	return geom.BoundingBox2{Lower: s.origin, Upper: s.origin.Add(s.spacing.Mul(ext))}
}

// DataSize is the extent of the sample lattice.
func (s Shape2) DataSize() Size2 {
	if s.layout == VertexCentered && s.resolution.Len() > 0 {
		return Size2{s.resolution.X + 1, s.resolution.Y + 1}
	}
	return s.resolution
}

// DataOrigin is the world position of sample (0, 0).
func (s Shape2) DataOrigin() geom.Vector2 {
	if s.layout == CellCentered {
		return s.origin.Add(s.spacing.Scale(0.5))
	}
	return s.origin
}

// DataPosition returns the world position of sample (i, j).
func (s Shape2) DataPosition(i, j int) geom.Vector2 {
	o := s.DataOrigin()
	return geom.Vector2{X: o.X + s.spacing.X*float64(i), Y: o.Y + s.spacing.Y*float64(j)}
}

// Index flattens (i, j) with i varying fastest.
func (s Shape2) Index(i, j int) int { return i + s.DataSize().X*j }

// Coords is the inverse of Index.
func (s Shape2) Coords(idx int) (i, j int) {
	n := s.DataSize()
	return idx % n.X, idx / n.X
}

// HasSameShape reports whether both lattices coincide.
func (s Shape2) HasSameShape(o Shape2) bool {
	return s.DataSize() == o.DataSize() &&
		s.spacing.IsSimilar(o.spacing, 1e-12) &&
		s.DataOrigin().IsSimilar(o.DataOrigin(), 1e-12)
}

// ForEachDataPointIndex visits every sample index serially, i fastest.
func (s Shape2) ForEachDataPointIndex(fn func(i, j int)) {
	n := s.DataSize()
	for j := 0; j < n.Y; j++ {
		for i := 0; i < n.X; i++ {
			fn(i, j)
		}
	}
}

// ParallelForEachDataPointIndex visits every sample index once, spread over
// all available workers. fn must only write state owned by (i, j).
func (s Shape2) ParallelForEachDataPointIndex(fn func(i, j int)) {
	n := s.DataSize()
	parallel.ForRange(n.Len(), 0, func(begin, end int) {
		i, j := s.Coords(begin)
		for idx := begin; idx < end; idx++ {
			fn(i, j)
			if i++; i == n.X {
				i = 0
				j++
			}
		}
	})
}
