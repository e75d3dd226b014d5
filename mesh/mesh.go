// Package mesh extracts triangle meshes from implicit surfaces and signed
// distance grids.
package mesh

import (
	"errors"

	"github.com/deadsy/sdfx/render"

	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/surface"
)

var (
	// ErrInvalidCells is returned for a non-positive cell count.
	ErrInvalidCells = errors.New("mesh: cell count must be positive")
	// ErrEmptyBounds is returned when the surface has an empty bounding box.
	ErrEmptyBounds = errors.New("mesh: surface bounds are empty")
)

// Mesh is an unindexed triangle soup. Every triangle owns three vertices
// that carry the face normal.
type Mesh struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Triangulate3 runs uniform marching cubes over the bounding box of s with
// cells cubes along its longest axis.
func Triangulate3(s surface.ImplicitSurface3, cells int) (*Mesh, error) {
	if cells <= 0 {
		return nil, ErrInvalidCells
	}
	if s.BoundingBox().IsEmpty() {
		return nil, ErrEmptyBounds
	}

	triangles := render.ToTriangles(surface.ToSDFX(s), render.NewMarchingCubesUniform(cells))

	n := len(triangles) * 3
	m := &Mesh{
		Vertices: make([]float32, 0, n*3),
		Normals:  make([]float32, 0, n*3),
		Indices:  make([]uint32, 0, n),
	}
	for i, tri := range triangles {
		normal := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}
	return m, nil
}

// TriangulateGrid3 meshes the zero level of a signed distance grid.
func TriangulateGrid3(g *grid.ScalarGrid3, cells int) (*Mesh, error) {
	return Triangulate3(surface.New3(surface.Grid3{Grid: g}), cells)
}
