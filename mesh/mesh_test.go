package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/surface"
)

func assertOnSphere(t *testing.T, m *Mesh, center geom.Vector3, radius, tol float64) {
	t.Helper()
	require.Positive(t, m.TriangleCount())
	require.Len(t, m.Vertices, 9*m.TriangleCount())
	require.Len(t, m.Normals, len(m.Vertices))
	for i := 0; i < len(m.Vertices); i += 3 {
		v := geom.Vec3(float64(m.Vertices[i]), float64(m.Vertices[i+1]), float64(m.Vertices[i+2]))
		assert.InDelta(t, radius, v.DistanceTo(center), tol)
	}
}

func TestTriangulateSphere(t *testing.T) {
	s := surface.New3(surface.Sphere3{Center: geom.Vec3(1, 2, 3), Radius: 0.5})
	m, err := Triangulate3(s, 32)
	require.NoError(t, err)
	assertOnSphere(t, m, geom.Vec3(1, 2, 3), 0.5, 0.05)
}

func TestTriangulateGrid(t *testing.T) {
	const n = 32
	h := 1.0 / n
	g, err := grid.NewVertexCenteredScalarGrid3(grid.Size3{X: n, Y: n, Z: n}, geom.Vec3(h, h, h), geom.Vector3{})
	require.NoError(t, err)
	center := geom.Vec3(0.5, 0.5, 0.5)
	g.Fill(func(p geom.Vector3) float64 { return p.DistanceTo(center) - 0.3 })

	m, err := TriangulateGrid3(g, n)
	require.NoError(t, err)
	assertOnSphere(t, m, center, 0.3, 2*h)
}

func TestTriangulateErrors(t *testing.T) {
	s := surface.New3(surface.Sphere3{Radius: 1})
	_, err := Triangulate3(s, 0)
	assert.ErrorIs(t, err, ErrInvalidCells)

	flat := surface.New3(surface.Custom3{Func: func(p geom.Vector3) float64 { return math.Abs(p.X) }})
	_, err = Triangulate3(flat, 8)
	assert.ErrorIs(t, err, ErrEmptyBounds)
}
