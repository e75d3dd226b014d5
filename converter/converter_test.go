package converter

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/levelset"
	"github.com/hupe1980/implicit/neighbor"
	"github.com/hupe1980/implicit/pointgen"
	"github.com/hupe1980/implicit/surface"
)

func TestEmptyGridIsLoggedNoop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	empty, err := grid.NewCellCenteredScalarGrid3(grid.Size3{X: 4, Y: 0, Z: 4}, geom.Vec3(1, 1, 1), geom.Vector3{})
	require.NoError(t, err)

	for name, c := range map[string]Converter3{
		"spherical":   NewSpherical3(WithLogger(logger)),
		"anisotropic": NewAnisotropic3(WithLogger(logger)),
	} {
		t.Run(name, func(t *testing.T) {
			buf.Reset()
			require.NoError(t, c.Convert([]geom.Vector3{{X: 1}}, empty))
			assert.Contains(t, buf.String(), "empty grid is provided")
			assert.Empty(t, empty.Data())
		})
	}
}

func TestEmptyDomainIsLoggedNoop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// A denormal spacing collapses the domain to a point.
	g, err := grid.NewCellCenteredScalarGrid2(grid.Size2{X: 2, Y: 2}, geom.Vec2(1e-320, 1e-320), geom.Vec2(1, 1))
	require.NoError(t, err)
	g.FillValue(7)

	require.NoError(t, NewSpherical2(WithLogger(logger)).Convert([]geom.Vector2{{X: 1, Y: 1}}, g))
	assert.Contains(t, buf.String(), "empty domain is provided")
	assert.Equal(t, []float64{7, 7, 7, 7}, g.Data())
}

// twoPointScene is two points on a 512x512 unit grid with kernel radius 0.1.
func twoPointScene(t *testing.T, opts ...Option) *grid.ScalarGrid2 {
	t.Helper()
	const n = 512
	h := 1.0 / n
	out, err := grid.NewCellCenteredScalarGrid2(grid.Size2{X: n, Y: n}, geom.Vec2(h, h), geom.Vector2{})
	require.NoError(t, err)

	points := []geom.Vector2{{X: 0.3, Y: 0.3}, {X: 0.7, Y: 0.7}}
	c := NewSpherical2(append([]Option{WithKernelRadius(0.1)}, opts...)...)
	require.NoError(t, c.Convert(points, out))
	return out
}

func nearestDistance(p geom.Vector2) float64 {
	return min(p.DistanceTo(geom.Vec2(0.3, 0.3)), p.DistanceTo(geom.Vec2(0.7, 0.7)))
}

// assertMonotoneFromCenters walks the diagonal outward from both points and
// expects non-decreasing values.
func assertMonotoneFromCenters(t *testing.T, g *grid.ScalarGrid2) {
	t.Helper()
	// Cell 153 is the diagonal cell closest to (0.3, 0.3); 358 to (0.7, 0.7).
	for _, seg := range [][2]int{{153, 0}, {153, 255}, {358, 256}, {358, 511}} {
		step := 1
		if seg[1] < seg[0] {
			step = -1
		}
		prev := g.At(seg[0], seg[0])
		for i := seg[0] + step; i != seg[1]+step; i += step {
			v := g.At(i, i)
			require.GreaterOrEqual(t, v, prev-1e-12, "diagonal cell %d", i)
			prev = v
		}
	}
}

func TestSphericalTwoPointsRaw(t *testing.T) {
	out := twoPointScene(t, WithOutputSDF(false))

	out.ForEachDataPointIndex(func(i, j int) {
		d := nearestDistance(out.DataPosition(i, j))
		v := out.At(i, j)
		require.Equal(t, d < 0.1, v < 0, "cell (%d, %d)", i, j)
		require.InDelta(t, min(d, 0.2)-0.1, v, 1e-12)
	})
	assertMonotoneFromCenters(t, out)
}

func TestSphericalTwoPointsSDF(t *testing.T) {
	h := 1.0 / 512
	out := twoPointScene(t)

	out.ForEachDataPointIndex(func(i, j int) {
		d := nearestDistance(out.DataPosition(i, j))
		v := out.At(i, j)
		if v < 0 {
			require.Less(t, d, 0.1+h, "cell (%d, %d)", i, j)
		}
		if d < 0.1-h {
			require.Less(t, v, 0.0, "cell (%d, %d)", i, j)
		}
	})
	assertMonotoneFromCenters(t, out)

	// Far from both points the field is a true distance, not the clamp.
	far := out.At(0, 511)
	want := geom.Vec2(0.5/512, 511.5/512).DistanceTo(geom.Vec2(0.3, 0.3)) - 0.1
	assert.InDelta(t, want, far, 0.01)
}

func TestSphericalSearchersAgree(t *testing.T) {
	const n = 16
	h := 1.0 / n
	shape, err := grid.NewShape3(grid.VertexCentered, grid.Size3{X: n, Y: n, Z: n}, geom.Vec3(h, h, h), geom.Vector3{})
	require.NoError(t, err)

	points := pointgen.Generate3(pointgen.BCC3{}, geom.NewBoundingBox3(geom.Vec3(0.3, 0.3, 0.3), geom.Vec3(0.7, 0.7, 0.7)), 0.1)
	require.NotEmpty(t, points)

	var ref []float64
	for name, f := range map[string]neighbor.Factory3{
		"hash":     neighbor.DefaultFactory3,
		"kdtree":   neighbor.KdTreeFactory3,
		"list":     func(float64) neighbor.Searcher3 { return neighbor.NewList3() },
		"hashgrid": func(r float64) neighbor.Searcher3 { return neighbor.NewHashGrid3(neighbor.Resolution3{X: 8, Y: 8, Z: 8}, 2*r) },
	} {
		out := grid.NewScalarGrid3FromShape(shape, 0)
		c := NewSpherical3(WithKernelRadius(0.08), WithOutputSDF(false), WithSearcherFactory(f))
		require.NoError(t, c.Convert(points, out), name)
		if ref == nil {
			ref = out.Data()
			continue
		}
		assert.Equal(t, ref, out.Data(), name)
	}
}

func TestSphericalSinglePoint3(t *testing.T) {
	const n = 32
	h := 1.0 / n
	out, err := grid.NewCellCenteredScalarGrid3(grid.Size3{X: n, Y: n, Z: n}, geom.Vec3(h, h, h), geom.Vector3{})
	require.NoError(t, err)

	center := geom.Vec3(0.5, 0.5, 0.5)
	for name, s := range map[string]levelset.Solver3{"fmm": levelset.NewFMMSolver3(), "upwind": levelset.NewUpwindSolver3(levelset.WithMaxIterations(40))} {
		t.Run(name, func(t *testing.T) {
			c := NewSpherical3(WithKernelRadius(0.2), WithSolver(s))
			require.NoError(t, c.Convert([]geom.Vector3{center}, out))
			out.ForEachDataPointIndex(func(i, j, k int) {
				want := out.DataPosition(i, j, k).DistanceTo(center) - 0.2
				if math.Abs(want) < 0.15 {
					assert.InDelta(t, want, out.At(i, j, k), 1.5*h)
				}
			})
		})
	}
}

func TestAnisotropicBall(t *testing.T) {
	const n = 20
	h := 1.0 / n
	ball := surface.Sphere3{Center: geom.Vec3(0.5, 0.5, 0.5), Radius: 0.3}
	points := pointgen.Fill3(pointgen.Grid3{}, ball, geom.NewBoundingBox3(geom.Vector3{}, geom.Vec3(1, 1, 1)), 0.05)
	require.NotEmpty(t, points)

	for _, outputSDF := range []bool{false, true} {
		out, err := grid.NewVertexCenteredScalarGrid3(grid.Size3{X: n, Y: n, Z: n}, geom.Vec3(h, h, h), geom.Vector3{})
		require.NoError(t, err)
		c := NewAnisotropic3(WithKernelRadius(0.1), WithOutputSDF(outputSDF))
		require.NoError(t, c.Convert(points, out))

		assert.Less(t, out.At(n/2, n/2, n/2), 0.0, "center, sdf=%v", outputSDF)
		assert.Greater(t, out.At(n/2, n/2, 1), 0.0, "outside, sdf=%v", outputSDF)
		if !outputSDF {
			assert.Equal(t, DefaultCutOffDensity, out.At(0, 0, 0))
		}
	}
}

func TestAnisotropicKeepsSheetsThin(t *testing.T) {
	var points []geom.Vector3
	for i := 0; i <= 50; i++ {
		for j := 0; j <= 50; j++ {
			points = append(points, geom.Vec3(float64(i)*0.02, float64(j)*0.02, 0.5))
		}
	}
	// Samples sit on the sheet and 0.03 above it.
	shape, err := grid.NewShape3(grid.VertexCentered, grid.Size3{X: 2, Y: 2, Z: 2}, geom.Vec3(0.03, 0.03, 0.03), geom.Vec3(0.47, 0.47, 0.5))
	require.NoError(t, err)

	sample := func(opts ...Option) float64 {
		out := grid.NewScalarGrid3FromShape(shape, 0)
		opts = append(opts, WithKernelRadius(0.05), WithOutputSDF(false))
		require.NoError(t, NewAnisotropic3(opts...).Convert(points, out))
		return out.At(1, 1, 1)
	}

	aniso := sample()
	iso := sample(WithMinNeighbors(1000))
	assert.InDelta(t, DefaultCutOffDensity, aniso, 1e-12)
	assert.Less(t, iso, DefaultCutOffDensity-0.1)
}

func TestAnisotropicSupportCoversStretchedKernel(t *testing.T) {
	const h = 0.1
	var points []geom.Vector3
	for i := 0; i <= 100; i++ {
		points = append(points, geom.Vec3(float64(i)*0.01, 0.5, 0.5))
	}
	searcher := neighbor.NewList3()
	searcher.Build(points)

	c := NewAnisotropic3(WithKernelRadius(h))
	center, g := c.kernel(searcher, points[50])

	// A collinear neighborhood is clamped to the maximum axis ratio, so the
	// kernel reaches past twice the radius along the line.
	reach := 1 / g.Apply(geom.Vec3(1, 0, 0)).Length()
	assert.Greater(t, reach, 2*h)
	assert.InEpsilon(t, supportRadius3(h), reach, 1e-6)
	assert.InDelta(t, h*math.Cbrt(16), supportRadius3(h), 1e-12)

	q := center.Add(geom.Vec3(2.2*h, 0, 0))
	assert.Positive(t, poly6(g.Apply(q.Sub(center)).LengthSquared()))

	for _, dir := range []geom.Vector3{geom.Vec3(0, 1, 0), geom.Vec3(0, 0, 1), geom.Vec3(1, 1, 1)} {
		reach := 1 / g.Apply(dir.Normalized()).Length()
		assert.LessOrEqual(t, reach, supportRadius3(h)*(1+1e-9))
	}
	assert.Equal(t, 2*h, supportRadius2(h))
}

func TestAnisotropicDisk2(t *testing.T) {
	const n = 32
	h := 1.0 / n
	disk := surface.Sphere2{Center: geom.Vec2(0.5, 0.5), Radius: 0.3}
	points := pointgen.Fill2(pointgen.Triangle2{}, disk, geom.NewBoundingBox2(geom.Vector2{}, geom.Vec2(1, 1)), 0.03)
	require.NotEmpty(t, points)

	out, err := grid.NewCellCenteredScalarGrid2(grid.Size2{X: n, Y: n}, geom.Vec2(h, h), geom.Vector2{})
	require.NoError(t, err)
	require.NoError(t, NewAnisotropic2(WithKernelRadius(0.06), WithMinNeighbors(10)).Convert(points, out))

	out.ForEachDataPointIndex(func(i, j int) {
		d := disk.SignedDistance(out.DataPosition(i, j))
		switch {
		case d < -0.1:
			assert.Less(t, out.At(i, j), 0.0)
		case d > 0.15:
			assert.Greater(t, out.At(i, j), 0.0)
		}
	})
}

func TestInexactOutputReplacesContents(t *testing.T) {
	out, err := grid.NewCellCenteredScalarGrid2(grid.Size2{X: 8, Y: 4}, geom.Vec2(0.25, 0.25), geom.Vector2{})
	require.NoError(t, err)
	out.FillValue(-5)
	shape := out.Shape()

	require.NoError(t, NewSpherical2(WithKernelRadius(0.1), WithOutputSDF(false)).Convert(nil, out))
	assert.Equal(t, shape, out.Shape())
	require.Len(t, out.Data(), 32)
	for _, v := range out.Data() {
		assert.Equal(t, 0.1, v)
	}
}
