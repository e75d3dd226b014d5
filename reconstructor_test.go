package implicit

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/implicit/blobstore"
	"github.com/hupe1980/implicit/converter"
	"github.com/hupe1980/implicit/field"
	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/gridstore"
	"github.com/hupe1980/implicit/levelset"
	"github.com/hupe1980/implicit/pointgen"
	"github.com/hupe1980/implicit/resource"
	"github.com/hupe1980/implicit/surface"
	"github.com/hupe1980/implicit/testutil"
)

func cellGrid3(t *testing.T, n int) *grid.ScalarGrid3 {
	t.Helper()
	h := 1.0 / float64(n)
	g, err := grid.NewCellCenteredScalarGrid3(grid.Size3{X: n, Y: n, Z: n}, geom.Vec3(h, h, h), geom.Vector3{})
	require.NoError(t, err)
	return g
}

func cellGrid2(t *testing.T, n int) *grid.ScalarGrid2 {
	t.Helper()
	h := 1.0 / float64(n)
	g, err := grid.NewCellCenteredScalarGrid2(grid.Size2{X: n, Y: n}, geom.Vec2(h, h), geom.Vector2{})
	require.NoError(t, err)
	return g
}

func bufferLogger(buf *bytes.Buffer) *Logger {
	return NewLogger(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestReconstructor(t *testing.T) {
	ctx := context.Background()
	center := geom.Vec3(0.5, 0.5, 0.5)

	t.Run("SinglePoint3", func(t *testing.T) {
		const n = 32
		h := 1.0 / n
		metrics := &BasicMetricsCollector{}
		r := New(WithMetricsCollector(metrics))

		out := cellGrid3(t, n)
		require.NoError(t, r.Reconstruct3(ctx, []geom.Vector3{center}, out, converter.WithKernelRadius(0.2)))

		out.ForEachDataPointIndex(func(i, j, k int) {
			want := out.DataPosition(i, j, k).DistanceTo(center) - 0.2
			if math.Abs(want) < 0.15 {
				assert.InDelta(t, want, out.At(i, j, k), 1.5*h)
			}
		})

		stats := metrics.GetStats()
		assert.Equal(t, int64(1), stats.ConvertCount)
		assert.Equal(t, int64(0), stats.ConvertErrors)
		assert.Equal(t, int64(1), stats.ConvertPoints)
		assert.Equal(t, int64(n*n*n), stats.ConvertCells)
	})

	t.Run("RawTwoPoints2", func(t *testing.T) {
		r := New()
		out := cellGrid2(t, 64)
		points := []geom.Vector2{{X: 0.3, Y: 0.3}, {X: 0.7, Y: 0.7}}

		require.NoError(t, r.Reconstruct2(ctx, points, out,
			converter.WithKernelRadius(0.1),
			converter.WithOutputSDF(false),
		))

		out.ForEachDataPointIndex(func(i, j int) {
			p := out.DataPosition(i, j)
			d := min(p.DistanceTo(points[0]), p.DistanceTo(points[1]))
			require.InDelta(t, min(d, 0.2)-0.1, out.At(i, j), 1e-12)
		})
	})

	t.Run("Anisotropic2", func(t *testing.T) {
		const n = 32
		disk := surface.Sphere2{Center: geom.Vec2(0.5, 0.5), Radius: 0.3}
		points := pointgen.Fill2(pointgen.Triangle2{}, disk, testutil.UnitBox2(), 0.03)
		require.NotEmpty(t, points)

		r := New(WithMethod(MethodAnisotropic))
		assert.Equal(t, MethodAnisotropic, r.Method())

		out := cellGrid2(t, n)
		require.NoError(t, r.Reconstruct2(ctx, points, out,
			converter.WithKernelRadius(0.06),
			converter.WithMinNeighbors(10),
		))

		out.ForEachDataPointIndex(func(i, j int) {
			d := disk.SignedDistance(out.DataPosition(i, j))
			switch {
			case d < -0.1:
				assert.Less(t, out.At(i, j), 0.0)
			case d > 0.15:
				assert.Greater(t, out.At(i, j), 0.0)
			}
		})
	})

	t.Run("EmptyGridIsLoggedNoop", func(t *testing.T) {
		var buf bytes.Buffer
		metrics := &BasicMetricsCollector{}
		r := New(WithLogger(bufferLogger(&buf)), WithMetricsCollector(metrics))

		empty, err := grid.NewCellCenteredScalarGrid3(grid.Size3{X: 4, Y: 0, Z: 4}, geom.Vec3(1, 1, 1), geom.Vector3{})
		require.NoError(t, err)

		require.NoError(t, r.Reconstruct3(ctx, []geom.Vector3{center}, empty))
		assert.Contains(t, buf.String(), "empty grid is provided")
		assert.Contains(t, buf.String(), "convert completed")
		assert.Equal(t, int64(1), metrics.GetStats().ConvertCount)
	})

	t.Run("NilGrid", func(t *testing.T) {
		r := New()
		assert.ErrorIs(t, r.Reconstruct3(ctx, nil, nil), ErrEmptyGrid)
		assert.ErrorIs(t, r.Reconstruct2(ctx, nil, nil), ErrEmptyGrid)
		assert.ErrorIs(t, r.Reinitialize3(ctx, nil, 1, nil), ErrEmptyGrid)
		assert.ErrorIs(t, r.Extrapolate2(ctx, nil, nil, 1, nil), ErrEmptyGrid)
		assert.ErrorIs(t, r.SaveAs3(ctx, "x", nil), ErrEmptyGrid)
	})

	t.Run("Canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, New().Reconstruct3(cctx, []geom.Vector3{center}, cellGrid3(t, 4)), context.Canceled)
	})

	t.Run("MemoryLimit", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})
		r := New(WithController(rc))

		err := r.Reconstruct3(ctx, []geom.Vector3{center}, cellGrid3(t, 16))
		assert.ErrorIs(t, err, ErrExceedsLimit)
		assert.Zero(t, rc.MemoryUsage())

		require.NoError(t, r.Reconstruct3(ctx, []geom.Vector3{center}, cellGrid3(t, 2)))
		assert.Zero(t, rc.MemoryUsage(), "scratch memory is released")
	})
}

func TestReconstructor_Reinitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("Distorted2", func(t *testing.T) {
		const n = 64
		h := 1.0 / n
		circle := func(p geom.Vector2) float64 { return p.DistanceTo(geom.Vec2(0.5, 0.5)) - 0.25 }
		in := cellGrid2(t, n)
		in.Fill(func(p geom.Vector2) float64 { return 2 * circle(p) })
		out := cellGrid2(t, n)

		metrics := &BasicMetricsCollector{}
		r := New(WithMetricsCollector(metrics))
		require.NoError(t, r.Reinitialize2(ctx, in, math.Inf(1), out))

		out.ForEachDataPointIndex(func(i, j int) {
			want := circle(out.DataPosition(i, j))
			if math.Abs(want) < 0.2 {
				assert.InDelta(t, want, out.At(i, j), h)
			}
		})
		assert.Equal(t, int64(1), metrics.GetStats().ReinitializeCount)
	})

	t.Run("Upwind3", func(t *testing.T) {
		const n = 24
		h := 1.0 / n
		exact := cellGrid3(t, n)
		exact.Fill(func(p geom.Vector3) float64 { return p.DistanceTo(geom.Vec3(0.5, 0.5, 0.5)) - 0.3 })
		out := cellGrid3(t, n)

		r := New(WithSolver(levelset.NewUpwindSolver3()))
		require.NoError(t, r.Reinitialize3(ctx, exact, 5*h, out))

		exact.ForEachDataPointIndex(func(i, j, k int) {
			if want := exact.At(i, j, k); math.Abs(want) < 3*h {
				assert.InDelta(t, want, out.At(i, j, k), 0.5*h)
			}
		})
	})

	t.Run("Errors", func(t *testing.T) {
		metrics := &BasicMetricsCollector{}
		r := New(WithMetricsCollector(metrics))
		g := cellGrid3(t, 4)

		assert.ErrorIs(t, r.Reinitialize3(ctx, g, 1, g), ErrAliasedGrids)
		assert.ErrorIs(t, r.Reinitialize3(ctx, g, 1, cellGrid3(t, 5)), ErrShapeMismatch)
		assert.Equal(t, int64(2), metrics.GetStats().ReinitializeErrors)
	})
}

func TestReconstructor_Extrapolate(t *testing.T) {
	ctx := context.Background()
	const (
		n = 16
		v = 3.0
	)
	h := 1.0 / n
	ball := func(p geom.Vector3) float64 { return p.DistanceTo(geom.Vec3(0.5, 0.5, 0.5)) - 0.25 }

	sdf := cellGrid3(t, n)
	sdf.Fill(ball)
	in := cellGrid3(t, n)
	in.Fill(func(p geom.Vector3) float64 {
		if ball(p) < 0 {
			return v
		}
		return 0
	})
	out := cellGrid3(t, n)

	metrics := &BasicMetricsCollector{}
	r := New(WithMetricsCollector(metrics))
	require.NoError(t, r.Extrapolate3(ctx, in, sdf, 5*h, out))

	out.ForEachDataPointIndex(func(i, j, k int) {
		d := sdf.At(i, j, k)
		switch {
		case d < 0:
			require.Equal(t, v, out.At(i, j, k))
		case d < h:
			assert.InDelta(t, v, out.At(i, j, k), 0.05)
		}
	})
	assert.Equal(t, int64(1), metrics.GetStats().ExtrapolateCount)

	t.Run("2D", func(t *testing.T) {
		circle := field.CustomScalarField2{SampleFunc: func(p geom.Vector2) float64 {
			return p.DistanceTo(geom.Vec2(0.5, 0.5)) - 0.25
		}}
		in := cellGrid2(t, n)
		in.Fill(func(p geom.Vector2) float64 { return p.X })
		out := cellGrid2(t, n)

		require.NoError(t, r.Extrapolate2(ctx, in, circle, 2*h, out))
		out.ForEachDataPointIndex(func(i, j int) {
			if circle.Sample(out.DataPosition(i, j)) < 0 {
				assert.Equal(t, in.At(i, j), out.At(i, j))
			}
		})
	})
}

func TestReconstructor_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("NoStore", func(t *testing.T) {
		r := New()
		assert.ErrorIs(t, r.SaveAs3(ctx, "g", cellGrid3(t, 2)), ErrNoStore)
		_, err := r.Load3(ctx, "")
		assert.ErrorIs(t, err, ErrNoStore)
	})

	for name, blobs := range map[string]blobstore.BlobStore{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			metrics := &BasicMetricsCollector{}
			r := New(
				WithStore(gridstore.New(blobs, gridstore.WithCompression(gridstore.CompressionZSTD))),
				WithMetricsCollector(metrics),
				WithLogger(bufferLogger(&buf)),
			)

			_, err := r.Load3(ctx, "")
			assert.ErrorIs(t, err, ErrNotFound, "nothing committed yet")

			g := testutil.SphereGrid3(t, 12, geom.Vec3(0.5, 0.5, 0.5), 0.3)
			require.NoError(t, r.SaveAs3(ctx, "frames/0001.igrd", g))

			latest, err := r.Load3(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, g.Data(), latest.Data())
			assert.True(t, g.HasSameShape(latest.Shape()))

			byName, err := r.Load3(ctx, "frames/0001.igrd")
			require.NoError(t, err)
			assert.Equal(t, g.Data(), byName.Data())

			_, err = r.Load3(ctx, "frames/missing.igrd")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = r.Load2(ctx, "frames/0001.igrd")
			var dm *ErrDimensionMismatch
			require.ErrorAs(t, err, &dm)
			assert.Equal(t, 2, dm.Expected)
			assert.Equal(t, 3, dm.Actual)

			g2 := testutil.CircleGrid2(t, 8, geom.Vec2(0.5, 0.5), 0.25)
			require.NoError(t, r.SaveAs2(ctx, "frames/0002.igrd", g2))
			latest2, err := r.Load2(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, g2.Data(), latest2.Data())

			stats := metrics.GetStats()
			assert.Equal(t, int64(2), stats.SaveCount)
			assert.Equal(t, int64(0), stats.SaveErrors)
			assert.Equal(t, int64(6), stats.LoadCount)
			assert.Contains(t, buf.String(), "grid saved")
		})
	}

	t.Run("CorruptSnapshot", func(t *testing.T) {
		blobs := blobstore.NewMemoryStore()
		require.NoError(t, blobs.Put(ctx, "bad", []byte("not a grid snapshot")))
		r := New(WithStore(gridstore.New(blobs)))

		_, err := r.Load3(ctx, "bad")
		var se *ErrSnapshot
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "bad", se.Name)
		assert.ErrorIs(t, err, gridstore.ErrInvalidFormat)
	})
}

func TestMethod_String(t *testing.T) {
	assert.Equal(t, "spherical", MethodSpherical.String())
	assert.Equal(t, "anisotropic", MethodAnisotropic.String())
	assert.Equal(t, "unknown", Method(7).String())
}
