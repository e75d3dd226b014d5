package implicit_test

import (
	"context"
	"math"
	"testing"

	"github.com/hupe1980/implicit"
	"github.com/hupe1980/implicit/blobstore"
	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/gridstore"
	"github.com/hupe1980/implicit/resource"
	"github.com/hupe1980/implicit/testutil"
)

func TestBuilder_Spherical_Basic(t *testing.T) {
	r, err := implicit.Spherical(0.2).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if r.Method() != implicit.MethodSpherical {
		t.Fatalf("Method = %v, want spherical", r.Method())
	}

	ctx := context.Background()
	g := testutil.UnitGrid3(t, 16)
	if err := r.Reconstruct3(ctx, []geom.Vector3{{X: 0.5, Y: 0.5, Z: 0.5}}, g); err != nil {
		t.Fatalf("Reconstruct3 failed: %v", err)
	}
	if v := g.At(8, 8, 8); v >= 0 {
		t.Fatalf("center = %v, want inside", v)
	}
	if v := g.At(0, 0, 0); v <= 0 {
		t.Fatalf("corner = %v, want outside", v)
	}
}

func TestBuilder_Spherical_Raw(t *testing.T) {
	r := implicit.Spherical(0.1).Raw().KdTree().MustBuild()

	ctx := context.Background()
	g := testutil.UnitGrid2(t, 20)
	p := geom.Vector2{X: 0.5, Y: 0.5}
	if err := r.Reconstruct2(ctx, []geom.Vector2{p}, g); err != nil {
		t.Fatalf("Reconstruct2 failed: %v", err)
	}

	// Beyond twice the kernel radius the raw field saturates at the radius.
	if v := g.At(0, 0); math.Abs(v-0.1) > 1e-12 {
		t.Fatalf("far sample = %v, want 0.1", v)
	}
	if v := g.At(10, 10); math.Abs(v+0.1) > 1e-12 {
		t.Fatalf("center sample = %v, want -0.1", v)
	}
}

func TestBuilder_IterativeSolvers(t *testing.T) {
	ctx := context.Background()
	c := geom.Vector3{X: 0.5, Y: 0.5, Z: 0.5}

	for name, b := range map[string]implicit.Builder{
		"upwind": implicit.Spherical(0.2).Upwind().MaxIterations(40).MaxCFL(0.5),
		"eno":    implicit.Spherical(0.2).ENO().MaxIterations(40),
		"fmm":    implicit.Spherical(0.2).ENO().FMM(),
	} {
		t.Run(name, func(t *testing.T) {
			r := b.MustBuild()
			g := testutil.UnitGrid3(t, 16)
			if err := r.Reconstruct3(ctx, []geom.Vector3{c}, g); err != nil {
				t.Fatalf("Reconstruct3 failed: %v", err)
			}
			h := 1.0 / 16
			g.ForEachDataPointIndex(func(i, j, k int) {
				want := g.DataPosition(i, j, k).DistanceTo(c) - 0.2
				if math.Abs(want) < 0.1 {
					if got := g.At(i, j, k); math.Abs(got-want) > 2*h {
						t.Errorf("(%d,%d,%d) = %v, want %v", i, j, k, got, want)
					}
				}
			})
		})
	}
}

func TestBuilder_Anisotropic_FullOptions(t *testing.T) {
	metrics := &implicit.BasicMetricsCollector{}
	store := gridstore.New(blobstore.NewMemoryStore())

	r, err := implicit.Anisotropic(0.1).
		MinNeighbors(10).
		CutOffDensity(0.4).
		PositionSmoothing(0.3).
		Logger(implicit.NoopLogger()).
		Metrics(metrics).
		Store(store).
		Controller(resource.NewController(resource.Config{MaxConcurrentJobs: 2})).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if r.Method() != implicit.MethodAnisotropic {
		t.Fatalf("Method = %v, want anisotropic", r.Method())
	}

	ctx := context.Background()
	rng := testutil.NewRNG(4711)
	points := rng.PointsInBox3(500, geom.NewBoundingBox3(geom.Vector3{X: 0.3, Y: 0.3, Z: 0.3}, geom.Vector3{X: 0.7, Y: 0.7, Z: 0.7}))
	g := testutil.UnitGrid3(t, 12)
	if err := r.Reconstruct3(ctx, points, g); err != nil {
		t.Fatalf("Reconstruct3 failed: %v", err)
	}
	if err := r.SaveAs3(ctx, "aniso.igrd", g); err != nil {
		t.Fatalf("SaveAs3 failed: %v", err)
	}
	if got := metrics.GetStats(); got.ConvertCount != 1 || got.SaveCount != 1 {
		t.Fatalf("stats = %+v", got)
	}
}

func TestBuilder_InvalidKernelRadius(t *testing.T) {
	for _, radius := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := implicit.Spherical(radius).Build(); err == nil {
			t.Errorf("radius %v: expected error", radius)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustBuild did not panic")
		}
	}()
	implicit.Anisotropic(-1).MustBuild()
}

func TestBuilder_Immutable(t *testing.T) {
	base := implicit.Spherical(0.1)
	raw := base.Raw()
	eno := base.ENO().MaxIterations(3)
	upwind := base.Upwind().MaxIterations(4)

	ctx := context.Background()
	p := []geom.Vector2{{X: 0.5, Y: 0.5}}

	// base still reinitializes while raw does not.
	g1 := testutil.UnitGrid2(t, 20)
	g2 := testutil.UnitGrid2(t, 20)
	if err := base.MustBuild().Reconstruct2(ctx, p, g1); err != nil {
		t.Fatal(err)
	}
	if err := raw.MustBuild().Reconstruct2(ctx, p, g2); err != nil {
		t.Fatal(err)
	}
	if g1.At(0, 0) == g2.At(0, 0) {
		t.Fatalf("builders share state: %v", g1.At(0, 0))
	}

	_ = eno.MustBuild()
	_ = upwind.MustBuild()
}
