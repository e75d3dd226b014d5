package implicit_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/implicit"
	"github.com/hupe1980/implicit/blobstore"
	"github.com/hupe1980/implicit/converter"
	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/gridstore"
	"github.com/hupe1980/implicit/pointgen"
	"github.com/hupe1980/implicit/surface"
)

func unitGrid() *grid.ScalarGrid3 {
	const n = 16
	h := 1.0 / n
	g, err := grid.NewVertexCenteredScalarGrid3(grid.Size3{X: n, Y: n, Z: n}, geom.Vec3(h, h, h), geom.Vector3{})
	if err != nil {
		log.Fatal(err)
	}
	return g
}

// Example_spherical demonstrates reconstructing a ball from a single point.
func Example_spherical() {
	ctx := context.Background()
	r := implicit.Spherical(0.25).MustBuild()

	sdf := unitGrid()
	if err := r.Reconstruct3(ctx, []geom.Vector3{{X: 0.5, Y: 0.5, Z: 0.5}}, sdf); err != nil {
		log.Fatal(err)
	}

	fmt.Println("center inside:", sdf.At(8, 8, 8) < 0)
	fmt.Println("corner outside:", sdf.At(0, 0, 0) > 0)
	// Output:
	// center inside: true
	// corner outside: true
}

// Example_anisotropic demonstrates reconstructing a lattice-filled ball with
// anisotropic kernels and per-call converter options.
func Example_anisotropic() {
	ctx := context.Background()
	ball := surface.Sphere3{Center: geom.Vec3(0.5, 0.5, 0.5), Radius: 0.3}
	points := pointgen.Fill3(pointgen.Grid3{}, ball, geom.NewBoundingBox3(geom.Vector3{}, geom.Vec3(1, 1, 1)), 0.05)

	r := implicit.New(implicit.WithMethod(implicit.MethodAnisotropic))

	sdf := unitGrid()
	if err := r.Reconstruct3(ctx, points, sdf, converter.WithKernelRadius(0.1)); err != nil {
		log.Fatal(err)
	}

	fmt.Println("center inside:", sdf.At(8, 8, 8) < 0)
	// Output: center inside: true
}

// Example_persistence demonstrates saving and reloading a reconstructed grid.
func Example_persistence() {
	ctx := context.Background()
	store := gridstore.New(blobstore.NewMemoryStore(), gridstore.WithCompression(gridstore.CompressionLZ4))
	r := implicit.New(implicit.WithStore(store))

	sdf := unitGrid()
	if err := r.Reconstruct3(ctx, []geom.Vector3{{X: 0.5, Y: 0.5, Z: 0.5}}, sdf, converter.WithKernelRadius(0.2)); err != nil {
		log.Fatal(err)
	}
	if err := r.SaveAs3(ctx, "frame-0001.igrd", sdf); err != nil {
		log.Fatal(err)
	}

	latest, err := r.Load3(ctx, "")
	if err != nil {
		log.Fatal(err)
	}
	name, _ := store.Current(ctx)
	fmt.Println(name, len(latest.Data()))
	// Output: frame-0001.igrd 4913
}

// Example_metrics demonstrates collecting pipeline metrics.
func Example_metrics() {
	ctx := context.Background()
	metrics := &implicit.BasicMetricsCollector{}
	r := implicit.Spherical(0.2).Raw().Metrics(metrics).MustBuild()

	for range 3 {
		if err := r.Reconstruct3(ctx, []geom.Vector3{{X: 0.5, Y: 0.5, Z: 0.5}}, unitGrid()); err != nil {
			log.Fatal(err)
		}
	}

	stats := metrics.GetStats()
	fmt.Printf("converts: %d, points: %d, cells: %d\n", stats.ConvertCount, stats.ConvertPoints, stats.ConvertCells)
	// Output: converts: 3, points: 3, cells: 14739
}
