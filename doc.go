// Package implicit reconstructs implicit surfaces from point clouds and
// maintains signed distance fields on structured grids.
//
// The pipeline turns scattered points into a signed distance grid with a
// spherical or anisotropic kernel, then optionally sharpens the raw field
// with a level-set solver (fast marching, first-order upwind or ENO3).
// The same solvers reinitialize existing distance fields and extrapolate
// quantities outwards from the zero level set.
//
// # Quick Start
//
//	ctx := context.Background()
//	sdf, _ := grid.NewVertexCenteredScalarGrid3(
//	    grid.Size3{X: 64, Y: 64, Z: 64},
//	    geom.Vector3{X: 1.0 / 64, Y: 1.0 / 64, Z: 1.0 / 64},
//	    geom.Vector3{},
//	)
//	r := implicit.Spherical(0.02).MustBuild()
//	err := r.Reconstruct3(ctx, points, sdf)
//
// # Persistence
//
// Grids are saved as compressed snapshots through any blob store (memory,
// local disk, S3 or MinIO). SaveAs commits the snapshot, Load with an empty
// name reads the committed one back:
//
//	blobs, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("grids/"))
//	r := implicit.New(implicit.WithStore(gridstore.New(blobs)))
//	_ = r.SaveAs3(ctx, "frame-0001.igrd", sdf)
//	latest, _ := r.Load3(ctx, "")
//
// # Packages
//
//   - geom: vectors, bounding boxes, rays and rigid transforms
//   - grid: scalar and vector grids with sampling and derivatives
//   - field: scalar and vector fields with optional analytic derivatives
//   - surface: implicit surfaces (sphere, plane, box, grid, sdfx solids)
//   - pointgen: lattice point generators and volume emitters
//   - neighbor: point neighbor searchers (hash grids, k-d trees)
//   - bvh: bounding volume hierarchy intersection queries
//   - levelset: upwind/ENO stencils, iterative and fast marching solvers
//   - converter: spherical and anisotropic points-to-implicit converters
//   - mesh: marching cubes triangulation of reconstructed grids
//   - gridstore, blobstore: grid snapshot codec and storage backends
//   - resource: job, memory and IO budgets
package implicit
