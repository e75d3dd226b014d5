// Package testutil provides testing utilities for the implicit packages.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating seeded point clouds, building
// analytic signed distance grids, and checking neighbor queries against
// brute force.
//
// # Random Point Generation
//
//	rng := testutil.NewRNG(seed)
//	cloud := rng.PointsInBox3(1000, box)          // uniform in a box
//	shell := rng.PointsOnSphere3(500, center, r)  // uniform on a sphere
//
// # Analytic Grids
//
//	g := testutil.SphereGrid3(t, 32, center, 0.3) // |p - c| - r on [0, 1]^3
//
// # Ground Truth
//
//	want := testutil.BruteForceNearby3(points, origin, radius)
//	recall := testutil.ComputeRecall(want, got)
package testutil
