// Package converter turns scattered points into implicit surfaces sampled on
// a grid.
//
// Spherical3/2 place a ball of the kernel radius around every point.
// Anisotropic3/2 stretch each point's kernel along the principal axes of
// its neighborhood, which keeps thin sheets and sharp features thin.
//
// Both write raw kernel fields and, when an exact signed distance is
// requested, reinitialize them through a levelset solver. An empty output
// grid or domain is reported as a warning on the injected logger and leaves
// the output untouched.
package converter
