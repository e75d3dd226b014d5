// Package bvh provides intersection-query engines over a static set of
// items: "does anything intersect this box or ray", "visit everything that
// does", "which item does this ray hit first" and "which item is closest to
// this point".
//
// Items are opaque to the engines. Callers supply the geometric tests as
// functions, so the same BVH3 can index triangles, spheres or whole implicit
// surfaces.
package bvh
