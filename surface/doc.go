// Package surface implements implicit surfaces: shapes described by a signed
// distance function that is negative inside and positive outside.
//
// Geometry is written in local coordinates (Sphere3, Box3, Plane3, Grid3,
// SDFX3, Custom3, Set3, ...). Surface3 places a geometry in the world: it
// maps queries through a rigid Transform and can flip the inside/outside
// convention without rebuilding the geometry.
//
//	s := surface.Surface3{
//	    Geometry:  surface.Sphere3{Radius: 0.5},
//	    Transform: geom.Transform3{Translation: geom.Vec3(1, 0, 0)},
//	}
//	s.IsInside(geom.Vec3(1, 0, 0)) // true
package surface
