// Package geom provides the 2-D and 3-D geometric primitives shared by every
// other package: vectors, axis-aligned bounding boxes, rays and rigid
// transforms.
//
// All types are small values and are passed by value. Methods never mutate
// their receiver; they return a new value instead.
package geom
