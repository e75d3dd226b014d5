// Package pointgen produces sample points that cover a box under a lattice
// pattern: a regular grid, a triangular lattice (2-D), or face-centered and
// body-centered cubic lattices (3-D).
//
// Every generator walks its lattice from the lower corner, stops each axis
// once the offset passes the box extent, and stops entirely as soon as the
// visitor returns false:
//
//	var gen pointgen.BCC3
//	n := 0
//	gen.ForEachPoint(box, 0.1, func(p geom.Vector3) bool {
//	    n++
//	    return n < 1000
//	})
//
// Points3 and Points2 adapt a generator to iter.Seq.
package pointgen
