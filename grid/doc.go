// Package grid provides the structured-grid containers that the level-set
// solvers and points-to-implicit converters read and write.
//
// A grid covers a rectangular index domain described by a Shape: an integer
// resolution, a spacing and an origin. Samples either sit at cell centers
// (CellCentered) or at cell corners (VertexCentered); DataSize, DataOrigin
// and DataPosition expose the resulting sample lattice.
//
// Grids are not safe for concurrent mutation. Fill and the ParallelFor
// helpers split the index domain between goroutines so that every sample is
// written by exactly one of them.
package grid
