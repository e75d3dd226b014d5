// Package levelset repairs and extends signed distance fields stored on
// structured grids.
//
// Two families of solvers share the Solver3/Solver2 contracts:
//
//   - IterativeSolver3/2 evolve the reinitialization and extrapolation PDEs in
//     pseudo time. The finite-difference scheme is a Stencil strategy, either
//     first-order Upwind1 or third-order ENO3.
//   - FMMSolver3/2 solve the same problems with the fast marching method.
//
// All solvers read from an input grid and write to a distinct output grid of
// the same shape. Stencil windows are clamped at the grid boundary.
package levelset
