package levelset

import (
	"math"
	"slices"
)

// iterative advances the reinitialization and extrapolation PDEs with
// explicit Euler steps in pseudo time, double buffering between sweeps.
type iterative struct {
	stencil Stencil
	opts    options
}

func newIterative(stencil Stencil, optFns []Option) iterative {
	if stencil == nil {
		stencil = Upwind1{}
	}
	return iterative{stencil: stencil, opts: applyOptions(optFns)}
}

// timeStep is the largest pseudo time step allowed by the CFL number on the
// finest axis.
func (it iterative) timeStep(l lattice) float64 { return it.opts.maxCFL * l.minSpacing() }

// reinitialize solves d(phi)/dt + sign(phi0)(|grad phi| - 1) = 0 with the
// Godunov Hamiltonian.
func (it iterative) reinitialize(l lattice, in []float64, maxDistance float64) []float64 {
	eps := l.minSpacing()
	dtau := it.timeStep(l)
	cur := slices.Clone(in)
	next := make([]float64, len(in))

	for range it.opts.iterations(maxDistance, dtau) {
		l.forEach(func(idx int, c [3]int) {
			phi := cur[idx]
			s := smoothedSign(phi, eps)

			var pos, neg float64
			for axis := range l.dims {
				dm, dp := it.stencil.Derivatives(l.window(cur, idx, c, axis), l.h[axis])
				pos += sq(max(dm, 0)) + sq(min(dp, 0))
				neg += sq(min(dm, 0)) + sq(max(dp, 0))
			}

			next[idx] = phi -
				dtau*max(s, 0)*(math.Sqrt(pos)-1) -
				dtau*min(s, 0)*(math.Sqrt(neg)-1)
		})
		cur, next = next, cur
	}
	return cur
}

// extrapolate advects values outward along the normals of phi. Samples with
// phi < 0 are copied through unchanged on every sweep.
func (it iterative) extrapolate(l lattice, in, phi []float64, maxDistance float64) []float64 {
	dtau := it.timeStep(l)
	normals := make([][3]float64, len(phi))
	l.forEach(func(idx int, c [3]int) {
		normals[idx] = l.normal(phi, idx, c)
	})

	cur := slices.Clone(in)
	next := make([]float64, len(in))

	for range it.opts.iterations(maxDistance, dtau) {
		l.forEach(func(idx int, c [3]int) {
			if phi[idx] < 0 {
				next[idx] = cur[idx]
				return
			}
			n := normals[idx]
			val := cur[idx]
			for axis := range l.dims {
				dm, dp := it.stencil.Derivatives(l.window(cur, idx, c, axis), l.h[axis])
				val -= dtau * (max(n[axis], 0)*dm + min(n[axis], 0)*dp)
			}
			next[idx] = val
		})
		cur, next = next, cur
	}
	return cur
}

func sq(x float64) float64 { return x * x }
