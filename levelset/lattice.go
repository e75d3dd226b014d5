package levelset

import (
	"math"

	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/internal/parallel"
)

// lattice is the index space shared by the 2-D and 3-D solvers. A 2-D grid
// is a lattice with a single z layer and dims == 2.
type lattice struct {
	n    [3]int
	h    [3]float64
	dims int
}

func lattice3(s grid.Shape3) lattice {
	n, h := s.DataSize(), s.GridSpacing()
	return lattice{n: [3]int{n.X, n.Y, n.Z}, h: [3]float64{h.X, h.Y, h.Z}, dims: 3}
}

func lattice2(s grid.Shape2) lattice {
	n, h := s.DataSize(), s.GridSpacing()
	return lattice{n: [3]int{n.X, n.Y, 1}, h: [3]float64{h.X, h.Y, h.X}, dims: 2}
}

func (l lattice) len() int { return l.n[0] * l.n[1] * l.n[2] }

func (l lattice) stride(axis int) int {
	switch axis {
	case 0:
		return 1
	case 1:
		return l.n[0]
	default:
		return l.n[0] * l.n[1]
	}
}

func (l lattice) coords(idx int) [3]int {
	i := idx % l.n[0]
	idx /= l.n[0]
	return [3]int{i, idx % l.n[1], idx / l.n[1]}
}

func (l lattice) minSpacing() float64 {
	h := math.Inf(1)
	for axis := range l.dims {
		h = min(h, l.h[axis])
	}
	return h
}

// neighbor returns the index one step along axis in direction dir (-1 or 1).
func (l lattice) neighbor(idx int, c [3]int, axis, dir int) (int, bool) {
	ci := c[axis] + dir
	if ci < 0 || ci >= l.n[axis] {
		return 0, false
	}
	return idx + dir*l.stride(axis), true
}

// window gathers the clamped seven-sample stencil window along axis.
func (l lattice) window(data []float64, idx int, c [3]int, axis int) Window {
	var w Window
	n, s := l.n[axis], l.stride(axis)
	for m := -3; m <= 3; m++ {
		ci := min(max(c[axis]+m, 0), n-1)
		w[m+3] = data[idx+(ci-c[axis])*s]
	}
	return w
}

// normal is the normalized central-difference gradient of phi, zero where
// the gradient vanishes.
func (l lattice) normal(phi []float64, idx int, c [3]int) [3]float64 {
	var g [3]float64
	var length float64
	for axis := range l.dims {
		w := l.window(phi, idx, c, axis)
		g[axis] = (w[4] - w[2]) / (2 * l.h[axis])
		length += g[axis] * g[axis]
	}
	if length == 0 {
		return g
	}
	length = math.Sqrt(length)
	for axis := range l.dims {
		g[axis] /= length
	}
	return g
}

// forEach visits every sample in parallel. fn must only write state owned
// by idx.
func (l lattice) forEach(fn func(idx int, c [3]int)) {
	parallel.ForRange(l.len(), 0, func(begin, end int) {
		c := l.coords(begin)
		for idx := begin; idx < end; idx++ {
			fn(idx, c)
			if c[0]++; c[0] == l.n[0] {
				c[0] = 0
				if c[1]++; c[1] == l.n[1] {
					c[1] = 0
					c[2]++
				}
			}
		}
	})
}

// smoothedSign is d / sqrt(d^2 + eps^2).
func smoothedSign(d, eps float64) float64 { return d / math.Sqrt(d*d+eps*eps) }
