package levelset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func windowOf(f func(float64) float64, x, h float64) Window {
	var w Window
	for m := range w {
		w[m] = f(x + float64(m-3)*h)
	}
	return w
}

func TestUpwind1(t *testing.T) {
	w := windowOf(func(x float64) float64 { return x * x }, 1, 0.5)
	dm, dp := Upwind1{}.Derivatives(w, 0.5)
	assert.InDelta(t, 1.5, dm, 1e-12)
	assert.InDelta(t, 2.5, dp, 1e-12)
}

func TestENO3(t *testing.T) {
	tests := []struct {
		name string
		f    func(float64) float64
		df   func(float64) float64
		tol  float64
	}{
		{"cubic", func(x float64) float64 { return x*x*x - 2*x*x + x }, func(x float64) float64 { return 3*x*x - 4*x + 1 }, 1e-9},
		{"sin", math.Sin, math.Cos, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, x := 0.01, 0.5
			dm, dp := ENO3{}.Derivatives(windowOf(tt.f, x, h), h)
			assert.InDelta(t, tt.df(x), dm, tt.tol)
			assert.InDelta(t, tt.df(x), dp, tt.tol)
		})
	}
}

func TestENO3AvoidsKink(t *testing.T) {
	// |x| sampled with the kink two cells to the left.
	h := 0.1
	w := windowOf(math.Abs, 0.2, h)
	dm, dp := ENO3{}.Derivatives(w, h)
	assert.InDelta(t, 1, dm, 1e-9)
	assert.InDelta(t, 1, dp, 1e-9)
}

func TestClampedWindow(t *testing.T) {
	l := lattice{n: [3]int{4, 1, 1}, h: [3]float64{1, 1, 1}, dims: 1}
	data := []float64{10, 11, 12, 13}
	assert.Equal(t, Window{10, 10, 10, 10, 11, 12, 13}, l.window(data, 0, [3]int{0, 0, 0}, 0))
	assert.Equal(t, Window{10, 11, 12, 13, 13, 13, 13}, l.window(data, 3, [3]int{3, 0, 0}, 0))
}
