package levelset

import "math"

// Window holds the samples f[i-3] .. f[i+3] along one axis around the cell
// being differentiated; Window[3] is the cell itself. Indices past the grid
// boundary repeat the boundary sample.
type Window [7]float64

// Stencil estimates the one-sided first derivatives at the center of a
// window with sample spacing h.
type Stencil interface {
	Derivatives(w Window, h float64) (dm, dp float64)
}

// Upwind1 is the first-order one-sided difference stencil. It reads only
// w[2], w[3] and w[4].
type Upwind1 struct{}

// Derivatives returns the backward and forward differences at w[3].
func (Upwind1) Derivatives(w Window, h float64) (dm, dp float64) {
	return (w[3] - w[2]) / h, (w[4] - w[3]) / h
}

// ENO3 is the third-order essentially non-oscillatory stencil. For each side
// it grows the Newton interpolant towards the smoother neighborhood.
type ENO3 struct{}

// Derivatives returns the third-order backward and forward estimates at w[3].
// Each side picks the second and third divided differences of smaller
// magnitude, so the stencil never reaches across a kink when a smoother
// neighborhood is available.
func (ENO3) Derivatives(w Window, h float64) (dm, dp float64) {
	invH := 1 / h
	halfInvH := invH / 2
	thirdInvH := invH / 3

	var d1 [6]float64
	for i := range d1 {
		d1[i] = invH * (w[i+1] - w[i])
	}
	var d2 [5]float64
	for i := range d2 {
		d2[i] = halfInvH * (d1[i+1] - d1[i])
	}

	var out [2]float64
	for k := 0; k < 2; k++ {
		var c float64
		var kStar int
		var d3 [2]float64
		if math.Abs(d2[k+1]) < math.Abs(d2[k+2]) {
			c = d2[k+1]
			kStar = k - 1
			d3[0] = thirdInvH * (d2[k+1] - d2[k])
			d3[1] = thirdInvH * (d2[k+2] - d2[k+1])
		} else {
			c = d2[k+2]
			kStar = k
			d3[0] = thirdInvH * (d2[k+2] - d2[k+1])
			d3[1] = thirdInvH * (d2[k+3] - d2[k+2])
		}

		cStar := d3[1]
		if math.Abs(d3[0]) < math.Abs(d3[1]) {
			cStar = d3[0]
		}

		m := float64(1 - kStar)
		dq1 := d1[k+2]
		dq2 := c * float64(2*(1-k)-1) * h
		dq3 := cStar * (3*m*m - 6*m + 2) * h * h
		out[k] = dq1 + dq2 + dq3
	}
	return out[0], out[1]
}
