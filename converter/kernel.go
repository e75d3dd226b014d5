package converter

import "math"

const (
	poly6Norm3 = 315 / (64 * math.Pi)
	poly6Norm2 = 4 / math.Pi
)

// smoothingWeight is 1 - (d/r)^3 inside r and zero outside.
func smoothingWeight(d, r float64) float64 {
	if d >= r {
		return 0
	}
	x := d / r
	return 1 - x*x*x
}

// poly6 is (1 - q2)^3 on the unit ball, q2 being the squared scaled distance.
func poly6(q2 float64) float64 {
	if q2 >= 1 {
		return 0
	}
	x := 1 - q2
	return x * x * x
}

// stdKernel3 is the normalized 3-D poly6 SPH kernel with support h.
func stdKernel3(d, h float64) float64 { return poly6Norm3 / (h * h * h) * poly6(d*d/(h*h)) }

// stdKernel2 is the normalized 2-D poly6 SPH kernel with support h.
func stdKernel2(d, h float64) float64 { return poly6Norm2 / (h * h) * poly6(d*d/(h*h)) }
