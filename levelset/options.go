package levelset

import "math"

const (
	// DefaultMaxCFL is the default pseudo-time CFL number.
	DefaultMaxCFL = 0.5
	// DefaultMaxIterations bounds the sweeps of an iterative solve.
	DefaultMaxIterations = 512
)

type options struct {
	maxCFL        float64
	maxIterations int
}

// Option configures an IterativeSolver3 or IterativeSolver2.
type Option func(*options)

// WithMaxCFL sets the CFL number used to derive the pseudo time step.
// Values outside (0, 1] are ignored.
func WithMaxCFL(cfl float64) Option {
	return func(o *options) {
		if cfl > 0 && cfl <= 1 {
			o.maxCFL = cfl
		}
	}
}

// WithMaxIterations caps the number of sweeps. It is also the sweep count
// when the requested distance is infinite.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{maxCFL: DefaultMaxCFL, maxIterations: DefaultMaxIterations}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// iterations converts a travel distance into a sweep count.
func (o options) iterations(maxDistance, dtau float64) int {
	switch {
	case math.IsNaN(maxDistance) || maxDistance <= 0:
		return 0
	case math.IsInf(maxDistance, 1) || maxDistance/dtau >= float64(o.maxIterations):
		return o.maxIterations
	}
	return int(math.Ceil(maxDistance / dtau))
}
