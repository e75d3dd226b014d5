package converter

import (
	"log/slog"

	"github.com/hupe1980/implicit/levelset"
	"github.com/hupe1980/implicit/neighbor"
)

const (
	// DefaultKernelRadius is the kernel radius used when none is configured.
	DefaultKernelRadius = 1.0
	// DefaultCutOffDensity is the iso value of the anisotropic density field.
	DefaultCutOffDensity = 0.5
	// DefaultPositionSmoothing blends each point towards its weighted
	// neighborhood mean.
	DefaultPositionSmoothing = 0.5
	// DefaultMinNeighbors is the neighborhood size below which the
	// anisotropic kernel falls back to an isotropic one.
	DefaultMinNeighbors = 25
)

type options struct {
	kernelRadius      float64
	outputSDF         bool
	solver3           levelset.Solver3
	solver2           levelset.Solver2
	searcher3         neighbor.Factory3
	searcher2         neighbor.Factory2
	logger            *slog.Logger
	cutOffDensity     float64
	positionSmoothing float64
	minNeighbors      int
}

// Option configures a converter.
type Option func(*options)

// WithKernelRadius sets the kernel radius. Non-positive values are ignored.
func WithKernelRadius(r float64) Option {
	return func(o *options) {
		if r > 0 {
			o.kernelRadius = r
		}
	}
}

// WithOutputSDF selects whether the raw kernel field is reinitialized into a
// signed distance field (default true).
func WithOutputSDF(enabled bool) Option {
	return func(o *options) { o.outputSDF = enabled }
}

// WithSolver sets the solver used to reinitialize 3-D output.
func WithSolver(s levelset.Solver3) Option {
	return func(o *options) {
		if s != nil {
			o.solver3 = s
		}
	}
}

// WithSolver2 sets the solver used to reinitialize 2-D output.
func WithSolver2(s levelset.Solver2) Option {
	return func(o *options) {
		if s != nil {
			o.solver2 = s
		}
	}
}

// WithSearcherFactory sets how 3-D neighbor searchers are created.
func WithSearcherFactory(f neighbor.Factory3) Option {
	return func(o *options) {
		if f != nil {
			o.searcher3 = f
		}
	}
}

// WithSearcherFactory2 sets how 2-D neighbor searchers are created.
func WithSearcherFactory2(f neighbor.Factory2) Option {
	return func(o *options) {
		if f != nil {
			o.searcher2 = f
		}
	}
}

// WithLogger sets the logger that receives precondition warnings and
// progress records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCutOffDensity sets the anisotropic iso value.
func WithCutOffDensity(d float64) Option {
	return func(o *options) { o.cutOffDensity = d }
}

// WithPositionSmoothing sets the anisotropic position smoothing factor in
// [0, 1]; 0 keeps the input positions.
func WithPositionSmoothing(s float64) Option {
	return func(o *options) { o.positionSmoothing = min(max(s, 0), 1) }
}

// WithMinNeighbors sets the anisotropic isotropic-fallback threshold.
func WithMinNeighbors(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.minNeighbors = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		kernelRadius:      DefaultKernelRadius,
		outputSDF:         true,
		solver3:           levelset.NewFMMSolver3(),
		solver2:           levelset.NewFMMSolver2(),
		searcher3:         neighbor.DefaultFactory3,
		searcher2:         neighbor.DefaultFactory2,
		logger:            slog.New(slog.DiscardHandler),
		cutOffDensity:     DefaultCutOffDensity,
		positionSmoothing: DefaultPositionSmoothing,
		minNeighbors:      DefaultMinNeighbors,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
