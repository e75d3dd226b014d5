package implicit

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/implicit/converter"
	"github.com/hupe1980/implicit/gridstore"
	"github.com/hupe1980/implicit/levelset"
	"github.com/hupe1980/implicit/neighbor"
	"github.com/hupe1980/implicit/resource"
)

// ErrInvalidKernelRadius is returned by Build for a non-positive or
// non-finite kernel radius.
var ErrInvalidKernelRadius = errors.New("kernel radius must be positive")

// Spherical creates a builder for a spherical-kernel Reconstructor.
// Each point contributes a ball of kernelRadius.
//
// The builder is immutable - each method returns a new builder with the updated configuration.
//
// Example:
//
//	r, err := implicit.Spherical(0.05).
//	    ENO().
//	    KdTree().
//	    Build()
func Spherical(kernelRadius float64) Builder {
	return Builder{
		method:       MethodSpherical,
		kernelRadius: kernelRadius,
		outputSDF:    true,
	}
}

// Anisotropic creates a builder for an anisotropic-kernel Reconstructor.
// Kernels are stretched along the principal axes of each point's neighborhood.
//
// Example:
//
//	r, err := implicit.Anisotropic(0.05).
//	    MinNeighbors(16).
//	    CutOffDensity(0.4).
//	    Build()
func Anisotropic(kernelRadius float64) Builder {
	return Builder{
		method:       MethodAnisotropic,
		kernelRadius: kernelRadius,
		outputSDF:    true,
	}
}

// Builder is an immutable fluent builder for Reconstructor instances.
type Builder struct {
	method            Method
	kernelRadius      float64
	outputSDF         bool
	stencil           levelset.Stencil
	solverOpts        []levelset.Option
	kdTree            bool
	cutOffDensity     *float64
	positionSmoothing *float64
	minNeighbors      *int
	logger            *Logger
	metrics           MetricsCollector
	store             *gridstore.Store
	controller        *resource.Controller
}

// Raw skips reinitialization and keeps the kernel field as produced.
func (b Builder) Raw() Builder {
	b.outputSDF = false
	return b
}

// FMM reinitializes with the fast marching solver (default).
func (b Builder) FMM() Builder {
	b.stencil = nil
	return b
}

// Upwind reinitializes with the first-order iterative solver.
func (b Builder) Upwind() Builder {
	b.stencil = levelset.Upwind1{}
	return b
}

// ENO reinitializes with the third-order ENO iterative solver.
func (b Builder) ENO() Builder {
	b.stencil = levelset.ENO3{}
	return b
}

// MaxCFL sets the pseudo-time CFL number of the iterative solvers.
// Default: 0.5. Ignored by FMM.
func (b Builder) MaxCFL(cfl float64) Builder {
	b.solverOpts = append(b.solverOpts[:len(b.solverOpts):len(b.solverOpts)], levelset.WithMaxCFL(cfl))
	return b
}

// MaxIterations caps the sweeps of the iterative solvers.
// Default: 512. Ignored by FMM.
func (b Builder) MaxIterations(n int) Builder {
	b.solverOpts = append(b.solverOpts[:len(b.solverOpts):len(b.solverOpts)], levelset.WithMaxIterations(n))
	return b
}

// KdTree indexes points with a k-d tree instead of the default hash grid.
// Prefer it for clustered point clouds with a wide bounding box.
func (b Builder) KdTree() Builder {
	b.kdTree = true
	return b
}

// CutOffDensity sets the iso value of the anisotropic density field.
// Default: 0.5.
func (b Builder) CutOffDensity(d float64) Builder {
	b.cutOffDensity = &d
	return b
}

// PositionSmoothing sets how far anisotropic kernel centers are pulled
// towards their neighborhood mean, in [0, 1]. Default: 0.5.
func (b Builder) PositionSmoothing(s float64) Builder {
	b.positionSmoothing = &s
	return b
}

// MinNeighbors sets the neighborhood size below which anisotropic kernels
// fall back to spheres. Default: 25.
func (b Builder) MinNeighbors(n int) Builder {
	b.minNeighbors = &n
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Store enables SaveAs and Load.
func (b Builder) Store(s *gridstore.Store) Builder {
	b.store = s
	return b
}

// Controller bounds concurrent jobs and scratch memory.
func (b Builder) Controller(rc *resource.Controller) Builder {
	b.controller = rc
	return b
}

// Build creates the Reconstructor.
func (b Builder) Build() (*Reconstructor, error) {
	if !(b.kernelRadius > 0) || math.IsInf(b.kernelRadius, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKernelRadius, b.kernelRadius)
	}

	convOpts := []converter.Option{
		converter.WithKernelRadius(b.kernelRadius),
		converter.WithOutputSDF(b.outputSDF),
	}
	if b.kdTree {
		convOpts = append(convOpts,
			converter.WithSearcherFactory(neighbor.KdTreeFactory3),
			converter.WithSearcherFactory2(neighbor.KdTreeFactory2),
		)
	}
	if b.cutOffDensity != nil {
		convOpts = append(convOpts, converter.WithCutOffDensity(*b.cutOffDensity))
	}
	if b.positionSmoothing != nil {
		convOpts = append(convOpts, converter.WithPositionSmoothing(*b.positionSmoothing))
	}
	if b.minNeighbors != nil {
		convOpts = append(convOpts, converter.WithMinNeighbors(*b.minNeighbors))
	}

	opts := []Option{
		WithMethod(b.method),
		WithConverterOptions(convOpts...),
		WithController(b.controller),
	}
	if b.stencil != nil {
		opts = append(opts,
			WithSolver(levelset.NewIterativeSolver3(b.stencil, b.solverOpts...)),
			WithSolver2(levelset.NewIterativeSolver2(b.stencil, b.solverOpts...)),
		)
	}
	if b.logger != nil {
		opts = append(opts, WithLogger(b.logger))
	}
	if b.metrics != nil {
		opts = append(opts, WithMetricsCollector(b.metrics))
	}
	if b.store != nil {
		opts = append(opts, WithStore(b.store))
	}

	return New(opts...), nil
}

// MustBuild creates the Reconstructor, panicking on error.
func (b Builder) MustBuild() *Reconstructor {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}
