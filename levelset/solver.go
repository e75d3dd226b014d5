package levelset

import (
	"github.com/hupe1980/implicit/field"
	"github.com/hupe1980/implicit/grid"
)

// Solver3 reinitializes and extrapolates 3-D level sets.
type Solver3 interface {
	// Reinitialize turns input into a signed distance field within
	// maxDistance of the zero level and writes it to output. input is not
	// modified.
	Reinitialize(input *grid.ScalarGrid3, maxDistance float64, output *grid.ScalarGrid3) error
	// Extrapolate carries input values from the sdf < 0 region into the
	// sdf >= 0 region up to maxDistance. Samples with sdf < 0 are copied
	// unchanged.
	Extrapolate(input *grid.ScalarGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.ScalarGrid3) error
	// ExtrapolateVector extrapolates every component of a vector grid.
	ExtrapolateVector(input *grid.VectorGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.VectorGrid3) error
}

// Solver2 is the 2-D counterpart of Solver3.
type Solver2 interface {
	Reinitialize(input *grid.ScalarGrid2, maxDistance float64, output *grid.ScalarGrid2) error
	Extrapolate(input *grid.ScalarGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.ScalarGrid2) error
	ExtrapolateVector(input *grid.VectorGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.VectorGrid2) error
}

// scheme is a numerical method over flattened lattice samples.
type scheme interface {
	reinitialize(l lattice, in []float64, maxDistance float64) []float64
	extrapolate(l lattice, in, phi []float64, maxDistance float64) []float64
}

var (
	_ Solver3 = (*IterativeSolver3)(nil)
	_ Solver3 = (*FMMSolver3)(nil)
	_ Solver2 = (*IterativeSolver2)(nil)
	_ Solver2 = (*FMMSolver2)(nil)
)

// IterativeSolver3 evolves the level-set PDEs with a pluggable stencil.
type IterativeSolver3 struct{ s iterative }

// NewIterativeSolver3 returns a solver using stencil; nil selects Upwind1.
func NewIterativeSolver3(stencil Stencil, optFns ...Option) *IterativeSolver3 {
	return &IterativeSolver3{s: newIterative(stencil, optFns)}
}

// NewUpwindSolver3 returns a first-order upwind solver.
func NewUpwindSolver3(optFns ...Option) *IterativeSolver3 {
	return NewIterativeSolver3(Upwind1{}, optFns...)
}

// NewENOSolver3 returns a third-order ENO solver.
func NewENOSolver3(optFns ...Option) *IterativeSolver3 {
	return NewIterativeSolver3(ENO3{}, optFns...)
}

// Reinitialize solves the reinitialization equation in pseudo-time. It runs
// ceil(maxDistance / dtau) sweeps, where dtau is the CFL-limited step on the
// finest axis, capped by WithMaxIterations. Passing the same grid as input and
// output returns ErrAliasedGrids.
func (s *IterativeSolver3) Reinitialize(input *grid.ScalarGrid3, maxDistance float64, output *grid.ScalarGrid3) error {
	return reinitialize3(s.s, input, maxDistance, output)
}

// Extrapolate advects input outward along the gradient of sdf.
func (s *IterativeSolver3) Extrapolate(input *grid.ScalarGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.ScalarGrid3) error {
	return extrapolate3(s.s, input, sdf, maxDistance, output)
}

// ExtrapolateVector runs Extrapolate on each component in turn.
func (s *IterativeSolver3) ExtrapolateVector(input *grid.VectorGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.VectorGrid3) error {
	return extrapolateVector3(s.s, input, sdf, maxDistance, output)
}

// FMMSolver3 solves the level-set problems with fast marching.
type FMMSolver3 struct{ s fmm }

// NewFMMSolver3 returns a fast-marching solver. Fast marching visits each
// sample once in order of increasing distance, so it has no stencil and no
// options; maxDistance only bounds how far the front is propagated.
func NewFMMSolver3() *FMMSolver3 { return &FMMSolver3{} }

// Reinitialize seeds the front from the samples adjacent to a sign change and
// marches outward on both sides of it. Samples farther than maxDistance keep
// their input value.
func (s *FMMSolver3) Reinitialize(input *grid.ScalarGrid3, maxDistance float64, output *grid.ScalarGrid3) error {
	return reinitialize3(s.s, input, maxDistance, output)
}

// Extrapolate copies values into the sdf >= 0 region in fast-marching order.
func (s *FMMSolver3) Extrapolate(input *grid.ScalarGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.ScalarGrid3) error {
	return extrapolate3(s.s, input, sdf, maxDistance, output)
}

// ExtrapolateVector runs Extrapolate on each component in turn.
func (s *FMMSolver3) ExtrapolateVector(input *grid.VectorGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.VectorGrid3) error {
	return extrapolateVector3(s.s, input, sdf, maxDistance, output)
}

// IterativeSolver2 is the 2-D counterpart of IterativeSolver3.
type IterativeSolver2 struct{ s iterative }

// NewIterativeSolver2 returns a solver using stencil; nil selects Upwind1.
func NewIterativeSolver2(stencil Stencil, optFns ...Option) *IterativeSolver2 {
	return &IterativeSolver2{s: newIterative(stencil, optFns)}
}

// NewUpwindSolver2 returns a first-order upwind solver.
func NewUpwindSolver2(optFns ...Option) *IterativeSolver2 {
	return NewIterativeSolver2(Upwind1{}, optFns...)
}

// NewENOSolver2 returns a third-order ENO solver.
func NewENOSolver2(optFns ...Option) *IterativeSolver2 {
	return NewIterativeSolver2(ENO3{}, optFns...)
}

// Reinitialize is the 2-D counterpart of IterativeSolver3.Reinitialize.
func (s *IterativeSolver2) Reinitialize(input *grid.ScalarGrid2, maxDistance float64, output *grid.ScalarGrid2) error {
	return reinitialize2(s.s, input, maxDistance, output)
}

// Extrapolate advects input outward along the gradient of sdf.
func (s *IterativeSolver2) Extrapolate(input *grid.ScalarGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.ScalarGrid2) error {
	return extrapolate2(s.s, input, sdf, maxDistance, output)
}

func (s *IterativeSolver2) ExtrapolateVector(input *grid.VectorGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.VectorGrid2) error {
	return extrapolateVector2(s.s, input, sdf, maxDistance, output)
}

// FMMSolver2 is the 2-D counterpart of FMMSolver3.
type FMMSolver2 struct{ s fmm }

// NewFMMSolver2 returns a 2-D fast-marching solver.
func NewFMMSolver2() *FMMSolver2 { return &FMMSolver2{} }

// Reinitialize is the 2-D counterpart of FMMSolver3.Reinitialize.
func (s *FMMSolver2) Reinitialize(input *grid.ScalarGrid2, maxDistance float64, output *grid.ScalarGrid2) error {
	return reinitialize2(s.s, input, maxDistance, output)
}

// Extrapolate copies values into the sdf >= 0 region in fast-marching order.
func (s *FMMSolver2) Extrapolate(input *grid.ScalarGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.ScalarGrid2) error {
	return extrapolate2(s.s, input, sdf, maxDistance, output)
}

// ExtrapolateVector runs Extrapolate on both components.
func (s *FMMSolver2) ExtrapolateVector(input *grid.VectorGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.VectorGrid2) error {
	return extrapolateVector2(s.s, input, sdf, maxDistance, output)
}

func reinitialize3(s scheme, input *grid.ScalarGrid3, maxDistance float64, output *grid.ScalarGrid3) error {
	if err := checkShapes3(input.Shape(), output.Shape(), input == output); err != nil {
		return err
	}
	l := lattice3(input.Shape())
	if l.len() == 0 {
		return nil
	}
	copy(output.Data(), s.reinitialize(l, input.Data(), maxDistance))
	return nil
}

func extrapolate3(s scheme, input *grid.ScalarGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.ScalarGrid3) error {
	if err := checkShapes3(input.Shape(), output.Shape(), input == output); err != nil {
		return err
	}
	l := lattice3(input.Shape())
	if l.len() == 0 {
		return nil
	}
	phi := sampleAtData3(input.Shape(), sdf)
	copy(output.Data(), s.extrapolate(l, input.Data(), phi, maxDistance))
	return nil
}

func extrapolateVector3(s scheme, input *grid.VectorGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.VectorGrid3) error {
	if err := checkShapes3(input.Shape(), output.Shape(), input == output); err != nil {
		return err
	}
	l := lattice3(input.Shape())
	if l.len() == 0 {
		return nil
	}
	phi := sampleAtData3(input.Shape(), sdf)
	for c := range 3 {
		comp := input.Component(c)
		copy(comp.Data(), s.extrapolate(l, comp.Data(), phi, maxDistance))
		if err := output.SetComponent(c, comp); err != nil {
			return err
		}
	}
	return nil
}

func reinitialize2(s scheme, input *grid.ScalarGrid2, maxDistance float64, output *grid.ScalarGrid2) error {
	if err := checkShapes2(input.Shape(), output.Shape(), input == output); err != nil {
		return err
	}
	l := lattice2(input.Shape())
	if l.len() == 0 {
		return nil
	}
	copy(output.Data(), s.reinitialize(l, input.Data(), maxDistance))
	return nil
}

func extrapolate2(s scheme, input *grid.ScalarGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.ScalarGrid2) error {
	if err := checkShapes2(input.Shape(), output.Shape(), input == output); err != nil {
		return err
	}
	l := lattice2(input.Shape())
	if l.len() == 0 {
		return nil
	}
	phi := sampleAtData2(input.Shape(), sdf)
	copy(output.Data(), s.extrapolate(l, input.Data(), phi, maxDistance))
	return nil
}

func extrapolateVector2(s scheme, input *grid.VectorGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.VectorGrid2) error {
	if err := checkShapes2(input.Shape(), output.Shape(), input == output); err != nil {
		return err
	}
	l := lattice2(input.Shape())
	if l.len() == 0 {
		return nil
	}
	phi := sampleAtData2(input.Shape(), sdf)
	for c := range 2 {
		comp := input.Component(c)
		copy(comp.Data(), s.extrapolate(l, comp.Data(), phi, maxDistance))
		if err := output.SetComponent(c, comp); err != nil {
			return err
		}
	}
	return nil
}

// sampleAtData3 evaluates sdf at every sample position of shape.
func sampleAtData3(shape grid.Shape3, sdf field.ScalarField3) []float64 {
	g := grid.NewScalarGrid3FromShape(shape, 0)
	g.Fill(sdf.Sample)
	return g.Data()
}

func sampleAtData2(shape grid.Shape2, sdf field.ScalarField2) []float64 {
	g := grid.NewScalarGrid2FromShape(shape, 0)
	g.Fill(sdf.Sample)
	return g.Data()
}
