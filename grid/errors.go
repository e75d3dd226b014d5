package grid

import "errors"

var (
	// ErrShapeMismatch is returned when two grids that must share a lattice do not.
	ErrShapeMismatch = errors.New("grid: shape mismatch")

	// ErrInvalidSpacing is returned when a grid spacing component is not positive.
	ErrInvalidSpacing = errors.New("grid: spacing must be positive")
)
