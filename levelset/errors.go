package levelset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/implicit/grid"
)

// ErrAliasedGrids is returned when the input and output of a solver are the
// same grid.
var ErrAliasedGrids = errors.New("levelset: input and output grids must not alias")

func checkShapes3(in, out grid.Shape3, aliased bool) error {
	if aliased {
		return ErrAliasedGrids
	}
	if !in.HasSameShape(out) {
		return fmt.Errorf("%w: input %v, output %v", grid.ErrShapeMismatch, in.DataSize(), out.DataSize())
	}
	return nil
}

func checkShapes2(in, out grid.Shape2, aliased bool) error {
	if aliased {
		return ErrAliasedGrids
	}
	if !in.HasSameShape(out) {
		return fmt.Errorf("%w: input %v, output %v", grid.ErrShapeMismatch, in.DataSize(), out.DataSize())
	}
	return nil
}
