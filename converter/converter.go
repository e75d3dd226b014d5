package converter

import (
	"log/slog"
	"math"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
)

// Converter3 samples the implicit surface of a point cloud into output.
type Converter3 interface {
	Convert(points []geom.Vector3, output *grid.ScalarGrid3) error
}

// Converter2 is the 2-D counterpart of Converter3.
type Converter2 interface {
	Convert(points []geom.Vector2, output *grid.ScalarGrid2) error
}

var (
	_ Converter3 = (*Spherical3)(nil)
	_ Converter3 = (*Anisotropic3)(nil)
	_ Converter2 = (*Spherical2)(nil)
	_ Converter2 = (*Anisotropic2)(nil)
)

// usable3 reports whether output can be filled and logs why not otherwise.
func usable3(logger *slog.Logger, output *grid.ScalarGrid3) bool {
	if output.Resolution().Len() == 0 {
		logger.Warn("empty grid is provided", "resolution", output.Resolution())
		return false
	}
	if output.BoundingBox().IsEmpty() {
		logger.Warn("empty domain is provided", "bounds", output.BoundingBox())
		return false
	}
	return true
}

func usable2(logger *slog.Logger, output *grid.ScalarGrid2) bool {
	if output.Resolution().Len() == 0 {
		logger.Warn("empty grid is provided", "resolution", output.Resolution())
		return false
	}
	if output.BoundingBox().IsEmpty() {
		logger.Warn("empty domain is provided", "bounds", output.BoundingBox())
		return false
	}
	return true
}

// finish writes the raw field into output, through the solver when an
// exact distance is wanted. Otherwise output takes over raw's storage.
func finish3(o options, raw, output *grid.ScalarGrid3) error {
	if o.outputSDF {
		return o.solver3.Reinitialize(raw, math.Inf(1), output)
	}
	output.Swap(raw)
	return nil
}

func finish2(o options, raw, output *grid.ScalarGrid2) error {
	if o.outputSDF {
		return o.solver2.Reinitialize(raw, math.Inf(1), output)
	}
	output.Swap(raw)
	return nil
}
