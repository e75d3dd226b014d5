package converter

import (
	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
)

// Spherical3 converts points to the union of balls of the kernel radius.
type Spherical3 struct {
	opts options
}

// NewSpherical3 returns a spherical-kernel converter.
func NewSpherical3(optFns ...Option) *Spherical3 {
	return &Spherical3{opts: applyOptions(optFns)}
}

// Convert fills output with min(|x - p|, 2r) - r over the points p within 2r
// of every sample x, then optionally reinitializes it.
func (c *Spherical3) Convert(points []geom.Vector3, output *grid.ScalarGrid3) error {
	logger := c.opts.logger
	if !usable3(logger, output) {
		return nil
	}

	r := c.opts.kernelRadius
	searchRadius := 2 * r
	searcher := c.opts.searcher3(searchRadius)
	searcher.Build(points)

	raw := grid.NewScalarGrid3FromShape(output.Shape(), 0)
	raw.Fill(func(x geom.Vector3) float64 {
		minDist := searchRadius
		searcher.ForEachNearbyPoint(x, searchRadius, func(_ int, p geom.Vector3) {
			minDist = min(minDist, x.DistanceTo(p))
		})
		return minDist - r
	})

	logger.Debug("sampled spherical kernel field",
		"points", len(points), "resolution", output.Resolution(), "kernel_radius", r)
	return finish3(c.opts, raw, output)
}

// Spherical2 is the 2-D counterpart of Spherical3.
type Spherical2 struct {
	opts options
}

// NewSpherical2 returns a 2-D spherical-kernel converter.
func NewSpherical2(optFns ...Option) *Spherical2 {
	return &Spherical2{opts: applyOptions(optFns)}
}

// Convert fills output with min(|x - p|, 2r) - r over the points p within 2r
// of every sample x, then optionally reinitializes it. Samples with no point
// in reach are set to r, so the zero level is the union of disks of radius r
// around the input points.
func (c *Spherical2) Convert(points []geom.Vector2, output *grid.ScalarGrid2) error {
	logger := c.opts.logger
	if !usable2(logger, output) {
		return nil
	}

	r := c.opts.kernelRadius
	searchRadius := 2 * r
	searcher := c.opts.searcher2(searchRadius)
	searcher.Build(points)

	raw := grid.NewScalarGrid2FromShape(output.Shape(), 0)
	raw.Fill(func(x geom.Vector2) float64 {
		minDist := searchRadius
		searcher.ForEachNearbyPoint(x, searchRadius, func(_ int, p geom.Vector2) {
			minDist = min(minDist, x.DistanceTo(p))
		})
		return minDist - r
	})

	logger.Debug("sampled spherical kernel field",
		"points", len(points), "resolution", output.Resolution(), "kernel_radius", r)
	return finish2(c.opts, raw, output)
}
