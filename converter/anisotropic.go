package converter

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/internal/parallel"
	"github.com/hupe1980/implicit/neighbor"
)

// maxAnisotropy bounds the ratio between the largest and smallest principal
// axis of a kernel.
const maxAnisotropy = 4.0

// supportRadius3 is the farthest a 3-D kernel reaches from its center. A
// volume-preserving ellipsoid with axis ratio maxAnisotropy stretches its
// long axis to h*cbrt(maxAnisotropy^2), about 2.52h.
func supportRadius3(h float64) float64 {
	return h * max(2, math.Cbrt(maxAnisotropy*maxAnisotropy))
}

// supportRadius2 is the 2-D counterpart: h*sqrt(maxAnisotropy).
func supportRadius2(h float64) float64 {
	return h * max(2, math.Sqrt(maxAnisotropy))
}

// Anisotropic3 converts points to the iso-surface of a density built from
// per-point ellipsoidal kernels. Each kernel follows the weighted covariance
// of its neighborhood within twice the kernel radius.
type Anisotropic3 struct {
	opts options
}

// NewAnisotropic3 returns an anisotropic-kernel converter.
func NewAnisotropic3(optFns ...Option) *Anisotropic3 {
	return &Anisotropic3{opts: applyOptions(optFns)}
}

// Convert fills output with cutOffDensity minus the normalized anisotropic
// density, then optionally reinitializes it.
func (c *Anisotropic3) Convert(points []geom.Vector3, output *grid.ScalarGrid3) error {
	logger := c.opts.logger
	if !usable3(logger, output) {
		return nil
	}

	h := c.opts.kernelRadius
	r := 2 * h
	searcher := c.opts.searcher3(r)
	searcher.Build(points)

	means := make([]geom.Vector3, len(points))
	gs := make([]geom.Matrix3, len(points))
	parallel.For(len(points), 0, func(i int) {
		means[i], gs[i] = c.kernel(searcher, points[i])
	})

	support := supportRadius3(h)
	meanSearcher := c.opts.searcher3(support)
	meanSearcher.Build(means)

	// weights[i] folds 1/density and det(G) of every kernel.
	weights := make([]float64, len(means))
	parallel.For(len(means), 0, func(i int) {
		var density float64
		meanSearcher.ForEachNearbyPoint(means[i], r, func(_ int, q geom.Vector3) {
			density += stdKernel3(means[i].DistanceTo(q), r)
		})
		weights[i] = poly6Norm3 * gs[i].Determinant() / density
	})

	raw := grid.NewScalarGrid3FromShape(output.Shape(), 0)
	raw.Fill(func(x geom.Vector3) float64 {
		var sum float64
		meanSearcher.ForEachNearbyPoint(x, support, func(i int, q geom.Vector3) {
			sum += weights[i] * poly6(gs[i].Apply(q.Sub(x)).LengthSquared())
		})
		return c.opts.cutOffDensity - sum
	})

	logger.Debug("sampled anisotropic kernel field",
		"points", len(points), "resolution", output.Resolution(), "kernel_radius", h)
	return finish3(c.opts, raw, output)
}

// kernel returns the smoothed center and the deformation matrix of the
// kernel around x.
func (c *Anisotropic3) kernel(searcher neighbor.Searcher3, x geom.Vector3) (geom.Vector3, geom.Matrix3) {
	h := c.opts.kernelRadius
	r := 2 * h
	invH := 1 / h
	isotropic := geom.Matrix3{{invH, 0, 0}, {0, invH, 0}, {0, 0, invH}}

	var mean geom.Vector3
	var wSum float64
	n := 0
	searcher.ForEachNearbyPoint(x, r, func(_ int, p geom.Vector3) {
		w := smoothingWeight(x.DistanceTo(p), r)
		wSum += w
		mean = mean.Add(p.Scale(w))
		n++
	})
	if wSum == 0 {
		return x, isotropic
	}
	mean = mean.Scale(1 / wSum)
	center := geom.Lerp3(x, mean, c.opts.positionSmoothing)
	if n < c.opts.minNeighbors {
		return center, isotropic
	}

	// The h^2 diagonal keeps the covariance invertible for collinear
	// neighborhoods.
	var cov [3][3]float64
	for i := range 3 {
		cov[i][i] = h * h
	}
	wSum = 0
	searcher.ForEachNearbyPoint(x, r, func(_ int, p geom.Vector3) {
		w := smoothingWeight(mean.DistanceTo(p), r)
		wSum += w
		d := p.Sub(mean)
		for a := range 3 {
			for b := range 3 {
				cov[a][b] += w * d.At(a) * d.At(b)
			}
		}
	})
	if wSum == 0 {
		return center, isotropic
	}

	sym := mat.NewSymDense(3, nil)
	for a := range 3 {
		for b := a; b < 3; b++ {
			sym.SetSym(a, b, cov[a][b]/wSum)
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return center, isotropic
	}
	sigma := eig.Values(nil)
	var axes mat.Dense
	eig.VectorsTo(&axes)

	sigmaMax := 0.0
	for k := range sigma {
		sigma[k] = math.Abs(sigma[k])
		sigmaMax = max(sigmaMax, sigma[k])
	}
	for k := range sigma {
		sigma[k] = max(sigma[k], sigmaMax/maxAnisotropy)
	}
	scale := invH * math.Cbrt(sigma[0]*sigma[1]*sigma[2])

	var g geom.Matrix3
	for a := range 3 {
		for b := range 3 {
			var v float64
			for k := range 3 {
				v += axes.At(a, k) * axes.At(b, k) / sigma[k]
			}
			g[a][b] = scale * v
		}
	}
	return center, g
}

// Anisotropic2 is the 2-D counterpart of Anisotropic3.
type Anisotropic2 struct {
	opts options
}

// NewAnisotropic2 returns a 2-D anisotropic-kernel converter.
func NewAnisotropic2(optFns ...Option) *Anisotropic2 {
	return &Anisotropic2{opts: applyOptions(optFns)}
}

// Convert fills output with cutOffDensity minus the normalized density of
// elliptic kernels. Each kernel is centered on the Laplacian-smoothed position
// of its point and stretched along the principal directions of the weighted
// neighbor covariance, with the axis ratio clamped to maxAnisotropy. Points with
// too few neighbors fall back to an isotropic kernel. The result is optionally
// reinitialized.
func (c *Anisotropic2) Convert(points []geom.Vector2, output *grid.ScalarGrid2) error {
	logger := c.opts.logger
	if !usable2(logger, output) {
		return nil
	}

	h := c.opts.kernelRadius
	r := 2 * h
	searcher := c.opts.searcher2(r)
	searcher.Build(points)

	means := make([]geom.Vector2, len(points))
	gs := make([]matrix2, len(points))
	parallel.For(len(points), 0, func(i int) {
		means[i], gs[i] = c.kernel(searcher, points[i])
	})

	support := supportRadius2(h)
	meanSearcher := c.opts.searcher2(support)
	meanSearcher.Build(means)

	weights := make([]float64, len(means))
	parallel.For(len(means), 0, func(i int) {
		var density float64
		meanSearcher.ForEachNearbyPoint(means[i], r, func(_ int, q geom.Vector2) {
			density += stdKernel2(means[i].DistanceTo(q), r)
		})
		weights[i] = poly6Norm2 * gs[i].determinant() / density
	})

	raw := grid.NewScalarGrid2FromShape(output.Shape(), 0)
	raw.Fill(func(x geom.Vector2) float64 {
		var sum float64
		meanSearcher.ForEachNearbyPoint(x, support, func(i int, q geom.Vector2) {
			sum += weights[i] * poly6(gs[i].apply(q.Sub(x)).LengthSquared())
		})
		return c.opts.cutOffDensity - sum
	})

	logger.Debug("sampled anisotropic kernel field",
		"points", len(points), "resolution", output.Resolution(), "kernel_radius", h)
	return finish2(c.opts, raw, output)
}

func (c *Anisotropic2) kernel(searcher neighbor.Searcher2, x geom.Vector2) (geom.Vector2, matrix2) {
	h := c.opts.kernelRadius
	r := 2 * h
	invH := 1 / h
	isotropic := matrix2{{invH, 0}, {0, invH}}

	var mean geom.Vector2
	var wSum float64
	n := 0
	searcher.ForEachNearbyPoint(x, r, func(_ int, p geom.Vector2) {
		w := smoothingWeight(x.DistanceTo(p), r)
		wSum += w
		mean = mean.Add(p.Scale(w))
		n++
	})
	if wSum == 0 {
		return x, isotropic
	}
	mean = mean.Scale(1 / wSum)
	center := geom.Lerp2(x, mean, c.opts.positionSmoothing)
	if n < c.opts.minNeighbors {
		return center, isotropic
	}

	cxx, cxy, cyy := h*h, 0.0, h*h
	wSum = 0
	searcher.ForEachNearbyPoint(x, r, func(_ int, p geom.Vector2) {
		w := smoothingWeight(mean.DistanceTo(p), r)
		wSum += w
		d := p.Sub(mean)
		cxx += w * d.X * d.X
		cxy += w * d.X * d.Y
		cyy += w * d.Y * d.Y
	})
	if wSum == 0 {
		return center, isotropic
	}

	var eig mat.EigenSym
	if !eig.Factorize(mat.NewSymDense(2, []float64{cxx / wSum, cxy / wSum, cxy / wSum, cyy / wSum}), true) {
		return center, isotropic
	}
	sigma := eig.Values(nil)
	var axes mat.Dense
	eig.VectorsTo(&axes)

	sigma[0], sigma[1] = math.Abs(sigma[0]), math.Abs(sigma[1])
	sigmaMax := max(sigma[0], sigma[1])
	sigma[0] = max(sigma[0], sigmaMax/maxAnisotropy)
	sigma[1] = max(sigma[1], sigmaMax/maxAnisotropy)
	scale := invH * math.Sqrt(sigma[0]*sigma[1])

	var g matrix2
	for a := range 2 {
		for b := range 2 {
			g[a][b] = scale * (axes.At(a, 0)*axes.At(b, 0)/sigma[0] + axes.At(a, 1)*axes.At(b, 1)/sigma[1])
		}
	}
	return center, g
}

// matrix2 is a row-major 2x2 matrix.
type matrix2 [2][2]float64

func (m matrix2) apply(v geom.Vector2) geom.Vector2 {
	return geom.Vector2{X: m[0][0]*v.X + m[0][1]*v.Y, Y: m[1][0]*v.X + m[1][1]*v.Y}
}

func (m matrix2) determinant() float64 { return m[0][0]*m[1][1] - m[0][1]*m[1][0] }
