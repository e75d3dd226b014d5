package pointgen

import (
	"iter"

	"github.com/hupe1980/implicit/geom"
)

// Generator3 visits lattice points inside a 3-D box. The visitor returns
// false to stop generation.
type Generator3 interface {
	ForEachPoint(box geom.BoundingBox3, spacing float64, visit func(geom.Vector3) bool)
}

// Generator2 visits lattice points inside a 2-D box. The visitor returns
// false to stop generation.
type Generator2 interface {
	ForEachPoint(box geom.BoundingBox2, spacing float64, visit func(geom.Vector2) bool)
}

// Generate3 collects every point produced by g.
func Generate3(g Generator3, box geom.BoundingBox3, spacing float64) []geom.Vector3 {
	var out []geom.Vector3
	g.ForEachPoint(box, spacing, func(p geom.Vector3) bool {
		out = append(out, p)
		return true
	})
	return out
}

// Generate2 collects every point produced by g.
func Generate2(g Generator2, box geom.BoundingBox2, spacing float64) []geom.Vector2 {
	var out []geom.Vector2
	g.ForEachPoint(box, spacing, func(p geom.Vector2) bool {
		out = append(out, p)
		return true
	})
	return out
}

// Points3 exposes g as a range-over-func sequence. Breaking out of the loop
// stops generation.
func Points3(g Generator3, box geom.BoundingBox3, spacing float64) iter.Seq[geom.Vector3] {
	return func(yield func(geom.Vector3) bool) {
		g.ForEachPoint(box, spacing, yield)
	}
}

// Points2 exposes g as a range-over-func sequence.
func Points2(g Generator2, box geom.BoundingBox2, spacing float64) iter.Seq[geom.Vector2] {
	return func(yield func(geom.Vector2) bool) {
		g.ForEachPoint(box, spacing, yield)
	}
}
