package pointgen

import (
	"math"
	"math/rand/v2"

	"github.com/hupe1980/implicit/geom"
)

// SignedDistancer3 is the part of an implicit surface the emitter needs.
type SignedDistancer3 interface {
	SignedDistance(p geom.Vector3) float64
}

// SignedDistancer2 is the 2-D counterpart of SignedDistancer3.
type SignedDistancer2 interface {
	SignedDistance(p geom.Vector2) float64
}

type fillOptions struct {
	maxPoints int
	jitter    float64
	seed      uint64
}

// FillOption configures Fill3 and Fill2.
type FillOption func(*fillOptions)

// WithMaxPoints stops emission after n points. n <= 0 means no cap.
func WithMaxPoints(n int) FillOption {
	return func(o *fillOptions) {
		o.maxPoints = n
	}
}

// WithJitter displaces every candidate by up to amount*spacing/2 in a random
// direction. amount is clamped to [0, 1]; seed makes the output reproducible.
func WithJitter(amount float64, seed uint64) FillOption {
	return func(o *fillOptions) {
		o.jitter = math.Max(0, math.Min(1, amount))
		o.seed = seed
	}
}

func applyFillOptions(opts []FillOption) fillOptions {
	var o fillOptions
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Fill3 returns the lattice points of g that lie inside s (signed distance
// <= 0) within box.
func Fill3(g Generator3, s SignedDistancer3, box geom.BoundingBox3, spacing float64, opts ...FillOption) []geom.Vector3 {
	o := applyFillOptions(opts)
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	maxJitter := 0.5 * o.jitter * spacing

	var out []geom.Vector3
	g.ForEachPoint(box, spacing, func(p geom.Vector3) bool {
		if maxJitter > 0 {
			p = p.Add(randomDirection3(rng).Scale(maxJitter * rng.Float64()))
		}
		if s.SignedDistance(p) <= 0 {
			out = append(out, p)
		}
		return o.maxPoints <= 0 || len(out) < o.maxPoints
	})
	return out
}

// Fill2 returns the lattice points of g that lie inside s within box.
func Fill2(g Generator2, s SignedDistancer2, box geom.BoundingBox2, spacing float64, opts ...FillOption) []geom.Vector2 {
	o := applyFillOptions(opts)
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	maxJitter := 0.5 * o.jitter * spacing

	var out []geom.Vector2
	g.ForEachPoint(box, spacing, func(p geom.Vector2) bool {
		if maxJitter > 0 {
			a := 2 * math.Pi * rng.Float64()
			p = p.Add(geom.Vec2(math.Cos(a), math.Sin(a)).Scale(maxJitter * rng.Float64()))
		}
		if s.SignedDistance(p) <= 0 {
			out = append(out, p)
		}
		return o.maxPoints <= 0 || len(out) < o.maxPoints
	})
	return out
}

func randomDirection3(rng *rand.Rand) geom.Vector3 {
	z := 2*rng.Float64() - 1
	a := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(1 - z*z)
	return geom.Vec3(r*math.Cos(a), r*math.Sin(a), z)
}
