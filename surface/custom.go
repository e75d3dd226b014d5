package surface

import (
	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
)

// defaultNormalEps is the central-difference step for numeric normals.
const defaultNormalEps = 1e-6

// Custom3 is a geometry defined by an arbitrary signed distance function.
// Normals are estimated by central differences with step Eps.
type Custom3 struct {
	Func  func(geom.Vector3) float64
	Bound geom.BoundingBox3
	Eps   float64
}

// SignedDistance calls Func.
func (c Custom3) SignedDistance(p geom.Vector3) float64 { return c.Func(p) }

// Normal differentiates Func numerically; a non-positive Eps selects 1e-6.
func (c Custom3) Normal(p geom.Vector3) geom.Vector3 { return numericNormal3(c.Func, p, c.Eps) }

// BoundingBox returns Bound.
func (c Custom3) BoundingBox() geom.BoundingBox3 { return c.Bound }

// Custom2 is a 2-D geometry defined by an arbitrary signed distance function.
type Custom2 struct {
	Func  func(geom.Vector2) float64
	Bound geom.BoundingBox2
	Eps   float64
}

// SignedDistance calls Func.
func (c Custom2) SignedDistance(p geom.Vector2) float64 { return c.Func(p) }

// Normal differentiates Func numerically; a non-positive Eps selects 1e-6.
func (c Custom2) Normal(p geom.Vector2) geom.Vector2 {
	h := c.Eps
	if h <= 0 {
		h = defaultNormalEps
	}
	return geom.Vec2(
		c.Func(p.Add(geom.Vec2(h, 0)))-c.Func(p.Sub(geom.Vec2(h, 0))),
		c.Func(p.Add(geom.Vec2(0, h)))-c.Func(p.Sub(geom.Vec2(0, h))),
	).Normalized()
}

func (c Custom2) BoundingBox() geom.BoundingBox2 { return c.Bound }

func numericNormal3(f func(geom.Vector3) float64, p geom.Vector3, h float64) geom.Vector3 {
	if h <= 0 {
		h = defaultNormalEps
	}
	return geom.Vec3(
		f(p.Add(geom.Vec3(h, 0, 0)))-f(p.Sub(geom.Vec3(h, 0, 0))),
		f(p.Add(geom.Vec3(0, h, 0)))-f(p.Sub(geom.Vec3(0, h, 0))),
		f(p.Add(geom.Vec3(0, 0, h)))-f(p.Sub(geom.Vec3(0, 0, h))),
	).Normalized()
}

// Grid3 reads a signed distance field stored in a scalar grid.
type Grid3 struct {
	Grid *grid.ScalarGrid3
}

// SignedDistance interpolates the grid at p.
func (g Grid3) SignedDistance(p geom.Vector3) float64 { return g.Grid.Sample(p) }

// Normal is the normalized grid gradient.
func (g Grid3) Normal(p geom.Vector3) geom.Vector3 { return g.Grid.Gradient(p).Normalized() }

func (g Grid3) BoundingBox() geom.BoundingBox3 { return g.Grid.BoundingBox() }

// Grid2 reads a signed distance field stored in a 2-D scalar grid.
type Grid2 struct {
	Grid *grid.ScalarGrid2
}

// SignedDistance interpolates the grid at p.
func (g Grid2) SignedDistance(p geom.Vector2) float64 { return g.Grid.Sample(p) }

// Normal is the normalized grid gradient.
func (g Grid2) Normal(p geom.Vector2) geom.Vector2 { return g.Grid.Gradient(p).Normalized() }

func (g Grid2) BoundingBox() geom.BoundingBox2 { return g.Grid.BoundingBox() }
