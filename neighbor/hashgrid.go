package neighbor

import (
	"slices"

	"github.com/hupe1980/implicit/geom"
)

// HashGrid3 buckets points into a wrapped spatial hash of cubic cells.
type HashGrid3 struct {
	space   hashSpace3
	points  []geom.Vector3
	buckets [][]int
}

var _ Searcher3 = (*HashGrid3)(nil)

// NewHashGrid3 creates an empty hash grid with res buckets per axis, each
// gridSpacing wide.
func NewHashGrid3(res Resolution3, gridSpacing float64) *HashGrid3 {
	return &HashGrid3{space: newHashSpace3(res, gridSpacing)}
}

// Build replaces the indexed points.
func (g *HashGrid3) Build(points []geom.Vector3) {
	g.points = slices.Clone(points)
	g.buckets = make([][]int, g.space.buckets())
	for i, p := range g.points {
		k := g.space.keyOf(p)
		g.buckets[k] = append(g.buckets[k], i)
	}
}

// Add appends a single point; its index is the previous point count.
func (g *HashGrid3) Add(p geom.Vector3) {
	if g.buckets == nil {
		g.buckets = make([][]int, g.space.buckets())
	}
	k := g.space.keyOf(p)
	g.buckets[k] = append(g.buckets[k], len(g.points))
	g.points = append(g.points, p)
}

// Len returns the number of indexed points.
func (g *HashGrid3) Len() int { return len(g.points) }

// ForEachNearbyPoint calls visit for every point within radius of origin.
// Only the buckets overlapping the query sphere are scanned.
func (g *HashGrid3) ForEachNearbyPoint(origin geom.Vector3, radius float64, visit func(int, geom.Vector3)) {
	if len(g.points) == 0 {
		return
	}
	r2 := radius * radius
	g.space.forEachKey(origin, radius, func(key int) {
		for _, i := range g.buckets[key] {
			p := g.points[i]
			if p.DistanceSquaredTo(origin) <= r2 {
				visit(i, p)
			}
		}
	})
}

// HasNearbyPoint reports whether any point lies within radius of origin.
func (g *HashGrid3) HasNearbyPoint(origin geom.Vector3, radius float64) bool {
	if len(g.points) == 0 {
		return false
	}
	r2 := radius * radius
	found := false
	g.space.forEachKey(origin, radius, func(key int) {
		if found {
			return
		}
		for _, i := range g.buckets[key] {
			if g.points[i].DistanceSquaredTo(origin) <= r2 {
				found = true
				return
			}
		}
	})
	return found
}

// Clone returns a deep copy.
func (g *HashGrid3) Clone() Searcher3 {
	c := &HashGrid3{space: g.space, points: slices.Clone(g.points)}
	if g.buckets != nil {
		c.buckets = make([][]int, len(g.buckets))
		for i, b := range g.buckets {
			c.buckets[i] = slices.Clone(b)
		}
	}
	return c
}

// HashGrid2 is the 2-D counterpart of HashGrid3.
type HashGrid2 struct {
	space   hashSpace2
	points  []geom.Vector2
	buckets [][]int
}

var _ Searcher2 = (*HashGrid2)(nil)

// NewHashGrid2 creates an empty hash grid with res buckets per axis, each
// gridSpacing wide.
func NewHashGrid2(res Resolution2, gridSpacing float64) *HashGrid2 {
	return &HashGrid2{space: newHashSpace2(res, gridSpacing)}
}

// Build replaces the indexed points.
func (g *HashGrid2) Build(points []geom.Vector2) {
	g.points = slices.Clone(points)
	g.buckets = make([][]int, g.space.buckets())
	for i, p := range g.points {
		k := g.space.keyOf(p)
		g.buckets[k] = append(g.buckets[k], i)
	}
}

// Add appends a single point; its index is the previous point count.
func (g *HashGrid2) Add(p geom.Vector2) {
	if g.buckets == nil {
		g.buckets = make([][]int, g.space.buckets())
	}
	k := g.space.keyOf(p)
	g.buckets[k] = append(g.buckets[k], len(g.points))
	g.points = append(g.points, p)
}

// Len returns the number of indexed points.
func (g *HashGrid2) Len() int { return len(g.points) }

// ForEachNearbyPoint calls visit for every point within radius of origin.
func (g *HashGrid2) ForEachNearbyPoint(origin geom.Vector2, radius float64, visit func(int, geom.Vector2)) {
	if len(g.points) == 0 {
		return
	}
	r2 := radius * radius
	g.space.forEachKey(origin, radius, func(key int) {
		for _, i := range g.buckets[key] {
			p := g.points[i]
			if p.DistanceSquaredTo(origin) <= r2 {
				visit(i, p)
			}
		}
	})
}

// HasNearbyPoint reports whether any point lies within radius of origin.
func (g *HashGrid2) HasNearbyPoint(origin geom.Vector2, radius float64) bool {
	if len(g.points) == 0 {
		return false
	}
	r2 := radius * radius
	found := false
	g.space.forEachKey(origin, radius, func(key int) {
		if found {
			return
		}
		for _, i := range g.buckets[key] {
			if g.points[i].DistanceSquaredTo(origin) <= r2 {
				found = true
				return
			}
		}
	})
	return found
}

// Clone returns a deep copy.
func (g *HashGrid2) Clone() Searcher2 {
	c := &HashGrid2{space: g.space, points: slices.Clone(g.points)}
	if g.buckets != nil {
		c.buckets = make([][]int, len(g.buckets))
		for i, b := range g.buckets {
			c.buckets[i] = slices.Clone(b)
		}
	}
	return c
}
