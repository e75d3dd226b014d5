package neighbor

import "github.com/hupe1980/implicit/geom"

// Searcher3 is a 3-D point neighbor searcher.
type Searcher3 interface {
	// Build replaces the indexed point set with a copy of points.
	Build(points []geom.Vector3)
	// ForEachNearbyPoint calls visit with the index and position of every
	// point p with |p - origin| <= radius.
	ForEachNearbyPoint(origin geom.Vector3, radius float64, visit func(i int, p geom.Vector3))
	// HasNearbyPoint reports whether any point lies within radius of origin.
	HasNearbyPoint(origin geom.Vector3, radius float64) bool
	// Clone returns an independent searcher with the same configuration and
	// contents.
	Clone() Searcher3
}

// Searcher2 is a 2-D point neighbor searcher.
type Searcher2 interface {
	Build(points []geom.Vector2)
	ForEachNearbyPoint(origin geom.Vector2, radius float64, visit func(i int, p geom.Vector2))
	HasNearbyPoint(origin geom.Vector2, radius float64) bool
	Clone() Searcher2
}

// Factory3 creates an empty searcher for a given maximum query radius.
type Factory3 func(maxRadius float64) Searcher3

// Factory2 creates an empty searcher for a given maximum query radius.
type Factory2 func(maxRadius float64) Searcher2

// DefaultHashGridResolution is the bucket count per axis used by the
// default factories.
const DefaultHashGridResolution = 64

// DefaultFactory3 builds a ParallelHashGrid3 whose bucket size is twice the
// maximum radius.
func DefaultFactory3(maxRadius float64) Searcher3 {
	r := DefaultHashGridResolution
	return NewParallelHashGrid3(Resolution3{r, r, r}, 2*maxRadius)
}

// DefaultFactory2 builds a HashGrid2 whose bucket size is twice the maximum
// radius.
func DefaultFactory2(maxRadius float64) Searcher2 {
	r := DefaultHashGridResolution
	return NewHashGrid2(Resolution2{r, r}, 2*maxRadius)
}

// KdTreeFactory3 builds a KdTree3; the radius hint is unused.
func KdTreeFactory3(float64) Searcher3 { return NewKdTree3() }

// KdTreeFactory2 builds a KdTree2; the radius hint is unused.
func KdTreeFactory2(float64) Searcher2 { return NewKdTree2() }
