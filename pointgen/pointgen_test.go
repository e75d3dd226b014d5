package pointgen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/implicit/geom"
)

func TestGrid2Coverage(t *testing.T) {
	tests := []struct {
		name    string
		w, h, s float64
	}{
		{"unit", 1, 1, 0.25},
		{"wide", 2, 1, 0.5},
		{"non-divisible", 1, 0.7, 0.25},
		{"spacing larger than box", 0.5, 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := geom.BoundingBox2{Lower: geom.Vec2(-1, 2), Upper: geom.Vec2(-1+tt.w, 2+tt.h)}
			pts := Generate2(Grid2{}, box, tt.s)

			want := (int(math.Floor(tt.w/tt.s)) + 1) * (int(math.Floor(tt.h/tt.s)) + 1)
			require.Len(t, pts, want)
			for _, p := range pts {
				assert.True(t, box.Contains(p), "%v outside %v", p, box)
			}
		})
	}
}

func TestGrid3Order(t *testing.T) {
	box := geom.NewBoundingBox3(geom.Vector3{}, geom.Vec3(1, 1, 1))
	pts := Generate3(Grid3{}, box, 1)
	require.Len(t, pts, 8)
	assert.Equal(t, geom.Vec3(0, 0, 0), pts[0])
	assert.Equal(t, geom.Vec3(1, 0, 0), pts[1])
	assert.Equal(t, geom.Vec3(0, 1, 0), pts[2])
	assert.Equal(t, geom.Vec3(1, 1, 1), pts[7])
}

func TestEarlyExit(t *testing.T) {
	box3 := geom.NewBoundingBox3(geom.Vector3{}, geom.Vec3(1, 1, 1))
	box2 := geom.NewBoundingBox2(geom.Vector2{}, geom.Vec2(1, 1))
	const stopAfter = 7

	gens3 := map[string]Generator3{"grid": Grid3{}, "fcc": FCC3{}, "bcc": BCC3{}}
	for name, g := range gens3 {
		t.Run(name, func(t *testing.T) {
			n := 0
			g.ForEachPoint(box3, 0.1, func(geom.Vector3) bool {
				n++
				return n < stopAfter
			})
			assert.Equal(t, stopAfter, n)
		})
	}

	gens2 := map[string]Generator2{"grid2": Grid2{}, "triangle": Triangle2{}}
	for name, g := range gens2 {
		t.Run(name, func(t *testing.T) {
			n := 0
			g.ForEachPoint(box2, 0.1, func(geom.Vector2) bool {
				n++
				return n < stopAfter
			})
			assert.Equal(t, stopAfter, n)
		})
	}

	t.Run("iterator break", func(t *testing.T) {
		n := 0
		for range Points3(BCC3{}, box3, 0.1) {
			n++
			if n == stopAfter {
				break
			}
		}
		assert.Equal(t, stopAfter, n)
	})
}

func TestTriangle2(t *testing.T) {
	box := geom.NewBoundingBox2(geom.Vector2{}, geom.Vec2(1, 1))
	pts := Generate2(Triangle2{}, box, 0.5)

	// Rows at y = 0, 0.433 and 0.866; the middle row is shifted by spacing/2.
	rowPitch := 0.5 * math.Sqrt(3) / 2
	rows := map[float64][]float64{}
	for _, p := range pts {
		assert.True(t, box.Contains(p))
		rows[p.Y] = append(rows[p.Y], p.X)
	}
	require.Len(t, rows, 3)
	assert.Equal(t, []float64{0, 0.5, 1}, rows[0])
	assert.Equal(t, []float64{0.25, 0.75}, rows[rowPitch])
	assert.Equal(t, []float64{0, 0.5, 1}, rows[2*rowPitch])
}

func TestCubicLattices(t *testing.T) {
	box := geom.NewBoundingBox3(geom.Vector3{}, geom.Vec3(1, 1, 1))

	t.Run("bcc layers alternate", func(t *testing.T) {
		pts := Generate3(BCC3{}, box, 1)
		// Layer z=0: 2x2 corners; z=0.5: single shifted center; z=1: 2x2 corners.
		require.Len(t, pts, 9)
		assert.Contains(t, pts, geom.Vec3(0.5, 0.5, 0.5))
	})

	t.Run("fcc contains face centers", func(t *testing.T) {
		pts := Generate3(FCC3{}, box, 1)
		assert.Contains(t, pts, geom.Vec3(0.5, 0.5, 0))
		assert.Contains(t, pts, geom.Vec3(0.5, 0, 0.5))
		assert.Contains(t, pts, geom.Vec3(0, 0.5, 0.5))
		assert.Contains(t, pts, geom.Vec3(1, 1, 1))
		assert.NotContains(t, pts, geom.Vec3(0.5, 0.5, 0.5))
		for _, p := range pts {
			assert.True(t, box.Contains(p))
		}
	})

	t.Run("non-positive spacing yields nothing", func(t *testing.T) {
		assert.Empty(t, Generate3(FCC3{}, box, 0))
		assert.Empty(t, Generate3(Grid3{}, box, -1))
	})
}

type ball struct {
	center geom.Vector3
	radius float64
}

func (b ball) SignedDistance(p geom.Vector3) float64 { return p.DistanceTo(b.center) - b.radius }

func TestFill3(t *testing.T) {
	box := geom.NewBoundingBox3(geom.Vec3(-1, -1, -1), geom.Vec3(1, 1, 1))
	s := ball{radius: 0.5}

	t.Run("only inside points", func(t *testing.T) {
		pts := Fill3(Grid3{}, s, box, 0.1)
		require.NotEmpty(t, pts)
		for _, p := range pts {
			assert.LessOrEqual(t, s.SignedDistance(p), 0.0)
		}
	})

	t.Run("cap", func(t *testing.T) {
		pts := Fill3(BCC3{}, s, box, 0.05, WithMaxPoints(10))
		assert.Len(t, pts, 10)
	})

	t.Run("jitter is reproducible", func(t *testing.T) {
		a := Fill3(Grid3{}, s, box, 0.2, WithJitter(1, 42))
		b := Fill3(Grid3{}, s, box, 0.2, WithJitter(1, 42))
		assert.Equal(t, a, b)
	})
}
