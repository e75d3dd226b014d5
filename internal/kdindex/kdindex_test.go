package kdindex

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinRadiusMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	coords := make([][3]float64, 500)
	for i := range coords {
		coords[i] = [3]float64{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	ix := New3(coords)
	require.Equal(t, 500, ix.Len())

	for q := 0; q < 20; q++ {
		origin := [3]float64{rng.Float64(), rng.Float64(), rng.Float64()}
		const r = 0.15

		var got []int
		ix.WithinRadius(origin, r, func(i int) { got = append(got, i) })
		sort.Ints(got)

		var want []int
		for i, c := range coords {
			dx, dy, dz := c[0]-origin[0], c[1]-origin[1], c[2]-origin[2]
			if dx*dx+dy*dy+dz*dz <= r*r {
				want = append(want, i)
			}
		}
		assert.Equal(t, want, got)
	}
}

func TestNearest(t *testing.T) {
	ix := New2([][3]float64{{0, 0, 9}, {1, 0, -9}, {0, 2, 0}})
	i, d := ix.Nearest([3]float64{0.9, 0.1, 0})
	assert.Equal(t, 1, i)
	assert.InDelta(t, math.Sqrt(0.02), d, 1e-12)

	empty := New3(nil)
	i, d = empty.Nearest([3]float64{})
	assert.Equal(t, -1, i)
	assert.True(t, math.IsInf(d, 1))

	called := false
	empty.WithinRadius([3]float64{}, 1, func(int) { called = true })
	assert.False(t, called)
}
