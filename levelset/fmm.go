package levelset

import (
	"cmp"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/implicit/internal/queue"
)

// fmm is the fast marching scheme. Known samples are tracked in a roaring
// bitmap keyed by flattened grid index.
type fmm struct{}

// reinitialize seeds the samples next to the zero crossing with the
// linearly interpolated interface distance, then marches each side outward
// in order of increasing distance. Samples beyond maxDistance keep their
// input value.
func (fmm) reinitialize(l lattice, in []float64, maxDistance float64) []float64 {
	out := slices.Clone(in)
	dist := make([]float64, len(in))
	known := roaring.New()

	for idx := range in {
		dist[idx] = math.Inf(1)
		if d, ok := l.interfaceDistance(in, idx, l.coords(idx)); ok {
			dist[idx] = d
			known.Add(uint32(idx))
		}
	}
	if known.IsEmpty() {
		return out
	}

	for _, inside := range [2]bool{false, true} {
		l.march(in, dist, known, inside, maxDistance)
	}

	it := known.Iterator()
	for it.HasNext() {
		idx := int(it.Next())
		if in[idx] < 0 {
			out[idx] = -dist[idx]
		} else {
			out[idx] = dist[idx]
		}
	}
	return out
}

// interfaceDistance estimates the distance from a sample to a zero crossing
// between it and an axis neighbor. It reports false when no neighbor has the
// opposite sign.
func (l lattice) interfaceDistance(phi []float64, idx int, c [3]int) (float64, bool) {
	p := phi[idx]
	if p == 0 {
		return 0, true
	}
	var inv float64
	found := false
	for axis := range l.dims {
		theta := math.Inf(1)
		for _, dir := range [2]int{-1, 1} {
			nb, ok := l.neighbor(idx, c, axis, dir)
			if !ok {
				continue
			}
			q := phi[nb]
			if (p < 0) == (q < 0) {
				continue
			}
			theta = min(theta, p/(p-q)*l.h[axis])
		}
		if math.IsInf(theta, 1) {
			continue
		}
		if theta == 0 {
			return 0, true
		}
		found = true
		inv += 1 / (theta * theta)
	}
	if !found {
		return 0, false
	}
	return 1 / math.Sqrt(inv), true
}

// march propagates unsigned distances through the samples on one side of
// the interface. dist holds magnitudes; known grows as samples are accepted.
func (l lattice) march(phi, dist []float64, known *roaring.Bitmap, inside bool, maxDistance float64) {
	onSide := func(idx int) bool { return (phi[idx] < 0) == inside }
	usable := func(idx int) bool { return onSide(idx) && known.Contains(uint32(idx)) }

	pq := queue.NewMin(64)
	relax := func(idx int) {
		l.forEachNeighbor(idx, func(nb int) {
			if !onSide(nb) || known.Contains(uint32(nb)) {
				return
			}
			if t := l.solveEikonal(nb, dist, usable); t < dist[nb] {
				dist[nb] = t
				pq.PushItem(queue.Item{Index: nb, Priority: t})
			}
		})
	}

	for _, seed := range known.ToArray() {
		if onSide(int(seed)) {
			relax(int(seed))
		}
	}

	for {
		item, ok := pq.PopItem()
		if !ok || item.Priority > maxDistance {
			return
		}
		if known.Contains(uint32(item.Index)) || item.Priority > dist[item.Index] {
			continue
		}
		known.Add(uint32(item.Index))
		relax(item.Index)
	}
}

func (l lattice) forEachNeighbor(idx int, fn func(nb int)) {
	c := l.coords(idx)
	for axis := range l.dims {
		for _, dir := range [2]int{-1, 1} {
			if nb, ok := l.neighbor(idx, c, axis, dir); ok {
				fn(nb)
			}
		}
	}
}

// solveEikonal returns the first-order upwind solution of |grad u| = 1 at
// idx using the usable neighbors only.
func (l lattice) solveEikonal(idx int, dist []float64, usable func(int) bool) float64 {
	c := l.coords(idx)
	var a, h [3]float64
	m := 0
	for axis := range l.dims {
		best := math.Inf(1)
		for _, dir := range [2]int{-1, 1} {
			if nb, ok := l.neighbor(idx, c, axis, dir); ok && usable(nb) {
				best = min(best, dist[nb])
			}
		}
		if math.IsInf(best, 1) {
			continue
		}
		// insertion keeps a[:m] ascending
		j := m
		for ; j > 0 && a[j-1] > best; j-- {
			a[j], h[j] = a[j-1], h[j-1]
		}
		a[j], h[j] = best, l.h[axis]
		m++
	}
	if m == 0 {
		return math.Inf(1)
	}

	x := a[0] + h[0]
	for k := 2; k <= m; k++ {
		if x <= a[k-1] {
			break
		}
		var qa, qb, qc float64
		for d := range k {
			w := 1 / (h[d] * h[d])
			qa += w
			qb -= 2 * a[d] * w
			qc += a[d] * a[d] * w
		}
		qc--
		disc := qb*qb - 4*qa*qc
		if disc < 0 {
			break
		}
		x = (-qb + math.Sqrt(disc)) / (2 * qa)
	}
	return x
}

// extrapolate freezes samples with phi < 0 and visits the rest up to
// maxDistance in order of increasing phi. Each visited sample becomes the
// average of its known axis neighbors, weighted by how far upwind they lie.
func (fmm) extrapolate(l lattice, in, phi []float64, maxDistance float64) []float64 {
	out := slices.Clone(in)
	known := roaring.New()
	var order []int
	for idx, p := range phi {
		switch {
		case p < 0:
			known.Add(uint32(idx))
		case p <= maxDistance:
			order = append(order, idx)
		}
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Or(cmp.Compare(phi[a], phi[b]), cmp.Compare(a, b))
	})

	for _, idx := range order {
		c := l.coords(idx)
		var sum, wsum, plain float64
		n := 0
		for axis := range l.dims {
			for _, dir := range [2]int{-1, 1} {
				nb, ok := l.neighbor(idx, c, axis, dir)
				if !ok || !known.Contains(uint32(nb)) {
					continue
				}
				w := max(phi[idx]-phi[nb], 0) / l.h[axis]
				sum += w * out[nb]
				wsum += w
				plain += out[nb]
				n++
			}
		}
		if n == 0 {
			continue
		}
		if wsum > 0 {
			out[idx] = sum / wsum
		} else {
			out[idx] = plain / float64(n)
		}
		known.Add(uint32(idx))
	}
	return out
}
