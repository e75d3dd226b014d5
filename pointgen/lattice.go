package pointgen

import (
	"math"

	"github.com/hupe1980/implicit/geom"
)

// Grid2 places points at integer multiples of spacing from the lower corner.
type Grid2 struct{}

// ForEachPoint visits lattice points inside box row by row until visit
// returns false. A non-positive spacing visits nothing.
func (Grid2) ForEachPoint(box geom.BoundingBox2, spacing float64, visit func(geom.Vector2) bool) {
	if spacing <= 0 {
		return
	}
	w, h := box.Width(), box.Height()
	for j := 0; float64(j)*spacing <= h; j++ {
		y := float64(j)*spacing + box.Lower.Y
		for i := 0; float64(i)*spacing <= w; i++ {
			if !visit(geom.Vector2{X: float64(i)*spacing + box.Lower.X, Y: y}) {
				return
			}
		}
	}
}

// Triangle2 places points on a triangular lattice: every other row is shifted
// by spacing/2 and rows are spacing*sqrt(3)/2 apart.
type Triangle2 struct{}

// ForEachPoint visits lattice points inside box until visit returns false.
func (Triangle2) ForEachPoint(box geom.BoundingBox2, spacing float64, visit func(geom.Vector2) bool) {
	if spacing <= 0 {
		return
	}
	half := spacing / 2
	rowPitch := spacing * math.Sqrt(3) / 2
	w, h := box.Width(), box.Height()

	shifted := false
	for j := 0; float64(j)*rowPitch <= h; j++ {
		y := float64(j)*rowPitch + box.Lower.Y
		offset := 0.0
		if shifted {
			offset = half
		}
		for i := 0; float64(i)*spacing+offset <= w; i++ {
			if !visit(geom.Vector2{X: float64(i)*spacing + offset + box.Lower.X, Y: y}) {
				return
			}
		}
		shifted = !shifted
	}
}

// Grid3 places points at integer multiples of spacing from the lower corner,
// x varying fastest.
type Grid3 struct{}

// ForEachPoint visits lattice points inside box until visit returns false.
func (Grid3) ForEachPoint(box geom.BoundingBox3, spacing float64, visit func(geom.Vector3) bool) {
	if spacing <= 0 {
		return
	}
	w, h, d := box.Width(), box.Height(), box.Depth()
	for k := 0; float64(k)*spacing <= d; k++ {
		z := float64(k)*spacing + box.Lower.Z
		for j := 0; float64(j)*spacing <= h; j++ {
			y := float64(j)*spacing + box.Lower.Y
			for i := 0; float64(i)*spacing <= w; i++ {
				if !visit(geom.Vector3{X: float64(i)*spacing + box.Lower.X, Y: y, Z: z}) {
					return
				}
			}
		}
	}
}

// FCC3 places points on a face-centered cubic lattice. Layers and rows are
// spacing/2 apart; the half-spacing row shift alternates within a layer and
// starts shifted on odd layers.
type FCC3 struct{}

func (FCC3) ForEachPoint(box geom.BoundingBox3, spacing float64, visit func(geom.Vector3) bool) {
	if spacing <= 0 {
		return
	}
	half := spacing / 2
	w, h, d := box.Width(), box.Height(), box.Depth()
	for k := 0; float64(k)*half <= d; k++ {
		z := float64(k)*half + box.Lower.Z
		shifted := k%2 == 1
		for j := 0; float64(j)*half <= h; j++ {
			y := float64(j)*half + box.Lower.Y
			offset := 0.0
			if shifted {
				offset = half
			}
			for i := 0; float64(i)*spacing+offset <= w; i++ {
				if !visit(geom.Vector3{X: float64(i)*spacing + offset + box.Lower.X, Y: y, Z: z}) {
					return
				}
			}
			shifted = !shifted
		}
	}
}

// BCC3 places points on a body-centered cubic lattice. Layers are spacing/2
// apart and every other layer is shifted by spacing/2 in x and y.
type BCC3 struct{}

func (BCC3) ForEachPoint(box geom.BoundingBox3, spacing float64, visit func(geom.Vector3) bool) {
	if spacing <= 0 {
		return
	}
	half := spacing / 2
	w, h, d := box.Width(), box.Height(), box.Depth()
	shifted := false
	for k := 0; float64(k)*half <= d; k++ {
		z := float64(k)*half + box.Lower.Z
		offset := 0.0
		if shifted {
			offset = half
		}
		for j := 0; float64(j)*spacing+offset <= h; j++ {
			y := float64(j)*spacing + offset + box.Lower.Y
			for i := 0; float64(i)*spacing+offset <= w; i++ {
				if !visit(geom.Vector3{X: float64(i)*spacing + offset + box.Lower.X, Y: y, Z: z}) {
					return
				}
			}
		}
		shifted = !shifted
	}
}
