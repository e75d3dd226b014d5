package gridstore

import (
	"fmt"

	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
)

// Kind distinguishes scalar from vector grids.
type Kind uint8

const (
	// KindScalar stores one value per sample.
	KindScalar Kind = 0
	// KindVector stores Dimension interleaved components per sample.
	KindVector Kind = 1
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Header describes the lattice of a stored grid. For 2-D grids the third
// entries of Resolution, Spacing and Origin are zero.
type Header struct {
	Dimension   int
	Kind        Kind
	Layout      grid.Layout
	Compression CompressionType
	Resolution  [3]int
	Spacing     [3]float64
	Origin      [3]float64
}

// Components is the number of float64 values per sample.
func (h Header) Components() int {
	if h.Kind == KindVector {
		return h.Dimension
	}
	return 1
}

func (h Header) shape3() (grid.Shape3, error) {
	return grid.NewShape3(h.Layout,
		grid.Size3{X: h.Resolution[0], Y: h.Resolution[1], Z: h.Resolution[2]},
		geom.Vector3{X: h.Spacing[0], Y: h.Spacing[1], Z: h.Spacing[2]},
		geom.Vector3{X: h.Origin[0], Y: h.Origin[1], Z: h.Origin[2]})
}

func (h Header) shape2() (grid.Shape2, error) {
	return grid.NewShape2(h.Layout,
		grid.Size2{X: h.Resolution[0], Y: h.Resolution[1]},
		geom.Vector2{X: h.Spacing[0], Y: h.Spacing[1]},
		geom.Vector2{X: h.Origin[0], Y: h.Origin[1]})
}

// Samples is the number of data points implied by the header.
func (h Header) Samples() (int, error) {
	switch h.Dimension {
	case 3:
		s, err := h.shape3()
		if err != nil {
			return 0, err
		}
		return s.DataSize().Len(), nil
	case 2:
		s, err := h.shape2()
		if err != nil {
			return 0, err
		}
		return s.DataSize().Len(), nil
	default:
		return 0, fmt.Errorf("%w: dimension %d", ErrInvalidFormat, h.Dimension)
	}
}

// Snapshot is a decoded grid: its lattice and the flat sample values.
// Vector components are interleaved.
type Snapshot struct {
	Header
	Values []float64
}

func header3(kind Kind, s grid.Shape3) Header {
	r, h, o := s.Resolution(), s.GridSpacing(), s.Origin()
	return Header{
		Dimension:  3,
		Kind:       kind,
		Layout:     s.Layout(),
		Resolution: [3]int{r.X, r.Y, r.Z},
		Spacing:    [3]float64{h.X, h.Y, h.Z},
		Origin:     [3]float64{o.X, o.Y, o.Z},
	}
}

func header2(kind Kind, s grid.Shape2) Header {
	r, h, o := s.Resolution(), s.GridSpacing(), s.Origin()
	return Header{
		Dimension:  2,
		Kind:       kind,
		Layout:     s.Layout(),
		Resolution: [3]int{r.X, r.Y},
		Spacing:    [3]float64{h.X, h.Y},
		Origin:     [3]float64{o.X, o.Y},
	}
}

// FromScalar3 snapshots g. The snapshot shares g's storage.
func FromScalar3(g *grid.ScalarGrid3) *Snapshot {
	return &Snapshot{Header: header3(KindScalar, g.Shape()), Values: g.Data()}
}

// FromScalar2 snapshots g. The snapshot shares g's storage.
func FromScalar2(g *grid.ScalarGrid2) *Snapshot {
	return &Snapshot{Header: header2(KindScalar, g.Shape()), Values: g.Data()}
}

// FromVector3 copies g into a snapshot.
func FromVector3(g *grid.VectorGrid3) *Snapshot {
	data := g.Data()
	values := make([]float64, 0, 3*len(data))
	for _, v := range data {
		values = append(values, v.X, v.Y, v.Z)
	}
	return &Snapshot{Header: header3(KindVector, g.Shape()), Values: values}
}

// FromVector2 copies g into a snapshot.
func FromVector2(g *grid.VectorGrid2) *Snapshot {
	data := g.Data()
	values := make([]float64, 0, 2*len(data))
	for _, v := range data {
		values = append(values, v.X, v.Y)
	}
	return &Snapshot{Header: header2(KindVector, g.Shape()), Values: values}
}

func (s *Snapshot) check(dim int, kind Kind) error {
	if s.Dimension != dim || s.Kind != kind {
		return fmt.Errorf("%w: have %d-D %s, want %d-D %s", ErrKindMismatch, s.Dimension, s.Kind, dim, kind)
	}
	n, err := s.Samples()
	if err != nil {
		return err
	}
	if want := n * s.Components(); len(s.Values) != want {
		return fmt.Errorf("%w: %d values for %d samples", ErrInvalidFormat, len(s.Values), want)
	}
	return nil
}

// Scalar3 rebuilds a 3-D scalar grid.
func (s *Snapshot) Scalar3() (*grid.ScalarGrid3, error) {
	if err := s.check(3, KindScalar); err != nil {
		return nil, err
	}
	shape, _ := s.shape3()
	g := grid.NewScalarGrid3FromShape(shape, 0)
	copy(g.Data(), s.Values)
	return g, nil
}

// Scalar2 rebuilds a 2-D scalar grid.
func (s *Snapshot) Scalar2() (*grid.ScalarGrid2, error) {
	if err := s.check(2, KindScalar); err != nil {
		return nil, err
	}
	shape, _ := s.shape2()
	g := grid.NewScalarGrid2FromShape(shape, 0)
	copy(g.Data(), s.Values)
	return g, nil
}

// Vector3 rebuilds a 3-D vector grid.
func (s *Snapshot) Vector3() (*grid.VectorGrid3, error) {
	if err := s.check(3, KindVector); err != nil {
		return nil, err
	}
	shape, _ := s.shape3()
	g := grid.NewVectorGrid3FromShape(shape, geom.Vector3{})
	data := g.Data()
	for i := range data {
		data[i] = geom.Vector3{X: s.Values[3*i], Y: s.Values[3*i+1], Z: s.Values[3*i+2]}
	}
	return g, nil
}

// Vector2 rebuilds a 2-D vector grid.
func (s *Snapshot) Vector2() (*grid.VectorGrid2, error) {
	if err := s.check(2, KindVector); err != nil {
		return nil, err
	}
	shape, _ := s.shape2()
	g := grid.NewVectorGrid2FromShape(shape, geom.Vector2{})
	data := g.Data()
	for i := range data {
		data[i] = geom.Vector2{X: s.Values[2*i], Y: s.Values[2*i+1]}
	}
	return g, nil
}
