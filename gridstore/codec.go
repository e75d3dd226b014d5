package gridstore

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/hupe1980/implicit/grid"
)

// Snapshot layout (little-endian):
//
//	magic       [4]byte "IGRD"
//	version     uint16
//	dimension   uint8   (2 or 3)
//	kind        uint8   (scalar, vector)
//	layout      uint8   (cell-, vertex-centered)
//	compression uint8
//	reserved    uint16
//	resolution  dimension x uint32
//	spacing     dimension x float64
//	origin      dimension x float64
//	blocks      [uncompressed uint32][compressed uint32][bytes]...
//	checksum    uint32  CRC32C of the uncompressed payload
const (
	magic         = "IGRD"
	formatVersion = uint16(1)
	fixedHeader   = 12

	// maxSamples bounds allocations when decoding untrusted headers.
	maxSamples = float64(1 << 32)

	valuesPerChunk = 8192
	initialValues  = 64 * valuesPerChunk
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// Encode writes s to w, compressing the payload with c.
func Encode(w io.Writer, s *Snapshot, c CompressionType) error {
	if !c.valid() {
		return fmt.Errorf("gridstore: unknown compression %v", c)
	}
	if s.Kind > KindVector || s.Layout > grid.VertexCentered {
		return fmt.Errorf("%w: kind %v, layout %v", ErrInvalidFormat, s.Kind, s.Layout)
	}
	if err := s.check(s.Dimension, s.Kind); err != nil {
		return err
	}

	hdr := s.Header
	hdr.Compression = c
	if _, err := w.Write(appendHeader(nil, hdr)); err != nil {
		return err
	}

	crc := crc32.New(crc32cTable)
	bw := newBlockWriter(w, c, defaultBlockSize)
	out := io.MultiWriter(bw, crc)

	buf := make([]byte, 0, 8*valuesPerChunk)
	for start := 0; start < len(s.Values); start += valuesPerChunk {
		buf = buf[:0]
		for _, v := range s.Values[start:min(start+valuesPerChunk, len(s.Values))] {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	_, err := w.Write(binary.LittleEndian.AppendUint32(nil, crc.Sum32()))
	return err
}

func appendHeader(b []byte, h Header) []byte {
	b = append(b, magic...)
	b = binary.LittleEndian.AppendUint16(b, formatVersion)
	b = append(b, uint8(h.Dimension), uint8(h.Kind), uint8(h.Layout), uint8(h.Compression))
	b = binary.LittleEndian.AppendUint16(b, 0)
	for d := range h.Dimension {
		b = binary.LittleEndian.AppendUint32(b, uint32(h.Resolution[d]))
	}
	for d := range h.Dimension {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(h.Spacing[d]))
	}
	for d := range h.Dimension {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(h.Origin[d]))
	}
	return b
}

// ReadHeader decodes and validates the snapshot header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var fixed [fixedHeader]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if string(fixed[:4]) != magic {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrInvalidFormat, fixed[:4])
	}
	if v := binary.LittleEndian.Uint16(fixed[4:]); v != formatVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	h := Header{
		Dimension:   int(fixed[6]),
		Kind:        Kind(fixed[7]),
		Layout:      grid.Layout(fixed[8]),
		Compression: CompressionType(fixed[9]),
	}
	if h.Dimension != 2 && h.Dimension != 3 {
		return Header{}, fmt.Errorf("%w: dimension %d", ErrInvalidFormat, h.Dimension)
	}
	if h.Kind > KindVector || h.Layout > grid.VertexCentered || !h.Compression.valid() {
		return Header{}, fmt.Errorf("%w: kind %v, layout %v, compression %v", ErrInvalidFormat, h.Kind, h.Layout, h.Compression)
	}

	rest := make([]byte, h.Dimension*(4+8+8))
	if _, err := io.ReadFull(r, rest); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	total := float64(h.Components())
	for d := range h.Dimension {
		h.Resolution[d] = int(binary.LittleEndian.Uint32(rest[4*d:]))
		total *= float64(h.Resolution[d] + 1)
	}
	if total > maxSamples {
		return Header{}, fmt.Errorf("%w: resolution %v too large", ErrInvalidFormat, h.Resolution)
	}
	floats := rest[4*h.Dimension:]
	for d := range h.Dimension {
		h.Spacing[d] = math.Float64frombits(binary.LittleEndian.Uint64(floats[8*d:]))
		h.Origin[d] = math.Float64frombits(binary.LittleEndian.Uint64(floats[8*(h.Dimension+d):]))
	}

	if _, err := h.Samples(); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return h, nil
}

// DecodedSize is the number of bytes Decode allocates for the samples of h.
func (h Header) DecodedSize() int64 {
	n, err := h.Samples()
	if err != nil {
		return 0
	}
	return 8 * int64(n) * int64(h.Components())
}

// Decode reads a snapshot written by Encode. Sample storage grows with the
// payload actually read, so a header that overstates its resolution fails
// with ErrInvalidFormat before the declared size is allocated.
func Decode(r io.Reader) (*Snapshot, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	n, _ := h.Samples()
	total := n * h.Components()

	// The header is untrusted: grow Values as payload arrives so a short blob
	// cannot force an allocation sized by its declared resolution.
	s := &Snapshot{Header: h, Values: make([]float64, 0, min(total, initialValues))}
	crc := crc32.New(crc32cTable)
	br := io.TeeReader(newBlockReader(r, h.Compression), crc)

	buf := make([]byte, 8*valuesPerChunk)
	for len(s.Values) < total {
		raw := buf[:8*min(valuesPerChunk, total-len(s.Values))]
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("%w: payload: %w", ErrInvalidFormat, err)
		}
		for i := 0; i < len(raw); i += 8 {
			s.Values = append(s.Values, math.Float64frombits(binary.LittleEndian.Uint64(raw[i:])))
		}
	}

	var trailer [4]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return nil, fmt.Errorf("%w: checksum: %w", ErrInvalidFormat, err)
	}
	if binary.LittleEndian.Uint32(trailer[:]) != crc.Sum32() {
		return nil, ErrChecksumMismatch
	}
	return s, nil
}
