package gridstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType selects the payload compression algorithm.
type CompressionType uint8

const (
	// CompressionNone stores payload blocks raw.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast, modest ratio).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD (slower, better ratio on smooth fields).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("CompressionType(%d)", uint8(c))
	}
}

func (c CompressionType) valid() bool { return c <= CompressionZSTD }

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means the data is stored raw.
const (
	blockHeaderSize  = 8
	defaultBlockSize = 1 << 20

	// Blocks that shrink by less than 10% are stored raw.
	maxCompressionRatio = 0.9
)

var errCorruptBlock = errors.New("gridstore: corrupt payload block")

// compressBlock frames one block, compressing it when that pays off.
func compressBlock(data []byte, compressionType CompressionType) ([]byte, error) {
	var compressed []byte
	var err error

	switch compressionType {
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		compressed, err = compressBlockZSTD(data)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*maxCompressionRatio {
		compressed = nil
	}

	payload := data
	if compressed != nil {
		payload = compressed
	}
	result := make([]byte, blockHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[blockHeaderSize:], payload)
	return result, nil
}

func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressBlockZSTD(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}

// decompressInto expands a block body into dst, whose length is the
// uncompressed size from the block header.
func decompressInto(dst, body []byte, compressionType CompressionType) error {
	switch compressionType {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(body, dst)
		if err != nil {
			return fmt.Errorf("%w: %w", errCorruptBlock, err)
		}
		if n != len(dst) {
			return fmt.Errorf("%w: decompressed size mismatch", errCorruptBlock)
		}
		return nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(body, dst[:0])
		if err != nil {
			return fmt.Errorf("%w: %w", errCorruptBlock, err)
		}
		if len(decoded) != len(dst) {
			return fmt.Errorf("%w: decompressed size mismatch", errCorruptBlock)
		}
		return nil

	default:
		return fmt.Errorf("%w: compressed block without codec", errCorruptBlock)
	}
}

// blockWriter buffers bytes and emits framed blocks to w.
type blockWriter struct {
	w               io.Writer
	compressionType CompressionType
	blockSize       int
	buffer          *bytes.Buffer
	written         int64
}

func newBlockWriter(w io.Writer, compressionType CompressionType, blockSize int) *blockWriter {
	if blockSize <= 0 || blockSize > defaultBlockSize {
		blockSize = defaultBlockSize
	}
	return &blockWriter{
		w:               w,
		compressionType: compressionType,
		blockSize:       blockSize,
		buffer:          bytes.NewBuffer(make([]byte, 0, blockSize)),
	}
}

// Write writes data to the buffer, flushing blocks as needed.
func (c *blockWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := c.blockSize - c.buffer.Len()
		if space <= 0 {
			if err := c.flushBlock(); err != nil {
				return total, err
			}
			space = c.blockSize
		}

		toWrite := min(len(p), space)
		n, _ := c.buffer.Write(p[:toWrite])
		total += n
		p = p[n:]
	}
	return total, nil
}

func (c *blockWriter) flushBlock() error {
	if c.buffer.Len() == 0 {
		return nil
	}

	framed, err := compressBlock(c.buffer.Bytes(), c.compressionType)
	if err != nil {
		return err
	}

	n, err := c.w.Write(framed)
	c.written += int64(n)
	if err != nil {
		return err
	}
	c.buffer.Reset()
	return nil
}

// Flush writes any remaining buffered data.
func (c *blockWriter) Flush() error {
	return c.flushBlock()
}

// BytesWritten returns the framed bytes written so far.
func (c *blockWriter) BytesWritten() int64 {
	return c.written
}

// blockReader streams decompressed bytes from framed blocks.
type blockReader struct {
	r               io.Reader
	compressionType CompressionType
	maxBlock        uint32
	buf             []byte
	off             int
}

func newBlockReader(r io.Reader, compressionType CompressionType) *blockReader {
	return &blockReader{r: r, compressionType: compressionType, maxBlock: defaultBlockSize}
}

func (c *blockReader) Read(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if c.off == len(c.buf) {
			if err := c.next(); err != nil {
				if total > 0 && errors.Is(err, io.EOF) {
					return total, nil
				}
				return total, err
			}
		}
		n := copy(p, c.buf[c.off:])
		c.off += n
		total += n
		p = p[n:]
	}
	return total, nil
}

func (c *blockReader) next() error {
	var hdr [blockHeaderSize]byte
	if _, err := io.ReadFull(c.r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated header", errCorruptBlock)
		}
		return err
	}

	uncompressedSize := binary.LittleEndian.Uint32(hdr[0:])
	compressedSize := binary.LittleEndian.Uint32(hdr[4:])
	if uncompressedSize == 0 || uncompressedSize > c.maxBlock || compressedSize > uint32(lz4.CompressBlockBound(int(c.maxBlock))) {
		return fmt.Errorf("%w: block sizes %d/%d", errCorruptBlock, uncompressedSize, compressedSize)
	}

	if cap(c.buf) < int(uncompressedSize) {
		c.buf = make([]byte, uncompressedSize)
	}
	c.buf = c.buf[:uncompressedSize]
	c.off = 0

	if compressedSize == 0 {
		if _, err := io.ReadFull(c.r, c.buf); err != nil {
			return fmt.Errorf("%w: %w", errCorruptBlock, err)
		}
		return nil
	}

	body := make([]byte, compressedSize)
	if _, err := io.ReadFull(c.r, body); err != nil {
		return fmt.Errorf("%w: %w", errCorruptBlock, err)
	}
	return decompressInto(c.buf, body, c.compressionType)
}
