package mmap

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync/atomic"
)

// ErrClosed is returned when a closed mapping is used.
var ErrClosed = errors.New("mmap: mapping is closed")

// Access is a read-pattern hint for the kernel.
type Access uint8

const (
	// Sequential suits decoding a snapshot front to back.
	Sequential Access = iota
	// Random suits scattered header or block reads.
	Random
)

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data   []byte
	closed atomic.Bool
}

// Open maps the file at path. Empty files map to an empty, valid Mapping.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// The mapping outlives the descriptor.
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	switch {
	case size == 0:
		return &Mapping{}, nil
	case size > math.MaxInt:
		return nil, fmt.Errorf("mmap: %s is too large to map (%d bytes)", path, size)
	}

	data, err := mapFile(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}
	return &Mapping{data: data}, nil
}

// Bytes returns the mapped file. The slice is invalid after Close.
func (m *Mapping) Bytes() ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	return m.data, nil
}

// Len is the file size in bytes.
func (m *Mapping) Len() int { return len(m.data) }

// Advise passes a read-pattern hint. It is a no-op for empty mappings.
func (m *Mapping) Advise(a Access) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if len(m.data) == 0 {
		return nil
	}
	return advise(m.data, a)
}

// Close unmaps the file. Only the first call does any work.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) || len(m.data) == 0 {
		return nil
	}
	return unmapFile(m.data)
}
