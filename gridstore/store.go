package gridstore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/hupe1980/implicit/blobstore"
	"github.com/hupe1980/implicit/resource"
)

// Store saves and loads grid snapshots through a blob store.
type Store struct {
	blobs blobstore.BlobStore
	opts  options
}

// New creates a Store over blobs.
func New(blobs blobstore.BlobStore, opts ...Option) *Store {
	return &Store{blobs: blobs, opts: applyOptions(opts)}
}

// Blobs returns the underlying blob store.
func (s *Store) Blobs() blobstore.BlobStore { return s.blobs }

// Save encodes snap and writes it to the blob name.
func (s *Store) Save(ctx context.Context, name string, snap *Snapshot) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	blob, err := s.blobs.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("gridstore: create %q: %w", name, err)
	}

	counter := &countingWriter{w: resource.NewRateLimitedWriter(ctx, blob, s.opts.controller)}
	bw := bufio.NewWriterSize(counter, 256<<10)
	if err := Encode(bw, snap, s.opts.compression); err != nil {
		_ = blobstore.Abort(blob)
		return fmt.Errorf("gridstore: encode %q: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		_ = blobstore.Abort(blob)
		return fmt.Errorf("gridstore: write %q: %w", name, err)
	}
	if err := blob.Close(); err != nil {
		return fmt.Errorf("gridstore: close %q: %w", name, err)
	}

	s.opts.logger.DebugContext(ctx, "grid saved",
		slog.String("name", name),
		slog.Int("dim", snap.Dimension),
		slog.String("kind", snap.Kind.String()),
		slog.String("compression", s.opts.compression.String()),
		slog.Int("values", len(snap.Values)),
		slog.Int64("bytes", counter.n),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// Load reads and decodes the blob name. Both the stored bytes and the
// decoded sample buffer, as declared by the header, are reserved against the
// controller before decoding starts.
func (s *Store) Load(ctx context.Context, name string) (*Snapshot, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	start := time.Now()

	blob, err := s.blobs.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("gridstore: open %q: %w", name, err)
	}
	defer blob.Close()

	size := blob.Size()
	if err := s.opts.controller.AcquireMemory(ctx, size); err != nil {
		return nil, err
	}
	defer s.opts.controller.ReleaseMemory(size)

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("gridstore: read %q: %w", name, err)
	}

	h, err := ReadHeader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gridstore: decode %q: %w", name, err)
	}
	decoded := h.DecodedSize()
	if err := s.opts.controller.AcquireMemory(ctx, decoded); err != nil {
		return nil, fmt.Errorf("gridstore: load %q: %w", name, err)
	}
	defer s.opts.controller.ReleaseMemory(decoded)

	snap, err := Decode(resource.NewRateLimitedReader(ctx, bytes.NewReader(data), s.opts.controller))
	if err != nil {
		return nil, fmt.Errorf("gridstore: decode %q: %w", name, err)
	}

	s.opts.logger.DebugContext(ctx, "grid loaded",
		slog.String("name", name),
		slog.Int("dim", snap.Dimension),
		slog.String("kind", snap.Kind.String()),
		slog.Int64("bytes", size),
		slog.Duration("duration", time.Since(start)),
	)
	return snap, nil
}

// Stat reads only the header of the blob name.
func (s *Store) Stat(ctx context.Context, name string) (Header, error) {
	if err := validName(name); err != nil {
		return Header{}, err
	}
	blob, err := s.blobs.Open(ctx, name)
	if err != nil {
		return Header{}, fmt.Errorf("gridstore: open %q: %w", name, err)
	}
	defer blob.Close()

	return ReadHeader(bufio.NewReader(&blobReader{ctx: ctx, blob: blob}))
}

// Commit points CURRENT at name. The snapshot must exist. On S3 with a
// DynamoDB commit log the update is atomic across writers.
func (s *Store) Commit(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if name == CurrentName {
		return fmt.Errorf("gridstore: cannot commit %q", CurrentName)
	}
	blob, err := s.blobs.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("gridstore: commit %q: %w", name, err)
	}
	_ = blob.Close()

	if err := s.blobs.Put(ctx, CurrentName, []byte(name)); err != nil {
		return fmt.Errorf("gridstore: commit %q: %w", name, err)
	}
	s.opts.logger.InfoContext(ctx, "grid committed", slog.String("name", name))
	return nil
}

// Current returns the committed snapshot name.
func (s *Store) Current(ctx context.Context) (string, error) {
	data, err := blobstore.Get(ctx, s.blobs, CurrentName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return "", ErrNoCommit
		}
		return "", err
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", ErrNoCommit
	}
	return name, nil
}

// Latest loads the committed snapshot.
func (s *Store) Latest(ctx context.Context) (*Snapshot, string, error) {
	name, err := s.Current(ctx)
	if err != nil {
		return nil, "", err
	}
	snap, err := s.Load(ctx, name)
	if err != nil {
		return nil, "", err
	}
	return snap, name, nil
}

// List returns snapshot names with prefix, excluding CURRENT.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if n != CurrentName {
			out = append(out, n)
		}
	}
	return out, nil
}

// Delete removes a snapshot. The committed snapshot cannot be deleted.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	current, err := s.Current(ctx)
	if err != nil && !errors.Is(err, ErrNoCommit) {
		return err
	}
	if current == name {
		return fmt.Errorf("gridstore: %q is committed", name)
	}
	return s.blobs.Delete(ctx, name)
}

func validName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
		return fmt.Errorf("gridstore: invalid snapshot name %q", name)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// blobReader adapts a Blob to io.Reader.
type blobReader struct {
	ctx  context.Context
	blob blobstore.Blob
	off  int64
}

func (r *blobReader) Read(p []byte) (int, error) {
	n, err := r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if n > 0 && errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}
