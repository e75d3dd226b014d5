package implicit

import (
	"errors"
	"fmt"

	"github.com/hupe1980/implicit/blobstore"
	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/gridstore"
	"github.com/hupe1980/implicit/levelset"
	"github.com/hupe1980/implicit/resource"
)

var (
	// ErrEmptyGrid is returned when a nil grid is passed to the pipeline.
	ErrEmptyGrid = errors.New("grid must not be nil")

	// ErrNoStore is returned by persistence calls when no store is configured.
	ErrNoStore = errors.New("no grid store configured")

	// ErrNotFound is returned when a snapshot does not exist or nothing has
	// been committed yet.
	ErrNotFound = errors.New("not found")

	// ErrShapeMismatch is returned when grids that must share a lattice do not.
	ErrShapeMismatch = grid.ErrShapeMismatch

	// ErrInvalidSpacing is returned when a grid spacing component is not positive.
	ErrInvalidSpacing = grid.ErrInvalidSpacing

	// ErrAliasedGrids is returned when a solver input and output are the same grid.
	ErrAliasedGrids = levelset.ErrAliasedGrids

	// ErrExceedsLimit is returned when a request is larger than the
	// configured memory budget.
	ErrExceedsLimit = resource.ErrExceedsLimit
)

// ErrSnapshot indicates a stored snapshot that could not be decoded.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrSnapshot struct {
	Name  string
	cause error
}

func (e *ErrSnapshot) Error() string {
	return fmt.Sprintf("invalid snapshot %q: %v", e.Name, e.cause)
}

func (e *ErrSnapshot) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a snapshot of the wrong dimension or kind
// for the requested grid type.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(name string, err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, blobstore.ErrNotFound) || errors.Is(err, gridstore.ErrNoCommit) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Snapshot decoding.
	if errors.Is(err, gridstore.ErrInvalidFormat) ||
		errors.Is(err, gridstore.ErrUnsupportedVersion) ||
		errors.Is(err, gridstore.ErrChecksumMismatch) {
		return &ErrSnapshot{Name: name, cause: err}
	}

	return err
}
