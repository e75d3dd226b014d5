package implicit

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/implicit/converter"
	"github.com/hupe1980/implicit/field"
	"github.com/hupe1980/implicit/geom"
	"github.com/hupe1980/implicit/grid"
	"github.com/hupe1980/implicit/gridstore"
)

// Bytes reserved per grid sample for the raw field and the solver buffer,
// and per input point for the neighbor index.
const (
	bytesPerSample = 16
	bytesPerPoint  = 48
)

// Reconstructor runs the points-to-implicit pipeline with shared logging,
// metrics, persistence and resource limits. It is safe for concurrent use.
type Reconstructor struct {
	opts options
}

// New creates a Reconstructor.
//
// Example:
//
//	r := implicit.New(
//	    implicit.WithMethod(implicit.MethodAnisotropic),
//	    implicit.WithLogger(implicit.NewTextLogger(slog.LevelInfo)),
//	)
//	err := r.Reconstruct3(ctx, points, sdf, converter.WithKernelRadius(0.05))
func New(optFns ...Option) *Reconstructor {
	return &Reconstructor{opts: applyOptions(optFns)}
}

// Method returns the configured conversion kernel.
func (r *Reconstructor) Method() Method { return r.opts.method }

// Reconstruct3 converts points into a signed distance field written to
// output. convOpts are applied last, so they take precedence over the
// Reconstructor's logger, solver and converter options.
//
// An empty grid or domain is a logged no-op that returns nil.
func (r *Reconstructor) Reconstruct3(ctx context.Context, points []geom.Vector3, output *grid.ScalarGrid3, convOpts ...converter.Option) error {
	if output == nil {
		return ErrEmptyGrid
	}
	cells := output.DataSize().Len()

	release, err := r.acquire(ctx, int64(bytesPerSample*cells+bytesPerPoint*len(points)))
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	err = r.converter3(convOpts).Convert(points, output)
	r.recordConvert(ctx, 3, len(points), cells, time.Since(start), err)
	return translateError("", err)
}

// Reconstruct2 is the 2-D counterpart of Reconstruct3.
func (r *Reconstructor) Reconstruct2(ctx context.Context, points []geom.Vector2, output *grid.ScalarGrid2, convOpts ...converter.Option) error {
	if output == nil {
		return ErrEmptyGrid
	}
	cells := output.DataSize().Len()

	release, err := r.acquire(ctx, int64(bytesPerSample*cells+bytesPerPoint*len(points)))
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	err = r.converter2(convOpts).Convert(points, output)
	r.recordConvert(ctx, 2, len(points), cells, time.Since(start), err)
	return translateError("", err)
}

// Reinitialize3 turns input into a signed distance field within maxDistance
// of its zero level and writes it to output. input is not modified.
func (r *Reconstructor) Reinitialize3(ctx context.Context, input *grid.ScalarGrid3, maxDistance float64, output *grid.ScalarGrid3) error {
	if input == nil || output == nil {
		return ErrEmptyGrid
	}
	cells := output.DataSize().Len()

	release, err := r.acquire(ctx, int64(bytesPerSample*cells))
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	err = r.opts.solver3.Reinitialize(input, maxDistance, output)
	d := time.Since(start)
	r.opts.metricsCollector.RecordReinitialize(cells, d, err)
	r.opts.logger.WithGrid(3, cells).LogReinitialize(ctx, cells, maxDistance, d, err)
	return translateError("", err)
}

// Reinitialize2 is the 2-D counterpart of Reinitialize3.
func (r *Reconstructor) Reinitialize2(ctx context.Context, input *grid.ScalarGrid2, maxDistance float64, output *grid.ScalarGrid2) error {
	if input == nil || output == nil {
		return ErrEmptyGrid
	}
	cells := output.DataSize().Len()

	release, err := r.acquire(ctx, int64(bytesPerSample*cells))
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	err = r.opts.solver2.Reinitialize(input, maxDistance, output)
	d := time.Since(start)
	r.opts.metricsCollector.RecordReinitialize(cells, d, err)
	r.opts.logger.WithGrid(2, cells).LogReinitialize(ctx, cells, maxDistance, d, err)
	return translateError("", err)
}

// Extrapolate3 carries input values from the sdf < 0 region outwards up to
// maxDistance and writes the result to output.
func (r *Reconstructor) Extrapolate3(ctx context.Context, input *grid.ScalarGrid3, sdf field.ScalarField3, maxDistance float64, output *grid.ScalarGrid3) error {
	if input == nil || output == nil {
		return ErrEmptyGrid
	}
	cells := output.DataSize().Len()

	release, err := r.acquire(ctx, int64(bytesPerSample*cells))
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	err = r.opts.solver3.Extrapolate(input, sdf, maxDistance, output)
	d := time.Since(start)
	r.opts.metricsCollector.RecordExtrapolate(cells, d, err)
	r.opts.logger.WithGrid(3, cells).LogExtrapolate(ctx, cells, maxDistance, d, err)
	return translateError("", err)
}

// Extrapolate2 is the 2-D counterpart of Extrapolate3.
func (r *Reconstructor) Extrapolate2(ctx context.Context, input *grid.ScalarGrid2, sdf field.ScalarField2, maxDistance float64, output *grid.ScalarGrid2) error {
	if input == nil || output == nil {
		return ErrEmptyGrid
	}
	cells := output.DataSize().Len()

	release, err := r.acquire(ctx, int64(bytesPerSample*cells))
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	err = r.opts.solver2.Extrapolate(input, sdf, maxDistance, output)
	d := time.Since(start)
	r.opts.metricsCollector.RecordExtrapolate(cells, d, err)
	r.opts.logger.WithGrid(2, cells).LogExtrapolate(ctx, cells, maxDistance, d, err)
	return translateError("", err)
}

// SaveAs3 writes g to the configured store under name and commits it.
func (r *Reconstructor) SaveAs3(ctx context.Context, name string, g *grid.ScalarGrid3) error {
	if g == nil {
		return ErrEmptyGrid
	}
	return r.save(ctx, name, gridstore.FromScalar3(g))
}

// SaveAs2 writes g to the configured store under name and commits it.
func (r *Reconstructor) SaveAs2(ctx context.Context, name string, g *grid.ScalarGrid2) error {
	if g == nil {
		return ErrEmptyGrid
	}
	return r.save(ctx, name, gridstore.FromScalar2(g))
}

// Load3 reads the 3-D scalar grid stored under name. An empty name loads
// the committed snapshot.
func (r *Reconstructor) Load3(ctx context.Context, name string) (*grid.ScalarGrid3, error) {
	snap, _, err := r.load(ctx, name)
	if err != nil {
		return nil, err
	}
	g, err := snap.Scalar3()
	if err != nil {
		return nil, kindError(3, snap, err)
	}
	return g, nil
}

// Load2 reads the 2-D scalar grid stored under name. An empty name loads
// the committed snapshot.
func (r *Reconstructor) Load2(ctx context.Context, name string) (*grid.ScalarGrid2, error) {
	snap, _, err := r.load(ctx, name)
	if err != nil {
		return nil, err
	}
	g, err := snap.Scalar2()
	if err != nil {
		return nil, kindError(2, snap, err)
	}
	return g, nil
}

func (r *Reconstructor) save(ctx context.Context, name string, snap *gridstore.Snapshot) error {
	if r.opts.store == nil {
		return ErrNoStore
	}
	start := time.Now()
	err := r.opts.store.Save(ctx, name, snap)
	if err == nil {
		err = r.opts.store.Commit(ctx, name)
	}
	r.opts.metricsCollector.RecordSave(time.Since(start), err)
	r.opts.logger.LogSave(ctx, name, err)
	return translateError(name, err)
}

func (r *Reconstructor) load(ctx context.Context, name string) (*gridstore.Snapshot, string, error) {
	if r.opts.store == nil {
		return nil, name, ErrNoStore
	}
	start := time.Now()
	var (
		snap *gridstore.Snapshot
		err  error
	)
	if name == "" {
		snap, name, err = r.opts.store.Latest(ctx)
	} else {
		snap, err = r.opts.store.Load(ctx, name)
	}
	r.opts.metricsCollector.RecordLoad(time.Since(start), err)
	r.opts.logger.LogLoad(ctx, name, err)
	return snap, name, translateError(name, err)
}

func kindError(want int, snap *gridstore.Snapshot, err error) error {
	if errors.Is(err, gridstore.ErrKindMismatch) {
		return &ErrDimensionMismatch{Expected: want, Actual: snap.Dimension, cause: err}
	}
	return err
}

func (r *Reconstructor) converter3(convOpts []converter.Option) converter.Converter3 {
	opts := append([]converter.Option{
		converter.WithLogger(r.opts.logger.Logger),
		converter.WithSolver(r.opts.solver3),
	}, r.opts.convOpts...)
	opts = append(opts, convOpts...)
	if r.opts.method == MethodAnisotropic {
		return converter.NewAnisotropic3(opts...)
	}
	return converter.NewSpherical3(opts...)
}

func (r *Reconstructor) converter2(convOpts []converter.Option) converter.Converter2 {
	opts := append([]converter.Option{
		converter.WithLogger(r.opts.logger.Logger),
		converter.WithSolver2(r.opts.solver2),
	}, r.opts.convOpts...)
	opts = append(opts, convOpts...)
	if r.opts.method == MethodAnisotropic {
		return converter.NewAnisotropic2(opts...)
	}
	return converter.NewSpherical2(opts...)
}

func (r *Reconstructor) recordConvert(ctx context.Context, dim, points, cells int, d time.Duration, err error) {
	r.opts.metricsCollector.RecordConvert(points, cells, d, err)
	l := r.opts.logger.WithGrid(dim, cells)
	l = &Logger{Logger: l.With("method", r.opts.method.String())}
	l.LogConvert(ctx, points, cells, d, err)
}

// acquire reserves a job slot and bytes of scratch memory.
func (r *Reconstructor) acquire(ctx context.Context, bytes int64) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc := r.opts.controller
	if err := rc.AcquireJob(ctx); err != nil {
		return nil, err
	}
	if err := rc.AcquireMemory(ctx, bytes); err != nil {
		rc.ReleaseJob()
		return nil, err
	}
	return func() {
		rc.ReleaseMemory(bytes)
		rc.ReleaseJob()
	}, nil
}
