package implicit

import (
	"log/slog"

	"github.com/hupe1980/implicit/converter"
	"github.com/hupe1980/implicit/gridstore"
	"github.com/hupe1980/implicit/levelset"
	"github.com/hupe1980/implicit/resource"
)

// Method selects the kernel a Reconstructor converts points with.
type Method int

const (
	// MethodSpherical unions balls of the kernel radius.
	MethodSpherical Method = iota
	// MethodAnisotropic stretches each kernel along its local point distribution.
	MethodAnisotropic
)

func (m Method) String() string {
	switch m {
	case MethodSpherical:
		return "spherical"
	case MethodAnisotropic:
		return "anisotropic"
	default:
		return "unknown"
	}
}

type options struct {
	method           Method
	convOpts         []converter.Option
	solver3          levelset.Solver3
	solver2          levelset.Solver2
	metricsCollector MetricsCollector
	logger           *Logger
	store            *gridstore.Store
	controller       *resource.Controller
}

// Option configures a Reconstructor.
type Option func(*options)

// WithMethod selects the conversion kernel. Default: MethodSpherical.
func WithMethod(m Method) Option {
	return func(o *options) {
		o.method = m
	}
}

// WithConverterOptions sets converter options applied to every conversion.
// Options passed to Reconstruct3 or Reconstruct2 are applied after these.
func WithConverterOptions(convOpts ...converter.Option) Option {
	return func(o *options) {
		o.convOpts = append(o.convOpts, convOpts...)
	}
}

// WithSolver sets the 3-D level-set solver used for reinitialization and
// extrapolation. If nil is passed, the fast marching solver is used.
func WithSolver(s levelset.Solver3) Option {
	return func(o *options) {
		if s == nil {
			s = levelset.NewFMMSolver3()
		}
		o.solver3 = s
	}
}

// WithSolver2 is the 2-D counterpart of WithSolver.
func WithSolver2(s levelset.Solver2) Option {
	return func(o *options) {
		if s == nil {
			s = levelset.NewFMMSolver2()
		}
		o.solver2 = s
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &implicit.BasicMetricsCollector{}
//	r := implicit.New(implicit.WithMetricsCollector(metrics))
//	// ... use r ...
//	stats := metrics.GetStats()
//	fmt.Printf("Converts: %d, Avg latency: %dns\n", stats.ConvertCount, stats.ConvertAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := implicit.NewJSONLogger(slog.LevelInfo)
//	r := implicit.New(implicit.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithStore enables SaveAs and Load through a grid store.
//
// Example with S3:
//
//	blobs, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("grids/"))
//	r := implicit.New(implicit.WithStore(gridstore.New(blobs)))
func WithStore(store *gridstore.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithController bounds concurrent jobs and the memory reserved for
// temporary grids. A nil controller imposes no limits.
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		method:           MethodSpherical,
		solver3:          levelset.NewFMMSolver3(),
		solver2:          levelset.NewFMMSolver2(),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
