package implicit

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with field names shared by every operation of
// the reconstruction pipeline.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithGrid adds the dimension and sample count of a grid to the logger.
func (l *Logger) WithGrid(dim, samples int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dim", dim, "samples", samples),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogConvert logs a points-to-implicit conversion.
func (l *Logger) LogConvert(ctx context.Context, points, cells int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "convert failed",
			"points", points,
			"cells", cells,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "convert completed",
			"points", points,
			"cells", cells,
			"duration", d,
		)
	}
}

// LogReinitialize logs a level-set reinitialization.
func (l *Logger) LogReinitialize(ctx context.Context, cells int, maxDistance float64, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reinitialize failed",
			"cells", cells,
			"max_distance", maxDistance,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "reinitialize completed",
			"cells", cells,
			"max_distance", maxDistance,
			"duration", d,
		)
	}
}

// LogExtrapolate logs an extrapolation.
func (l *Logger) LogExtrapolate(ctx context.Context, cells int, maxDistance float64, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extrapolate failed",
			"cells", cells,
			"max_distance", maxDistance,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "extrapolate completed",
			"cells", cells,
			"max_distance", maxDistance,
			"duration", d,
		)
	}
}

// LogSave logs a grid snapshot write.
func (l *Logger) LogSave(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "grid saved",
			"name", name,
		)
	}
}

// LogLoad logs a grid snapshot read.
func (l *Logger) LogLoad(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "grid loaded",
			"name", name,
		)
	}
}
