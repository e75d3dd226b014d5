package implicit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    convertCounter   prometheus.Counter
//	    convertHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordConvert(points, cells int, duration time.Duration, err error) {
//	    p.convertCounter.Inc()
//	    p.convertHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordConvert is called after each points-to-implicit conversion.
	// points is the input size, cells the number of grid samples written.
	RecordConvert(points, cells int, duration time.Duration, err error)

	// RecordReinitialize is called after each reinitialization.
	RecordReinitialize(cells int, duration time.Duration, err error)

	// RecordExtrapolate is called after each extrapolation.
	RecordExtrapolate(cells int, duration time.Duration, err error)

	// RecordSave is called after each grid snapshot write.
	RecordSave(duration time.Duration, err error)

	// RecordLoad is called after each grid snapshot read.
	RecordLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordConvert(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordReinitialize(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordExtrapolate(int, time.Duration, error)  {}
func (NoopMetricsCollector) RecordSave(time.Duration, error)              {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ConvertCount       atomic.Int64
	ConvertErrors      atomic.Int64
	ConvertPoints      atomic.Int64
	ConvertCells       atomic.Int64
	ConvertTotalNanos  atomic.Int64
	ReinitializeCount  atomic.Int64
	ReinitializeErrors atomic.Int64
	ReinitializeNanos  atomic.Int64
	ExtrapolateCount   atomic.Int64
	ExtrapolateErrors  atomic.Int64
	SaveCount          atomic.Int64
	SaveErrors         atomic.Int64
	LoadCount          atomic.Int64
	LoadErrors         atomic.Int64
}

// RecordConvert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConvert(points, cells int, duration time.Duration, err error) {
	b.ConvertCount.Add(1)
	b.ConvertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ConvertErrors.Add(1)
		return
	}
	b.ConvertPoints.Add(int64(points))
	b.ConvertCells.Add(int64(cells))
}

// RecordReinitialize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReinitialize(cells int, duration time.Duration, err error) {
	b.ReinitializeCount.Add(1)
	b.ReinitializeNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReinitializeErrors.Add(1)
	}
}

// RecordExtrapolate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtrapolate(cells int, duration time.Duration, err error) {
	b.ExtrapolateCount.Add(1)
	if err != nil {
		b.ExtrapolateErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(duration time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ConvertCount:         b.ConvertCount.Load(),
		ConvertErrors:        b.ConvertErrors.Load(),
		ConvertPoints:        b.ConvertPoints.Load(),
		ConvertCells:         b.ConvertCells.Load(),
		ConvertAvgNanos:      avg(b.ConvertTotalNanos.Load(), b.ConvertCount.Load()),
		ReinitializeCount:    b.ReinitializeCount.Load(),
		ReinitializeErrors:   b.ReinitializeErrors.Load(),
		ReinitializeAvgNanos: avg(b.ReinitializeNanos.Load(), b.ReinitializeCount.Load()),
		ExtrapolateCount:     b.ExtrapolateCount.Load(),
		ExtrapolateErrors:    b.ExtrapolateErrors.Load(),
		SaveCount:            b.SaveCount.Load(),
		SaveErrors:           b.SaveErrors.Load(),
		LoadCount:            b.LoadCount.Load(),
		LoadErrors:           b.LoadErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ConvertCount         int64
	ConvertErrors        int64
	ConvertPoints        int64
	ConvertCells         int64
	ConvertAvgNanos      int64
	ReinitializeCount    int64
	ReinitializeErrors   int64
	ReinitializeAvgNanos int64
	ExtrapolateCount     int64
	ExtrapolateErrors    int64
	SaveCount            int64
	SaveErrors           int64
	LoadCount            int64
	LoadErrors           int64
}
