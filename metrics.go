package pixgo

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/raster"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// The interface covers both sides of the pipeline: the render-side
// methods (RecordCell, RecordRender, RecordSweep) fire during offline
// map builds, the estimate-side methods fire in the viewer hot path.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    estimateCounter   prometheus.Counter
//	    estimateHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordEstimate(duration time.Duration, visibility geom.Visibility) {
//	    p.estimateCounter.Inc()
//	    // ... record visibility class, duration, etc.
//	}
type MetricsCollector interface {
	// RecordEstimate is called after each sphere estimate.
	// visibility is the frustum classification the estimate was based on.
	RecordEstimate(duration time.Duration, visibility geom.Visibility)

	// RecordCameraUpdate is called after each camera update.
	// err is nil if successful.
	RecordCameraUpdate(duration time.Duration, err error)

	// RecordLoad is called after loading a map bundle.
	// mapCount is the number of maps decoded, err is nil if successful.
	RecordLoad(mapCount int, duration time.Duration, err error)

	// RecordCell is called for every map cell computed during a build.
	RecordCell(index int, value float32)

	// RecordRender is called after each rendered frame during a build.
	RecordRender(duration time.Duration, stats raster.RenderStats)

	// RecordSweep is called after a completed sweep over all map cells.
	RecordSweep(duration time.Duration, stats raster.RenderStats)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEstimate(time.Duration, geom.Visibility)  {}
func (NoopMetricsCollector) RecordCameraUpdate(time.Duration, error)        {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordCell(int, float32)                        {}
func (NoopMetricsCollector) RecordRender(time.Duration, raster.RenderStats) {}
func (NoopMetricsCollector) RecordSweep(time.Duration, raster.RenderStats)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EstimateCount        atomic.Int64
	EstimateInside       atomic.Int64
	EstimateIntersecting atomic.Int64
	EstimateOutside      atomic.Int64
	EstimateTotalNanos   atomic.Int64
	CameraUpdateCount    atomic.Int64
	CameraUpdateErrors   atomic.Int64
	LoadCount            atomic.Int64
	LoadErrors           atomic.Int64
	MapsLoaded           atomic.Int64
	CellCount            atomic.Int64
	RenderCount          atomic.Int64
	RenderTotalNanos     atomic.Int64
	SweepCount           atomic.Int64
	SweepTotalNanos      atomic.Int64
	TrianglesRendered    atomic.Int64
}

// RecordEstimate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEstimate(duration time.Duration, visibility geom.Visibility) {
	b.EstimateCount.Add(1)
	b.EstimateTotalNanos.Add(duration.Nanoseconds())
	switch visibility {
	case geom.VisibilityInside:
		b.EstimateInside.Add(1)
	case geom.VisibilityIntersecting:
		b.EstimateIntersecting.Add(1)
	case geom.VisibilityOutside:
		b.EstimateOutside.Add(1)
	}
}

// RecordCameraUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCameraUpdate(duration time.Duration, err error) {
	b.CameraUpdateCount.Add(1)
	if err != nil {
		b.CameraUpdateErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(mapCount int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.MapsLoaded.Add(int64(mapCount))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordCell implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCell(index int, value float32) {
	b.CellCount.Add(1)
}

// RecordRender implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRender(duration time.Duration, stats raster.RenderStats) {
	b.RenderCount.Add(1)
	b.RenderTotalNanos.Add(duration.Nanoseconds())
	b.TrianglesRendered.Add(int64(stats.NumTriangles))
}

// RecordSweep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSweep(duration time.Duration, stats raster.RenderStats) {
	b.SweepCount.Add(1)
	b.SweepTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EstimateCount:        b.EstimateCount.Load(),
		EstimateInside:       b.EstimateInside.Load(),
		EstimateIntersecting: b.EstimateIntersecting.Load(),
		EstimateOutside:      b.EstimateOutside.Load(),
		EstimateAvgNanos:     b.getAvgEstimateNanos(),
		CameraUpdateCount:    b.CameraUpdateCount.Load(),
		CameraUpdateErrors:   b.CameraUpdateErrors.Load(),
		LoadCount:            b.LoadCount.Load(),
		LoadErrors:           b.LoadErrors.Load(),
		MapsLoaded:           b.MapsLoaded.Load(),
		CellCount:            b.CellCount.Load(),
		RenderCount:          b.RenderCount.Load(),
		RenderAvgNanos:       b.getAvgRenderNanos(),
		SweepCount:           b.SweepCount.Load(),
		TrianglesRendered:    b.TrianglesRendered.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEstimateNanos() int64 {
	count := b.EstimateCount.Load()
	if count == 0 {
		return 0
	}
	return b.EstimateTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgRenderNanos() int64 {
	count := b.RenderCount.Load()
	if count == 0 {
		return 0
	}
	return b.RenderTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EstimateCount        int64
	EstimateInside       int64
	EstimateIntersecting int64
	EstimateOutside      int64
	EstimateAvgNanos     int64
	CameraUpdateCount    int64
	CameraUpdateErrors   int64
	LoadCount            int64
	LoadErrors           int64
	MapsLoaded           int64
	CellCount            int64
	RenderCount          int64
	RenderAvgNanos       int64
	SweepCount           int64
	TrianglesRendered    int64
}
