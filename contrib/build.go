package contrib

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/progress"
	"github.com/hupe1980/pixgo/paging"
	"github.com/hupe1980/pixgo/raster"
)

// Metrics receives measurements from a map build. The root package's
// MetricsCollector satisfies it.
type Metrics interface {
	// RecordCell records the contribution value computed for a cell.
	RecordCell(index int, value float32)

	// RecordRender records a single rendered frame.
	RecordRender(d time.Duration, stats raster.RenderStats)

	// RecordSweep records a completed sweep over all cells.
	RecordSweep(d time.Duration, stats raster.RenderStats)
}

type noopMetrics struct{}

func (noopMetrics) RecordCell(int, float32)                        {}
func (noopMetrics) RecordRender(time.Duration, raster.RenderStats) {}
func (noopMetrics) RecordSweep(time.Duration, raster.RenderStats)  {}

// Options configures a map build.
type Options struct {
	// FrameSize is the square frame resolution each cell renders at.
	FrameSize int

	// Workers is the number of parallel render workers. Values below
	// one select GOMAXPROCS.
	Workers int

	// NewRenderer returns the renderer a worker renders with. Every
	// worker gets its own instance since frame buffers are single
	// owner. Defaults to the software rasterizer.
	NewRenderer func() raster.Renderer

	// Logger receives sweep progress. Defaults to a discard logger.
	Logger *slog.Logger

	// Metrics receives per-cell and per-sweep measurements.
	Metrics Metrics
}

// DefaultOptions are the default map build options.
var DefaultOptions = Options{
	FrameSize: 512,
}

// BuildMap renders the scene from every direction cell of the
// descriptor and returns the contribution map. A cell's value is the
// covered pixel count of its frame relative to a sphere that exactly
// fills the frame, so a screen-filling scene scores 1.
func BuildMap(ctx context.Context, pages []*paging.Page, sphere geom.BoundingSphere, desc Descriptor, optFns ...func(o *Options)) (*Map, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.FrameSize == 0 {
		opts.FrameSize = DefaultOptions.FrameSize
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.NewRenderer == nil {
		opts.NewRenderer = func() raster.Renderer { return raster.NewSoftwareRenderer() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Metrics == nil {
		opts.Metrics = noopMetrics{}
	}

	if desc.MapSize <= 0 {
		return nil, fmt.Errorf("map size %d must be positive", desc.MapSize)
	}

	opts.Logger.Info("Sweep started",
		"map_size", desc.MapSize,
		"camera_angle", desc.CameraAngle,
		"frame_size", opts.FrameSize,
		"workers", opts.Workers,
	)

	result := NewMap(desc)

	// A sphere that exactly fills the frame covers the inscribed
	// circle of the square frame.
	radius := float64(opts.FrameSize) / 2
	maxPixels := math.Pi * radius * radius

	report := progress.NewReporter(opts.Logger, "Sweep progress", desc.NumValues())

	var totalTriangles atomic.Int64

	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)

	indices := make(chan int)
	g.Go(func() error {
		defer close(indices)

		for i := 0; i < desc.NumValues(); i++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			select {
			case indices <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return nil
	})

	for w := 0; w < opts.Workers; w++ {
		g.Go(func() error {
			renderer := opts.NewRenderer()
			if err := renderer.Initialize(raster.RenderOptions{FrameSize: opts.FrameSize}); err != nil {
				return err
			}

			var hist raster.Histogram

			for index := range indices {
				dir := desc.DirectionFromIndex(index)

				camera, err := FitCamera(sphere, dir, desc.CameraAngle)
				if err != nil {
					return fmt.Errorf("failed to fit camera for cell %d: %w", index, err)
				}

				renderStart := time.Now()
				stats := renderer.RenderFrame(pages, &hist, nil, camera.View, camera.Projection)
				opts.Metrics.RecordRender(time.Since(renderStart), stats)
				totalTriangles.Add(int64(stats.NumTriangles))

				value := float32(float64(hist.TotalCoverage()) / maxPixels)
				result.Values[index] = value

				opts.Metrics.RecordCell(index, value)
				report.Step(1)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sweepStats := raster.RenderStats{NumTriangles: int(totalTriangles.Load())}
	opts.Metrics.RecordSweep(time.Since(start), sweepStats)

	opts.Logger.Info("Sweep completed",
		"map_size", desc.MapSize,
		"camera_angle", desc.CameraAngle,
		"max_contribution", result.MaxValue(),
		"triangles", sweepStats.NumTriangles,
		"duration", time.Since(start),
	)

	return result, nil
}
