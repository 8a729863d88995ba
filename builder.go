// Package pixgo provides pixel contribution estimation for bounding spheres.
//
// This file implements the fluent builder API for computing contribution
// maps from a scene. Builders are immutable - each method returns a new
// builder with the updated configuration.
package pixgo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/pixgo/contrib"
	"github.com/hupe1980/pixgo/internal/math32"
	"github.com/hupe1980/pixgo/paging"
	"github.com/hupe1980/pixgo/raster"
	"github.com/hupe1980/pixgo/scene"
)

// NewBuilder creates a map builder for the given scene.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents
// accidental state sharing.
//
// Example:
//
//	maps, err := pixgo.NewBuilder(sc).
//	    MapSize(128).
//	    FrameSize(512).
//	    Angles(0, math.Pi/4, math.Pi/2).
//	    Workers(8).
//	    Build(ctx)
func NewBuilder(s *scene.Scene) Builder {
	return Builder{
		scene:     s,
		mapSize:   256,
		frameSize: contrib.DefaultOptions.FrameSize,
		angles:    []float32{math32.Pi / 2},
	}
}

// Builder is an immutable fluent builder for computing contribution
// maps. Each method returns a new builder with the updated
// configuration.
type Builder struct {
	scene       *scene.Scene
	mapSize     int
	frameSize   int
	workers     int
	angles      []float32
	newRenderer func() raster.Renderer
	logger      *Logger
	metrics     MetricsCollector
}

// MapSize sets the octahedral grid resolution. The sweep renders
// mapSize squared frames per camera angle.
// Default: 256.
func (b Builder) MapSize(n int) Builder {
	b.mapSize = n
	return b
}

// FrameSize sets the square frame resolution each cell renders at.
// Higher values reduce sampling noise but slow down the sweep
// quadratically.
// Default: 512.
func (b Builder) FrameSize(n int) Builder {
	b.frameSize = n
	return b
}

// Workers sets the number of parallel render workers.
// Default: GOMAXPROCS.
func (b Builder) Workers(n int) Builder {
	b.workers = n
	return b
}

// Angles sets the camera angles to build one map each for, in radians.
// An angle of zero selects an orthographic camera, any other angle a
// perspective camera with that vertical field of view. Angles must be
// unique; the resulting maps are sorted ascending.
// Default: pi/2.
func (b Builder) Angles(angles ...float32) Builder {
	b.angles = angles
	return b
}

// Perspective configures a single perspective map with the given
// vertical field of view. Shorthand for Angles(fovy).
func (b Builder) Perspective(fovy float32) Builder {
	b.angles = []float32{fovy}
	return b
}

// Orthographic configures a single orthographic map. Shorthand for
// Angles(0).
func (b Builder) Orthographic() Builder {
	b.angles = []float32{0}
	return b
}

// Renderer sets the renderer factory. Every worker gets its own
// instance since frame buffers are single owner.
// Default: the software rasterizer.
func (b Builder) Renderer(fn func() raster.Renderer) Builder {
	b.newRenderer = fn
	return b
}

// Logger sets the structured logger for build progress.
func (b Builder) Logger(l *Logger) Builder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring the sweep.
func (b Builder) Metrics(mc MetricsCollector) Builder {
	b.metrics = mc
	return b
}

// Build pages the scene and renders one contribution map per
// configured camera angle. The sweep runs on all workers and honors
// ctx cancellation.
func (b Builder) Build(ctx context.Context) (*contrib.Maps, error) {
	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	if b.mapSize <= 0 {
		return nil, &ErrInvalidMapSize{Size: b.mapSize}
	}
	angles, err := sortedAngles(b.angles)
	if err != nil {
		return nil, err
	}
	if b.scene == nil {
		return nil, translateError(scene.ErrEmptyScene)
	}

	sphere, err := b.scene.BoundingSphere()
	if err != nil {
		return nil, translateError(err)
	}

	pages, err := paging.NewBuilder().Build(paging.ChunksFromScene(b.scene))
	if err != nil {
		return nil, translateError(err)
	}

	logger.Info("Map build started",
		"maps", len(angles),
		"map_size", b.mapSize,
		"triangles", b.scene.TriangleCount(),
		"pages", len(pages),
	)

	start := time.Now()

	maps := contrib.NewMaps()
	for _, angle := range angles {
		desc := contrib.Descriptor{MapSize: b.mapSize, CameraAngle: angle}

		m, err := contrib.BuildMap(ctx, pages, sphere, desc, func(o *contrib.Options) {
			o.FrameSize = b.frameSize
			o.Workers = b.workers
			o.NewRenderer = b.newRenderer
			o.Logger = logger.Logger
			o.Metrics = metrics
		})
		if err != nil {
			logger.LogBuild(maps.Len(), time.Since(start), err)
			return nil, translateError(err)
		}

		maps.Add(m)
	}

	logger.LogBuild(maps.Len(), time.Since(start), nil)

	return maps, nil
}

// sortedAngles validates and sorts the configured camera angles.
func sortedAngles(angles []float32) ([]float32, error) {
	if len(angles) == 0 {
		return nil, fmt.Errorf("%w: no camera angles configured", ErrInvalidArgument)
	}

	sorted := make([]float32, len(angles))
	copy(sorted, angles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i, a := range sorted {
		if a < 0 || a >= math32.Pi {
			return nil, &ErrInvalidAngle{Angle: a}
		}
		if i > 0 && a == sorted[i-1] {
			return nil, translateError(contrib.ErrDuplicateAngles)
		}
	}

	return sorted, nil
}
