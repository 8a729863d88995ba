package raster

import (
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/paging"
)

// RenderOptions configures a renderer.
type RenderOptions struct {
	// FrameSize is the side length of the square frame in pixels.
	FrameSize int

	// NumThreads is a hint for renderers that parallelize a frame
	// internally. The software renderer renders on the calling
	// goroutine and ignores it; callers wanting parallelism render
	// multiple frames with one renderer instance each.
	NumThreads int
}

// DefaultRenderOptions are the default renderer options.
var DefaultRenderOptions = RenderOptions{
	FrameSize:  512,
	NumThreads: 1,
}

// RenderStats summarizes a rendered frame.
type RenderStats struct {
	// NumTriangles is the number of triangles submitted to the
	// rasterizer, i.e. not skipped through acceleration structures.
	NumTriangles int
}

// Add accumulates the stats of another frame.
func (s *RenderStats) Add(other RenderStats) {
	s.NumTriangles += other.NumTriangles
}

// Renderer produces per-object pixel coverage for a set of geometry
// pages. The SoftwareRenderer is the default implementation; alternate
// backends can be swapped in at composition time.
type Renderer interface {
	// Name returns a human readable name of the renderer.
	Name() string

	// Initialize prepares the renderer, e.g. allocates frame buffers.
	// It must be called before the first frame.
	Initialize(opts RenderOptions) error

	// RenderFrame renders all pages with the given view and
	// projection. The histogram, if non-nil, is resized and
	// overwritten with the per-object pixel counts of the frame; if
	// frame is non-nil it receives a copy of the buffers.
	RenderFrame(pages []*paging.Page, hist *Histogram, frame *Frame, view, proj geom.Mat4) RenderStats
}
