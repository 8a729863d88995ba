package raster

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/paging"
)

// ErrInvalidFrameSize is returned when a renderer is initialized with
// a non-positive frame size.
var ErrInvalidFrameSize = errors.New("invalid frame size")

// SoftwareRenderer is a simple single-threaded scanline rasterizer
// without acceleration structures. It dequantizes page positions on
// the fly by folding the dequantization transform into the projection.
type SoftwareRenderer struct {
	opts RenderOptions
	fb   *FrameBuffer
}

// NewSoftwareRenderer creates an uninitialized software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Name implements the Renderer interface.
func (r *SoftwareRenderer) Name() string {
	return "software rasterizer"
}

// Initialize implements the Renderer interface. Zero option fields
// fall back to DefaultRenderOptions.
func (r *SoftwareRenderer) Initialize(opts RenderOptions) error {
	if opts.FrameSize == 0 {
		opts.FrameSize = DefaultRenderOptions.FrameSize
	}

	if opts.NumThreads == 0 {
		opts.NumThreads = DefaultRenderOptions.NumThreads
	}

	if opts.FrameSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrameSize, opts.FrameSize)
	}

	r.opts = opts
	r.fb = NewFrameBuffer(opts.FrameSize)

	return nil
}

// FrameSize returns the side length of the frame in pixels.
func (r *SoftwareRenderer) FrameSize() int {
	return r.opts.FrameSize
}

// RenderFrame implements the Renderer interface.
func (r *SoftwareRenderer) RenderFrame(pages []*paging.Page, hist *Histogram, frame *Frame, view, proj geom.Mat4) RenderStats {
	fb := r.fb
	fb.Clear()

	viewProj := proj.Mul(view)

	var stats RenderStats

	for _, page := range pages {
		r.rasterizePage(page, viewProj)
		stats.NumTriangles += page.TriangleCount()
	}

	if hist != nil {
		hist.Count(fb)
	}

	if frame != nil {
		fb.CopyToFrame(frame)
	}

	return stats
}

// rasterizePage projects and rasterizes all triangles of one page.
func (r *SoftwareRenderer) rasterizePage(page *paging.Page, viewProj geom.Mat4) {
	// The dequantization matrix maps raw integer coordinates to world
	// space, so vertices go through a single combined transform.
	combined := viewProj.Mul(page.DequantizationMatrix())

	size := float32(r.fb.size)

	positions := page.Positions.Raw16()

	for ti, tri := range page.Triangles {
		id := page.GlobalID(page.LocalObjectIDs[ti])

		var pts [3]geom.Vec3
		for k, vi := range tri {
			q := positions[vi]

			pts[k] = projectToScreen(size, combined, geom.Vec3{
				X: float32(q[0]),
				Y: float32(q[1]),
				Z: float32(q[2]),
			})
		}

		r.fb.Rasterize(id, pts[0], pts[1], pts[2])
	}
}

// projectToScreen transforms a position into screen coordinates: x
// and y in pixels, z in [0,1].
func projectToScreen(size float32, t geom.Mat4, p geom.Vec3) geom.Vec3 {
	ndc := t.TransformPoint(p)

	return geom.Vec3{
		X: (ndc.X*0.5 + 0.5) * size,
		Y: (ndc.Y*0.5 + 0.5) * size,
		Z: (1 + ndc.Z) * 0.5,
	}
}
