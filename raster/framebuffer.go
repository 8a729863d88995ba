package raster

import (
	"math"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
	"github.com/hupe1980/pixgo/paging"
)

// maxDepth is the largest fixed-point depth value; the depth buffer is
// cleared to it, so a fragment at the far plane never wins the test.
const maxDepth = uint32(math.MaxUint32)

// FrameBuffer is a square depth and object id buffer filled by
// scanline triangle rasterization. It is not safe for concurrent use;
// create one instance per rendering goroutine.
type FrameBuffer struct {
	size  int
	depth []uint32
	ids   []uint32
}

// NewFrameBuffer creates a cleared frame buffer with size x size
// pixels.
func NewFrameBuffer(size int) *FrameBuffer {
	fb := &FrameBuffer{
		size:  size,
		depth: make([]uint32, size*size),
		ids:   make([]uint32, size*size),
	}

	fb.Clear()

	return fb
}

// FrameSize returns the side length of the frame in pixels.
func (fb *FrameBuffer) FrameSize() int {
	return fb.size
}

// Clear resets the depth buffer to the maximum depth and the id buffer
// to the reserved unset id.
func (fb *FrameBuffer) Clear() {
	for i := range fb.depth {
		fb.depth[i] = maxDepth
		fb.ids[i] = paging.ReservedObjectID
	}
}

// ID returns the object id at pixel (x, y), or
// paging.ReservedObjectID for uncovered pixels.
func (fb *FrameBuffer) ID(x, y int) uint32 {
	return fb.ids[y*fb.size+x]
}

// CopyToFrame copies the id buffer, and the depth buffer if the frame
// captures depth, into f. The frame is resized to match if necessary.
func (fb *FrameBuffer) CopyToFrame(f *Frame) {
	f.Size = fb.size
	f.IDs = append(f.IDs[:0], fb.ids...)

	if f.Depth == nil {
		return
	}

	if cap(f.Depth) < len(fb.depth) {
		f.Depth = make([]float32, len(fb.depth))
	}

	f.Depth = f.Depth[:len(fb.depth)]
	for i, d := range fb.depth {
		f.Depth[i] = float32(float64(d) / float64(maxDepth))
	}
}

// Rasterize fills the triangle (p0,p1,p2) given in screen space (x and
// y in pixels, z in [0,1]) with the given object id.
func (fb *FrameBuffer) Rasterize(id uint32, p0, p1, p2 geom.Vec3) {
	// Sort the vertices by ascending y.
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}

	if p2.Y < p0.Y {
		p0, p2 = p2, p0
	}

	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}

	switch {
	case p0.Y == p2.Y:
		// Fully degenerate: a single horizontal scanline between the
		// leftmost and rightmost vertex.
		left, right := p0, p0

		for _, p := range [2]geom.Vec3{p1, p2} {
			if p.X < left.X {
				left = p
			}

			if p.X > right.X {
				right = p
			}
		}

		fb.drawScanline(id, roundToInt(p0.Y), left.X, left.Z, right.X, right.Z)
	case p1.Y == p2.Y:
		fb.fillBottomFlat(id, p0, p1, p2)
	case p0.Y == p1.Y:
		fb.fillTopFlat(id, p0, p1, p2)
	default:
		// Split at the middle vertex: insert the point on the long
		// edge at p1's height, then fill both flat halves.
		t := (p1.Y - p0.Y) / (p2.Y - p0.Y)

		split := geom.Vec3{
			X: p0.X + (p2.X-p0.X)*t,
			Y: p1.Y,
			Z: p0.Z + (p2.Z-p0.Z)*t,
		}

		fb.fillBottomFlat(id, p0, p1, split)
		fb.fillTopFlat(id, p1, split, p2)
	}
}

// fillBottomFlat fills a triangle whose flat edge is at the bottom:
// apex is the top vertex, b1 and b2 share the bottom y.
func (fb *FrameBuffer) fillBottomFlat(id uint32, apex, b1, b2 geom.Vec3) {
	y0, y1 := apex.Y, b1.Y

	yStart, yEnd, ok := fb.clipRange(y0, y1)
	if !ok {
		return
	}

	for y := yStart; y <= yEnd; y++ {
		var t float32
		if y1 != y0 {
			t = (float32(y) - y0) / (y1 - y0)
		}

		ax := apex.X + (b1.X-apex.X)*t
		az := apex.Z + (b1.Z-apex.Z)*t
		bx := apex.X + (b2.X-apex.X)*t
		bz := apex.Z + (b2.Z-apex.Z)*t

		fb.drawScanline(id, y, ax, az, bx, bz)
	}
}

// fillTopFlat fills a triangle whose flat edge is at the top: t1 and
// t2 share the top y, apex is the bottom vertex.
func (fb *FrameBuffer) fillTopFlat(id uint32, t1, t2, apex geom.Vec3) {
	y0, y1 := t1.Y, apex.Y

	yStart, yEnd, ok := fb.clipRange(y0, y1)
	if !ok {
		return
	}

	for y := yStart; y <= yEnd; y++ {
		var t float32
		if y1 != y0 {
			t = (float32(y) - y0) / (y1 - y0)
		}

		ax := t1.X + (apex.X-t1.X)*t
		az := t1.Z + (apex.Z-t1.Z)*t
		bx := t2.X + (apex.X-t2.X)*t
		bz := t2.Z + (apex.Z-t2.Z)*t

		fb.drawScanline(id, y, ax, az, bx, bz)
	}
}

// clipRange rounds the coordinate interval [c0,c1] and clamps it to
// the frame. ok is false if the interval misses the frame entirely.
func (fb *FrameBuffer) clipRange(c0, c1 float32) (start, end int, ok bool) {
	start = roundToInt(c0)
	end = roundToInt(c1)

	if end < 0 || start >= fb.size {
		return 0, 0, false
	}

	if start < 0 {
		start = 0
	}

	if end >= fb.size {
		end = fb.size - 1
	}

	return start, end, true
}

// drawScanline fills the horizontal span between (xa,za) and (xb,zb)
// at row y, interpolating depth linearly across the rounded span.
func (fb *FrameBuffer) drawScanline(id uint32, y int, xa, za, xb, zb float32) {
	if y < 0 || y >= fb.size {
		return
	}

	if xb < xa {
		xa, xb = xb, xa
		za, zb = zb, za
	}

	xStart, xEnd, ok := fb.clipRange(xa, xb)
	if !ok {
		return
	}

	for x := xStart; x <= xEnd; x++ {
		var t float32
		if xEnd != xStart {
			t = float32(x-xStart) / float32(xEnd-xStart)
		}

		fb.drawPixel(id, x, y, za+(zb-za)*t)
	}
}

// drawPixel writes the fragment if it passes the depth test. Depths
// outside [0,1] and NaN are rejected.
func (fb *FrameBuffer) drawPixel(id uint32, x, y int, depth float32) {
	if !(depth >= 0 && depth <= 1) {
		return
	}

	fixed := uint32(math.Round(float64(depth) * float64(maxDepth)))

	idx := y*fb.size + x
	if fixed < fb.depth[idx] {
		fb.depth[idx] = fixed
		fb.ids[idx] = id
	}
}

func roundToInt(x float32) int {
	return int(math32.Round(x))
}
