package raster

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"math/rand/v2"

	"github.com/hupe1980/pixgo/paging"
)

// ErrNoDepthBuffer is returned when a depth export is requested for a
// frame that was created without depth capture.
var ErrNoDepthBuffer = errors.New("frame has no depth buffer")

// Frame captures the per-pixel output of a rendered frame for
// diagnostics. Pixels not covered by any geometry hold
// paging.ReservedObjectID.
type Frame struct {
	Size int

	// IDs is the per-pixel object id buffer.
	IDs []uint32

	// Depth is the per-pixel depth in [0,1], or nil when the frame
	// does not capture depth. Uncovered pixels hold 1.
	Depth []float32
}

// NewFrame creates a frame for size x size pixels. withDepth enables
// depth capture.
func NewFrame(size int, withDepth bool) *Frame {
	f := &Frame{
		Size: size,
		IDs:  make([]uint32, size*size),
	}

	if withDepth {
		f.Depth = make([]float32, size*size)
	}

	return f
}

// ID returns the object id at pixel (x, y).
func (f *Frame) ID(x, y int) uint32 {
	return f.IDs[y*f.Size+x]
}

// Palette returns n deterministic random colors. Repeated calls
// always return the same colors, so ids stay recognizable across
// frames and runs.
func Palette(n int) []color.RGBA {
	var seed [32]byte
	seed[0] = 2

	rng := rand.New(rand.NewChaCha8(seed))

	colors := make([]color.RGBA, n)
	for i := range colors {
		colors[i] = color.RGBA{
			R: uint8(rng.IntN(0x100)),
			G: uint8(rng.IntN(0x100)),
			B: uint8(rng.IntN(0x100)),
			A: 0xff,
		}
	}

	return colors
}

// WriteIDImage writes the id buffer as a PNG image, one palette color
// per object id. Uncovered pixels are black.
func (f *Frame) WriteIDImage(w io.Writer) error {
	var maxID uint32

	for _, id := range f.IDs {
		if id != paging.ReservedObjectID && id > maxID {
			maxID = id
		}
	}

	colors := Palette(int(maxID) + 1)

	img := image.NewRGBA(image.Rect(0, 0, f.Size, f.Size))

	for y := 0; y < f.Size; y++ {
		for x := 0; x < f.Size; x++ {
			id := f.ID(x, y)
			if id == paging.ReservedObjectID {
				img.SetRGBA(x, y, color.RGBA{A: 0xff})
				continue
			}

			img.SetRGBA(x, y, colors[id])
		}
	}

	return png.Encode(w, img)
}

// WriteDepthImage writes the depth buffer as a grayscale PNG image,
// normalized to the min/max depth of the covered pixels. Uncovered
// pixels are black.
func (f *Frame) WriteDepthImage(w io.Writer) error {
	if f.Depth == nil {
		return ErrNoDepthBuffer
	}

	min := float32(math.MaxFloat32)
	max := float32(0)

	for i, id := range f.IDs {
		if id == paging.ReservedObjectID {
			continue
		}

		d := f.Depth[i]
		if d < min {
			min = d
		}

		if d > max {
			max = d
		}
	}

	img := image.NewGray(image.Rect(0, 0, f.Size, f.Size))

	for y := 0; y < f.Size; y++ {
		for x := 0; x < f.Size; x++ {
			i := y*f.Size + x

			if f.IDs[i] == paging.ReservedObjectID {
				continue
			}

			v := uint8(128)
			if max > min {
				t := (f.Depth[i] - min) / (max - min)
				v = uint8(math.Round(float64(t) * 255))
			}

			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	return png.Encode(w, img)
}
