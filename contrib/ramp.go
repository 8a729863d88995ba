package contrib

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
)

// ColorRamp maps a contribution value in [0,1] to a display color.
type ColorRamp interface {
	At(v float64) color.RGBA
}

// GrayscaleRamp maps contribution values to gray levels, black for zero
// and white for one.
type GrayscaleRamp struct{}

func (GrayscaleRamp) At(v float64) color.RGBA {
	g := uint8(math.Round(clamp01(v) * 255))

	return color.RGBA{R: g, G: g, B: g, A: 0xff}
}

// TurboRamp maps contribution values onto the Turbo rainbow gradient,
// dark blue for zero through green to dark red for one. The gradient is
// evaluated from its fifth order polynomial fit.
type TurboRamp struct{}

func (TurboRamp) At(v float64) color.RGBA {
	x := clamp01(v)

	r := 0.13572138 + x*(4.61539260+x*(-42.66032258+x*(132.13108234+x*(-152.94239396+x*59.28637943))))
	g := 0.09140261 + x*(2.19418839+x*(4.84296658+x*(-14.18503333+x*(4.27729857+x*2.82956604))))
	b := 0.10667330 + x*(12.64194608+x*(-60.58204836+x*(110.36276771+x*(-89.90310912+x*27.34824973))))

	return color.RGBA{
		R: uint8(math.Round(clamp01(r) * 255)),
		G: uint8(math.Round(clamp01(g) * 255)),
		B: uint8(math.Round(clamp01(b) * 255)),
		A: 0xff,
	}
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// WriteImage writes the map as a PNG image using the given ramp. Values
// are normalized to the map's maximum so the full ramp range is used.
func (m *Map) WriteImage(w io.Writer, ramp ColorRamp) error {
	size := m.Descriptor.MapSize

	scale := float64(1)
	if maxValue := m.MaxValue(); maxValue > 0 {
		scale = 1 / float64(maxValue)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := float64(m.Values[y*size+x]) * scale
			img.SetRGBA(x, y, ramp.At(v))
		}
	}

	return png.Encode(w, img)
}
