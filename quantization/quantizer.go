package quantization

import (
	"math"
	"math/bits"

	"github.com/hupe1980/pixgo/geom"
)

// Unsigned is the set of integer widths supported for quantized
// position storage.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32
}

// Quantizer encodes positions inside a bounded volume as fixed-width
// unsigned integers per axis. The zero value is not usable; create
// instances with NewQuantizer.
//
// A Quantizer is immutable and safe for concurrent use.
type Quantizer[T Unsigned] struct {
	desc Descriptor
}

// NewQuantizer creates a quantizer for the volume described by desc.
func NewQuantizer[T Unsigned](desc Descriptor) Quantizer[T] {
	return Quantizer[T]{desc: desc}
}

// Descriptor returns the descriptor the quantizer was created with.
func (q Quantizer[T]) Descriptor() Descriptor {
	return q.desc
}

// maxValue returns the largest representable value of T.
func maxValue[T Unsigned]() T {
	return ^T(0)
}

// width returns the number of bits of T.
func width[T Unsigned]() int {
	return bits.OnesCount32(uint32(maxValue[T]()))
}

// Quantize encodes p. Positions outside the descriptor volume are
// clamped, not rejected.
func (q Quantizer[T]) Quantize(p geom.Vec3) [3]T {
	return [3]T{
		quantizeAxis[T](p.X, q.desc.Lower.X, q.desc.Extent),
		quantizeAxis[T](p.Y, q.desc.Lower.Y, q.desc.Extent),
		quantizeAxis[T](p.Z, q.desc.Lower.Z, q.desc.Extent),
	}
}

func quantizeAxis[T Unsigned](x, lower, extent float32) T {
	norm := float64(x-lower) / float64(extent)
	if norm < 0 {
		norm = 0
	} else if norm > 1 {
		norm = 1
	}

	maxF := float64(maxValue[T]())

	scaled := math.Round(norm * maxF)
	if scaled >= maxF {
		return maxValue[T]()
	}

	return T(scaled)
}

// Dequantize decodes an encoded position back into the source volume.
func (q Quantizer[T]) Dequantize(enc [3]T) geom.Vec3 {
	maxF := float64(maxValue[T]())

	return geom.Vec3{
		X: q.desc.Lower.X + float32(float64(enc[0])/maxF)*q.desc.Extent,
		Y: q.desc.Lower.Y + float32(float64(enc[1])/maxF)*q.desc.Extent,
		Z: q.desc.Lower.Z + float32(float64(enc[2])/maxF)*q.desc.Extent,
	}
}

// DequantizeBits decodes an encoded position keeping only the top n
// bits per axis, modeling a read at reduced precision. The error
// grows to at most extent/(2^n-1) per axis. n values outside (0,W]
// are treated as the full width.
func (q Quantizer[T]) DequantizeBits(enc [3]T, n int) geom.Vec3 {
	w := width[T]()
	if n <= 0 || n >= w {
		return q.Dequantize(enc)
	}

	shift := w - n
	maxF := float64(maxValue[T]() - (T(1)<<shift - 1))

	return geom.Vec3{
		X: q.desc.Lower.X + float32(float64((enc[0]>>shift)<<shift)/maxF)*q.desc.Extent,
		Y: q.desc.Lower.Y + float32(float64((enc[1]>>shift)<<shift)/maxF)*q.desc.Extent,
		Z: q.desc.Lower.Z + float32(float64((enc[2]>>shift)<<shift)/maxF)*q.desc.Extent,
	}
}
