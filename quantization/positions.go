package quantization

import "github.com/hupe1980/pixgo/geom"

// Bits is the storage width of a quantized position axis.
type Bits int

const (
	Bits8  Bits = 8
	Bits16 Bits = 16
	Bits32 Bits = 32
)

// BitsFor returns the smallest supported storage width that holds the
// requested bit precision.
func BitsFor(precision int) Bits {
	switch {
	case precision <= 8:
		return Bits8
	case precision <= 16:
		return Bits16
	default:
		return Bits32
	}
}

// ReduceUint16 drops all but the top bits of a 16 bit quantized axis
// value, for callers staging their own reduced precision reads.
func ReduceUint16(x uint16, bits int) uint16 {
	if bits <= 0 {
		return 0
	}

	if bits >= 16 {
		return x
	}

	return x >> (16 - bits)
}

// Positions is a width-tagged array of quantized positions sharing one
// quantization volume. The width is fixed at construction.
type Positions struct {
	bits Bits
	desc Descriptor

	q8  [][3]uint8
	q16 [][3]uint16
	q32 [][3]uint32
}

// NewPositions quantizes points at the given width. The quantization
// volume is the bounding box of the points; an empty input yields an
// empty set with the unit descriptor.
func NewPositions(points []geom.Vec3, bits Bits) Positions {
	aabb := geom.AABBFromPoints(points)
	desc := NewDescriptor(aabb)

	p := Positions{bits: bits, desc: desc}

	switch bits {
	case Bits8:
		p.q8 = quantizeAll[uint8](desc, points)
	case Bits32:
		p.q32 = quantizeAll[uint32](desc, points)
	default:
		p.bits = Bits16
		p.q16 = quantizeAll[uint16](desc, points)
	}

	return p
}

func quantizeAll[T Unsigned](desc Descriptor, points []geom.Vec3) [][3]T {
	if len(points) == 0 {
		return nil
	}

	q := NewQuantizer[T](desc)

	out := make([][3]T, len(points))
	for i, p := range points {
		out[i] = q.Quantize(p)
	}

	return out
}

// Len returns the number of stored positions.
func (p *Positions) Len() int {
	switch p.bits {
	case Bits8:
		return len(p.q8)
	case Bits32:
		return len(p.q32)
	default:
		return len(p.q16)
	}
}

// IsEmpty returns true if no positions are stored.
func (p *Positions) IsEmpty() bool {
	return p.Len() == 0
}

// Bits returns the storage width per axis.
func (p *Positions) Bits() Bits {
	return p.bits
}

// Descriptor returns the shared quantization volume.
func (p *Positions) Descriptor() Descriptor {
	return p.desc
}

// At returns the i-th position mapped back into the source volume.
func (p *Positions) At(i int) geom.Vec3 {
	switch p.bits {
	case Bits8:
		return NewQuantizer[uint8](p.desc).Dequantize(p.q8[i])
	case Bits32:
		return NewQuantizer[uint32](p.desc).Dequantize(p.q32[i])
	default:
		return NewQuantizer[uint16](p.desc).Dequantize(p.q16[i])
	}
}

// AtBits returns the i-th position read at reduced precision, keeping
// the top n bits per axis.
func (p *Positions) AtBits(i, n int) geom.Vec3 {
	switch p.bits {
	case Bits8:
		return NewQuantizer[uint8](p.desc).DequantizeBits(p.q8[i], n)
	case Bits32:
		return NewQuantizer[uint32](p.desc).DequantizeBits(p.q32[i], n)
	default:
		return NewQuantizer[uint16](p.desc).DequantizeBits(p.q16[i], n)
	}
}

// Raw16 returns the raw quantized values for direct consumption, e.g.
// by a renderer folding the dequantization into its transform. It
// returns nil when the width is not 16 bits.
func (p *Positions) Raw16() [][3]uint16 {
	if p.bits != Bits16 {
		return nil
	}

	return p.q16
}
