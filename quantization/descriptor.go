package quantization

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/pixgo/geom"
)

// Descriptor describes the cube a quantizer maps positions into: the
// minimum corner of the source volume and its largest per-axis extent.
// A degenerate volume gets an extent of 1 so dequantization never
// divides by zero.
type Descriptor struct {
	Lower  geom.Vec3
	Extent float32
}

// NewDescriptor builds a descriptor from the bounding box of the data
// to be quantized. An empty box yields the unit descriptor.
func NewDescriptor(aabb geom.AABB) Descriptor {
	if aabb.IsEmpty() {
		return Descriptor{Extent: 1}
	}

	extent := aabb.MaxExtent()
	if extent <= 0 {
		extent = 1
	}

	return Descriptor{
		Lower:  aabb.Min,
		Extent: extent,
	}
}

// Matrix returns the dequantization transform that maps normalized
// coordinates in [0,1]^3 back into the source volume.
func (d Descriptor) Matrix() geom.Mat4 {
	return geom.Translate(d.Lower).Mul(geom.Scale(geom.Vec3{X: d.Extent, Y: d.Extent, Z: d.Extent}))
}

// MarshalBinary implements encoding.BinaryMarshaler.
// Format (little-endian): [lower.x:float32][lower.y:float32][lower.z:float32][extent:float32]
func (d Descriptor) MarshalBinary() ([]byte, error) {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint32(b[0:4], math.Float32bits(d.Lower.X))
	binary.LittleEndian.PutUint32(b[4:8], math.Float32bits(d.Lower.Y))
	binary.LittleEndian.PutUint32(b[8:12], math.Float32bits(d.Lower.Z))
	binary.LittleEndian.PutUint32(b[12:16], math.Float32bits(d.Extent))

	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Descriptor) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return fmt.Errorf("invalid descriptor data length: %d", len(data))
	}

	d.Lower.X = math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	d.Lower.Y = math.Float32frombits(binary.LittleEndian.Uint32(data[4:8]))
	d.Lower.Z = math.Float32frombits(binary.LittleEndian.Uint32(data[8:12]))
	d.Extent = math.Float32frombits(binary.LittleEndian.Uint32(data[12:16]))

	return nil
}
