// Package quantization compresses 3D positions into fixed-width
// integers within a known bounding volume.
//
// A Descriptor captures the bounding cube of the data (minimum corner
// plus the largest per-axis extent); a Quantizer encodes positions
// relative to that cube at 8, 16 or 32 bits per axis:
//
//	desc := quantization.NewDescriptor(aabb)
//	q := quantization.NewQuantizer[uint16](desc)
//
//	enc := q.Quantize(geom.Vec3{X: 1.5, Y: 0.25, Z: -3})
//	dec := q.Dequantize(enc)
//
// The round-trip error is bounded by extent/(2^W-1) per axis:
//
//	| Width  | Levels     | Error for extent=1 |
//	|--------|------------|--------------------|
//	| uint8  | 256        | ~3.9e-3            |
//	| uint16 | 65536      | ~1.5e-5            |
//	| uint32 | 4294967296 | ~2.3e-10           |
//
// DequantizeBits reads stored values as if they had been quantized at
// a lower precision, which models coarser reads without touching the
// stored data.
package quantization
