// Package octahedral maps unit direction vectors onto the unit square
// and back. The parameterization folds the lower hemisphere of the
// direction sphere onto the corners of the square, which keeps the
// distortion low enough that direction-indexed data can be stored as a
// plain square image.
package octahedral

import (
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

// wrap folds a coordinate into the outer triangle of the square using
// the magnitude of its sibling coordinate. A coordinate of zero counts
// as positive so that the -z pole folds onto a corner instead of
// collapsing into the center.
func wrap(a, b float32) float32 {
	s := float32(1)
	if a < 0 {
		s = -1
	}

	return (1 - math32.Abs(b)) * s
}

// Encode maps the direction dir onto the unit square [0,1]x[0,1].
// dir does not need to be normalized.
func Encode(dir geom.Vec3) (u, v float32) {
	n := dir.Normalize()

	l1 := n.L1Norm()
	if l1 > 0 {
		n = n.Scale(1 / l1)
	}

	x, y := n.X, n.Y
	if n.Z < 0 {
		x, y = wrap(n.X, n.Y), wrap(n.Y, n.X)
	}

	return x*0.5 + 0.5, y*0.5 + 0.5
}

// Decode maps a point (u,v) of the unit square back to a unit
// direction vector. It is the inverse of Encode.
func Decode(u, v float32) geom.Vec3 {
	x := u*2 - 1
	y := v*2 - 1
	z := 1 - math32.Abs(x) - math32.Abs(y)

	if z < 0 {
		x, y = wrap(x, y), wrap(y, x)
	}

	return geom.Vec3{X: x, Y: y, Z: z}.Normalize()
}
