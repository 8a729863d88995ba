// Package math32 provides scalar float32 math helpers.
// This is an internal package - external users should use the geom package.
package math32

import "math"

// Pi is the float32 value of the mathematical constant pi.
const Pi = float32(math.Pi)

// MaxFloat32 is the largest finite float32 value.
const MaxFloat32 = math.MaxFloat32

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Tan returns the tangent of the radian argument x.
func Tan(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

// Asin returns the arcsine, in radians, of x.
func Asin(x float32) float32 {
	return float32(math.Asin(float64(x)))
}

// Acos returns the arccosine, in radians, of x.
func Acos(x float32) float32 {
	return float32(math.Acos(float64(x)))
}

// Atan2 returns the arc tangent of y/x, using the signs of the two to
// determine the quadrant of the return value.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Ceil returns the least integer value greater than or equal to x.
func Ceil(x float32) float32 {
	return float32(math.Ceil(float64(x)))
}

// Round returns the nearest integer, rounding half away from zero.
func Round(x float32) float32 {
	return float32(math.Round(float64(x)))
}

// Min returns the smaller of x or y.
func Min(x, y float32) float32 {
	if x < y {
		return x
	}

	return y
}

// Max returns the larger of x or y.
func Max(x, y float32) float32 {
	if x > y {
		return x
	}

	return y
}

// Clamp limits x to the range [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}

// Signum returns -1 for negative x, 1 for positive x and 0 for zero.
func Signum(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// CopySign returns a value with the magnitude of x and the sign of y.
// Unlike Signum, a y of zero counts as positive.
func CopySign(x, y float32) float32 {
	return float32(math.Copysign(float64(x), float64(y)))
}

// IsNaN reports whether x is a "not-a-number" value.
func IsNaN(x float32) bool {
	return x != x
}

// IsInf reports whether x is an infinity.
func IsInf(x float32) bool {
	return math.IsInf(float64(x), 0)
}

// InEpsilon reports whether a and b differ by at most eps.
func InEpsilon(a, b, eps float32) bool {
	return Abs(a-b) <= eps
}
