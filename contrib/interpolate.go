package contrib

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pixgo/internal/math32"
)

var (
	// ErrTooFewMaps is returned when an interpolator needs more maps
	// than the bundle holds.
	ErrTooFewMaps = errors.New("not enough maps for interpolation")

	// ErrMapSizeMismatch is returned when the maps of a bundle differ
	// in resolution.
	ErrMapSizeMismatch = errors.New("maps differ in resolution")

	// ErrNonZeroFirstAngle is returned when a quadratic interpolator
	// gets a bundle whose first camera angle is not zero.
	ErrNonZeroFirstAngle = errors.New("first camera angle must be zero")

	// ErrDuplicateAngles is returned when the sampled camera angles do
	// not strictly ascend.
	ErrDuplicateAngles = errors.New("camera angles must be strictly ascending")
)

// Interpolator estimates the contribution of a direction cell at camera
// angles between the sampled maps of a bundle. Implementations differ
// in how many samples they use and the shape of the fitted curve.
type Interpolator interface {
	Interpolate(index int, angle float32) float32
}

// LinearInterpolator estimates values linearly in the camera angle
// between the first and last map of a bundle.
type LinearInterpolator struct {
	first, last *Map
	a0, a1      float32
}

// NewLinearInterpolator creates a linear interpolator over the bundle.
// It needs at least two maps with distinct camera angles.
func NewLinearInterpolator(b *Maps) (*LinearInterpolator, error) {
	if err := validateBundle(b, 2); err != nil {
		return nil, err
	}

	first, last := b.At(0), b.At(b.Len()-1)
	if first.Descriptor.CameraAngle == last.Descriptor.CameraAngle {
		return nil, ErrDuplicateAngles
	}

	return &LinearInterpolator{
		first: first,
		last:  last,
		a0:    first.Descriptor.CameraAngle,
		a1:    last.Descriptor.CameraAngle,
	}, nil
}

// Interpolate returns the estimated value of cell index at the given
// camera angle.
func (li *LinearInterpolator) Interpolate(index int, angle float32) float32 {
	f := (angle - li.a0) / (li.a1 - li.a0)

	return li.first.Values[index]*(1-f) + li.last.Values[index]*f
}

// TangentInterpolator estimates values linearly in the tangent of the
// half camera angle, which tracks how perspective projection scales the
// rendered sphere.
type TangentInterpolator struct {
	first, last *Map
	t0, t1      float32
}

// NewTangentInterpolator creates a tangent interpolator over the
// bundle. It needs at least two maps with distinct camera angles.
func NewTangentInterpolator(b *Maps) (*TangentInterpolator, error) {
	if err := validateBundle(b, 2); err != nil {
		return nil, err
	}

	first, last := b.At(0), b.At(b.Len()-1)
	if first.Descriptor.CameraAngle == last.Descriptor.CameraAngle {
		return nil, ErrDuplicateAngles
	}

	return &TangentInterpolator{
		first: first,
		last:  last,
		t0:    math32.Tan(first.Descriptor.CameraAngle / 2),
		t1:    math32.Tan(last.Descriptor.CameraAngle / 2),
	}, nil
}

// Interpolate returns the estimated value of cell index at the given
// camera angle.
func (ti *TangentInterpolator) Interpolate(index int, angle float32) float32 {
	t := (math32.Tan(angle/2) - ti.t0) / (ti.t1 - ti.t0)

	return ti.first.Values[index]*(1-t) + ti.last.Values[index]*t
}

// QuadraticInterpolator fits a parabola in the camera angle through the
// first, middle and last map of a bundle.
type QuadraticInterpolator struct {
	first, middle, last *Map

	// Inverse of the 2x2 coefficient matrix of the middle and last
	// angle samples.
	m00, m01, m10, m11 float32
}

// NewQuadraticInterpolator creates a quadratic interpolator over the
// bundle. It needs at least three maps with strictly ascending camera
// angles, the first of which must be zero so the constant term comes
// straight from the first map.
func NewQuadraticInterpolator(b *Maps) (*QuadraticInterpolator, error) {
	if err := validateBundle(b, 3); err != nil {
		return nil, err
	}

	first, middle, last := b.At(0), b.At(b.Len()/2), b.At(b.Len()-1)

	x0 := first.Descriptor.CameraAngle
	x1 := middle.Descriptor.CameraAngle
	x2 := last.Descriptor.CameraAngle

	if x0 != 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNonZeroFirstAngle, x0)
	}
	if x0 >= x1 || x1 >= x2 {
		return nil, ErrDuplicateAngles
	}

	det := x1*x1*x2 - x1*x2*x2

	return &QuadraticInterpolator{
		first:  first,
		middle: middle,
		last:   last,
		m00:    x2 / det,
		m01:    -x1 / det,
		m10:    -x2 * x2 / det,
		m11:    x1 * x1 / det,
	}, nil
}

// Interpolate returns the estimated value of cell index at the given
// camera angle.
func (qi *QuadraticInterpolator) Interpolate(index int, angle float32) float32 {
	c := qi.first.Values[index]
	y1 := qi.middle.Values[index] - c
	y2 := qi.last.Values[index] - c

	a := qi.m00*y1 + qi.m01*y2
	b := qi.m10*y1 + qi.m11*y2

	return a*angle*angle + b*angle + c
}

func validateBundle(b *Maps, minMaps int) error {
	if b.Len() < minMaps {
		return fmt.Errorf("%w: need %d, have %d", ErrTooFewMaps, minMaps, b.Len())
	}

	size := b.At(0).Descriptor.MapSize
	for i := 1; i < b.Len(); i++ {
		if b.At(i).Descriptor.MapSize != size {
			return fmt.Errorf("%w: %d vs %d", ErrMapSizeMismatch, size, b.At(i).Descriptor.MapSize)
		}
	}

	return nil
}
