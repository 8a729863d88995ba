package contrib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Interpolator = (*LinearInterpolator)(nil)
	_ Interpolator = (*TangentInterpolator)(nil)
	_ Interpolator = (*QuadraticInterpolator)(nil)
)

func mapWithValues(angle float32, values ...float32) *Map {
	m := constantMap(2, angle, 0)
	copy(m.Values, values)

	return m
}

func TestLinearInterpolator(t *testing.T) {
	b := NewMaps(
		mapWithValues(0, 1, 2, 3, 4),
		mapWithValues(1, 3, 8, 5, 0),
	)

	li, err := NewLinearInterpolator(b)
	require.NoError(t, err)

	// Endpoints reproduce the stored maps.
	assert.InDelta(t, 1, float64(li.Interpolate(0, 0)), 1e-6)
	assert.InDelta(t, 8, float64(li.Interpolate(1, 1)), 1e-6)

	// Halfway between the stored angles.
	assert.InDelta(t, 2, float64(li.Interpolate(0, 0.5)), 1e-6)
	assert.InDelta(t, 5, float64(li.Interpolate(1, 0.5)), 1e-6)
	assert.InDelta(t, 2, float64(li.Interpolate(3, 0.5)), 1e-6)

	// The fit is a line, so angles beyond the last map extrapolate.
	assert.InDelta(t, 5, float64(li.Interpolate(0, 2)), 1e-6)
}

func TestLinearInterpolatorUsesFirstAndLast(t *testing.T) {
	b := NewMaps(
		mapWithValues(0, 1, 1, 1, 1),
		mapWithValues(0.5, 100, 100, 100, 100),
		mapWithValues(1, 3, 3, 3, 3),
	)

	li, err := NewLinearInterpolator(b)
	require.NoError(t, err)

	// The middle map does not participate.
	assert.InDelta(t, 2, float64(li.Interpolate(0, 0.5)), 1e-6)
}

func TestTangentInterpolator(t *testing.T) {
	b := NewMaps(
		constantMap(2, 0.2, 0.9),
		constantMap(2, 1.4, 0.1),
	)

	ti, err := NewTangentInterpolator(b)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, float64(ti.Interpolate(0, 0.2)), 1e-5)
	assert.InDelta(t, 0.1, float64(ti.Interpolate(0, 1.4)), 1e-5)

	// t = (tan(0.4)-tan(0.1)) / (tan(0.7)-tan(0.1)) = 0.434607 at the
	// angular midpoint, so the value leans toward the first map.
	assert.InDelta(t, 0.552314, float64(ti.Interpolate(0, 0.8)), 1e-4)
}

func TestQuadraticInterpolator(t *testing.T) {
	// Samples of y = 0.5x^2 - 1.2x + 2 at x = 0, 0.6 and 1.2; the
	// fitted parabola must reproduce it everywhere.
	parabola := func(x float32) float32 {
		return 0.5*x*x - 1.2*x + 2
	}

	b := NewMaps(
		constantMap(2, 0, parabola(0)),
		constantMap(2, 0.6, parabola(0.6)),
		constantMap(2, 1.2, parabola(1.2)),
	)

	qi, err := NewQuadraticInterpolator(b)
	require.NoError(t, err)

	for _, x := range []float32{0, 0.3, 0.6, 0.9, 1.2, 1.5} {
		assert.InDelta(t, float64(parabola(x)), float64(qi.Interpolate(0, x)), 1e-3, "x=%v", x)
	}
}

func TestQuadraticInterpolatorPicksMiddleMap(t *testing.T) {
	parabola := func(x float32) float32 {
		return -0.25*x*x + x
	}

	// With five maps the sample points are the first, the center and
	// the last.
	b := NewMaps(
		constantMap(2, 0, parabola(0)),
		constantMap(2, 0.1, 99),
		constantMap(2, 0.8, parabola(0.8)),
		constantMap(2, 1.5, 99),
		constantMap(2, 1.6, parabola(1.6)),
	)

	qi, err := NewQuadraticInterpolator(b)
	require.NoError(t, err)

	assert.InDelta(t, float64(parabola(1.2)), float64(qi.Interpolate(0, 1.2)), 1e-3)
}

func TestInterpolatorConstructorErrors(t *testing.T) {
	t.Run("too few maps", func(t *testing.T) {
		_, err := NewLinearInterpolator(NewMaps(constantMap(2, 0, 1)))
		assert.ErrorIs(t, err, ErrTooFewMaps)

		_, err = NewQuadraticInterpolator(NewMaps(constantMap(2, 0, 1), constantMap(2, 1, 1)))
		assert.ErrorIs(t, err, ErrTooFewMaps)
	})

	t.Run("resolution mismatch", func(t *testing.T) {
		_, err := NewTangentInterpolator(NewMaps(constantMap(2, 0, 1), constantMap(4, 1, 1)))
		assert.ErrorIs(t, err, ErrMapSizeMismatch)
	})

	t.Run("duplicate angles", func(t *testing.T) {
		_, err := NewLinearInterpolator(NewMaps(constantMap(2, 0.5, 1), constantMap(2, 0.5, 2)))
		assert.ErrorIs(t, err, ErrDuplicateAngles)

		_, err = NewQuadraticInterpolator(NewMaps(
			constantMap(2, 0, 1),
			constantMap(2, 0.5, 2),
			constantMap(2, 0.5, 3),
		))
		assert.ErrorIs(t, err, ErrDuplicateAngles)
	})

	t.Run("first angle not zero", func(t *testing.T) {
		_, err := NewQuadraticInterpolator(NewMaps(
			constantMap(2, 0.1, 1),
			constantMap(2, 0.5, 2),
			constantMap(2, 1, 3),
		))
		assert.ErrorIs(t, err, ErrNonZeroFirstAngle)
	})
}
