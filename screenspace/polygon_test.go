package screenspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

func TestPolygonArea(t *testing.T) {
	t.Run("unit square", func(t *testing.T) {
		p := NewPolygon(
			geom.Vec2{X: 0, Y: 0},
			geom.Vec2{X: 1, Y: 0},
			geom.Vec2{X: 1, Y: 1},
			geom.Vec2{X: 0, Y: 1},
		)

		assert.InDelta(t, 1.0, p.Area(), 1e-6)
	})

	t.Run("triangle", func(t *testing.T) {
		p := NewPolygon(
			geom.Vec2{X: 0, Y: 0},
			geom.Vec2{X: 1, Y: 0},
			geom.Vec2{X: 0, Y: 1},
		)

		assert.InDelta(t, 0.5, p.Area(), 1e-6)
	})

	t.Run("clockwise is negative", func(t *testing.T) {
		p := NewPolygon(
			geom.Vec2{X: 0, Y: 0},
			geom.Vec2{X: 0, Y: 1},
			geom.Vec2{X: 1, Y: 1},
			geom.Vec2{X: 1, Y: 0},
		)

		assert.InDelta(t, -1.0, p.Area(), 1e-6)
	})

	t.Run("empty", func(t *testing.T) {
		p := NewPolygon()

		assert.Zero(t, p.Area())
	})
}

func TestPolygonEllipse(t *testing.T) {
	// A regular n-gon inscribed in an ellipse with radii a and b has
	// area n/2 * a * b * sin(2*pi/n).
	p := Ellipse(geom.Vec2{}, geom.Vec2{X: 1}, geom.Vec2{Y: 1}, 2, 1, 8)

	require.Len(t, p.Vertices(), 8)
	assert.InDelta(t, 4*math32.Sin(math32.Pi/4)*2, p.Area(), 1e-4)
}

func TestPolygonClipRect(t *testing.T) {
	t.Run("fully inside is unchanged", func(t *testing.T) {
		p := NewPolygon(
			geom.Vec2{X: 0.25, Y: 0.25},
			geom.Vec2{X: 0.75, Y: 0.25},
			geom.Vec2{X: 0.75, Y: 0.75},
			geom.Vec2{X: 0.25, Y: 0.75},
		)

		clipped := p.ClipRect(1, 1)

		require.Len(t, clipped.Vertices(), 4)
		assert.InDelta(t, p.Area(), clipped.Area(), 1e-6)
	})

	t.Run("fully outside is empty", func(t *testing.T) {
		p := NewPolygon(
			geom.Vec2{X: 2, Y: 2},
			geom.Vec2{X: 3, Y: 2},
			geom.Vec2{X: 3, Y: 3},
			geom.Vec2{X: 2, Y: 3},
		)

		clipped := p.ClipRect(1, 1)

		assert.Empty(t, clipped.Vertices())
		assert.Zero(t, clipped.Area())
	})

	t.Run("straddling square is halved", func(t *testing.T) {
		p := NewPolygon(
			geom.Vec2{X: -0.5, Y: 0.25},
			geom.Vec2{X: 0.5, Y: 0.25},
			geom.Vec2{X: 0.5, Y: 0.75},
			geom.Vec2{X: -0.5, Y: 0.75},
		)

		clipped := p.ClipRect(1, 1)

		require.Len(t, clipped.Vertices(), 4)
		assert.InDelta(t, 0.25, clipped.Area(), 1e-6)

		expected := []geom.Vec2{
			{X: 0, Y: 0.25},
			{X: 0.5, Y: 0.25},
			{X: 0.5, Y: 0.75},
			{X: 0, Y: 0.75},
		}
		for i, v := range clipped.Vertices() {
			assert.InDelta(t, expected[i].X, v.X, 1e-6)
			assert.InDelta(t, expected[i].Y, v.Y, 1e-6)
		}
	})

	t.Run("corner overlap keeps a quarter", func(t *testing.T) {
		p := NewPolygon(
			geom.Vec2{X: -1, Y: -1},
			geom.Vec2{X: 1, Y: -1},
			geom.Vec2{X: 1, Y: 1},
			geom.Vec2{X: -1, Y: 1},
		)

		clipped := p.ClipRect(2, 2)

		assert.InDelta(t, 1.0, clipped.Area(), 1e-6)
	})

	t.Run("huge circle covers the whole rect", func(t *testing.T) {
		p := Ellipse(geom.Vec2{X: 0.5, Y: 0.5}, geom.Vec2{X: 1}, geom.Vec2{Y: 1}, 100, 100, 32)

		clipped := p.ClipRect(1, 1)

		assert.InDelta(t, 1.0, clipped.Area(), 1e-2)
	})
}
