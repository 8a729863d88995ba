package contrib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

func TestDescriptorNumValues(t *testing.T) {
	tests := []struct {
		mapSize int
		want    int
	}{
		{1, 1},
		{16, 256},
		{64, 4096},
	}

	for _, tt := range tests {
		desc := Descriptor{MapSize: tt.mapSize}
		assert.Equal(t, tt.want, desc.NumValues())
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	// Cell centers must map back to their own index for every grid
	// size the codec accepts in practice.
	for _, mapSize := range []int{16, 32, 64, 128} {
		desc := Descriptor{MapSize: mapSize}

		for i := 0; i < desc.NumValues(); i++ {
			dir := desc.DirectionFromIndex(i)
			require.InDelta(t, 1, float64(dir.Length()), 1e-6)

			got := desc.IndexFromDirection(dir)
			require.Equal(t, i, got, "map_size=%d index=%d dir=%+v", mapSize, i, dir)
		}
	}
}

func TestDescriptorIndexInRange(t *testing.T) {
	desc := Descriptor{MapSize: 16}

	// Sweep the whole sphere, including directions far away from any
	// cell center.
	const steps = 48

	for i := 0; i <= steps; i++ {
		theta := math32.Pi * float32(i) / steps

		for j := 0; j < steps; j++ {
			phi := 2 * math32.Pi * float32(j) / steps

			dir := geom.Vec3{
				X: math32.Sin(theta) * math32.Cos(phi),
				Y: math32.Sin(theta) * math32.Sin(phi),
				Z: math32.Cos(theta),
			}

			index := desc.IndexFromDirection(dir)
			require.GreaterOrEqual(t, index, 0)
			require.Less(t, index, desc.NumValues())
		}
	}
}

func TestDescriptorAxisDirections(t *testing.T) {
	desc := Descriptor{MapSize: 8}

	// +Z decodes from the center of the grid, so its cell sits in the
	// middle rows. The folded -Z hemisphere lands in the corner cells.
	up := desc.IndexFromDirection(geom.Vec3{Z: 1})
	back := desc.DirectionFromIndex(up)
	assert.Greater(t, back.Z, float32(0.9))

	down := desc.IndexFromDirection(geom.Vec3{Z: -1})
	back = desc.DirectionFromIndex(down)
	assert.Less(t, back.Z, float32(-0.9))
}
