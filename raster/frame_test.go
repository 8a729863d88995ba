package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixgo/paging"
)

func TestPaletteDeterministic(t *testing.T) {
	c1 := Palette(16)
	c2 := Palette(16)

	require.Len(t, c1, 16)
	assert.Equal(t, c1, c2)

	// A longer palette starts with the same colors.
	assert.Equal(t, c1, Palette(32)[:16])
}

func TestWriteIDImage(t *testing.T) {
	frame := NewFrame(8, false)

	for i := range frame.IDs {
		frame.IDs[i] = paging.ReservedObjectID
	}

	frame.IDs[3*8+3] = 0
	frame.IDs[3*8+4] = 1

	var buf bytes.Buffer
	require.NoError(t, frame.WriteIDImage(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 8, bounds.Dx())
	assert.Equal(t, 8, bounds.Dy())

	// Uncovered pixels are black, covered ones carry palette colors.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r+g+b)

	r, g, b, _ = img.At(3, 3).RGBA()
	colors := Palette(2)
	assert.Equal(t, uint32(colors[0].R), r>>8)
	assert.Equal(t, uint32(colors[0].G), g>>8)
	assert.Equal(t, uint32(colors[0].B), b>>8)
}

func TestWriteDepthImage(t *testing.T) {
	frame := NewFrame(4, true)

	for i := range frame.IDs {
		frame.IDs[i] = paging.ReservedObjectID
		frame.Depth[i] = 1
	}

	frame.IDs[0] = 0
	frame.Depth[0] = 0.25

	frame.IDs[1] = 0
	frame.Depth[1] = 0.75

	var buf bytes.Buffer
	require.NoError(t, frame.WriteDepthImage(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	// The two covered pixels span the normalization range.
	near, _, _, _ := img.At(0, 0).RGBA()
	far, _, _, _ := img.At(1, 0).RGBA()
	background, _, _, _ := img.At(2, 0).RGBA()

	assert.Zero(t, near>>8)
	assert.Equal(t, uint32(255), far>>8)
	assert.Zero(t, background>>8)
}

func TestWriteDepthImageWithoutDepth(t *testing.T) {
	frame := NewFrame(4, false)

	var buf bytes.Buffer
	assert.ErrorIs(t, frame.WriteDepthImage(&buf), ErrNoDepthBuffer)
}
