package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/quantization"
	"github.com/hupe1980/pixgo/scene"
)

func quadScene(t *testing.T, instances int) *scene.Scene {
	t.Helper()

	g, err := scene.NewGeometry(
		[]geom.Vec3{
			{X: -1, Y: -1},
			{X: 1, Y: -1},
			{X: 1, Y: 1},
			{X: -1, Y: 1},
		},
		[]scene.Triangle{{0, 1, 2}, {0, 2, 3}},
	)
	require.NoError(t, err)

	s := scene.New()
	idx := s.AddGeometry(g)

	for i := 0; i < instances; i++ {
		require.NoError(t, s.AddInstance(idx, geom.Translate(geom.Vec3{X: float32(i) * 3})))
	}

	return s
}

func TestChunksFromScene(t *testing.T) {
	chunks := ChunksFromScene(quadScene(t, 3))

	require.Len(t, chunks, 3)

	for i, c := range chunks {
		assert.Equal(t, uint32(i), c.ObjectID)
		assert.Equal(t, 4, c.VertexRange.Len())
		assert.Equal(t, 2, c.TriangleRange.Len())
	}
}

func TestBuildOneChunkPerPage(t *testing.T) {
	chunks := ChunksFromScene(quadScene(t, 2))

	pages, err := NewBuilder().Build(chunks)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	page := pages[0]
	assert.Equal(t, 1, page.NumObjects)
	assert.Equal(t, uint32(0), page.GlobalID(0))
	assert.Equal(t, 2, page.TriangleCount())
	assert.Equal(t, []uint8{0, 0}, page.LocalObjectIDs)
	assert.Equal(t, 4, page.Positions.Len())
	assert.Equal(t, quantization.Bits16, page.Positions.Bits())

	// The second instance is translated; its page volume must be too.
	assert.InDelta(t, 2, float64(pages[1].Positions.Descriptor().Lower.X), 1e-5)
}

func TestBuildDequantizesWithinBound(t *testing.T) {
	chunks := ChunksFromScene(quadScene(t, 1))

	pages, err := NewBuilder().Build(chunks)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	page := pages[0]
	m := page.DequantizationMatrix()

	bound := float64(page.Positions.Descriptor().Extent) / 65535 * 2

	want := []geom.Vec3{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	}

	for i, q := range page.Positions.Raw16() {
		dec := m.TransformPoint(geom.Vec3{X: float32(q[0]), Y: float32(q[1]), Z: float32(q[2])})

		assert.InDelta(t, float64(want[i].X), float64(dec.X), bound)
		assert.InDelta(t, float64(want[i].Y), float64(dec.Y), bound)
		assert.InDelta(t, float64(want[i].Z), float64(dec.Z), bound)
	}
}

func TestBuildDropsEmptyPages(t *testing.T) {
	chunks := ChunksFromScene(quadScene(t, 1))
	chunks[0].TriangleRange = NewRange(0, 0)

	pages, err := NewBuilder().Build(chunks)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestBuildRejectsReservedObjectID(t *testing.T) {
	chunks := ChunksFromScene(quadScene(t, 1))
	chunks[0].ObjectID = ReservedObjectID

	_, err := NewBuilder().Build(chunks)
	assert.ErrorIs(t, err, ErrReservedObjectID)
}

func TestBuildRejectsIndexOutsideChunk(t *testing.T) {
	chunks := ChunksFromScene(quadScene(t, 1))
	chunks[0].VertexRange = NewRange(0, 3)

	_, err := NewBuilder().Build(chunks)
	assert.ErrorIs(t, err, ErrIndexOutOfChunk)
}

func TestBuildSharedPageStrategy(t *testing.T) {
	chunks := ChunksFromScene(quadScene(t, 2))

	all := func(chunks []Chunk) [][]int {
		group := make([]int, len(chunks))
		for i := range chunks {
			group[i] = i
		}

		return [][]int{group}
	}

	pages, err := NewBuilder(func(o *Options) {
		o.Strategy = all
	}).Build(chunks)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	page := pages[0]
	assert.Equal(t, 2, page.NumObjects)
	assert.Equal(t, []uint8{0, 0, 1, 1}, page.LocalObjectIDs)
	assert.Equal(t, 8, page.Positions.Len())

	// Triangle indices of the second chunk are remapped past the
	// first chunk's vertices.
	assert.Equal(t, scene.Triangle{4, 5, 6}, page.Triangles[2])
}

func TestPageAABBCoversGeometry(t *testing.T) {
	chunks := ChunksFromScene(quadScene(t, 1))

	pages, err := NewBuilder().Build(chunks)
	require.NoError(t, err)

	box := pages[0].AABB
	assert.True(t, box.ContainsPoint(geom.Vec3{X: -1, Y: -1}))
	assert.True(t, box.ContainsPoint(geom.Vec3{X: 1, Y: 1}))
}
