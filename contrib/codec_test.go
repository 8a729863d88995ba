package contrib

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteToReadMapsRoundTrip(t *testing.T) {
	m0 := NewMap(Descriptor{MapSize: 4, CameraAngle: 0})
	m1 := NewMap(Descriptor{MapSize: 8, CameraAngle: 0.7})

	for i := range m0.Values {
		m0.Values[i] = float32(i) * 0.5
	}
	for i := range m1.Values {
		m1.Values[i] = float32(i) * -0.25
	}

	b := NewMaps(m1, m0)

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	// 12 byte bundle header plus an 8 byte map header and the raw
	// values per map.
	assert.Equal(t, int64(12+8+16*4+8+64*4), n)

	got, err := ReadMaps(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	assert.Equal(t, m0.Descriptor, got.At(0).Descriptor)
	assert.Equal(t, m0.Values, got.At(0).Values)
	assert.Equal(t, m1.Descriptor, got.At(1).Descriptor)
	assert.Equal(t, m1.Values, got.At(1).Values)
}

func TestReadMapsSortsByAngle(t *testing.T) {
	// Hand-roll a stream whose maps are stored out of order.
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &bundleHeader{
		Magic:   bundleMagic,
		Version: bundleVersion,
		NumMaps: 2,
	}))

	for _, angle := range []float32{0.9, 0.1} {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, &mapHeader{
			MapSize:     2,
			CameraAngle: angle,
		}))
		require.NoError(t, writeFloat32Slice(&buf, []float32{angle, 0, 0, 0}))
	}

	got, err := ReadMaps(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, float32(0.1), got.At(0).Descriptor.CameraAngle)
	assert.Equal(t, float32(0.9), got.At(1).Descriptor.CameraAngle)
}

func TestReadMapsRejectsBadHeader(t *testing.T) {
	write := func(t *testing.T, header bundleHeader) *bytes.Buffer {
		t.Helper()

		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, &header))

		return &buf
	}

	t.Run("magic", func(t *testing.T) {
		buf := write(t, bundleHeader{Magic: [4]byte{'N', 'O', 'P', 'E'}, Version: bundleVersion})
		_, err := ReadMaps(buf)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		buf := write(t, bundleHeader{Magic: bundleMagic, Version: 99})
		_, err := ReadMaps(buf)
		assert.ErrorIs(t, err, ErrInvalidVersion)
	})
}

func TestReadMapsRejectsBadMapSize(t *testing.T) {
	for _, mapSize := range []uint32{0, maxMapSize + 1} {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, &bundleHeader{
			Magic:   bundleMagic,
			Version: bundleVersion,
			NumMaps: 1,
		}))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, &mapHeader{MapSize: mapSize}))

		_, err := ReadMaps(&buf)
		assert.Error(t, err, "map_size=%d", mapSize)
	}
}

func TestReadMapsTruncated(t *testing.T) {
	b := NewMaps(constantMap(8, 0, 0.5))

	var buf bytes.Buffer
	_, err := b.WriteTo(&buf)
	require.NoError(t, err)

	// Chop the stream at every prefix length; none of them may parse,
	// and none may panic.
	data := buf.Bytes()
	for n := 0; n < len(data); n++ {
		_, err := ReadMaps(bytes.NewReader(data[:n]))
		require.Error(t, err, "prefix=%d", n)
	}
}

func TestWriteToValueCountMismatch(t *testing.T) {
	m := NewMap(Descriptor{MapSize: 4})
	m.Values = m.Values[:7]

	var buf bytes.Buffer
	_, err := NewMaps(m).WriteTo(&buf)
	assert.ErrorIs(t, err, ErrValueCountMismatch)
}
