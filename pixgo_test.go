package pixgo

import (
	"bytes"
	"context"
	"encoding/binary"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixgo/blobstore"
	"github.com/hupe1980/pixgo/contrib"
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

// constMaps builds a bundle holding one constant-valued map per angle.
func constMaps(value float32, angles ...float32) *contrib.Maps {
	maps := contrib.NewMaps()
	for _, angle := range angles {
		m := contrib.NewMap(contrib.Descriptor{MapSize: 4, CameraAngle: angle})
		for i := range m.Values {
			m.Values[i] = value
		}
		maps.Add(m)
	}
	return maps
}

// The camera fixtures below reproduce measured view/projection pairs
// for an 800x600 viewport looking at a sphere of radius sqrt(2) around
// the origin.

func insideCamera() (view, proj geom.Mat4) {
	view = geom.Translate(geom.Vec3{Z: -1.2909417})
	proj = geom.Mat4{
		0.75, 0.0, 0.0, 0.0,
		0.0, 1.0, 0.0, 0.0,
		0.0, 0.0, -1.0000019, -1.0,
		0.0, 0.0, -6.824531e-6, 0.0,
	}
	return view, proj
}

func outsideCamera() (view, proj geom.Mat4) {
	view = geom.Translate(geom.Vec3{X: -10.286586, Y: 1.3572578, Z: -4.2860775})
	proj = geom.Mat4{
		0.75, 0.0, 0.0, 0.0,
		0.0, 1.0, 0.0, 0.0,
		0.0, 0.0, -2.6245716, -1.0,
		0.0, 0.0, -10.409276, 0.0,
	}
	return view, proj
}

func clippedCamera() (view, proj geom.Mat4) {
	view = geom.Translate(geom.Vec3{X: -3.6970365, Y: 0.17255715, Z: -3.4511428})
	proj = geom.Mat4{
		0.75, 0.0, 0.0, 0.0,
		0.0, 1.0, 0.0, 0.0,
		0.0, 0.0, -2.152261, -1.0,
		0.0, 0.0, -6.4209323, 0.0,
	}
	return view, proj
}

func TestEstimateSphere(t *testing.T) {
	sphere := geom.BoundingSphere{Radius: math32.Sqrt(2)}

	t.Run("InsideSkipsCorrection", func(t *testing.T) {
		est := New(constMaps(0.5, 0, math32.Pi/2))

		view, proj := insideCamera()
		require.NoError(t, est.UpdateCamera(view, proj, 600))

		assert.InEpsilon(t, 480000, est.EstimateSphere(sphere), 1e-3)
	})

	t.Run("OutsideIsZero", func(t *testing.T) {
		est := New(constMaps(0.5, 0, math32.Pi/2))

		view, proj := outsideCamera()
		require.NoError(t, est.UpdateCamera(view, proj, 600))

		assert.Zero(t, est.EstimateSphere(sphere))
	})

	t.Run("IntersectingCorrected", func(t *testing.T) {
		view, proj := clippedCamera()

		analytic := New(nil)
		require.NoError(t, analytic.UpdateCamera(view, proj, 600))
		want := analytic.EstimateSphere(sphere)
		require.Greater(t, want, float32(0))

		est := New(constMaps(0.5, 0, math32.Pi/2))
		require.NoError(t, est.UpdateCamera(view, proj, 600))

		assert.InEpsilon(t, want*0.5, est.EstimateSphere(sphere), 1e-5)
	})

	t.Run("IntersectingBlendsAngles", func(t *testing.T) {
		view, proj := clippedCamera()

		analytic := New(nil)
		require.NoError(t, analytic.UpdateCamera(view, proj, 600))
		base := analytic.EstimateSphere(sphere)

		maps := contrib.NewMaps()
		maps.Add(constMaps(0.4, 0).At(0))
		maps.Add(constMaps(0.8, math32.Pi/2).At(0))

		est := New(maps)
		require.NoError(t, est.UpdateCamera(view, proj, 600))

		// The camera position is the negated view translation, so the
		// expected blend weight can be derived independently.
		camPos := geom.Vec3{X: 3.6970365, Y: -0.17255715, Z: 3.4511428}
		toCenter := sphere.Center.Sub(camPos)
		dist := toCenter.Length()
		dir := toCenter.Scale(1 / dist)
		angle := 2 * math32.Asin(sphere.Radius/dist)
		want := base * maps.ValueForDirectionAngle(dir, angle)

		got := est.EstimateSphere(sphere)
		assert.InEpsilon(t, want, got, 1e-5)
		assert.Greater(t, got, base*0.4)
		assert.Less(t, got, base*0.8)
	})

	t.Run("NoMapsPassThrough", func(t *testing.T) {
		view, proj := clippedCamera()

		plain := New(nil)
		require.NoError(t, plain.UpdateCamera(view, proj, 600))

		empty := New(contrib.NewMaps())
		require.NoError(t, empty.UpdateCamera(view, proj, 600))

		assert.Equal(t, plain.EstimateSphere(sphere), empty.EstimateSphere(sphere))
	})
}

func TestUpdateCameraSingular(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	est := New(nil, WithMetricsCollector(metrics))

	err := est.UpdateCamera(geom.Mat4{}, geom.Identity(), 600)

	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.EqualValues(t, 1, metrics.CameraUpdateErrors.Load())
}

func TestFromReader(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		maps := constMaps(0.25, 0, math32.Pi/4, math32.Pi/2)

		var buf bytes.Buffer
		require.NoError(t, maps.Encode(&buf, contrib.CompressionLZ4))

		est, err := FromReader(&buf)
		require.NoError(t, err)
		require.Equal(t, 3, est.Maps().Len())
		assert.Equal(t, maps.At(1).Descriptor, est.Maps().At(1).Descriptor)
		assert.Equal(t, maps.At(2).Values, est.Maps().At(2).Values)
	})

	t.Run("CorruptMagic", func(t *testing.T) {
		_, err := FromReader(bytes.NewReader([]byte("JUNKJUNKJUNK")))

		require.ErrorIs(t, err, ErrCorruptBundle)
	})

	t.Run("UnsupportedContainerVersion", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteString("PCMZ")
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(9)))
		buf.Write([]byte{0, 0, 0, 0})

		_, err := FromReader(&buf)

		require.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("UnsupportedBundleVersion", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteString("PCMP")
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(9)))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(0)))

		_, err := FromReader(&buf)

		require.ErrorIs(t, err, ErrUnsupportedVersion)
	})
}

func TestFromFile(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		maps := constMaps(0.75, math32.Pi/2)
		filename := filepath.Join(t.TempDir(), "model.pcm")
		require.NoError(t, maps.SaveToFile(filename, contrib.CompressionZSTD))

		est, err := FromFile(filename)
		require.NoError(t, err)
		assert.Equal(t, 1, est.Maps().Len())
		assert.Equal(t, maps.At(0).Values, est.Maps().At(0).Values)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "nope.pcm"))

		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestFromStore(t *testing.T) {
	ctx := context.Background()
	maps := constMaps(0.5, 0, math32.Pi/2)

	var buf bytes.Buffer
	require.NoError(t, maps.Encode(&buf, contrib.CompressionZSTD))

	t.Run("Memory", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "model.pcm", buf.Bytes()))

		est, err := FromStore(ctx, store, "model.pcm")
		require.NoError(t, err)
		assert.Equal(t, 2, est.Maps().Len())
	})

	t.Run("Local", func(t *testing.T) {
		store := blobstore.NewLocalStore(t.TempDir())
		require.NoError(t, store.Put(ctx, "model.pcm", buf.Bytes()))

		est, err := FromStore(ctx, store, "model.pcm")
		require.NoError(t, err)
		assert.Equal(t, 2, est.Maps().Len())
		assert.Equal(t, maps.At(0).Values, est.Maps().At(0).Values)
	})

	t.Run("Missing", func(t *testing.T) {
		store := blobstore.NewMemoryStore()

		_, err := FromStore(ctx, store, "model.pcm")

		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestEstimatorMetrics(t *testing.T) {
	maps := constMaps(0.5, 0, math32.Pi/2)

	var buf bytes.Buffer
	require.NoError(t, maps.Encode(&buf, contrib.CompressionNone))

	metrics := &BasicMetricsCollector{}
	est, err := FromReader(&buf, WithMetricsCollector(metrics))
	require.NoError(t, err)

	sphere := geom.BoundingSphere{Radius: math32.Sqrt(2)}

	for _, fixture := range []func() (geom.Mat4, geom.Mat4){insideCamera, outsideCamera, clippedCamera} {
		view, proj := fixture()
		require.NoError(t, est.UpdateCamera(view, proj, 600))
		est.EstimateSphere(sphere)
	}

	stats := metrics.GetStats()
	assert.EqualValues(t, 1, stats.LoadCount)
	assert.EqualValues(t, 2, stats.MapsLoaded)
	assert.EqualValues(t, 3, stats.CameraUpdateCount)
	assert.EqualValues(t, 0, stats.CameraUpdateErrors)
	assert.EqualValues(t, 3, stats.EstimateCount)
	assert.EqualValues(t, 1, stats.EstimateInside)
	assert.EqualValues(t, 1, stats.EstimateOutside)
	assert.EqualValues(t, 1, stats.EstimateIntersecting)
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	logger.WithBundle("teapot.pcm").WithMapSize(64).LogLoad("s3", 3, nil)

	out := buf.String()
	assert.Contains(t, out, `"bundle":"teapot.pcm"`)
	assert.Contains(t, out, `"map_size":64`)
	assert.Contains(t, out, `"maps":3`)
	assert.Contains(t, out, `"level":"INFO"`)

	buf.Reset()
	logger.WithAngle(1.5).LogPublish("teapot.pcm", assert.AnError)

	out = buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"camera_angle":1.5`)
}
