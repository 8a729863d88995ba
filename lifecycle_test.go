package pixgo_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixgo"
	"github.com/hupe1980/pixgo/blobstore"
	"github.com/hupe1980/pixgo/contrib"
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
	"github.com/hupe1980/pixgo/testutil"
)

// TestLifecycle runs the full pipeline: build maps from a scene,
// publish them to a store, load them back and estimate with them.
func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	sc := testutil.SceneOf(testutil.UnitCube())

	maps, err := pixgo.NewBuilder(sc).
		MapSize(4).
		FrameSize(64).
		Angles(0, math32.Pi/2).
		Build(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, maps.Len())

	var buf bytes.Buffer
	require.NoError(t, maps.Encode(&buf, contrib.CompressionZSTD))

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "cube.pcm", buf.Bytes()))

	est, err := pixgo.FromStore(ctx, store, "cube.pcm")
	require.NoError(t, err)
	require.Equal(t, 2, est.Maps().Len())

	sphere, err := sc.BoundingSphere()
	require.NoError(t, err)

	// A camera offset sideways so the sphere pokes out of the right
	// frustum edge.
	view := geom.Translate(geom.Vec3{X: 2.2, Z: -6})
	proj := geom.Perspective(math32.Pi/4, 4.0/3.0, 0.1, 100)
	require.NoError(t, est.UpdateCamera(view, proj, 600))

	corrected := est.EstimateSphere(sphere)
	assert.Greater(t, corrected, float32(0))

	plain := pixgo.New(nil)
	require.NoError(t, plain.UpdateCamera(view, proj, 600))
	analytic := plain.EstimateSphere(sphere)

	// The cube fills only part of its bounding sphere's silhouette, so
	// the corrected estimate must stay below the analytic one.
	assert.Less(t, corrected, analytic)
}

func TestLifecycleCachingStore(t *testing.T) {
	ctx := context.Background()

	maps := contrib.NewMaps(contrib.NewMap(contrib.Descriptor{MapSize: 2, CameraAngle: math32.Pi / 2}))

	var buf bytes.Buffer
	require.NoError(t, maps.Encode(&buf, contrib.CompressionLZ4))

	remote := blobstore.NewMemoryStore()
	require.NoError(t, remote.Put(ctx, "model.pcm", buf.Bytes()))

	store := blobstore.NewCachingStore(remote, t.TempDir())

	est, err := pixgo.FromStore(ctx, store, "model.pcm")
	require.NoError(t, err)
	assert.Equal(t, 1, est.Maps().Len())

	// The second load is served from the local copy even when the
	// remote no longer has the blob.
	require.NoError(t, remote.Delete(ctx, "model.pcm"))

	est, err = pixgo.FromStore(ctx, store, "model.pcm")
	require.NoError(t, err)
	assert.Equal(t, 1, est.Maps().Len())
}

// TestConcurrentEstimates exercises concurrent estimates against
// camera updates; the race detector guards the locking.
func TestConcurrentEstimates(t *testing.T) {
	maps := contrib.NewMaps(contrib.NewMap(contrib.Descriptor{MapSize: 4, CameraAngle: math32.Pi / 2}))
	for i := range maps.At(0).Values {
		maps.At(0).Values[i] = 0.5
	}

	est := pixgo.New(maps)

	view := geom.Translate(geom.Vec3{Z: -6})
	proj := geom.Perspective(math32.Pi/4, 1, 0.1, 100)
	require.NoError(t, est.UpdateCamera(view, proj, 512))

	sphere := geom.BoundingSphere{Radius: 1}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				est.EstimateSphere(sphere)
			}
		}()
	}

	for i := 0; i < 50; i++ {
		dist := 5 + float32(i)*0.1
		require.NoError(t, est.UpdateCamera(geom.Translate(geom.Vec3{Z: -dist}), proj, 512))
	}

	wg.Wait()
}
