package pixgo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hupe1980/pixgo/blobstore"
	"github.com/hupe1980/pixgo/contrib"
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
	"github.com/hupe1980/pixgo/screenspace"
)

// Estimator predicts the number of pixels a bounding sphere covers on
// screen for the current camera.
//
// The analytic part projects the sphere to a clipped screen-space
// ellipse. When the sphere straddles the frustum, the estimate is
// additionally corrected by the precomputed contribution maps, which
// capture how much of the projected silhouette the actual geometry
// fills from that viewing direction.
//
// Estimates are safe to call from many goroutines concurrently.
// UpdateCamera serializes against them.
type Estimator struct {
	mu      sync.RWMutex
	screen  *screenspace.Estimator
	maps    *contrib.Maps
	camPos  geom.Vec3
	logger  *Logger
	metrics MetricsCollector
}

// New creates an Estimator over the given contribution maps. A nil or
// empty maps value disables the map correction, leaving the purely
// analytic estimate.
func New(maps *contrib.Maps, optFns ...Option) *Estimator {
	return newEstimator(maps, applyOptions(optFns))
}

func newEstimator(maps *contrib.Maps, opts options) *Estimator {
	return &Estimator{
		screen:  screenspace.NewEstimator(),
		maps:    maps,
		logger:  opts.logger,
		metrics: opts.metrics,
	}
}

// FromReader creates an Estimator from an encoded map bundle. Both the
// raw and the compressed container format are accepted.
func FromReader(r io.Reader, optFns ...Option) (*Estimator, error) {
	return decodeEstimator(r, "reader", applyOptions(optFns))
}

// FromFile creates an Estimator from a map bundle on disk.
func FromFile(filename string, optFns ...Option) (*Estimator, error) {
	opts := applyOptions(optFns)

	start := time.Now()

	maps, err := contrib.LoadFromFile(filename)
	if err != nil {
		opts.metrics.RecordLoad(0, time.Since(start), err)
		opts.logger.LogLoad(filename, 0, err)
		return nil, translateError(err)
	}

	opts.metrics.RecordLoad(maps.Len(), time.Since(start), nil)
	opts.logger.LogLoad(filename, maps.Len(), nil)

	return newEstimator(maps, opts), nil
}

// FromStore creates an Estimator from a named bundle in a blob store.
// Mappable blobs are decoded zero-copy from the mapped bytes, other
// blobs are streamed.
func FromStore(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*Estimator, error) {
	opts := applyOptions(optFns)

	blob, err := store.Open(ctx, name)
	if err != nil {
		opts.logger.LogLoad(name, 0, err)
		return nil, translateError(err)
	}
	defer blob.Close()

	var r io.Reader
	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	} else {
		rc, err := blobstore.NewReader(blob)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		r = rc
	}

	return decodeEstimator(r, name, opts)
}

func decodeEstimator(r io.Reader, source string, opts options) (*Estimator, error) {
	start := time.Now()

	maps, err := contrib.Decode(r)
	if err != nil {
		opts.metrics.RecordLoad(0, time.Since(start), err)
		opts.logger.LogLoad(source, 0, err)
		return nil, translateError(err)
	}

	opts.metrics.RecordLoad(maps.Len(), time.Since(start), nil)
	opts.logger.LogLoad(source, maps.Len(), nil)

	return newEstimator(maps, opts), nil
}

// Maps returns the contribution maps the estimator corrects with, or
// nil when it runs purely analytic.
func (e *Estimator) Maps() *contrib.Maps {
	return e.maps
}

// UpdateCamera sets the camera state all following estimates are based
// on. The camera position is recovered from the inverted model-view
// matrix; a singular matrix returns ErrInvalidArgument.
func (e *Estimator) UpdateCamera(modelView, projection geom.Mat4, height float32) error {
	start := time.Now()

	inv, ok := modelView.Inverse()
	if !ok {
		err := fmt.Errorf("%w: model-view matrix is singular", ErrInvalidArgument)
		e.metrics.RecordCameraUpdate(time.Since(start), err)
		e.logger.LogCameraUpdate(geom.Vec3{}, height, err)
		return err
	}
	camPos := inv.TransformPoint(geom.Vec3{})

	e.mu.Lock()
	e.screen.UpdateCamera(modelView, projection, height)
	e.camPos = camPos
	e.mu.Unlock()

	e.metrics.RecordCameraUpdate(time.Since(start), nil)
	e.logger.LogCameraUpdate(camPos, height, nil)

	return nil
}

// EstimateSphere returns the predicted covered pixel count for the
// sphere under the current camera.
//
// Spheres fully inside or outside the frustum and spheres containing
// the camera take the analytic result as is. Only partially visible
// spheres are corrected by the contribution map value for the current
// viewing direction and distance.
func (e *Estimator) EstimateSphere(sphere geom.BoundingSphere) float32 {
	start := time.Now()

	e.mu.RLock()
	pixels, vis := e.screen.Estimate(sphere)
	if vis == geom.VisibilityIntersecting && e.maps != nil && e.maps.Len() > 0 {
		pixels *= e.contributionFactor(sphere)
	}
	e.mu.RUnlock()

	e.metrics.RecordEstimate(time.Since(start), vis)

	return pixels
}

// contributionFactor looks up the measured coverage for the direction
// the camera sees the sphere from. The lookup angle is the full angle
// the sphere subtends, which is also the field of view a camera fitted
// to the sphere at this distance would have.
func (e *Estimator) contributionFactor(sphere geom.BoundingSphere) float32 {
	toCenter := sphere.Center.Sub(e.camPos)
	dist := toCenter.Length()
	if dist <= sphere.Radius {
		return 1
	}

	dir := toCenter.Scale(1 / dist)
	angle := 2 * math32.Asin(sphere.Radius/dist)

	return e.maps.ValueForDirectionAngle(dir, angle)
}
