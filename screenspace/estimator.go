package screenspace

import (
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

// ellipseSegments is the number of segments used to approximate the
// projected ellipse when it has to be clipped against the viewport.
const ellipseSegments = 8

// Estimator approximates the number of pixels a bounding sphere covers
// on screen without rasterizing anything. The sphere is transformed
// into view space, its projection is modeled as an ellipse and, if the
// sphere crosses the frustum boundary, the ellipse is clipped against
// the viewport to scale the estimate by the visible fraction.
type Estimator struct {
	viewRotation    geom.Mat3
	viewTranslation geom.Vec3

	// m11 and m22 are the first two diagonal entries of the projection
	// matrix, i.e. the cotangents of the half field of view scaled by
	// the aspect ratio.
	m11 float32
	m22 float32

	frustum geom.Frustum

	// heightFovyCotan2 is the viewport height multiplied by
	// cot(fovy/2), the recurring factor when mapping view space sizes
	// to pixels.
	heightFovyCotan2 float32

	width  float32
	height float32
}

// NewEstimator creates an estimator for a 512x512 viewport with an
// untouched camera. Call UpdateCamera before estimating.
func NewEstimator() *Estimator {
	return &Estimator{
		m11:              1,
		m22:              1,
		heightFovyCotan2: 512,
		width:            512,
		height:           512,
	}
}

// UpdateCamera sets the camera of the estimator from the view matrix,
// the perspective projection matrix and the viewport height in pixels.
// The viewport width is derived from the aspect ratio encoded in the
// projection.
func (e *Estimator) UpdateCamera(view, proj geom.Mat4, height float32) {
	e.viewRotation = view.Mat3()
	e.viewTranslation = view.Column(3).Vec3()

	e.m11 = proj.At(0, 0)
	e.m22 = proj.At(1, 1)

	e.heightFovyCotan2 = e.m22 * height
	e.height = height
	e.width = height * e.m22 / e.m11

	// The sphere is classified in view space, so the frustum is built
	// from the projection alone.
	e.frustum = geom.FrustumFromMatrix(proj)
}

// Viewport returns the viewport size in pixels.
func (e *Estimator) Viewport() (width, height float32) {
	return e.width, e.height
}

// Estimate returns the approximate number of pixels the bounding
// sphere covers on screen, together with its frustum classification.
// A sphere that contains the camera covers the full viewport and is
// reported as VisibilityInside. A sphere outside the frustum covers
// zero pixels.
func (e *Estimator) Estimate(sphere geom.BoundingSphere) (float32, geom.Visibility) {
	center := e.viewRotation.MulVec3(sphere.Center).Add(e.viewTranslation)

	if center.LengthSquared() <= sphere.Radius*sphere.Radius {
		return e.width * e.height, geom.VisibilityInside
	}

	viewSphere := geom.BoundingSphere{Center: center, Radius: sphere.Radius}

	vis := e.frustum.ClassifySphere(viewSphere)
	if vis == geom.VisibilityOutside {
		return 0, geom.VisibilityOutside
	}

	minor := e.minorScreenRadius(viewSphere)

	// The major radius follows from the two tangent angles of the
	// sphere around the view direction.
	dist := center.Length()
	dir := center.Scale(1 / dist)

	dirAngle := math32.Acos(-dir.Z)
	sphereAngle := math32.Asin(sphere.Radius / dist)

	x0 := math32.Tan(dirAngle-sphereAngle) * e.heightFovyCotan2 * 0.25
	x1 := math32.Tan(dirAngle+sphereAngle) * e.heightFovyCotan2 * 0.25
	major := x1 - x0

	if vis == geom.VisibilityInside {
		return math32.Pi * minor * major, vis
	}

	// The sphere crosses the frustum boundary. Clip the projected
	// ellipse against the viewport and scale the area by the visible
	// fraction.
	screenCenter := geom.Vec2{X: e.width * 0.5, Y: e.height * 0.5}

	axis1 := e.projectOntoScreen(center).Sub(screenCenter)
	if l := axis1.Length(); l < 1e-6 {
		axis1 = geom.Vec2{X: 1}
	} else {
		axis1 = axis1.Scale(1 / l)
	}

	axis2 := geom.Vec2{X: -axis1.Y, Y: axis1.X}

	ellipseCenter := screenCenter.Add(axis1.Scale(x0 + x1))

	ellipse := Ellipse(ellipseCenter, axis1, axis2, major, minor, ellipseSegments)

	full := ellipse.Area()

	clipped := ellipse.ClipRect(e.width, e.height)
	ratio := clipped.Area() / full

	return math32.Pi * minor * major * ratio, vis
}

// minorScreenRadius returns the screen space radius of the sphere
// orthogonal to the view direction, i.e. the minor radius of the
// projected ellipse.
func (e *Estimator) minorScreenRadius(sphere geom.BoundingSphere) float32 {
	x := sphere.Radius / -sphere.Center.Z

	return x / math32.Sqrt(1-x*x) * e.heightFovyCotan2 * 0.5
}

// projectOntoScreen projects a view space position onto the viewport
// in pixel coordinates.
func (e *Estimator) projectOntoScreen(p geom.Vec3) geom.Vec2 {
	clipX := p.X * e.m11 / -p.Z
	clipY := p.Y * e.m22 / -p.Z

	return geom.Vec2{
		X: (clipX + 1) * 0.5 * e.width,
		Y: (clipY + 1) * 0.5 * e.height,
	}
}
