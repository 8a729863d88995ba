package contrib

import (
	"errors"
	"fmt"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

var (
	// ErrInvalidFieldOfView is returned when a perspective fit gets a
	// vertical field of view outside (0, pi).
	ErrInvalidFieldOfView = errors.New("field of view outside (0, pi)")

	// ErrZeroDirection is returned when a camera fit gets a zero view
	// direction.
	ErrZeroDirection = errors.New("view direction must be non-zero")

	// ErrInvalidRadius is returned when a camera fit gets a bounding
	// sphere with a non-positive radius.
	ErrInvalidRadius = errors.New("bounding sphere radius must be positive")
)

// Camera is a fitted view/projection pair enclosing a bounding sphere.
type Camera struct {
	View       geom.Mat4
	Projection geom.Mat4
}

// FitCamera fits a camera that looks along dir at the sphere and fully
// encloses it. A camera angle of zero fits an orthographic camera, any
// other angle a perspective camera with that vertical field of view.
func FitCamera(sphere geom.BoundingSphere, dir geom.Vec3, angle float32) (Camera, error) {
	if angle == 0 {
		return FitOrthographic(sphere, dir)
	}

	return FitPerspective(sphere, dir, angle)
}

// FitPerspective fits a perspective camera with the given vertical
// field of view, looking along dir at the sphere. The camera sits at
// the distance where the sphere exactly fills the frame height, with
// the near and far planes touching the sphere.
func FitPerspective(sphere geom.BoundingSphere, dir geom.Vec3, fovy float32) (Camera, error) {
	if fovy <= 0 || fovy >= math32.Pi {
		return Camera{}, fmt.Errorf("%w: %v", ErrInvalidFieldOfView, fovy)
	}
	if err := validateFit(sphere, dir); err != nil {
		return Camera{}, err
	}

	distance := sphere.Radius / math32.Sin(fovy/2)
	near := distance - sphere.Radius
	far := distance + sphere.Radius

	d := dir.Normalize()
	eye := sphere.Center.Sub(d.Scale(distance))

	return Camera{
		View:       geom.LookAt(eye, sphere.Center, upVector(d)),
		Projection: geom.Perspective(fovy, 1, near, far),
	}, nil
}

// FitOrthographic fits an orthographic camera whose extent matches the
// sphere, looking along dir. The camera sits at twice the radius so
// depth resolves over [radius, 4*radius].
func FitOrthographic(sphere geom.BoundingSphere, dir geom.Vec3) (Camera, error) {
	if err := validateFit(sphere, dir); err != nil {
		return Camera{}, err
	}

	r := sphere.Radius
	d := dir.Normalize()
	eye := sphere.Center.Sub(d.Scale(2 * r))

	return Camera{
		View:       geom.LookAt(eye, sphere.Center, upVector(d)),
		Projection: geom.Orthographic(-r, r, -r, r, r, 4*r),
	}, nil
}

func validateFit(sphere geom.BoundingSphere, dir geom.Vec3) error {
	if sphere.Radius <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, sphere.Radius)
	}
	if dir.LengthSquared() == 0 {
		return ErrZeroDirection
	}

	return nil
}

// upVector picks an up axis that is never collinear with the view
// direction.
func upVector(dir geom.Vec3) geom.Vec3 {
	if math32.Abs(dir.Z) < 0.95 {
		return geom.Vec3{Z: 1}
	}

	return geom.Vec3{Y: 1}
}
