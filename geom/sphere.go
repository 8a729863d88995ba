package geom

import (
	"github.com/hupe1980/pixgo/internal/math32"
)

// BoundingSphere is a sphere enclosing a set of points or a box.
type BoundingSphere struct {
	Center Vec3
	Radius float32
}

// SphereFromAABB returns the sphere through the corners of b, i.e.
// centered at the box center with the half diagonal as radius. An
// empty box yields the zero sphere.
func SphereFromAABB(b AABB) BoundingSphere {
	if b.IsEmpty() {
		return BoundingSphere{}
	}

	center := b.Center()

	return BoundingSphere{
		Center: center,
		Radius: b.Max.Sub(center).Length(),
	}
}

// SphereFromPoints returns a sphere containing all points, centered at
// the center of their bounding box with the distance to the farthest
// point as radius. The result is conservative, not minimal.
func SphereFromPoints(points []Vec3) BoundingSphere {
	if len(points) == 0 {
		return BoundingSphere{}
	}

	center := AABBFromPoints(points).Center()

	var maxSq float32
	for _, p := range points {
		if d := p.Sub(center).LengthSquared(); d > maxSq {
			maxSq = d
		}
	}

	return BoundingSphere{
		Center: center,
		Radius: math32.Sqrt(maxSq),
	}
}

// ContainsPoint reports whether p lies inside or on s.
func (s BoundingSphere) ContainsPoint(p Vec3) bool {
	return p.Sub(s.Center).LengthSquared() <= s.Radius*s.Radius
}
