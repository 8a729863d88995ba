package geom

// Plane is a plane in Hessian normal form: a point p lies on the plane
// if Normal·p + D == 0. Normal is expected to have unit length.
type Plane struct {
	Normal Vec3
	D      float32
}

// NewPlane returns the plane with the given coefficients, normalized so
// that the normal has unit length.
func NewPlane(normal Vec3, d float32) Plane {
	l := normal.Length()
	if l == 0 {
		return Plane{Normal: normal, D: d}
	}

	inv := 1 / l

	return Plane{Normal: normal.Scale(inv), D: d * inv}
}

// Distance returns the signed distance of p to the plane. Positive
// values are on the side the normal points to.
func (pl Plane) Distance(p Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// aabbCorner returns the corner of b farthest along dir.
func aabbCorner(b AABB, dir Vec3) Vec3 {
	c := b.Min

	if dir.X >= 0 {
		c.X = b.Max.X
	}

	if dir.Y >= 0 {
		c.Y = b.Max.Y
	}

	if dir.Z >= 0 {
		c.Z = b.Max.Z
	}

	return c
}

// IsAABBBehind reports whether b lies entirely on the negative side of
// the plane. The test is conservative: it returns true only if every
// corner of b is behind the plane.
func (pl Plane) IsAABBBehind(b AABB) bool {
	if b.IsEmpty() {
		return false
	}

	return pl.Distance(aabbCorner(b, pl.Normal)) < 0
}
