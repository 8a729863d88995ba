package geom

// Visibility classifies a volume against a frustum.
type Visibility int

const (
	// VisibilityInside means the volume is entirely inside the frustum.
	VisibilityInside Visibility = iota

	// VisibilityIntersecting means the volume straddles at least one
	// frustum plane, i.e. it is only partially visible.
	VisibilityIntersecting

	// VisibilityOutside means the volume is entirely outside the
	// frustum.
	VisibilityOutside
)

// String implements the fmt.Stringer interface.
func (v Visibility) String() string {
	switch v {
	case VisibilityInside:
		return "inside"
	case VisibilityIntersecting:
		return "intersecting"
	case VisibilityOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// Frustum is the volume visible to a camera, bounded by six planes
// whose normals point inwards.
type Frustum struct {
	// Planes are ordered left, right, bottom, top, near, far.
	Planes [6]Plane
}

// FrustumFromMatrix extracts the six clip planes from a combined
// projection*view matrix, each normalized to unit normal length.
func FrustumFromMatrix(m Mat4) Frustum {
	row3 := m.Row(3)

	var f Frustum

	for i := 0; i < 6; i++ {
		row := m.Row(i / 2)

		var p Vec4
		if i%2 == 0 {
			p = Vec4{row3.X + row.X, row3.Y + row.Y, row3.Z + row.Z, row3.W + row.W}
		} else {
			p = Vec4{row3.X - row.X, row3.Y - row.Y, row3.Z - row.Z, row3.W - row.W}
		}

		f.Planes[i] = NewPlane(p.Vec3(), p.W)
	}

	return f
}

// ClassifyPoint reports whether p is inside the frustum. A point is
// never classified as intersecting.
func (f Frustum) ClassifyPoint(p Vec3) Visibility {
	for _, pl := range f.Planes {
		if pl.Distance(p) < 0 {
			return VisibilityOutside
		}
	}

	return VisibilityInside
}

// ClassifyAABB classifies the box b against the frustum.
func (f Frustum) ClassifyAABB(b AABB) Visibility {
	if b.IsEmpty() {
		return VisibilityOutside
	}

	result := VisibilityInside

	for _, pl := range f.Planes {
		if pl.IsAABBBehind(b) {
			return VisibilityOutside
		}

		// The far corner is in front; check whether the near corner
		// pokes through the plane.
		if pl.Distance(aabbCorner(b, pl.Normal.Neg())) < 0 {
			result = VisibilityIntersecting
		}
	}

	return result
}

// ClassifySphere classifies the sphere s against the frustum.
func (f Frustum) ClassifySphere(s BoundingSphere) Visibility {
	result := VisibilityInside

	for _, pl := range f.Planes {
		d := pl.Distance(s.Center)

		if d <= -s.Radius {
			return VisibilityOutside
		}

		if d < s.Radius {
			result = VisibilityIntersecting
		}
	}

	return result
}
