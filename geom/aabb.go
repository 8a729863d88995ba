package geom

import (
	"github.com/hupe1980/pixgo/internal/math32"
)

// AABB is an axis-aligned bounding box. The zero value of NewAABB is
// the empty box, which extends to nothing and contains no points.
type AABB struct {
	Min, Max Vec3
}

// NewAABB returns an empty bounding box.
func NewAABB() AABB {
	return AABB{
		Min: Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// AABBFromPoints returns the smallest bounding box containing all
// points.
func AABBFromPoints(points []Vec3) AABB {
	box := NewAABB()
	for _, p := range points {
		box = box.ExtendPoint(p)
	}

	return box
}

// IsEmpty reports whether b contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExtendPoint returns b grown to contain p.
func (b AABB) ExtendPoint(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// ExtendBox returns b grown to contain o.
func (b AABB) ExtendBox(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}

	if b.IsEmpty() {
		return o
	}

	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the center of b. The result is undefined for an empty
// box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis extent of b. An empty box has size zero.
func (b AABB) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}

	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest per-axis extent of b.
func (b AABB) MaxExtent() float32 {
	s := b.Size()
	return math32.Max(s.X, math32.Max(s.Y, s.Z))
}

// ContainsPoint reports whether p lies inside b (inclusive).
func (b AABB) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
