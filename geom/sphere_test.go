package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphereFromAABB(t *testing.T) {
	box := AABBFromPoints([]Vec3{{-0.5, -0.5, -0.5}, {0.5, 0.5, 0.5}})
	s := SphereFromAABB(box)

	assert.Equal(t, Vec3{}, s.Center)
	assert.InDelta(t, 0.8660254, float64(s.Radius), 1e-6)

	assert.Equal(t, BoundingSphere{}, SphereFromAABB(NewAABB()))
}

func TestSphereFromPoints(t *testing.T) {
	points := []Vec3{{-1, 0, 0}, {1, 0, 0}, {0, 0.5, 0}}
	s := SphereFromPoints(points)

	assert.Equal(t, Vec3{0, 0.25, 0}, s.Center)

	for _, p := range points {
		assert.True(t, s.ContainsPoint(p))
	}

	assert.Equal(t, BoundingSphere{}, SphereFromPoints(nil))
}
