package contrib

import (
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
	"github.com/hupe1980/pixgo/octahedral"
)

// Descriptor identifies a contribution map: the edge length of the
// quadratic direction grid and the camera angle the map was rendered
// with. A camera angle of 0 means an orthographic camera; any other
// value is the vertical field of view of a perspective camera in
// radians.
type Descriptor struct {
	MapSize     int
	CameraAngle float32
}

// NumValues returns the number of direction cells of the map.
func (d Descriptor) NumValues() int {
	return d.MapSize * d.MapSize
}

// DirectionFromIndex returns the camera direction for the cell with the
// given index. The direction points from the camera toward the object
// and is sampled at the cell center.
func (d Descriptor) DirectionFromIndex(index int) geom.Vec3 {
	u := (float32(index%d.MapSize) + 0.5) / float32(d.MapSize)
	v := (float32(index/d.MapSize) + 0.5) / float32(d.MapSize)

	return octahedral.Decode(u, v)
}

// IndexFromDirection returns the index of the cell whose center is
// nearest to dir. It inverts DirectionFromIndex for on-grid directions.
func (d Descriptor) IndexFromDirection(dir geom.Vec3) int {
	u, v := octahedral.Encode(dir)

	x := clampCell(math32.Round(u*float32(d.MapSize)-0.5), d.MapSize)
	y := clampCell(math32.Round(v*float32(d.MapSize)-0.5), d.MapSize)

	return y*d.MapSize + x
}

func clampCell(v float32, size int) int {
	i := int(v)
	if i < 0 {
		return 0
	}

	if i >= size {
		return size - 1
	}

	return i
}
