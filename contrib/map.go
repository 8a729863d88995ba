package contrib

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

// ErrValueCountMismatch is returned when the values of a map disagree
// with its descriptor.
var ErrValueCountMismatch = errors.New("value count does not match descriptor")

// Map holds the rendered contribution value for every direction cell of
// one camera angle. Each value is the fraction of the frame the scene
// covered when rendered from the cell's direction, normalized so that a
// sphere filling the frame scores 1.
type Map struct {
	Descriptor Descriptor
	Values     []float32
}

// NewMap returns a zeroed map for the given descriptor.
func NewMap(desc Descriptor) *Map {
	return &Map{
		Descriptor: desc,
		Values:     make([]float32, desc.NumValues()),
	}
}

// ValueForDirection returns the contribution value of the cell nearest
// to dir.
func (m *Map) ValueForDirection(dir geom.Vec3) float32 {
	return m.Values[m.Descriptor.IndexFromDirection(dir)]
}

// MaxValue returns the largest contribution value of the map.
func (m *Map) MaxValue() float32 {
	var maxValue float32
	for _, v := range m.Values {
		if v > maxValue {
			maxValue = v
		}
	}

	return maxValue
}

func (m *Map) validate() error {
	if len(m.Values) != m.Descriptor.NumValues() {
		return fmt.Errorf("%w: %d values for a %dx%d map",
			ErrValueCountMismatch, len(m.Values), m.Descriptor.MapSize, m.Descriptor.MapSize)
	}

	return nil
}

// Maps is a bundle of contribution maps rendered at different camera
// angles, kept sorted by ascending angle.
type Maps struct {
	maps []*Map
}

// NewMaps returns a bundle of the given maps sorted by camera angle.
func NewMaps(maps ...*Map) *Maps {
	b := &Maps{maps: append([]*Map(nil), maps...)}
	b.sort()

	return b
}

// Add inserts a map into the bundle, keeping the angle order.
func (b *Maps) Add(m *Map) {
	b.maps = append(b.maps, m)
	b.sort()
}

// Len returns the number of maps in the bundle.
func (b *Maps) Len() int {
	return len(b.maps)
}

// At returns the map at position i in ascending angle order.
func (b *Maps) At(i int) *Map {
	return b.maps[i]
}

func (b *Maps) sort() {
	sort.SliceStable(b.maps, func(i, j int) bool {
		return b.maps[i].Descriptor.CameraAngle < b.maps[j].Descriptor.CameraAngle
	})
}

// ValueForDirectionAngle returns the contribution for dir at the given
// camera angle. The value is interpolated between the two maps whose
// angles bracket the query, weighted by the tangent of the half angle;
// angles outside the stored range clamp to the nearest map. An empty
// bundle reports zero.
func (b *Maps) ValueForDirectionAngle(dir geom.Vec3, angle float32) float32 {
	if len(b.maps) == 0 {
		return 0
	}

	i0, i1, bracketed := b.bracket(angle)

	p0 := b.maps[i0].ValueForDirection(dir)
	if !bracketed {
		return p0
	}

	p1 := b.maps[i1].ValueForDirection(dir)

	a0 := math32.Tan(b.maps[i0].Descriptor.CameraAngle / 2)
	a1 := math32.Tan(b.maps[i1].Descriptor.CameraAngle / 2)
	a := math32.Tan(angle / 2)

	if a1 == a0 {
		return p0
	}

	t := (a1 - a) / (a1 - a0)

	return p0*t + p1*(1-t)
}

// bracket locates the pair of maps whose camera angles enclose the
// given angle. When the angle falls outside the stored range only i0 is
// valid and bracketed is false.
func (b *Maps) bracket(angle float32) (i0, i1 int, bracketed bool) {
	for i, m := range b.maps {
		cur := m.Descriptor.CameraAngle

		// An angle below the first map, or beyond the last, clamps.
		if cur > angle || i+1 >= len(b.maps) {
			return i, 0, false
		}

		if b.maps[i+1].Descriptor.CameraAngle >= angle {
			return i, i + 1, true
		}
	}

	return len(b.maps) - 1, 0, false
}
