package screenspace

import (
	"fmt"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

// MaxVertices is the vertex capacity of a Polygon. Clipping against
// the four viewport edges adds at most four vertices, so the capacity
// leaves ample headroom for a 32-gon.
const MaxVertices = 36

// Polygon is a 2D polygon with vertices in counterclockwise order,
// backed by a fixed-size buffer so the estimation hot path stays free
// of allocations.
type Polygon struct {
	n        int
	vertices [MaxVertices]geom.Vec2
}

// NewPolygon creates a polygon from vertices in counterclockwise
// order. It panics if more than MaxVertices vertices are given.
func NewPolygon(vertices ...geom.Vec2) Polygon {
	if len(vertices) > MaxVertices {
		panic(fmt.Sprintf("screenspace: polygon capacity exceeded: %d > %d", len(vertices), MaxVertices))
	}

	var p Polygon
	p.n = copy(p.vertices[:], vertices)

	return p
}

// Ellipse approximates an ellipse by a polygon with the given number
// of segments: equally spaced unit circle samples transformed by the
// two (normalized) axes and their radii. segments must not exceed
// MaxVertices-4 so the polygon stays clippable.
func Ellipse(center, axis1, axis2 geom.Vec2, radius1, radius2 float32, segments int) Polygon {
	if segments > MaxVertices-4 {
		panic(fmt.Sprintf("screenspace: too many ellipse segments: %d > %d", segments, MaxVertices-4))
	}

	var p Polygon
	p.n = segments

	for i := 0; i < segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)

		p.vertices[i] = center.
			Add(axis1.Scale(math32.Cos(angle) * radius1)).
			Add(axis2.Scale(math32.Sin(angle) * radius2))
	}

	return p
}

// Vertices returns the vertices of the polygon. The returned slice
// aliases internal storage and is only valid until the polygon is
// reused.
func (p *Polygon) Vertices() []geom.Vec2 {
	return p.vertices[:p.n]
}

// Area returns the signed area of the polygon via the shoelace
// formula. Counterclockwise polygons have positive area.
func (p *Polygon) Area() float32 {
	vs := p.vertices[:p.n]

	var acc float32

	for i, v1 := range vs {
		v2 := vs[(i+1)%len(vs)]
		acc += v1.X*v2.Y - v1.Y*v2.X
	}

	return acc / 2
}

// ClipRect clips the polygon against the rectangle [0,width]x[0,height]
// with four successive axis cuts, interpolating a new vertex at every
// edge crossing.
func (p *Polygon) ClipRect(width, height float32) Polygon {
	var buf1, buf2 [MaxVertices]geom.Vec2

	n := cutAxis(p.vertices[:p.n], 0, 0, 1, buf1[:])
	n = cutAxis(buf1[:n], 0, width, -1, buf2[:])
	n = cutAxis(buf2[:n], 1, 0, 1, buf1[:])
	n = cutAxis(buf1[:n], 1, height, -1, buf2[:])

	out := Polygon{n: n}
	copy(out.vertices[:], buf2[:n])

	return out
}

func component(v geom.Vec2, axis int) float32 {
	if axis == 0 {
		return v.X
	}

	return v.Y
}

// cutAxis removes the part of the polygon on the wrong side of the
// axis-aligned line at offset. factor selects the kept side: +1 keeps
// coordinates >= offset, -1 keeps coordinates <= offset. The number of
// vertices written to out is returned.
func cutAxis(in []geom.Vec2, axis int, offset, factor float32, out []geom.Vec2) int {
	n := len(in)
	if n == 0 {
		return 0
	}

	count := 0
	v1 := in[0]

	for i := 0; i < n; i++ {
		v2 := in[(i+1)%n]

		x1 := component(v1, axis) - offset
		x2 := component(v2, axis) - offset

		if x1*factor >= 0 {
			out[count] = v1
			count++
		}

		if x1*x2 < 0 {
			t := x2 / (x2 - x1)
			out[count] = v1.Scale(t).Add(v2.Scale(1 - t))
			count++
		}

		v1 = v2
	}

	return count
}
