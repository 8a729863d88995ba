package paging

import (
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/scene"
)

// Range is a half-open [Start,End) index interval.
type Range struct {
	Start, End uint32
}

// NewRange returns the interval [start,end).
func NewRange(start, end uint32) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of indices in the interval.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}

	return int(r.End - r.Start)
}

// IsEmpty reports whether the interval contains no indices.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Chunk is a renderable slice of a geometry: a vertex and triangle
// range, the instance transform and the global object id the covered
// triangles belong to.
type Chunk struct {
	Geometry      *scene.Geometry
	VertexRange   Range
	TriangleRange Range
	Transform     geom.Mat4
	ObjectID      uint32
}

// ChunksFromScene derives one chunk per scene instance, covering the
// instance's full geometry. The object id of each chunk is the index
// of its instance.
func ChunksFromScene(s *scene.Scene) []Chunk {
	instances := s.Instances()
	geometries := s.Geometries()

	chunks := make([]Chunk, 0, len(instances))

	for i, inst := range instances {
		g := geometries[inst.GeometryIndex]

		chunks = append(chunks, Chunk{
			Geometry:      g,
			VertexRange:   NewRange(0, uint32(len(g.Positions()))),
			TriangleRange: NewRange(0, uint32(len(g.Triangles()))),
			Transform:     inst.Transform,
			ObjectID:      uint32(i),
		})
	}

	return chunks
}
