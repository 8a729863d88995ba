// Package scene holds the renderable input model: triangle geometries
// plus transformed instances of them. Geometries are validated at
// construction; a Scene is append-only and cheap to share once built.
package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
)

var (
	// ErrIndexOutOfRange is returned when a triangle references a
	// vertex that does not exist.
	ErrIndexOutOfRange = errors.New("triangle index out of range")

	// ErrUnknownGeometry is returned when an instance references a
	// geometry that has not been added to the scene.
	ErrUnknownGeometry = errors.New("unknown geometry index")

	// ErrEmptyScene is returned when an operation needs at least one
	// instance with geometry.
	ErrEmptyScene = errors.New("scene contains no renderable geometry")
)

// Triangle is a triple of vertex indices.
type Triangle [3]uint32

// Geometry is an immutable triangle mesh.
type Geometry struct {
	positions []geom.Vec3
	triangles []Triangle
	aabb      geom.AABB
}

// NewGeometry creates a geometry from vertex positions and triangles.
// Every triangle index must reference an existing vertex.
func NewGeometry(positions []geom.Vec3, triangles []Triangle) (*Geometry, error) {
	for i, tri := range triangles {
		for _, idx := range tri {
			if int(idx) >= len(positions) {
				return nil, fmt.Errorf("%w: triangle %d references vertex %d (have %d vertices)", ErrIndexOutOfRange, i, idx, len(positions))
			}
		}
	}

	return &Geometry{
		positions: positions,
		triangles: triangles,
		aabb:      geom.AABBFromPoints(positions),
	}, nil
}

// Positions returns the vertex positions. The returned slice must not
// be modified.
func (g *Geometry) Positions() []geom.Vec3 {
	return g.positions
}

// Triangles returns the triangle index triples. The returned slice
// must not be modified.
func (g *Geometry) Triangles() []Triangle {
	return g.triangles
}

// BoundingBox returns the local-space bounding box of the geometry.
func (g *Geometry) BoundingBox() geom.AABB {
	return g.aabb
}

// Instance places a geometry into the scene with a transform.
type Instance struct {
	GeometryIndex uint32
	Transform     geom.Mat4
}

// Scene is a collection of geometries and instances referencing them.
type Scene struct {
	geometries []*Geometry
	instances  []Instance
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddGeometry adds a geometry and returns its index.
func (s *Scene) AddGeometry(g *Geometry) uint32 {
	s.geometries = append(s.geometries, g)
	return uint32(len(s.geometries) - 1)
}

// AddInstance places the geometry with the given index using the
// given transform.
func (s *Scene) AddInstance(geometryIndex uint32, transform geom.Mat4) error {
	if int(geometryIndex) >= len(s.geometries) {
		return fmt.Errorf("%w: %d (have %d geometries)", ErrUnknownGeometry, geometryIndex, len(s.geometries))
	}

	s.instances = append(s.instances, Instance{
		GeometryIndex: geometryIndex,
		Transform:     transform,
	})

	return nil
}

// Geometries returns all geometries in insertion order.
func (s *Scene) Geometries() []*Geometry {
	return s.geometries
}

// Instances returns all instances in insertion order.
func (s *Scene) Instances() []Instance {
	return s.instances
}

// TriangleCount returns the number of instanced triangles, i.e. the
// triangles a renderer has to process for the whole scene.
func (s *Scene) TriangleCount() int {
	count := 0
	for _, inst := range s.instances {
		count += len(s.geometries[inst.GeometryIndex].triangles)
	}

	return count
}

// LogSummary logs the unique and instanced sizes of the scene.
func (s *Scene) LogSummary(log *slog.Logger) {
	var uniqueVertices, uniqueTriangles int
	for _, g := range s.geometries {
		uniqueVertices += len(g.positions)
		uniqueTriangles += len(g.triangles)
	}

	var instancedVertices int
	for _, inst := range s.instances {
		instancedVertices += len(s.geometries[inst.GeometryIndex].positions)
	}

	log.Info("Scene summary",
		"geometries", len(s.geometries),
		"instances", len(s.instances),
		"unique_vertices", uniqueVertices,
		"unique_triangles", uniqueTriangles,
		"instanced_vertices", instancedVertices,
		"instanced_triangles", s.TriangleCount(),
	)
}

// ForEachWorldPosition calls fn for every instanced vertex position in
// world space.
func (s *Scene) ForEachWorldPosition(fn func(geom.Vec3)) {
	for _, inst := range s.instances {
		g := s.geometries[inst.GeometryIndex]
		for _, p := range g.positions {
			fn(inst.Transform.TransformPoint(p))
		}
	}
}

// BoundingBox returns the bounding box over all instanced geometry in
// world space. It is empty for a scene without instances.
func (s *Scene) BoundingBox() geom.AABB {
	box := geom.NewAABB()
	s.ForEachWorldPosition(func(p geom.Vec3) {
		box = box.ExtendPoint(p)
	})

	return box
}

// BoundingSphere returns a sphere containing all instanced geometry in
// world space, centered at the bounding box center with the farthest
// vertex distance as radius.
func (s *Scene) BoundingSphere() (geom.BoundingSphere, error) {
	box := s.BoundingBox()
	if box.IsEmpty() {
		return geom.BoundingSphere{}, ErrEmptyScene
	}

	center := box.Center()

	var maxSq float32
	s.ForEachWorldPosition(func(p geom.Vec3) {
		if d := p.Sub(center).LengthSquared(); d > maxSq {
			maxSq = d
		}
	})

	return geom.BoundingSphere{
		Center: center,
		Radius: math32.Sqrt(maxSq),
	}, nil
}
