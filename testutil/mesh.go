package testutil

import (
	"github.com/hupe1980/pixgo/geom"
	"github.com/hupe1980/pixgo/internal/math32"
	"github.com/hupe1980/pixgo/scene"
)

// UnitCube returns a cube mesh spanning [-1, 1] on every axis.
func UnitCube() *scene.Geometry {
	return Box(geom.Vec3{X: 1, Y: 1, Z: 1})
}

// Box returns a box mesh centered at the origin with the given half
// extents.
func Box(halfExtent geom.Vec3) *scene.Geometry {
	positions := make([]geom.Vec3, 8)
	for i := range positions {
		p := geom.Vec3{X: -halfExtent.X, Y: -halfExtent.Y, Z: -halfExtent.Z}
		if i&1 != 0 {
			p.X = halfExtent.X
		}
		if i&2 != 0 {
			p.Y = halfExtent.Y
		}
		if i&4 != 0 {
			p.Z = halfExtent.Z
		}
		positions[i] = p
	}

	triangles := []scene.Triangle{
		{0, 2, 1}, {1, 2, 3}, // z min
		{4, 5, 6}, {5, 7, 6}, // z max
		{0, 1, 4}, {1, 5, 4}, // y min
		{2, 6, 3}, {3, 6, 7}, // y max
		{0, 4, 2}, {2, 4, 6}, // x min
		{1, 3, 5}, {3, 7, 5}, // x max
	}

	return mustGeometry(positions, triangles)
}

// Quad returns a square mesh of the given side length in the XY plane,
// centered at the origin.
func Quad(size float32) *scene.Geometry {
	h := size / 2

	positions := []geom.Vec3{
		{X: -h, Y: -h},
		{X: h, Y: -h},
		{X: h, Y: h},
		{X: -h, Y: h},
	}
	triangles := []scene.Triangle{
		{0, 1, 2},
		{0, 2, 3},
	}

	return mustGeometry(positions, triangles)
}

// UVSphere returns a latitude/longitude tessellated sphere mesh
// centered at the origin. stacks is the number of latitude bands,
// slices the number of longitude segments; both must be at least 3.
func UVSphere(stacks, slices int, radius float32) *scene.Geometry {
	if stacks < 3 {
		stacks = 3
	}
	if slices < 3 {
		slices = 3
	}

	positions := make([]geom.Vec3, 0, (stacks-1)*slices+2)
	positions = append(positions, geom.Vec3{Z: radius})

	for i := 1; i < stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks)
		z := radius * math32.Cos(phi)
		ringRadius := radius * math32.Sin(phi)

		for j := 0; j < slices; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(slices)
			positions = append(positions, geom.Vec3{
				X: ringRadius * math32.Cos(theta),
				Y: ringRadius * math32.Sin(theta),
				Z: z,
			})
		}
	}

	positions = append(positions, geom.Vec3{Z: -radius})
	bottom := uint32(len(positions) - 1)

	ring := func(i, j int) uint32 {
		return uint32(1 + (i-1)*slices + j%slices)
	}

	var triangles []scene.Triangle
	for j := 0; j < slices; j++ {
		triangles = append(triangles, scene.Triangle{0, ring(1, j), ring(1, j+1)})
	}
	for i := 1; i < stacks-1; i++ {
		for j := 0; j < slices; j++ {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j), ring(i+1, j+1)
			triangles = append(triangles, scene.Triangle{a, c, d}, scene.Triangle{a, d, b})
		}
	}
	for j := 0; j < slices; j++ {
		triangles = append(triangles, scene.Triangle{ring(stacks-1, j), bottom, ring(stacks-1, j+1)})
	}

	return mustGeometry(positions, triangles)
}

// SceneOf builds a scene containing one identity-transformed instance
// of every given geometry.
func SceneOf(geometries ...*scene.Geometry) *scene.Scene {
	s := scene.New()
	for _, g := range geometries {
		idx := s.AddGeometry(g)
		if err := s.AddInstance(idx, geom.Identity()); err != nil {
			panic(err)
		}
	}
	return s
}

func mustGeometry(positions []geom.Vec3, triangles []scene.Triangle) *scene.Geometry {
	g, err := scene.NewGeometry(positions, triangles)
	if err != nil {
		panic(err)
	}
	return g
}
