// Package geom provides the float32 linear algebra and bounding volume
// primitives used throughout the library: vectors, column-major matrices,
// axis-aligned bounding boxes, bounding spheres, planes and the six-plane
// view frustum classifier.
//
// All types are plain values. Operations never mutate their receiver and
// are safe for concurrent use.
package geom
