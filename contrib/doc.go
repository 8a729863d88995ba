// Package contrib builds, stores and queries pixel contribution maps.
//
// A contribution map records, for a set of camera directions, the
// fraction of the frame a scene covers when rendered from that
// direction. Directions are laid out as cells of a square grid through
// the octahedral parameterization, so a map is a small image indexed by
// direction. Bundles hold maps rendered at several camera angles and
// interpolate between them, which lets a viewer correct an analytic
// screen-space estimate by how much of an object is actually visible
// from its side of the scene.
//
// Maps are built offline with BuildMap, which sweeps a renderer over
// every direction cell, and serialized with a compact binary codec plus
// an optional block-compressed container. At runtime a bundle answers
// ValueForDirectionAngle lookups with tangent-weighted interpolation
// between the two nearest camera angles.
package contrib
