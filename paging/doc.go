// Package paging compresses scene geometry into renderable pages.
//
// A Chunk references a slice of a geometry together with an instance
// transform and a global object id. The Builder groups chunks into
// pages, flattens and quantizes their world-space vertices at 16 bits
// per axis and remaps all triangle indices into the page-local vertex
// array. Each page tracks at most 256 distinct object ids through a
// small local id table, which keeps the per-triangle id overhead at a
// single byte.
//
// Pages are immutable once built and safe to share across concurrent
// renderers.
package paging
