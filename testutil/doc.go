// Package testutil provides testing utilities for pixgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random number generator and procedural meshes
// for building small but realistic test scenes.
//
// # Random Value Generation
//
//	rng := testutil.NewRNG(seed)
//	values := make([]float32, 64)
//	rng.FillUniform(values) // uniform [0, 1)
//
// # Procedural Meshes
//
//	cube := testutil.UnitCube()
//	sphere := testutil.UVSphere(16, 32, 1)
//	sc := testutil.SceneOf(sphere)
package testutil
