// Package pixgo predicts how many pixels a model contributes to the
// screen before a single triangle of it is fetched or rendered.
//
// Pixgo precomputes, for every viewing direction on an octahedral grid,
// how much of a model's projected bounding sphere its geometry actually
// fills. At runtime a cheap analytic screen-space estimate is corrected
// by that measured coverage, giving streaming viewers a pixel budget
// per model from nothing but its bounding sphere.
//
// # Quick Start
//
// Load a prebuilt map bundle and estimate:
//
//	est, _ := pixgo.FromFile("teapot.pcm")
//	_ = est.UpdateCamera(modelView, projection, 600)
//	pixels := est.EstimateSphere(sphere)
//
// Cloud mode:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("bundles/"))
//	est, _ := pixgo.FromStore(ctx, store, "teapot.pcm")
//
// # Building Maps
//
// Maps are built offline by rendering the scene from every direction
// cell of the octahedral grid:
//
//	maps, err := pixgo.NewBuilder(sc).
//	    MapSize(128).
//	    FrameSize(512).
//	    Angles(0, math.Pi/4, math.Pi/2).
//	    Build(ctx)
//
// One map is built per camera angle. An angle of zero renders with an
// orthographic camera, any other angle with a perspective camera of
// that vertical field of view. At estimate time the maps bracketing
// the sphere's subtended angle are blended.
//
// # Concurrency
//
// EstimateSphere is safe to call from many goroutines concurrently;
// UpdateCamera serializes against it. The build sweep parallelizes
// across render workers, each owning a private rasterizer.
//
// # Key Features
//
//   - Analytic clipped-ellipse screen coverage for bounding spheres
//   - Octahedral direction-indexed contribution maps
//   - Multi-angle map bundles with tangent-space angle blending
//   - Streaming bundle codec with LZ4 and Zstandard compression
//   - Cloud-native bundle storage (S3, MinIO, local, caching)
//   - Pure software rasterizer, no GPU required
package pixgo
