// Package raster renders quantized geometry pages with a software
// scanline rasterizer and counts the pixels each object covers.
//
// The FrameBuffer keeps a fixed-point depth buffer and an object id
// buffer per frame. Triangles are projected through the combined
// projection, view and dequantization transform, split into flat
// sub-triangles and filled scanline by scanline with a strict
// less-than depth test. After a frame the id buffer is folded into a
// per-object pixel Histogram.
//
// Rendering is fully deterministic for identical inputs. A renderer
// instance owns mutable frame buffers and must not be shared across
// goroutines; concurrent sweeps create one instance per worker.
//
// Usage:
//
//	renderer := raster.NewSoftwareRenderer()
//	if err := renderer.Initialize(raster.RenderOptions{FrameSize: 512}); err != nil {
//		// handle error
//	}
//
//	var hist raster.Histogram
//	stats := renderer.RenderFrame(pages, &hist, nil, view, proj)
package raster
