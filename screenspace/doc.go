// Package screenspace estimates how many pixels a bounding sphere
// covers on screen, analytically and without rasterization.
//
// The sphere is transformed into view space and its perspective
// projection is modeled as an ellipse. Spheres that cross the frustum
// boundary are handled by clipping a polygonal approximation of the
// ellipse against the viewport and scaling the area by the visible
// fraction.
//
// Usage:
//
//	estimator := screenspace.NewEstimator()
//	estimator.UpdateCamera(view, proj, 600)
//
//	pixels, vis := estimator.Estimate(sphere)
//	if vis == geom.VisibilityOutside {
//		// sphere is culled, pixels is 0
//	}
//
// The estimate is conservative in the sense of magnitude, not an exact
// pixel count: expect a few percent of error for spheres that are
// clipped or cover large parts of the screen.
package screenspace
