package raster

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/pixgo/paging"
)

// Histogram holds per-object pixel counts, indexed by object id. Its
// length is one past the largest id seen in a frame; objects without
// covered pixels count zero.
type Histogram []uint32

// Count folds the id buffer of a frame buffer into per-object pixel
// counts, replacing the previous content. The histogram is sized to
// the largest id seen plus one; a frame without covered pixels yields
// an empty histogram.
func (h *Histogram) Count(fb *FrameBuffer) {
	var maxID uint32

	found := false

	for _, id := range fb.ids {
		if id == paging.ReservedObjectID {
			continue
		}

		if !found || id > maxID {
			maxID = id
			found = true
		}
	}

	if !found {
		h.resize(0)
		return
	}

	h.resize(int(maxID) + 1)

	for _, id := range fb.ids {
		if id != paging.ReservedObjectID {
			(*h)[id]++
		}
	}
}

// TotalCoverage returns the total number of covered pixels.
func (h Histogram) TotalCoverage() uint64 {
	var sum uint64
	for _, c := range h {
		sum += uint64(c)
	}

	return sum
}

// VisibleIDs returns the set of object ids with at least one covered
// pixel as a roaring bitmap.
func (h Histogram) VisibleIDs() *roaring.Bitmap {
	rb := roaring.New()

	for id, c := range h {
		if c > 0 {
			rb.Add(uint32(id))
		}
	}

	return rb
}

// resize grows or shrinks the histogram to n zeroed entries, reusing
// the backing array where possible.
func (h *Histogram) resize(n int) {
	if cap(*h) < n {
		*h = make(Histogram, n)
		return
	}

	*h = (*h)[:n]
	for i := range *h {
		(*h)[i] = 0
	}
}
