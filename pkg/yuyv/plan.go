// Package yuyv repacks per-pixel luma/chroma triplets into the packed
// 4:2:2 byte layout expected by YUYV capture devices.
package yuyv

// Plan is a precomputed index mapping from a flattened triplet
// sequence of length w*h*3 into a packed buffer of length w*h*2,
// where each 4-byte macropixel Y0 U Y1 V encodes two horizontally
// adjacent pixels sharing one chroma sample pair. Chroma is
// subsampled by picking every other sample, not by averaging.
//
// A plan is immutable once built; new geometry needs a new plan.
type Plan struct {
	w, h int

	srcY, srcU, srcV []int
	dstY, dstU, dstV []int
}

// NewPlan computes the mapping for the given frame geometry.
// The width must be even, macropixels pair two pixels per row.
func NewPlan(w, h int) *Plan {
	l := w * h * 3
	lb := w * h * 2
	return &Plan{
		w: w, h: h,
		srcY: indices(0, l, 3),
		srcU: indices(1, l, 6),
		srcV: indices(2, l, 6),
		dstY: indices(0, lb, 2),
		dstU: indices(1, lb, 4),
		dstV: indices(3, lb, 4),
	}
}

func indices(start, stop, step int) []int {
	if start >= stop {
		return nil
	}
	idx := make([]int, 0, (stop-start+step-1)/step)
	for i := start; i < stop; i += step {
		idx = append(idx, i)
	}
	return idx
}

// Dims returns the geometry the plan was built from.
func (p *Plan) Dims() (w, h int) { return p.w, p.h }

// BufferSize is the packed output length for the plan geometry.
func (p *Plan) BufferSize() int { return p.w * p.h * 2 }
