// Package nearest implements the nearest-neighbour resampler (spec.md
// §4.6, component C8): the cheapest resize path, no filter, no
// coefficients, direct integer-mapped sampling.
//
// The center-to-center mapping with an upper-bound clamp is the same idiom
// abiiranathan-sprites.ResizeNearestNeighbor uses (resize.go): map each
// destination index to a source index via the scale factor, clamp against
// the last valid row/column so rounding never walks off the edge. That
// repo scales by `x*scaleX + 0.5*scaleX`, equivalent to floor((x+0.5)*scale)
// for scaleX > 0; this package uses spec.md's literal floor((i+0.5)*scale)
// form directly, which are the same computation up to float rounding.
package nearest

import "github.com/naisuuuu/fir/pixel"

// Resize writes every destination pixel from its nearest source pixel
// under out[i,j] = src[floor((i+0.5)*src_h/dst_h), floor((j+0.5)*src_w/dst_w)].
// Never samples out of bounds.
func Resize[P pixel.Pixel](src pixel.View[P], dst pixel.ViewMut[P]) {
	srcW, srcH := src.Width(), src.Height()
	dstW, dstH := dst.Width(), dst.Height()

	scaleX := float64(srcW) / float64(dstW)
	scaleY := float64(srcH) / float64(dstH)

	srcRows := make([]int, dstH)
	for j := 0; j < dstH; j++ {
		srcRows[j] = clampIndex(int((float64(j)+0.5)*scaleY), srcH)
	}
	srcCols := make([]int, dstW)
	for i := 0; i < dstW; i++ {
		srcCols[i] = clampIndex(int((float64(i)+0.5)*scaleX), srcW)
	}

	for j := 0; j < dstH; j++ {
		srcRow := src.Row(srcRows[j])
		dstRow := dst.RowMut(j)
		for i := 0; i < dstW; i++ {
			dstRow[i] = srcRow[srcCols[i]]
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
