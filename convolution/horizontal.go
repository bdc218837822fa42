// Package convolution implements the horizontal and vertical fixed-point
// convolution kernels (spec.md §4.4, §4.5): the row-wise and column-wise
// weighted sums that turn a coeffs.Table into resized pixels.
//
// The scalar kernels here are the generic fallback every CPU-extension
// variant must agree with bit-for-bit (spec.md: "any grouping must yield
// identical results to the scalar reference"). They are the fixed-point
// descendant of the teacher's kernelScaler.scaleX/scaleY
// (naisuuuu-mangaconv/imgutil/scale.go), generalized from float64 weights
// and a single gray channel to coeffs.Table's quantized per-axis weights
// and every packed multi-channel pixel type in the package.
package convolution

import (
	"github.com/naisuuuu/fir/coeffs"
	"github.com/naisuuuu/fir/pixel"
)

// Horizontal writes dst[y][i] as the fixed-point weighted sum of
// src[y][table.Records[i].Start:...] for every row y, per spec.md §4.4.
// src and dst must have the same height; dst's width must equal
// len(table.Records).
func Horizontal[P pixel.Pixel](src pixel.View[P], dst pixel.ViewMut[P], table coeffs.Table) {
	min, max := pixel.TypeOf[P]().Range()
	bias := int64(1) << uint(table.Precision-1)

	var buf [4]int64
	for y := 0; y < src.Height(); y++ {
		srcRow := src.Row(y)
		dstRow := dst.RowMut(y)
		for i, rec := range table.Records {
			n := 0
			var acc [4]int64
			for j, w := range rec.Weights {
				n = loadChannels(srcRow[rec.Start+j], &buf)
				for c := 0; c < n; c++ {
					acc[c] += buf[c] * int64(w)
				}
			}
			for c := 0; c < n; c++ {
				acc[c] = saturate((acc[c]+bias)>>uint(table.Precision), min, max)
			}
			dstRow[i] = storeChannels[P](&acc, n)
		}
	}
}
