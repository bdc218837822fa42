package convolution

import (
	"github.com/naisuuuu/fir/coeffs"
	"github.com/naisuuuu/fir/pixel"
)

// Vertical writes dst[i][x] as the fixed-point weighted sum of
// src[table.Records[i].Start:...][x] for every column x, per spec.md §4.5.
// src and dst must have the same width; dst's height must equal
// len(table.Records).
//
// The kernel is organized column-major-inner (spec.md §4.5: "the kernel
// operates on blocks of columns so each SIMD lane is a distinct column")
// even in this scalar form, so per-architecture variants can widen the
// inner loop to a SIMD lane width without reshaping the algorithm.
func Vertical[P pixel.Pixel](src pixel.View[P], dst pixel.ViewMut[P], table coeffs.Table) {
	min, max := pixel.TypeOf[P]().Range()
	bias := int64(1) << uint(table.Precision-1)
	width := src.Width()

	var buf [4]int64
	for i, rec := range table.Records {
		dstRow := dst.RowMut(i)
		for x := 0; x < width; x++ {
			n := 0
			var acc [4]int64
			for j, w := range rec.Weights {
				n = loadChannels(src.Row(rec.Start+j)[x], &buf)
				for c := 0; c < n; c++ {
					acc[c] += buf[c] * int64(w)
				}
			}
			for c := 0; c < n; c++ {
				acc[c] = saturate((acc[c]+bias)>>uint(table.Precision), min, max)
			}
			dstRow[x] = storeChannels[P](&acc, n)
		}
	}
}
