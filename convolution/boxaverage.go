package convolution

import "github.com/naisuuuu/fir/pixel"

// BoxAverage downsamples src into dst by averaging disjoint kx*ky blocks,
// one destination pixel per block. This is the SuperSampling pre-pass
// spec.md §3 describes ("first box-averages k×k blocks"): a degenerate,
// uniform-weight convolution, so it lives alongside Horizontal/Vertical
// rather than in its own package. dst's dimensions must equal
// src.Width()/kx, src.Height()/ky.
func BoxAverage[P pixel.Pixel](src pixel.View[P], dst pixel.ViewMut[P], kx, ky int) {
	dstW, dstH := dst.Width(), dst.Height()
	n := int64(kx * ky)
	bias := n / 2

	var buf [4]int64
	for dy := 0; dy < dstH; dy++ {
		dstRow := dst.RowMut(dy)
		for dx := 0; dx < dstW; dx++ {
			count := 0
			var acc [4]int64
			for j := 0; j < ky; j++ {
				row := src.Row(dy*ky + j)
				for i := 0; i < kx; i++ {
					count = loadChannels(row[dx*kx+i], &buf)
					for c := 0; c < count; c++ {
						acc[c] += buf[c]
					}
				}
			}
			for c := 0; c < count; c++ {
				acc[c] = (acc[c] + bias) / n
			}
			dstRow[dx] = storeChannels[P](&acc, count)
		}
	}
}

// BoxAverageFloat is the F32 counterpart to BoxAverage.
func BoxAverageFloat(src pixel.View[pixel.F32], dst pixel.ViewMut[pixel.F32], kx, ky int) {
	dstW, dstH := dst.Width(), dst.Height()
	n := float64(kx * ky)

	for dy := 0; dy < dstH; dy++ {
		dstRow := dst.RowMut(dy)
		for dx := 0; dx < dstW; dx++ {
			var acc float64
			for j := 0; j < ky; j++ {
				row := src.Row(dy*ky + j)
				for i := 0; i < kx; i++ {
					acc += float64(row[dx*kx+i].V)
				}
			}
			dstRow[dx] = pixel.F32{V: float32(acc / n)}
		}
	}
}
