package convolution

import (
	"github.com/naisuuuu/fir/coeffs"
	"github.com/naisuuuu/fir/pixel"
)

// HorizontalFloat is the F32 counterpart to Horizontal. spec.md §4.4 calls
// for the float path to bypass integer coefficients entirely; since
// coeffs.Table only hands out the quantized weights (there is exactly one
// coefficient builder, shared by every pixel type), this reconstructs the
// float weight as w/2^precision. Each reconstructed weight therefore
// carries up to 2^-(precision+1) of rounding error (2^-16 at the 15-bit
// precision of the Accum64 tables the façade uses for F32), which is
// coarser than float32's ~2^-24 resolution; the accumulation itself is
// still real floating-point, with no per-channel saturation shift.
func HorizontalFloat(src pixel.View[pixel.F32], dst pixel.ViewMut[pixel.F32], table coeffs.Table) {
	denom := float64(int64(1) << uint(table.Precision))
	for y := 0; y < src.Height(); y++ {
		srcRow := src.Row(y)
		dstRow := dst.RowMut(y)
		for i, rec := range table.Records {
			var acc float64
			for j, w := range rec.Weights {
				acc += float64(srcRow[rec.Start+j].V) * (float64(w) / denom)
			}
			dstRow[i] = pixel.F32{V: float32(acc)}
		}
	}
}

// VerticalFloat is the F32 counterpart to Vertical.
func VerticalFloat(src pixel.View[pixel.F32], dst pixel.ViewMut[pixel.F32], table coeffs.Table) {
	denom := float64(int64(1) << uint(table.Precision))
	width := src.Width()
	for i, rec := range table.Records {
		dstRow := dst.RowMut(i)
		for x := 0; x < width; x++ {
			var acc float64
			for j, w := range rec.Weights {
				acc += float64(src.Row(rec.Start+j)[x].V) * (float64(w) / denom)
			}
			dstRow[x] = pixel.F32{V: float32(acc)}
		}
	}
}
