// Package alpha implements the premultiply/unpremultiply pipeline that
// brackets a resize when the source pixel type carries an alpha channel
// (spec.md §4.3). It is grounded directly on the original Rust source's
// alpha/u8x2/native.rs: the same mul-div-255 identity, the same
// reciprocal-table division, and the same in-place/out-of-place split.
package alpha

import "github.com/naisuuuu/fir/pixel"

// mulDiv255 computes round(c*a/255) using the fast identity from
// spec.md §4.3: (c·a + 127 + ((c·a + 127)>>8)) >> 8.
func mulDiv255(c, a uint8) uint8 {
	t := uint32(c)*uint32(a) + 127
	t = (t + (t >> 8)) >> 8
	return uint8(t)
}

// mulDiv65535 is the u16 analogue of mulDiv255: round(c*a/65535) using the
// same rounding-bias-then-shift shape, done in 64-bit arithmetic since
// c*a can exceed 32 bits.
func mulDiv65535(c, a uint16) uint16 {
	t := uint64(c)*uint64(a) + 1<<15
	t = (t + (t >> 16)) >> 16
	if t > 65535 {
		t = 65535
	}
	return uint16(t)
}

// recipAlpha8 is a reciprocal table indexed by alpha, scaled by 1<<16, used
// by divideAndClip8 to turn the per-pixel division into a multiply.
// recipAlpha8[0] is unused; divide-by-zero alpha pixels are handled by the
// caller before consulting the table.
var recipAlpha8 [256]uint32

func init() {
	for a := 1; a < 256; a++ {
		recipAlpha8[a] = uint32((255*65536 + a/2) / a)
	}
}

func divideAndClip8(c, recip uint32) uint8 {
	v := (c*recip + 1<<15) >> 16
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// recipAlpha16 is the u16 analogue of recipAlpha8, scaled by 1<<32 so the
// reciprocal keeps enough fractional bits across the wider channel range.
var recipAlpha16 [65536]uint64

func init() {
	for a := 1; a < 65536; a++ {
		recipAlpha16[a] = (65535*uint64(1)<<32 + uint64(a)/2) / uint64(a)
	}
}

func divideAndClip16(c uint64, recip uint64) uint16 {
	v := (c*recip + uint64(1)<<31) >> 32
	if v > 65535 {
		v = 65535
	}
	return uint16(v)
}

// Multiply premultiplies color components by alpha, writing into dst.
func Multiply(src pixel.View[pixel.U8x2], dst pixel.ViewMut[pixel.U8x2]) {
	for y := 0; y < src.Height(); y++ {
		multiplyRow2(src.Row(y), dst.RowMut(y))
	}
}

// MultiplyInplace premultiplies color components by alpha in place.
func MultiplyInplace(img pixel.ViewMut[pixel.U8x2]) {
	for y := 0; y < img.Height(); y++ {
		row := img.RowMut(y)
		multiplyRow2(row, row)
	}
}

func multiplyRow2(src []pixel.U8x2, dst []pixel.U8x2) {
	for i, p := range src {
		dst[i] = pixel.U8x2{L: mulDiv255(p.L, p.A), A: p.A}
	}
}

// Divide unpremultiplies color components by alpha, writing into dst.
func Divide(src pixel.View[pixel.U8x2], dst pixel.ViewMut[pixel.U8x2]) {
	for y := 0; y < src.Height(); y++ {
		divideRow2(src.Row(y), dst.RowMut(y))
	}
}

// DivideInplace unpremultiplies color components by alpha in place.
func DivideInplace(img pixel.ViewMut[pixel.U8x2]) {
	for y := 0; y < img.Height(); y++ {
		row := img.RowMut(y)
		divideRow2(row, row)
	}
}

func divideRow2(src []pixel.U8x2, dst []pixel.U8x2) {
	for i, p := range src {
		if p.A == 0 {
			dst[i] = pixel.U8x2{L: 0, A: 0}
			continue
		}
		dst[i] = pixel.U8x2{L: divideAndClip8(uint32(p.L), recipAlpha8[p.A]), A: p.A}
	}
}

// Multiply64 premultiplies the luminance component by alpha for U16x2
// pixels, writing into dst.
func Multiply64(src pixel.View[pixel.U16x2], dst pixel.ViewMut[pixel.U16x2]) {
	for y := 0; y < src.Height(); y++ {
		multiplyRow2x16(src.Row(y), dst.RowMut(y))
	}
}

// Multiply64Inplace premultiplies the luminance component by alpha for
// U16x2 pixels in place.
func Multiply64Inplace(img pixel.ViewMut[pixel.U16x2]) {
	for y := 0; y < img.Height(); y++ {
		row := img.RowMut(y)
		multiplyRow2x16(row, row)
	}
}

func multiplyRow2x16(src []pixel.U16x2, dst []pixel.U16x2) {
	for i, p := range src {
		dst[i] = pixel.U16x2{L: mulDiv65535(p.L, p.A), A: p.A}
	}
}

// Divide64 unpremultiplies the luminance component by alpha for U16x2
// pixels, writing into dst.
func Divide64(src pixel.View[pixel.U16x2], dst pixel.ViewMut[pixel.U16x2]) {
	for y := 0; y < src.Height(); y++ {
		divideRow2x16(src.Row(y), dst.RowMut(y))
	}
}

// Divide64Inplace unpremultiplies the luminance component by alpha for
// U16x2 pixels in place.
func Divide64Inplace(img pixel.ViewMut[pixel.U16x2]) {
	for y := 0; y < img.Height(); y++ {
		row := img.RowMut(y)
		divideRow2x16(row, row)
	}
}

func divideRow2x16(src []pixel.U16x2, dst []pixel.U16x2) {
	for i, p := range src {
		if p.A == 0 {
			dst[i] = pixel.U16x2{}
			continue
		}
		dst[i] = pixel.U16x2{L: divideAndClip16(uint64(p.L), recipAlpha16[p.A]), A: p.A}
	}
}

// MultiplyRGBA premultiplies color components by alpha for U8x4 pixels.
func MultiplyRGBA(src pixel.View[pixel.U8x4], dst pixel.ViewMut[pixel.U8x4]) {
	for y := 0; y < src.Height(); y++ {
		multiplyRow4(src.Row(y), dst.RowMut(y))
	}
}

// MultiplyRGBAInplace premultiplies color components by alpha for U8x4
// pixels in place.
func MultiplyRGBAInplace(img pixel.ViewMut[pixel.U8x4]) {
	for y := 0; y < img.Height(); y++ {
		row := img.RowMut(y)
		multiplyRow4(row, row)
	}
}

func multiplyRow4(src []pixel.U8x4, dst []pixel.U8x4) {
	for i, p := range src {
		dst[i] = pixel.U8x4{
			R: mulDiv255(p.R, p.A),
			G: mulDiv255(p.G, p.A),
			B: mulDiv255(p.B, p.A),
			A: p.A,
		}
	}
}

// DivideRGBA unpremultiplies color components by alpha for U8x4 pixels.
func DivideRGBA(src pixel.View[pixel.U8x4], dst pixel.ViewMut[pixel.U8x4]) {
	for y := 0; y < src.Height(); y++ {
		divideRow4(src.Row(y), dst.RowMut(y))
	}
}

// DivideRGBAInplace unpremultiplies color components by alpha for U8x4
// pixels in place.
func DivideRGBAInplace(img pixel.ViewMut[pixel.U8x4]) {
	for y := 0; y < img.Height(); y++ {
		row := img.RowMut(y)
		divideRow4(row, row)
	}
}

func divideRow4(src []pixel.U8x4, dst []pixel.U8x4) {
	for i, p := range src {
		if p.A == 0 {
			dst[i] = pixel.U8x4{}
			continue
		}
		recip := recipAlpha8[p.A]
		dst[i] = pixel.U8x4{
			R: divideAndClip8(uint32(p.R), recip),
			G: divideAndClip8(uint32(p.G), recip),
			B: divideAndClip8(uint32(p.B), recip),
			A: p.A,
		}
	}
}

// MultiplyRGBA64 premultiplies color components by alpha for U16x4 pixels.
func MultiplyRGBA64(src pixel.View[pixel.U16x4], dst pixel.ViewMut[pixel.U16x4]) {
	for y := 0; y < src.Height(); y++ {
		multiplyRow64(src.Row(y), dst.RowMut(y))
	}
}

// MultiplyRGBA64Inplace premultiplies color components by alpha for U16x4
// pixels in place.
func MultiplyRGBA64Inplace(img pixel.ViewMut[pixel.U16x4]) {
	for y := 0; y < img.Height(); y++ {
		row := img.RowMut(y)
		multiplyRow64(row, row)
	}
}

func multiplyRow64(src []pixel.U16x4, dst []pixel.U16x4) {
	for i, p := range src {
		dst[i] = pixel.U16x4{
			R: mulDiv65535(p.R, p.A),
			G: mulDiv65535(p.G, p.A),
			B: mulDiv65535(p.B, p.A),
			A: p.A,
		}
	}
}

// DivideRGBA64 unpremultiplies color components by alpha for U16x4 pixels.
func DivideRGBA64(src pixel.View[pixel.U16x4], dst pixel.ViewMut[pixel.U16x4]) {
	for y := 0; y < src.Height(); y++ {
		divideRow64(src.Row(y), dst.RowMut(y))
	}
}

// DivideRGBA64Inplace unpremultiplies color components by alpha for U16x4
// pixels in place.
func DivideRGBA64Inplace(img pixel.ViewMut[pixel.U16x4]) {
	for y := 0; y < img.Height(); y++ {
		row := img.RowMut(y)
		divideRow64(row, row)
	}
}

func divideRow64(src []pixel.U16x4, dst []pixel.U16x4) {
	for i, p := range src {
		if p.A == 0 {
			dst[i] = pixel.U16x4{}
			continue
		}
		recip := recipAlpha16[p.A]
		dst[i] = pixel.U16x4{
			R: divideAndClip16(uint64(p.R), recip),
			G: divideAndClip16(uint64(p.G), recip),
			B: divideAndClip16(uint64(p.B), recip),
			A: p.A,
		}
	}
}
